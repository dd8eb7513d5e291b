package treeview

import (
	"testing"

	"github.com/phanxgames/arbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWidgets() Widgets {
	return Widgets{
		Node:       arbor.NewBox("node", arbor.Style{}),
		Row:        arbor.NewBox("row", arbor.Style{}),
		Disclosure: arbor.NewImage("disclosure", IconExpanded, arbor.IconXSmall, arbor.Style{}),
		Icon:       arbor.NewImage("icon", arbor.ImageIcon{}, arbor.IconXSmall, arbor.Style{}),
		Label:      arbor.NewText("label", "", nil, arbor.Style{}),
		ChildSlot:  arbor.NewBox("slot", arbor.Style{}),
	}
}

func TestRegistryRoundTrip(t *testing.T) {
	r := NewRegistry[int]()
	ws := map[int]Widgets{1: newWidgets(), 2: newWidgets(), 3: newWidgets()}
	for item, w := range ws {
		r.Register(item, w)
	}
	require.Equal(t, 3, r.Len())

	for item := range ws {
		for _, role := range Roles {
			w, ok := r.Widget(item, role)
			require.True(t, ok)
			back, ok := r.Item(role, w.ID)
			require.True(t, ok)
			assert.Equal(t, item, back, "role %s", role)

			owner, gotRole, ok := r.Lookup(w.ID)
			require.True(t, ok)
			assert.Equal(t, item, owner)
			assert.Equal(t, role, gotRole)
		}
	}
}

func TestRegistryExclusivity(t *testing.T) {
	r := NewRegistry[string]()
	a := newWidgets()
	r.Register("a", a)

	b := newWidgets()
	b.Label = a.Label
	requireViolation(t, "register", func() { r.Register("b", b) })
	assert.False(t, r.Tracked("b"), "failed registration must leave no entries")

	c := newWidgets()
	c.Icon = c.Disclosure
	requireViolation(t, "register", func() { r.Register("c", c) })
}

func TestRegistrySharedWidgetNamesOwner(t *testing.T) {
	r := NewRegistry[string]()
	a := newWidgets()
	r.Register("a", a)

	b := newWidgets()
	b.ChildSlot = a.ChildSlot
	defer func() {
		err, ok := recover().(*ConsistencyError)
		require.True(t, ok)
		assert.Equal(t, RoleChildSlot, err.Role)
		assert.Contains(t, err.Msg, "already owned by a")
	}()
	r.Register("b", b)
}

func TestRegistryDoubleRegister(t *testing.T) {
	r := NewRegistry[string]()
	r.Register("a", newWidgets())
	requireViolation(t, "register", func() { r.Register("a", newWidgets()) })
}

func TestRegistryMissingWidget(t *testing.T) {
	r := NewRegistry[string]()
	w := newWidgets()
	w.Row = nil
	requireViolation(t, "register", func() { r.Register("a", w) })
}

func TestRegistryDeregisterCompleteness(t *testing.T) {
	r := NewRegistry[string]()
	w := newWidgets()
	r.Register("a", w)
	r.Register("b", newWidgets())

	var ids []arbor.WidgetID
	for _, role := range Roles {
		ids = append(ids, w.Get(role).ID)
	}

	// IDs are zeroed on dispose; the registry must still clean up.
	w.Node.AddChild(w.Row)
	w.Node.AddChild(w.ChildSlot)
	w.Node.Dispose()

	got := r.Deregister("a")
	assert.Same(t, w.Node, got.Node)
	assert.False(t, r.Tracked("a"))
	assert.Equal(t, 1, r.Len())
	for _, id := range ids {
		_, _, ok := r.Lookup(id)
		assert.False(t, ok, "widget %d still mapped", id)
	}
	assert.Equal(t, []string{"b"}, r.Items())
}

func TestRegistryDeregisterUntracked(t *testing.T) {
	r := NewRegistry[string]()
	requireViolation(t, "deregister", func() { r.Deregister("ghost") })
}

func TestRegistryItemsInRegistrationOrder(t *testing.T) {
	r := NewRegistry[string]()
	for _, id := range []string{"c", "a", "b"} {
		r.Register(id, newWidgets())
	}
	assert.Equal(t, []string{"c", "a", "b"}, r.Items())
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "child slot", RoleChildSlot.String())
	assert.Equal(t, "none", RoleNone.String())
	assert.Panics(t, func() { RoleNone.index() })
}
