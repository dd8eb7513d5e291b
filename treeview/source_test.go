package treeview

import (
	"slices"
	"testing"

	"github.com/phanxgames/arbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeItem struct {
	title    string
	icon     arbor.Icon
	selected bool
	hovered  bool
}

func (f *fakeItem) Title() string    { return f.title }
func (f *fakeItem) Icon() arbor.Icon { return f.icon }
func (f *fakeItem) IsSelected() bool { return f.selected }
func (f *fakeItem) IsHovered() bool  { return f.hovered }

// fakeSource is a minimal host hierarchy that records notifications the way
// a real host would between ticks.
type fakeSource struct {
	items    map[string]*fakeItem
	parent   map[string]string
	children map[string][]string
	pending  Changes[string]
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		items:    make(map[string]*fakeItem),
		parent:   make(map[string]string),
		children: make(map[string][]string),
	}
}

func (s *fakeSource) Item(id string) (Item, bool) {
	it, ok := s.items[id]
	if !ok {
		return nil, false
	}
	return it, true
}

func (s *fakeSource) Children(id string) []string {
	return s.children[id]
}

func (s *fakeSource) create(id, title, parent string) {
	s.items[id] = &fakeItem{title: title, icon: arbor.NamedIcon("Folder")}
	s.pending.Changed = append(s.pending.Changed, id)
	if parent != "" {
		s.attach(id, parent)
	}
}

func (s *fakeSource) attach(id, parent string) {
	s.parent[id] = parent
	s.children[parent] = append(s.children[parent], id)
	s.pending.Reparented = append(s.pending.Reparented, Reparent[string]{Item: id, Parent: parent})
	s.pending.Rechilded = append(s.pending.Rechilded, parent)
}

func (s *fakeSource) detach(id string) string {
	old := s.parent[id]
	if old == "" {
		return ""
	}
	delete(s.parent, id)
	s.children[old] = slices.DeleteFunc(s.children[old], func(c string) bool { return c == id })
	s.pending.Rechilded = append(s.pending.Rechilded, old)
	return old
}

func (s *fakeSource) move(id, parent string) {
	s.detach(id)
	s.attach(id, parent)
}

func (s *fakeSource) unparent(id string) {
	if s.detach(id) != "" {
		s.pending.Orphaned = append(s.pending.Orphaned, id)
	}
}

func (s *fakeSource) rename(id, title string) {
	s.items[id].title = title
	s.pending.Changed = append(s.pending.Changed, id)
}

// remove deletes id and its descendants, children first in the feed.
func (s *fakeSource) remove(id string) {
	for _, c := range slices.Clone(s.children[id]) {
		s.remove(c)
	}
	s.detach(id)
	delete(s.items, id)
	delete(s.children, id)
	s.pending.Removed = append(s.pending.Removed, id)
	s.pending.Rechilded = slices.DeleteFunc(s.pending.Rechilded, func(r string) bool { return r == id })
}

func (s *fakeSource) drain() Changes[string] {
	ch := s.pending
	s.pending = Changes[string]{}
	return ch
}

// harness wires a tree view to a scene so layout and input can be exercised.
type harness struct {
	scene  *arbor.Scene
	panel  *arbor.Widget
	source *fakeSource
	tv     *TreeView[string]
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	scene := arbor.NewScene()
	scene.SetViewport(200, 600)
	panel := arbor.NewBox("panel", arbor.Style{Width: arbor.Px(200)})
	scene.Root().AddChild(panel)
	source := newFakeSource()
	return &harness{
		scene:  scene,
		panel:  panel,
		source: source,
		tv:     New[string](panel, source, cfg),
	}
}

func (h *harness) tick() Stats {
	return h.tv.Tick(h.source.drain())
}

func (h *harness) widget(t *testing.T, id string, role Role) *arbor.Widget {
	t.Helper()
	w, ok := h.tv.Registry().Widget(id, role)
	require.True(t, ok, "item %q not tracked", id)
	return w
}

// childTitles returns the titles of the nodes held by container, in order.
func (h *harness) childTitles(t *testing.T, container *arbor.Widget) []string {
	t.Helper()
	var out []string
	for _, node := range container.Children() {
		id, ok := h.tv.Registry().Item(RoleNode, node.ID)
		require.True(t, ok)
		out = append(out, h.source.items[id].title)
	}
	return out
}

func requireViolation(t *testing.T, op string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "expected a consistency violation")
		err, ok := r.(*ConsistencyError)
		require.True(t, ok, "panic value is %T: %v", r, r)
		assert.Equal(t, op, err.Op)
	}()
	fn()
}
