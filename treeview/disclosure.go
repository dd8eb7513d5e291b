package treeview

import "github.com/phanxgames/arbor"

// ProcessDisclosures applies the disclosure presses queued since the last
// call and returns how many were applied. Presses on disclosures whose item
// has since been removed are dropped.
func (tv *TreeView[K]) ProcessDisclosures() int {
	if len(tv.pending) == 0 {
		return 0
	}
	pending := tv.pending
	tv.pending = nil

	toggled := 0
	for _, id := range pending {
		item, ok := tv.registry.Item(RoleDisclosure, id)
		if !ok {
			continue
		}
		tv.Toggle(item)
		toggled++
	}
	return toggled
}

// Toggle flips the child slot of item between shown and hidden. It panics
// with a *ConsistencyError if item is not tracked.
func (tv *TreeView[K]) Toggle(item K) {
	tv.SetExpanded(item, !tv.IsExpanded(item))
}

// SetExpanded shows or hides the child slot of item and updates its
// disclosure glyph. Only visibility and the glyph change; the registry and
// sibling order are untouched.
func (tv *TreeView[K]) SetExpanded(item K, expanded bool) {
	widgets, ok := tv.registry.Widgets(item)
	if !ok {
		panic(violation("toggle", item, RoleNone, "item not tracked"))
	}
	if expanded {
		widgets.ChildSlot.Style.Display = arbor.DisplayFlex
		widgets.Disclosure.Icon = IconExpanded
	} else {
		widgets.ChildSlot.Style.Display = arbor.DisplayNone
		widgets.Disclosure.Icon = IconCollapsed
	}
}

// IsExpanded reports whether the child slot of item is shown. Untracked
// items report false.
func (tv *TreeView[K]) IsExpanded(item K) bool {
	slot, ok := tv.registry.Widget(item, RoleChildSlot)
	if !ok {
		return false
	}
	return slot.Style.Display != arbor.DisplayNone
}
