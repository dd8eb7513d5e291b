package treeview

import (
	"github.com/phanxgames/arbor"
	"github.com/tanema/gween/ease"
)

// Reconcile applies one tick of changes in fixed order: changed, reparented,
// orphaned, rechilded, removed. Each category sees the registry state the
// earlier ones left behind.
func (tv *TreeView[K]) Reconcile(changes Changes[K]) Stats {
	var stats Stats
	tv.ensureContent()

	for _, id := range changes.Changed {
		if tv.refresh(id) {
			stats.Created++
		} else {
			stats.Refreshed++
		}
	}
	tv.detach(changes)
	for _, rp := range changes.Reparented {
		if tv.reparent(rp.Item, rp.Parent) {
			stats.Moved++
		}
	}
	for _, id := range changes.Orphaned {
		if tv.orphan(id) {
			stats.Orphaned++
		}
	}
	for _, id := range changes.Rechilded {
		tv.recount(id)
		stats.Rechilded++
	}
	tv.remove(changes.Removed)
	stats.Removed = len(changes.Removed)
	return stats
}

// refresh registers id if needed and brings its widgets up to date with the
// item. Returns true if id was newly registered.
func (tv *TreeView[K]) refresh(id K) bool {
	item := tv.mustItem("refresh", id)

	widgets, ok := tv.registry.Widgets(id)
	created := !ok
	if created {
		widgets = tv.build()
		tv.registry.Register(id, widgets)
		tv.content.AddChild(widgets.Node)
		tv.markUnsorted(tv.content)
	}

	title := item.Title()
	if widgets.Label.Text != title {
		widgets.Label.Text = title
		if !created && widgets.Node.Parent != nil {
			// the sort key changed, so the holding container needs a pass
			tv.markUnsorted(widgets.Node.Parent)
		}
	}

	icon := item.Icon()
	if icon == nil {
		icon = arbor.ImageIcon{}
	}
	widgets.Icon.Icon = icon

	tv.setBackground(id, widgets.Row, tv.cfg.Palette.background(item))
	widgets.Disclosure.Visible = tv.trackedChildren(id) > 0
	return created
}

// build creates the six widgets of one item with their fixed structural styles.
func (tv *TreeView[K]) build() Widgets {
	size := tv.cfg.IconSize
	px := size.Pixels()

	node := arbor.NewBox("treeview.node", arbor.Style{
		Direction: arbor.Column,
		Align:     arbor.AlignStart,
		Clip:      true,
	})
	row := arbor.NewBox("treeview.row", arbor.Style{
		Direction: arbor.Row,
		Align:     arbor.AlignCenter,
		Padding:   arbor.All(arbor.Px(2)),
		Gap:       arbor.Px(4),
	})
	row.Interactable = tv.cfg.InteractiveRows
	disclosure := arbor.NewImage("treeview.disclosure", IconExpanded, size, arbor.Style{})
	disclosure.Interactable = true
	disclosure.Visible = false
	icon := arbor.NewImage("treeview.icon", arbor.ImageIcon{}, size, arbor.Style{})
	label := arbor.NewText("treeview.label", "", tv.cfg.Font, arbor.Style{})
	label.TextColor = tv.cfg.TextColor
	slot := arbor.NewBox("treeview.children", arbor.Style{
		Direction: arbor.Column,
		Padding:   arbor.Edges{Left: arbor.Px(px)},
	})

	row.AddChild(disclosure)
	row.AddChild(icon)
	row.AddChild(label)
	node.AddChild(row)
	node.AddChild(slot)

	disclosureID := disclosure.ID
	disclosure.OnInteraction = func(ctx arbor.InteractionContext) {
		if ctx.Current == arbor.InteractionPressed {
			tv.pending = append(tv.pending, disclosureID)
		}
	}
	return Widgets{
		Node:       node,
		Row:        row,
		Disclosure: disclosure,
		Icon:       icon,
		Label:      label,
		ChildSlot:  slot,
	}
}

// setBackground moves the row toward target, fading when configured.
func (tv *TreeView[K]) setBackground(id K, row *arbor.Widget, target arbor.Color) {
	if f, ok := tv.fades[id]; ok {
		if f.to == target {
			return
		}
		f.group.Stop()
		delete(tv.fades, id)
	} else if row.Background == target {
		return
	}
	if tv.cfg.HighlightFade <= 0 {
		row.Background = target
		return
	}
	seconds := float32(tv.cfg.HighlightFade.Seconds())
	tv.fades[id] = &fade{
		group: arbor.TweenColor(row, target, seconds, ease.OutQuad),
		to:    target,
	}
}

// detach takes every node about to move out of its current container before
// any of them is attached again. Moves applied one at a time can pass through
// a cycle that the final hierarchy does not have, such as a child orphaned
// while its old parent moves under it in the same tick.
func (tv *TreeView[K]) detach(changes Changes[K]) {
	move := func(id K, target *arbor.Widget) {
		node, ok := tv.registry.Widget(id, RoleNode)
		if !ok || node.Parent == nil || node.Parent == target {
			return
		}
		tv.markUnsorted(node.Parent)
		node.RemoveFromParent()
	}
	for _, rp := range changes.Reparented {
		if slot, ok := tv.registry.Widget(rp.Parent, RoleChildSlot); ok {
			move(rp.Item, slot)
		}
	}
	for _, id := range changes.Orphaned {
		move(id, tv.content)
	}
}

// reparent moves the node of id into the child slot of parent. Returns true
// if the node moved.
func (tv *TreeView[K]) reparent(id, parent K) bool {
	node := tv.mustWidget("reparent", id, RoleNode)
	slot, ok := tv.registry.Widget(parent, RoleChildSlot)
	if !ok {
		panic(violation("reparent", id, RoleChildSlot, "parent %v not tracked", parent))
	}
	if node.Parent == slot {
		return false
	}
	if node.Parent != nil {
		tv.markUnsorted(node.Parent)
	}
	slot.AddChild(node)
	tv.markUnsorted(slot)
	return true
}

// orphan moves the node of id back to the content container. Untracked
// items are ignored; they were never shown. Returns true if a node moved.
func (tv *TreeView[K]) orphan(id K) bool {
	node, ok := tv.registry.Widget(id, RoleNode)
	if !ok {
		return false
	}
	if node.Parent == tv.content {
		return false
	}
	if node.Parent != nil {
		tv.markUnsorted(node.Parent)
	}
	tv.content.AddChild(node)
	tv.markUnsorted(tv.content)
	return true
}

// recount shows the disclosure of id iff it has tracked children.
func (tv *TreeView[K]) recount(id K) {
	disclosure := tv.mustWidget("rechild", id, RoleDisclosure)
	disclosure.Visible = tv.trackedChildren(id) > 0
}

// remove deregisters and destroys every item in ids. Nodes of tracked
// children that are not removed in the same batch must have been moved
// elsewhere first.
func (tv *TreeView[K]) remove(ids []K) {
	if len(ids) == 0 {
		return
	}
	removing := make(map[K]struct{}, len(ids))
	for _, id := range ids {
		removing[id] = struct{}{}
	}
	for _, id := range ids {
		slot := tv.mustWidget("remove", id, RoleChildSlot)
		for _, child := range slot.Children() {
			owner, ok := tv.registry.Item(RoleNode, child.ID)
			if !ok {
				continue
			}
			if _, gone := removing[owner]; !gone {
				panic(violation("remove", id, RoleChildSlot, "child %v still attached", owner))
			}
		}
	}

	for _, id := range ids {
		widgets := tv.registry.Deregister(id)
		if parent := widgets.Node.Parent; parent != nil {
			tv.markUnsorted(parent)
		}
		if f, ok := tv.fades[id]; ok {
			f.group.Stop()
			delete(tv.fades, id)
		}
		widgets.Node.Dispose()
	}
}
