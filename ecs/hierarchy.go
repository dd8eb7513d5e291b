package ecs

import (
	"fmt"
	"slices"

	"github.com/phanxgames/arbor/treeview"

	"github.com/yohamta/donburi"
)

// Relations links an entity to its parent and children.
type Relations struct {
	Parent   donburi.Entity // donburi.Null for roots
	Children []donburi.Entity
}

// Hierarchy owns a forest of entities that carry the component T, and
// records structural and content edits between ticks. PT is the pointer type
// of T, which must implement treeview.Item.
//
// Edits are recorded in dirty sets and handed out by Drain:
//   - Spawn marks the entity changed, plus reparented and its parent
//     rechilded when it has one.
//   - SetParent marks reparented and both parents rechilded.
//   - RemoveParent marks the old parent rechilded and the entity orphaned,
//     unless the entity was spawned since the last Drain.
//   - Despawn of an entity spawned since the last Drain drops it from every
//     set. Any other entity is marked removed and loses its other marks.
//
// Drained categories are ordered by first mark, so parents spawned before
// their children come first.
type Hierarchy[T any, PT interface {
	*T
	treeview.Item
}] struct {
	world     donburi.World
	component *donburi.ComponentType[T]
	relations *donburi.ComponentType[Relations]

	members map[donburi.Entity]uint64 // entity -> spawn sequence

	seq        uint64
	fresh      map[donburi.Entity]struct{}
	changed    map[donburi.Entity]uint64
	reparented map[donburi.Entity]reparentMark
	orphaned   map[donburi.Entity]uint64
	rechilded  map[donburi.Entity]uint64
	removed    map[donburi.Entity]uint64
}

type reparentMark struct {
	parent donburi.Entity
	seq    uint64
}

// NewHierarchy creates an empty hierarchy storing its items in component.
func NewHierarchy[T any, PT interface {
	*T
	treeview.Item
}](world donburi.World, component *donburi.ComponentType[T]) *Hierarchy[T, PT] {
	return &Hierarchy[T, PT]{
		world:      world,
		component:  component,
		relations:  donburi.NewComponentType[Relations](),
		members:    make(map[donburi.Entity]uint64),
		fresh:      make(map[donburi.Entity]struct{}),
		changed:    make(map[donburi.Entity]uint64),
		reparented: make(map[donburi.Entity]reparentMark),
		orphaned:   make(map[donburi.Entity]uint64),
		rechilded:  make(map[donburi.Entity]uint64),
		removed:    make(map[donburi.Entity]uint64),
	}
}

// World returns the world entities live in.
func (h *Hierarchy[T, PT]) World() donburi.World {
	return h.world
}

func (h *Hierarchy[T, PT]) next() uint64 {
	h.seq++
	return h.seq
}

func mark(set map[donburi.Entity]uint64, e donburi.Entity, seq uint64) {
	if _, ok := set[e]; !ok {
		set[e] = seq
	}
}

func (h *Hierarchy[T, PT]) mustMember(op string, e donburi.Entity) {
	if _, ok := h.members[e]; !ok {
		panic(fmt.Sprintf("ecs: %s: entity %v is not part of the hierarchy", op, e))
	}
}

func (h *Hierarchy[T, PT]) rel(e donburi.Entity) *Relations {
	return h.relations.Get(h.world.Entry(e))
}

// Spawn creates an entity holding value. A parent of donburi.Null makes it
// a root. Panics if parent is not part of the hierarchy.
func (h *Hierarchy[T, PT]) Spawn(value T, parent donburi.Entity) donburi.Entity {
	if parent != donburi.Null {
		h.mustMember("spawn", parent)
	}
	e := h.world.Create(h.component, h.relations)
	entry := h.world.Entry(e)
	h.component.SetValue(entry, value)
	h.relations.SetValue(entry, Relations{Parent: donburi.Null})

	seq := h.next()
	h.members[e] = seq
	h.fresh[e] = struct{}{}
	mark(h.changed, e, seq)
	if parent != donburi.Null {
		h.link(e, parent)
	}
	return e
}

// Get returns the item stored on e.
func (h *Hierarchy[T, PT]) Get(e donburi.Entity) (PT, bool) {
	if _, ok := h.members[e]; !ok {
		return nil, false
	}
	return PT(h.component.Get(h.world.Entry(e))), true
}

// Mutate runs fn on the item stored on e and marks it changed.
func (h *Hierarchy[T, PT]) Mutate(e donburi.Entity, fn func(PT)) {
	h.mustMember("mutate", e)
	fn(PT(h.component.Get(h.world.Entry(e))))
	mark(h.changed, e, h.next())
}

// Touch marks e changed without modifying it.
func (h *Hierarchy[T, PT]) Touch(e donburi.Entity) {
	h.mustMember("touch", e)
	mark(h.changed, e, h.next())
}

// SetParent moves e under parent. Panics if the move would create a cycle.
func (h *Hierarchy[T, PT]) SetParent(e, parent donburi.Entity) {
	h.mustMember("set parent", e)
	h.mustMember("set parent", parent)
	for p := parent; p != donburi.Null; p = h.rel(p).Parent {
		if p == e {
			panic(fmt.Sprintf("ecs: set parent: %v under %v would create a cycle", e, parent))
		}
	}
	if h.rel(e).Parent == parent {
		return
	}
	h.unlink(e)
	h.link(e, parent)
	delete(h.orphaned, e)
}

// RemoveParent makes e a root.
func (h *Hierarchy[T, PT]) RemoveParent(e donburi.Entity) {
	h.mustMember("remove parent", e)
	if h.rel(e).Parent == donburi.Null {
		return
	}
	h.unlink(e)
	delete(h.reparented, e)
	if _, ok := h.fresh[e]; !ok {
		mark(h.orphaned, e, h.next())
	}
}

// Despawn removes e and all of its descendants from the world.
func (h *Hierarchy[T, PT]) Despawn(e donburi.Entity) {
	h.mustMember("despawn", e)
	for _, c := range slices.Clone(h.rel(e).Children) {
		h.Despawn(c)
	}
	h.unlink(e)

	if _, ok := h.fresh[e]; ok {
		delete(h.fresh, e)
	} else {
		mark(h.removed, e, h.next())
	}
	delete(h.changed, e)
	delete(h.reparented, e)
	delete(h.orphaned, e)
	delete(h.rechilded, e)

	delete(h.members, e)
	h.world.Remove(e)
}

func (h *Hierarchy[T, PT]) link(e, parent donburi.Entity) {
	h.rel(e).Parent = parent
	pr := h.rel(parent)
	pr.Children = append(pr.Children, e)

	seq := h.next()
	if m, ok := h.reparented[e]; ok {
		seq = m.seq
	}
	h.reparented[e] = reparentMark{parent: parent, seq: seq}
	mark(h.rechilded, parent, seq)
}

func (h *Hierarchy[T, PT]) unlink(e donburi.Entity) {
	r := h.rel(e)
	if r.Parent == donburi.Null {
		return
	}
	pr := h.rel(r.Parent)
	pr.Children = slices.DeleteFunc(pr.Children, func(c donburi.Entity) bool { return c == e })
	mark(h.rechilded, r.Parent, h.next())
	r.Parent = donburi.Null
}

// Parent returns the parent of e, or false for roots and unknown entities.
func (h *Hierarchy[T, PT]) Parent(e donburi.Entity) (donburi.Entity, bool) {
	if _, ok := h.members[e]; !ok {
		return donburi.Null, false
	}
	p := h.rel(e).Parent
	return p, p != donburi.Null
}

// Children returns the children of e in attachment order.
func (h *Hierarchy[T, PT]) Children(e donburi.Entity) []donburi.Entity {
	if _, ok := h.members[e]; !ok {
		return nil
	}
	return slices.Clone(h.rel(e).Children)
}

// Roots returns the parentless entities in spawn order.
func (h *Hierarchy[T, PT]) Roots() []donburi.Entity {
	var roots []donburi.Entity
	for e := range h.members {
		if h.rel(e).Parent == donburi.Null {
			roots = append(roots, e)
		}
	}
	slices.SortFunc(roots, func(a, b donburi.Entity) int {
		return compareSeq(h.members[a], h.members[b])
	})
	return roots
}

// Valid reports whether e is part of the hierarchy.
func (h *Hierarchy[T, PT]) Valid(e donburi.Entity) bool {
	_, ok := h.members[e]
	return ok && h.world.Valid(e)
}

// Len returns the number of entities in the hierarchy.
func (h *Hierarchy[T, PT]) Len() int {
	return len(h.members)
}

// Item implements treeview.Source.
func (h *Hierarchy[T, PT]) Item(e donburi.Entity) (treeview.Item, bool) {
	item, ok := h.Get(e)
	if !ok {
		return nil, false
	}
	return item, true
}

// Pending reports whether any edits are waiting to be drained.
func (h *Hierarchy[T, PT]) Pending() bool {
	return len(h.changed)+len(h.reparented)+len(h.orphaned)+len(h.rechilded)+len(h.removed) > 0
}

// Drain returns the edits recorded since the last call and clears them.
func (h *Hierarchy[T, PT]) Drain() treeview.Changes[donburi.Entity] {
	var ch treeview.Changes[donburi.Entity]
	ch.Changed = drainSet(h.changed)
	ch.Orphaned = drainSet(h.orphaned)
	ch.Rechilded = drainSet(h.rechilded)
	ch.Removed = drainSet(h.removed)

	if len(h.reparented) > 0 {
		type pending struct {
			rp  treeview.Reparent[donburi.Entity]
			seq uint64
		}
		list := make([]pending, 0, len(h.reparented))
		for e, m := range h.reparented {
			list = append(list, pending{rp: treeview.Reparent[donburi.Entity]{Item: e, Parent: m.parent}, seq: m.seq})
		}
		slices.SortFunc(list, func(a, b pending) int { return compareSeq(a.seq, b.seq) })
		for _, p := range list {
			ch.Reparented = append(ch.Reparented, p.rp)
		}
		clear(h.reparented)
	}
	clear(h.fresh)
	return ch
}

func drainSet(set map[donburi.Entity]uint64) []donburi.Entity {
	if len(set) == 0 {
		return nil
	}
	out := make([]donburi.Entity, 0, len(set))
	for e := range set {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b donburi.Entity) int { return compareSeq(set[a], set[b]) })
	clear(set)
	return out
}

func compareSeq(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
