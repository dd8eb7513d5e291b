package editor

import (
	"github.com/phanxgames/arbor/ecs"
	"github.com/phanxgames/arbor/treeview"

	"github.com/yohamta/donburi"
)

var itemComponent = donburi.NewComponentType[Item]()

// Outline holds the entities of one scene.
type Outline struct {
	tree     *ecs.Hierarchy[Item, *Item]
	selected donburi.Entity
}

// NewOutline creates an empty outline whose entities live in world.
func NewOutline(world donburi.World) *Outline {
	return &Outline{
		tree:     ecs.NewHierarchy[Item](world, itemComponent),
		selected: donburi.Null,
	}
}

// Source returns the hierarchy a tree view reads entities from.
func (o *Outline) Source() treeview.Source[donburi.Entity] {
	return o.tree
}

// Drain returns the edits made since the last call.
func (o *Outline) Drain() treeview.Changes[donburi.Entity] {
	return o.tree.Drain()
}

// Spawn adds an entity under parent, or at the root when parent is
// donburi.Null.
func (o *Outline) Spawn(name string, c Components, parent donburi.Entity) donburi.Entity {
	return o.tree.Spawn(Item{Name: name, Type: Infer(c)}, parent)
}

// Item returns a copy of the entry for e.
func (o *Outline) Item(e donburi.Entity) (Item, bool) {
	it, ok := o.tree.Get(e)
	if !ok {
		return Item{}, false
	}
	return *it, true
}

// Rename sets the name of e. An empty name falls back to the type.
func (o *Outline) Rename(e donburi.Entity, name string) {
	if it, ok := o.tree.Get(e); ok && it.Name == name {
		return
	}
	o.tree.Mutate(e, func(it *Item) { it.Name = name })
}

// Retype re-infers the type of e from its components. Nothing is recorded
// when the type stays the same.
func (o *Outline) Retype(e donburi.Entity, c Components) {
	t := Infer(c)
	if it, ok := o.tree.Get(e); ok && it.Type == t {
		return
	}
	o.tree.Mutate(e, func(it *Item) { it.Type = t })
}

// SetParent moves e under parent, or to the root when parent is
// donburi.Null.
func (o *Outline) SetParent(e, parent donburi.Entity) {
	if parent == donburi.Null {
		o.tree.RemoveParent(e)
		return
	}
	o.tree.SetParent(e, parent)
}

// Despawn removes e and its descendants.
func (o *Outline) Despawn(e donburi.Entity) {
	o.tree.Despawn(e)
	if o.selected != donburi.Null && !o.tree.Valid(o.selected) {
		o.selected = donburi.Null
	}
}

// Select marks e as the selected entity. donburi.Null clears the selection.
func (o *Outline) Select(e donburi.Entity) {
	if o.selected == e {
		return
	}
	if o.selected != donburi.Null && o.tree.Valid(o.selected) {
		o.tree.Mutate(o.selected, func(it *Item) { it.selected = false })
	}
	o.selected = donburi.Null
	if e != donburi.Null {
		o.tree.Mutate(e, func(it *Item) { it.selected = true })
		o.selected = e
	}
}

// Selected returns the selected entity.
func (o *Outline) Selected() (donburi.Entity, bool) {
	return o.selected, o.selected != donburi.Null
}

// Len returns the number of entities.
func (o *Outline) Len() int {
	return o.tree.Len()
}

// SampleScene fills o with a small lit scene.
func SampleScene(o *Outline) {
	o.Spawn("Main Camera", Components{Camera: true}, donburi.Null)
	sun := o.Spawn("", Components{DirectionalLight: true}, donburi.Null)
	o.Spawn("", Components{PointLight: true}, sun)
	level := o.Spawn("Level", Components{}, donburi.Null)
	o.Spawn("Ground", Components{Mesh: true}, level)
	o.Spawn("", Components{Mesh: true}, level)
	o.Spawn("Torch", Components{PointLight: true, Mesh: true}, level)
	o.Spawn("", Components{SpotLight: true}, level)
}
