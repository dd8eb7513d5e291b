// Package project models the items of a game project (folders, materials,
// images, meshes, scenes and plain files) as donburi entities keyed by UUID.
//
// All edits go through a [Project], which records them for a tree view:
//
//	p := project.New(logger)
//	tv := treeview.New[donburi.Entity](panel, p.Source(), treeview.Config{})
//	p.Send(project.Event{Op: project.OpCreate, Name: "Levels"})
//	// each tick
//	p.ProcessEvents()
//	tv.Tick(p.Drain())
package project

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phanxgames/arbor/ecs"
	"github.com/phanxgames/arbor/treeview"

	"github.com/yohamta/donburi"
)

var (
	// ErrUnknownItem is returned when a UUID names no item of the project.
	ErrUnknownItem = errors.New("project: unknown item")
	// ErrDuplicateItem is returned when a UUID is already in use.
	ErrDuplicateItem = errors.New("project: duplicate item")
	// ErrCycle is returned when a move would place an item under itself.
	ErrCycle = errors.New("project: item cannot be moved under itself")
)

var itemComponent = donburi.NewComponentType[Item]()

// Create describes a new item. A nil UUID is replaced with a random one and
// a nil Parent creates the item at the root.
type Create struct {
	UUID   uuid.UUID
	Name   string
	Kind   Kind
	Source string
	Parent uuid.UUID
}

// Project holds the items of one project.
type Project struct {
	world  donburi.World
	tree   *ecs.Hierarchy[Item, *Item]
	items  map[uuid.UUID]donburi.Entity
	logger *slog.Logger

	selected uuid.UUID
	hovered  uuid.UUID
}

// New creates an empty project. A nil logger discards output.
func New(logger *slog.Logger) *Project {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	world := donburi.NewWorld()
	p := &Project{
		world:  world,
		tree:   ecs.NewHierarchy[Item](world, itemComponent),
		items:  make(map[uuid.UUID]donburi.Entity),
		logger: logger,
	}
	EventType.Subscribe(world, p.handleEvent)
	return p
}

// World returns the donburi world holding the item entities.
func (p *Project) World() donburi.World {
	return p.world
}

// Source returns the hierarchy a tree view reads items from.
func (p *Project) Source() treeview.Source[donburi.Entity] {
	return p.tree
}

// Drain returns the edits made since the last call.
func (p *Project) Drain() treeview.Changes[donburi.Entity] {
	return p.tree.Drain()
}

// Len returns the number of items.
func (p *Project) Len() int {
	return len(p.items)
}

// Create adds an item and returns its UUID. An unknown parent is logged and
// the item is created at the root instead.
func (p *Project) Create(c Create) (uuid.UUID, error) {
	if c.UUID == uuid.Nil {
		c.UUID = uuid.New()
	}
	if _, ok := p.items[c.UUID]; ok {
		return uuid.Nil, fmt.Errorf("create %s: %w", c.UUID, ErrDuplicateItem)
	}
	parent := donburi.Null
	if c.Parent != uuid.Nil {
		if e, ok := p.items[c.Parent]; ok {
			parent = e
		} else {
			p.logger.Warn("parent not found, creating at root",
				"item", c.UUID, "name", c.Name, "parent", c.Parent)
		}
	}
	e := p.tree.Spawn(Item{UUID: c.UUID, Name: c.Name, Kind: c.Kind, Source: c.Source}, parent)
	p.items[c.UUID] = e
	return c.UUID, nil
}

func (p *Project) entity(op string, id uuid.UUID) (donburi.Entity, error) {
	e, ok := p.items[id]
	if !ok {
		return donburi.Null, fmt.Errorf("%s %s: %w", op, id, ErrUnknownItem)
	}
	return e, nil
}

// Rename changes the name of an item.
func (p *Project) Rename(id uuid.UUID, name string) error {
	e, err := p.entity("rename", id)
	if err != nil {
		return err
	}
	p.tree.Mutate(e, func(it *Item) { it.Name = name })
	return nil
}

// Move places an item under parent, or at the root when parent is uuid.Nil.
func (p *Project) Move(id, parent uuid.UUID) error {
	e, err := p.entity("move", id)
	if err != nil {
		return err
	}
	if parent == uuid.Nil {
		p.tree.RemoveParent(e)
		return nil
	}
	pe, err := p.entity("move", parent)
	if err != nil {
		return err
	}
	for a := pe; ; {
		if a == e {
			return fmt.Errorf("move %s under %s: %w", id, parent, ErrCycle)
		}
		next, ok := p.tree.Parent(a)
		if !ok {
			break
		}
		a = next
	}
	p.tree.SetParent(e, pe)
	return nil
}

// Delete removes an item together with everything below it.
func (p *Project) Delete(id uuid.UUID) error {
	e, err := p.entity("delete", id)
	if err != nil {
		return err
	}
	p.forget(e)
	p.tree.Despawn(e)
	return nil
}

func (p *Project) forget(e donburi.Entity) {
	for _, c := range p.tree.Children(e) {
		p.forget(c)
	}
	it, _ := p.tree.Get(e)
	delete(p.items, it.UUID)
	if p.selected == it.UUID {
		p.selected = uuid.Nil
	}
	if p.hovered == it.UUID {
		p.hovered = uuid.Nil
	}
}

// Select makes id the selected item. uuid.Nil clears the selection.
func (p *Project) Select(id uuid.UUID) error {
	return p.mark("select", &p.selected, id, func(it *Item, on bool) { it.selected = on })
}

// Hover makes id the hovered item. uuid.Nil clears the hover.
func (p *Project) Hover(id uuid.UUID) error {
	return p.mark("hover", &p.hovered, id, func(it *Item, on bool) { it.hovered = on })
}

func (p *Project) mark(op string, current *uuid.UUID, id uuid.UUID, set func(*Item, bool)) error {
	if *current == id {
		return nil
	}
	if id != uuid.Nil {
		if _, err := p.entity(op, id); err != nil {
			return err
		}
	}
	if e, ok := p.items[*current]; ok {
		p.tree.Mutate(e, func(it *Item) { set(it, false) })
	}
	*current = id
	if e, ok := p.items[id]; ok {
		p.tree.Mutate(e, func(it *Item) { set(it, true) })
	}
	return nil
}

// Selected returns the selected item, if any.
func (p *Project) Selected() (uuid.UUID, bool) {
	return p.selected, p.selected != uuid.Nil
}

// Hovered returns the hovered item, if any.
func (p *Project) Hovered() (uuid.UUID, bool) {
	return p.hovered, p.hovered != uuid.Nil
}

// Lookup returns the entity of an item.
func (p *Project) Lookup(id uuid.UUID) (donburi.Entity, bool) {
	e, ok := p.items[id]
	return e, ok
}

// UUID returns the UUID of the item stored on e.
func (p *Project) UUID(e donburi.Entity) (uuid.UUID, bool) {
	it, ok := p.tree.Get(e)
	if !ok {
		return uuid.Nil, false
	}
	return it.UUID, true
}

// Item returns a copy of an item.
func (p *Project) Item(id uuid.UUID) (Item, bool) {
	e, ok := p.items[id]
	if !ok {
		return Item{}, false
	}
	it, _ := p.tree.Get(e)
	return *it, true
}

// Parent returns the parent of an item, or false for roots.
func (p *Project) Parent(id uuid.UUID) (uuid.UUID, bool) {
	e, ok := p.items[id]
	if !ok {
		return uuid.Nil, false
	}
	pe, ok := p.tree.Parent(e)
	if !ok {
		return uuid.Nil, false
	}
	return p.UUID(pe)
}

// Children returns the children of an item in creation order.
func (p *Project) Children(id uuid.UUID) []uuid.UUID {
	e, ok := p.items[id]
	if !ok {
		return nil
	}
	return p.uuids(p.tree.Children(e))
}

// Roots returns the items without a parent in creation order.
func (p *Project) Roots() []uuid.UUID {
	return p.uuids(p.tree.Roots())
}

func (p *Project) uuids(entities []donburi.Entity) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(entities))
	for _, e := range entities {
		if id, ok := p.UUID(e); ok {
			out = append(out, id)
		}
	}
	return out
}

// Snapshot returns every item as a record, parents before children.
func (p *Project) Snapshot() []Record {
	records := make([]Record, 0, len(p.items))
	var walk func(e donburi.Entity, parent uuid.UUID)
	walk = func(e donburi.Entity, parent uuid.UUID) {
		it, _ := p.tree.Get(e)
		records = append(records, Record{
			UUID:   it.UUID,
			Parent: parent,
			Name:   it.Name,
			Kind:   it.Kind,
			Source: it.Source,
		})
		for _, c := range p.tree.Children(e) {
			walk(c, it.UUID)
		}
	}
	for _, e := range p.tree.Roots() {
		walk(e, uuid.Nil)
	}
	return records
}

// Restore replaces the items of the project with records. Records may come
// in any order; parents are created before their children. Nothing changes
// if the records are inconsistent.
func (p *Project) Restore(records []Record) error {
	byID := make(map[uuid.UUID]Record, len(records))
	for _, r := range records {
		if r.UUID == uuid.Nil {
			return fmt.Errorf("restore: record %q has no uuid", r.Name)
		}
		if _, ok := byID[r.UUID]; ok {
			return fmt.Errorf("restore %s: %w", r.UUID, ErrDuplicateItem)
		}
		byID[r.UUID] = r
	}

	order := make([]Record, 0, len(records))
	state := make(map[uuid.UUID]int, len(records)) // 1 visiting, 2 done
	var visit func(r Record) error
	visit = func(r Record) error {
		switch state[r.UUID] {
		case 1:
			return fmt.Errorf("restore %s: %w", r.UUID, ErrCycle)
		case 2:
			return nil
		}
		state[r.UUID] = 1
		if r.Parent != uuid.Nil {
			parent, ok := byID[r.Parent]
			if !ok {
				return fmt.Errorf("restore %s: parent %s: %w", r.UUID, r.Parent, ErrUnknownItem)
			}
			if err := visit(parent); err != nil {
				return err
			}
		}
		state[r.UUID] = 2
		order = append(order, r)
		return nil
	}
	for _, r := range records {
		if err := visit(r); err != nil {
			return err
		}
	}

	for _, id := range p.Roots() {
		if err := p.Delete(id); err != nil {
			return err
		}
	}
	for _, r := range order {
		if _, err := p.Create(Create(r)); err != nil {
			return err
		}
	}
	p.logger.Debug("project restored", "items", len(order))
	return nil
}
