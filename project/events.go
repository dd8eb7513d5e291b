package project

import (
	"github.com/google/uuid"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// Op selects what an Event does.
type Op uint8

const (
	OpCreate Op = iota
	OpRename
	OpMove
	OpDelete
)

// Event is a queued project edit. Fields not used by Op are ignored.
type Event struct {
	Op     Op
	UUID   uuid.UUID
	Name   string
	Kind   Kind
	Source string
	Parent uuid.UUID
}

// EventType is the donburi event type project edits are queued on.
var EventType = events.NewEventType[Event]()

// Send queues an edit. It is applied by the next ProcessEvents.
func (p *Project) Send(e Event) {
	EventType.Publish(p.world, e)
}

// ProcessEvents applies every queued edit in the order it was sent. Edits
// that fail are logged and skipped.
func (p *Project) ProcessEvents() {
	EventType.ProcessEvents(p.world)
}

func (p *Project) handleEvent(_ donburi.World, e Event) {
	var err error
	switch e.Op {
	case OpCreate:
		_, err = p.Create(Create{UUID: e.UUID, Name: e.Name, Kind: e.Kind, Source: e.Source, Parent: e.Parent})
	case OpRename:
		err = p.Rename(e.UUID, e.Name)
	case OpMove:
		err = p.Move(e.UUID, e.Parent)
	case OpDelete:
		err = p.Delete(e.UUID)
	}
	if err != nil {
		p.logger.Warn("project event failed", "op", e.Op, "item", e.UUID, "error", err)
	}
}

// SampleProject queues the creation of a small game layout on p: a few
// loose assets and a Levels folder with nested level folders. The items
// appear after the next ProcessEvents.
func SampleProject(p *Project) {
	levels := uuid.New()
	level01 := uuid.New()
	for _, e := range []Event{
		{Name: "Player Material", Kind: KindMaterial},
		{UUID: levels, Name: "Levels", Kind: KindFolder},
		{Name: "Hub World", Kind: KindScene, Parent: levels},
		{Name: "Level 02", Kind: KindFolder, Parent: levels},
		{UUID: level01, Name: "Level 01", Kind: KindFolder, Parent: levels},
		{Name: "Grass Material", Kind: KindMaterial, Parent: level01},
		{Name: "Stone Material", Kind: KindMaterial, Parent: level01},
		{Name: "Map", Kind: KindScene, Parent: level01},
		{Name: "Player Model", Kind: KindMesh, Source: "SomeModel.gltf"},
		{Name: "Player Texture", Kind: KindImage, Source: "SomeImage.png"},
	} {
		e.Op = OpCreate
		p.Send(e)
	}
}

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpRename:
		return "rename"
	case OpMove:
		return "move"
	case OpDelete:
		return "delete"
	}
	return "unknown"
}
