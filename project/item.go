package project

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/phanxgames/arbor"
)

// Kind classifies a project item.
type Kind uint8

const (
	KindFolder Kind = iota
	KindMaterial
	KindImage
	KindMesh
	KindScene
	KindFile
)

var kindNames = [...]string{
	KindFolder:   "Folder",
	KindMaterial: "Material",
	KindImage:    "Image",
	KindMesh:     "Mesh",
	KindScene:    "Scene",
	KindFile:     "File",
}

// String returns the display name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Icon returns the named icon drawn for items of this kind.
func (k Kind) Icon() arbor.NamedIcon {
	if int(k) < len(kindNames) {
		return arbor.NamedIcon(kindNames[k])
	}
	return arbor.NamedIcon(kindNames[KindFile])
}

// ParseKind parses a kind name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("project: unknown kind %q", s)
}

// Item is one entry of a project: a folder or an asset.
type Item struct {
	UUID   uuid.UUID
	Name   string
	Kind   Kind
	Source string // asset path, empty for items created in the editor

	selected bool
	hovered  bool
}

// Title returns the item name, or a bracketed kind placeholder when the
// name is empty.
func (it *Item) Title() string {
	if it.Name == "" {
		return "[" + it.Kind.String() + "]"
	}
	return it.Name
}

func (it *Item) Icon() arbor.Icon { return it.Kind.Icon() }
func (it *Item) IsSelected() bool { return it.selected }
func (it *Item) IsHovered() bool  { return it.hovered }

// Record is the persisted form of an item. Parent is uuid.Nil for roots.
type Record struct {
	UUID   uuid.UUID
	Name   string
	Kind   Kind
	Source string
	Parent uuid.UUID
}
