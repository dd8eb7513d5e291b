// Package editor models the entities of an open scene for the outline
// panel. Entities may be unnamed; they are then titled after the kind of
// object they were inferred to be, such as "[Point Light]".
package editor

import "github.com/phanxgames/arbor"

// InferredType is the kind of scene object an entity represents, derived
// from the components it carries.
type InferredType uint8

const (
	TypeNone InferredType = iota
	TypePointLight
	TypeSpotLight
	TypeDirectionalLight
	TypeCamera
	TypeMesh
)

var typeInfo = [...]struct {
	title string
	icon  arbor.NamedIcon
}{
	TypeNone:             {"Entity", "Entity"},
	TypePointLight:       {"Point Light", "PointLight"},
	TypeSpotLight:        {"Spot Light", "SpotLight"},
	TypeDirectionalLight: {"Directional Light", "DirectionalLight"},
	TypeCamera:           {"Camera", "Camera"},
	TypeMesh:             {"Mesh", "Mesh"},
}

func (t InferredType) String() string {
	if int(t) < len(typeInfo) {
		return typeInfo[t].title
	}
	return typeInfo[TypeNone].title
}

// Icon returns the named icon drawn for entities of this type.
func (t InferredType) Icon() arbor.NamedIcon {
	if int(t) < len(typeInfo) {
		return typeInfo[t].icon
	}
	return typeInfo[TypeNone].icon
}

// Components lists which scene components an entity carries.
type Components struct {
	PointLight       bool
	SpotLight        bool
	DirectionalLight bool
	Camera           bool
	Mesh             bool
}

// Infer returns the type of an entity carrying c. Lights win over cameras
// and cameras over meshes.
func Infer(c Components) InferredType {
	switch {
	case c.PointLight:
		return TypePointLight
	case c.SpotLight:
		return TypeSpotLight
	case c.DirectionalLight:
		return TypeDirectionalLight
	case c.Camera:
		return TypeCamera
	case c.Mesh:
		return TypeMesh
	}
	return TypeNone
}

// Item is the outline entry of one scene entity.
type Item struct {
	Name string // empty when the entity has no name
	Type InferredType

	selected bool
}

// Title returns the name, or the bracketed type when the entity is unnamed.
func (it *Item) Title() string {
	if it.Name == "" {
		return "[" + it.Type.String() + "]"
	}
	return it.Name
}

func (it *Item) Icon() arbor.Icon { return it.Type.Icon() }
func (it *Item) IsSelected() bool { return it.selected }
func (it *Item) IsHovered() bool  { return false }
