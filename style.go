package arbor

import "fmt"

// Unit is the unit a Val is expressed in.
type Unit uint8

const (
	UnitAuto    Unit = iota // sized by content or stretched by the parent
	UnitPx                  // logical pixels
	UnitPercent             // percentage of the parent's content box
)

func (u Unit) String() string {
	switch u {
	case UnitAuto:
		return "auto"
	case UnitPx:
		return "px"
	case UnitPercent:
		return "%"
	default:
		return fmt.Sprintf("unit(%d)", uint8(u))
	}
}

// Val is a length style hint.
type Val struct {
	Unit  Unit
	Value float64
}

// Auto is the zero Val.
var Auto = Val{}

// Px returns a Val of v logical pixels.
func Px(v float64) Val { return Val{Unit: UnitPx, Value: v} }

// Percent returns a Val of v percent of the parent's content box.
func Percent(v float64) Val { return Val{Unit: UnitPercent, Value: v} }

func (v Val) String() string {
	if v.Unit == UnitAuto {
		return "auto"
	}
	return fmt.Sprintf("%g%s", v.Value, v.Unit)
}

// resolve converts v to pixels against the parent extent. ok is false for Auto.
// Panics on an unknown unit.
func (v Val) resolve(parent float64) (px float64, ok bool) {
	switch v.Unit {
	case UnitAuto:
		return 0, false
	case UnitPx:
		return v.Value, true
	case UnitPercent:
		return parent * v.Value / 100, true
	default:
		panic(fmt.Sprintf("arbor: unsupported unit %s", v.Unit))
	}
}

// pixels returns v in pixels for properties that only accept pixel values
// (padding, gap). Auto counts as zero. Any other unit panics: there is no
// sensible visual fallback for a misconfigured indentation.
func (v Val) pixels(property string) float64 {
	switch v.Unit {
	case UnitAuto:
		return 0
	case UnitPx:
		return v.Value
	default:
		panic(fmt.Sprintf("arbor: %s must be expressed in pixels, got %s", property, v))
	}
}

// Edges holds one Val per side.
type Edges struct {
	Left, Top, Right, Bottom Val
}

// All returns Edges with v on every side.
func All(v Val) Edges { return Edges{Left: v, Top: v, Right: v, Bottom: v} }

// Direction is the main axis children are stacked along.
type Direction uint8

const (
	Column Direction = iota // top to bottom
	Row                     // left to right
)

// Align positions children on the cross axis.
type Align uint8

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// Display controls whether a widget takes part in layout at all.
type Display uint8

const (
	DisplayFlex Display = iota // laid out normally
	DisplayNone                // removed from layout; not drawn, not hit-tested
)

// Style holds the layout hints of a widget. The zero Style is a column that
// sizes to its content.
type Style struct {
	Direction Direction
	Align     Align
	Display   Display

	Width, Height       Val
	MaxWidth, MaxHeight Val

	Padding Edges
	Gap     Val

	// Clip restricts drawing and hit testing of descendants to the widget's bounds.
	Clip bool
}
