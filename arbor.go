package arbor

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default text color.
var ColorWhite = Color{1, 1, 1, 1}

// ColorTransparent is the default widget background.
var ColorTransparent = Color{}

// toRGBA converts the color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	clamp := func(v float64) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return color.RGBA{
		R: clamp(c.R * c.A),
		G: clamp(c.G * c.A),
		B: clamp(c.B * c.A),
		A: clamp(c.A),
	}
}

// WhitePixel is a 1x1 white image used for solid color backgrounds.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(color.White)
}

// Vec2 is a 2D vector used for positions and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersect returns the overlapping area of r and other. The result has zero
// width or height when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.X+r.Width, other.X+other.Width)
	y1 := min(r.Y+r.Height, other.Y+other.Height)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// WidgetKind distinguishes rendering behavior for a Widget.
type WidgetKind uint8

const (
	WidgetBox   WidgetKind = iota // container; paints its background only
	WidgetImage                   // paints an icon scaled to its bounds
	WidgetText                    // paints a single line of text
)

func (k WidgetKind) String() string {
	switch k {
	case WidgetBox:
		return "box"
	case WidgetImage:
		return "image"
	case WidgetText:
		return "text"
	default:
		return "unknown"
	}
}

// Interaction is the pointer state of an interactable widget.
type Interaction uint8

const (
	InteractionNone    Interaction = iota // pointer elsewhere
	InteractionHovered                    // pointer over the widget, no button held
	InteractionPressed                    // button pressed while over the widget
)

func (i Interaction) String() string {
	switch i {
	case InteractionNone:
		return "none"
	case InteractionHovered:
		return "hovered"
	case InteractionPressed:
		return "pressed"
	default:
		return "unknown"
	}
}

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventPointerDown  EventType = iota // fires when a pointer button is pressed
	EventPointerUp                     // fires when a pointer button is released
	EventPointerMove                   // fires when the pointer moves (hover, no button)
	EventClick                         // fires on press then release over the same widget
	EventPointerEnter                  // fires when the pointer enters a widget's bounds
	EventPointerLeave                  // fires when the pointer leaves a widget's bounds
)

func (e EventType) String() string {
	switch e {
	case EventPointerDown:
		return "pointer_down"
	case EventPointerUp:
		return "pointer_up"
	case EventPointerMove:
		return "pointer_move"
	case EventClick:
		return "click"
	case EventPointerEnter:
		return "pointer_enter"
	case EventPointerLeave:
		return "pointer_leave"
	default:
		return "unknown"
	}
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)
