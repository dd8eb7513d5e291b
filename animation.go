package arbor

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Widget simultaneously.
// Create one via the convenience constructors (TweenColor, TweenAlpha,
// TweenTextColor) and call Update(dt) each frame. If the target widget is
// disposed, the group stops immediately.
//
// There is no global animation manager; callers drive Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Widget
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the target widget has been disposed, Done is set to true and no
// writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Stop ends the group where it is.
func (g *TweenGroup) Stop() {
	g.Done = true
}

func tweenColorFields(g *TweenGroup, c *Color, to Color, duration float32, fn ease.TweenFunc) {
	g.count = 4
	g.tweens[0] = gween.New(float32(c.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(c.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(c.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(c.A), float32(to.A), duration, fn)
	g.fields[0] = &c.R
	g.fields[1] = &c.G
	g.fields[2] = &c.B
	g.fields[3] = &c.A
}

// TweenColor creates a TweenGroup that animates all four components of
// widget.Background to the target color over the specified duration.
func TweenColor(widget *Widget, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: widget}
	tweenColorFields(g, &widget.Background, to, duration, fn)
	return g
}

// TweenTextColor creates a TweenGroup that animates widget.TextColor.
func TweenTextColor(widget *Widget, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: widget}
	tweenColorFields(g, &widget.TextColor, to, duration, fn)
	return g
}

// TweenAlpha creates a TweenGroup that animates widget.Background.A to the
// target value over the specified duration using the easing function.
func TweenAlpha(widget *Widget, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: widget}
	g.tweens[0] = gween.New(float32(widget.Background.A), float32(to), duration, fn)
	g.fields[0] = &widget.Background.A
	return g
}
