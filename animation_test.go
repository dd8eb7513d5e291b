package arbor

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenColorAllComponents(t *testing.T) {
	w := NewBox("color", Style{})
	w.Background = Color{R: 1, G: 0, B: 0, A: 1}
	target := Color{R: 0, G: 1, B: 0.5, A: 0.5}

	g := TweenColor(w, target, 1.0, ease.Linear)

	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(w.Background.R-target.R) > 0.01 {
		t.Errorf("R = %f, want %f", w.Background.R, target.R)
	}
	if math.Abs(w.Background.G-target.G) > 0.01 {
		t.Errorf("G = %f, want %f", w.Background.G, target.G)
	}
	if math.Abs(w.Background.B-target.B) > 0.01 {
		t.Errorf("B = %f, want %f", w.Background.B, target.B)
	}
	if math.Abs(w.Background.A-target.A) > 0.01 {
		t.Errorf("A = %f, want %f", w.Background.A, target.A)
	}
}

func TestTweenAlphaInterpolates(t *testing.T) {
	w := NewBox("alpha", Style{})
	w.Background = Color{A: 1}

	g := TweenAlpha(w, 0, 1.0, ease.Linear)
	g.Update(0.5)

	if g.Done {
		t.Fatal("should not be done at half duration")
	}
	if math.Abs(w.Background.A-0.5) > 0.05 {
		t.Errorf("A = %f, want ~0.5", w.Background.A)
	}
}

func TestTweenTextColor(t *testing.T) {
	w := NewText("label", "x", nil, Style{})
	g := TweenTextColor(w, Color{R: 0.5, G: 0.5, B: 0.5, A: 1}, 0.2, ease.Linear)
	g.Update(0.2)

	if !g.Done {
		t.Fatal("expected Done")
	}
	if math.Abs(w.TextColor.R-0.5) > 0.01 {
		t.Errorf("R = %f, want 0.5", w.TextColor.R)
	}
}

func TestTweenStopsOnDisposedWidget(t *testing.T) {
	w := NewBox("gone", Style{})
	w.Background = Color{A: 1}
	g := TweenAlpha(w, 0, 1.0, ease.Linear)

	w.Dispose()
	g.Update(0.5)

	if !g.Done {
		t.Error("group should stop once the widget is disposed")
	}
	if w.Background.A != 1 {
		t.Errorf("A = %f, disposed widget should not be written", w.Background.A)
	}
}

func TestTweenStop(t *testing.T) {
	w := NewBox("stop", Style{})
	g := TweenAlpha(w, 1, 1.0, ease.Linear)
	g.Stop()
	g.Update(0.5)
	if w.Background.A != 0 {
		t.Errorf("A = %f, stopped group should not write", w.Background.A)
	}
}
