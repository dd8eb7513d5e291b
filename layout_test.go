package arbor

import (
	"fmt"
	"strings"
	"testing"
)

func layoutScene(w, h float64) *Scene {
	s := NewScene()
	s.SetViewport(w, h)
	return s
}

func TestLayoutColumnStacksChildren(t *testing.T) {
	s := layoutScene(200, 400)
	col := NewBox("col", Style{Padding: All(Px(2)), Gap: Px(4)})
	a := NewImage("a", NamedIcon("a"), IconXSmall, Style{})
	b := NewImage("b", NamedIcon("b"), IconSmall, Style{})
	col.AddChild(a)
	col.AddChild(b)
	s.Root().AddChild(col)
	s.Layout()

	if got := a.Bounds(); got != (Rect{X: 2, Y: 2, Width: 16, Height: 16}) {
		t.Errorf("a = %+v", got)
	}
	if got := b.Bounds(); got != (Rect{X: 2, Y: 22, Width: 24, Height: 24}) {
		t.Errorf("b = %+v", got)
	}
	if got := col.Bounds(); got.Width != 200 || got.Height != 2+16+4+24+2 {
		t.Errorf("col = %+v", got)
	}
}

func TestLayoutRowCentersCrossAxis(t *testing.T) {
	s := layoutScene(200, 400)
	row := NewBox("row", Style{Direction: Row, Align: AlignCenter, Gap: Px(4)})
	small := NewImage("small", NamedIcon("s"), IconXSmall, Style{})
	big := NewImage("big", NamedIcon("b"), IconMedium, Style{})
	row.AddChild(small)
	row.AddChild(big)
	s.Root().AddChild(row)
	s.Layout()

	if got := row.Bounds().Height; got != 32 {
		t.Errorf("row height = %v, want 32", got)
	}
	if got := small.Bounds(); got.X != 0 || got.Y != 8 {
		t.Errorf("small = %+v, want centered at y=8", got)
	}
	if got := big.Bounds(); got.X != 20 {
		t.Errorf("big.X = %v, want 20", got.X)
	}
}

func TestLayoutDisplayNoneTakesNoSpace(t *testing.T) {
	s := layoutScene(200, 400)
	col := NewBox("col", Style{})
	hidden := NewBox("hidden", Style{Display: DisplayNone})
	hidden.AddChild(NewImage("inner", NamedIcon("x"), IconMedium, Style{}))
	after := NewImage("after", NamedIcon("y"), IconXSmall, Style{})
	col.AddChild(hidden)
	col.AddChild(after)
	s.Root().AddChild(col)
	s.Layout()

	if after.Bounds().Y != 0 {
		t.Errorf("after.Y = %v, want 0", after.Bounds().Y)
	}
	if col.Bounds().Height != 16 {
		t.Errorf("col height = %v, want 16", col.Bounds().Height)
	}
}

func TestLayoutInvisibleKeepsSpace(t *testing.T) {
	s := layoutScene(200, 400)
	col := NewBox("col", Style{})
	invisible := NewImage("invisible", NamedIcon("x"), IconXSmall, Style{})
	invisible.Visible = false
	after := NewImage("after", NamedIcon("y"), IconXSmall, Style{})
	col.AddChild(invisible)
	col.AddChild(after)
	s.Root().AddChild(col)
	s.Layout()

	if after.Bounds().Y != 16 {
		t.Errorf("after.Y = %v, want 16", after.Bounds().Y)
	}
}

func TestLayoutPercentAndMax(t *testing.T) {
	s := layoutScene(300, 100)
	panel := NewBox("panel", Style{Width: Percent(50), MaxHeight: Percent(100), Clip: true})
	for i := 0; i < 10; i++ {
		panel.AddChild(NewImage(fmt.Sprint(i), NamedIcon("x"), IconXSmall, Style{}))
	}
	s.Root().AddChild(panel)
	s.Layout()

	if got := panel.Bounds(); got.Width != 150 || got.Height != 100 {
		t.Errorf("panel = %+v, want 150x100", got)
	}
	last := panel.ChildAt(9)
	if !last.clipped || last.clipRect != panel.Bounds() {
		t.Errorf("last child clip = %v %+v", last.clipped, last.clipRect)
	}
}

func TestLayoutPaddingMustBePixels(t *testing.T) {
	s := layoutScene(200, 200)
	s.Root().AddChild(NewBox("bad", Style{Padding: Edges{Left: Percent(10)}}))

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if !strings.Contains(fmt.Sprint(r), "padding") {
			t.Errorf("panic = %v", r)
		}
	}()
	s.Layout()
}

func TestValResolve(t *testing.T) {
	tests := []struct {
		name   string
		v      Val
		parent float64
		want   float64
		ok     bool
	}{
		{"auto", Auto, 100, 0, false},
		{"px", Px(12), 100, 12, true},
		{"percent", Percent(25), 200, 50, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.v.resolve(tt.parent)
			if got != tt.want || ok != tt.ok {
				t.Errorf("resolve = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRectIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 5, Y: 5, Width: 10, Height: 10}
	if got := a.Intersect(b); got != (Rect{X: 5, Y: 5, Width: 5, Height: 5}) {
		t.Errorf("Intersect = %+v", got)
	}
	c := Rect{X: 20, Y: 20, Width: 1, Height: 1}
	if !a.Intersect(c).Empty() {
		t.Error("disjoint rects should intersect to empty")
	}
}
