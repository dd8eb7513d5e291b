package arbor

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// drawWidget draws w and its subtree in painter order and returns the number
// of draw calls issued. Hidden subtrees are skipped but keep their layout
// space; undisplayed subtrees have no layout space to begin with.
func (s *Scene) drawWidget(target *ebiten.Image, w *Widget) int {
	if !w.Visible || w.Style.Display == DisplayNone {
		return 0
	}

	dst := target
	if w.clipped {
		r := w.clipRect
		if r.Empty() {
			return 0
		}
		dst = target.SubImage(image.Rect(
			int(r.X), int(r.Y),
			int(r.X+r.Width+0.5), int(r.Y+r.Height+0.5),
		)).(*ebiten.Image)
	}

	drawn := 0
	b := w.bounds
	if w.Background.A > 0 && b.Width > 0 && b.Height > 0 {
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(b.Width, b.Height)
		op.GeoM.Translate(b.X, b.Y)
		op.ColorScale.ScaleWithColor(w.Background.toRGBA())
		dst.DrawImage(WhitePixel, &op)
		drawn++
	}

	switch w.Kind {
	case WidgetImage:
		if w.Icon != nil && b.Width > 0 && b.Height > 0 {
			img := w.Icon.RequestImage(s.assets, s.scale, w.IconSize)
			iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
			if iw > 0 && ih > 0 {
				var op ebiten.DrawImageOptions
				op.GeoM.Scale(b.Width/float64(iw), b.Height/float64(ih))
				op.GeoM.Translate(b.X, b.Y)
				op.Filter = ebiten.FilterLinear
				dst.DrawImage(img, &op)
				drawn++
			}
		}
	case WidgetText:
		if w.Font != nil && w.Text != "" {
			op := &text.DrawOptions{}
			op.GeoM.Translate(
				b.X+w.Style.Padding.Left.pixels("padding"),
				b.Y+w.Style.Padding.Top.pixels("padding"))
			op.ColorScale.ScaleWithColor(w.TextColor.toRGBA())
			op.LineSpacing = w.Font.LineHeight()
			text.Draw(dst, w.Text, w.Font.Face(), op)
			drawn++
		}
	}

	for _, child := range w.children {
		drawn += s.drawWidget(target, child)
	}
	return drawn
}
