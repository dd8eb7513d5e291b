package arbor

// layoutWidget assigns bounds to w and its displayed descendants. (x, y) is
// the top-left corner offered by the parent and availW/availH the space it
// offers. Returns the size w occupies.
//
// The algorithm is a plain stack: auto-sized boxes fill the offered width and
// wrap their content vertically; images take their icon size; text takes its
// measured size. Nothing here is read back by the tree view engine.
func layoutWidget(w *Widget, x, y, availW, availH float64) (float64, float64) {
	if w.Style.Display == DisplayNone {
		w.bounds = Rect{X: x, Y: y}
		return 0, 0
	}

	st := &w.Style
	padL := st.Padding.Left.pixels("padding")
	padT := st.Padding.Top.pixels("padding")
	padR := st.Padding.Right.pixels("padding")
	padB := st.Padding.Bottom.pixels("padding")
	gap := st.Gap.pixels("gap")

	width, fixedW := st.Width.resolve(availW)
	height, fixedH := st.Height.resolve(availH)

	switch w.Kind {
	case WidgetImage:
		if !fixedW {
			width = w.IconSize.Pixels()
		}
		if !fixedH {
			height = w.IconSize.Pixels()
		}
		width, height = clampMax(st, width, height, availW, availH)
		w.bounds = Rect{X: x, Y: y, Width: width, Height: height}
		return width, height

	case WidgetText:
		tw, th := w.Font.Measure(w.Text)
		if !fixedW {
			width = tw + padL + padR
		}
		if !fixedH {
			height = th + padT + padB
		}
		width, height = clampMax(st, width, height, availW, availH)
		w.bounds = Rect{X: x, Y: y, Width: width, Height: height}
		return width, height
	}

	if !fixedW {
		width = availW
	}
	innerW := max(width-padL-padR, 0)
	innerH := availH - padT - padB
	if fixedH {
		innerH = max(height-padT-padB, 0)
	}

	var contentW, contentH float64
	cx, cy := x+padL, y+padT
	first := true
	for _, child := range w.children {
		if child.Style.Display == DisplayNone {
			child.bounds = Rect{X: cx, Y: cy}
			continue
		}
		if !first {
			if st.Direction == Row {
				cx += gap
				contentW += gap
			} else {
				cy += gap
				contentH += gap
			}
		}
		first = false

		if st.Direction == Row {
			cw, ch := layoutWidget(child, cx, cy, max(innerW-contentW, 0), innerH)
			cx += cw
			contentW += cw
			contentH = max(contentH, ch)
		} else {
			cw, ch := layoutWidget(child, cx, cy, innerW, max(innerH-contentH, 0))
			cy += ch
			contentH += ch
			contentW = max(contentW, cw)
		}
	}

	if !fixedH {
		height = contentH + padT + padB
	}
	width, height = clampMax(st, width, height, availW, availH)

	if st.Align != AlignStart {
		crossInner := height - padT - padB
		if st.Direction == Column {
			crossInner = width - padL - padR
		}
		alignChildren(w, crossInner)
	}

	w.bounds = Rect{X: x, Y: y, Width: width, Height: height}
	return width, height
}

// alignChildren shifts displayed children along the cross axis.
func alignChildren(w *Widget, crossInner float64) {
	for _, child := range w.children {
		if child.Style.Display == DisplayNone {
			continue
		}
		size := child.bounds.Height
		if w.Style.Direction == Column {
			size = child.bounds.Width
		}
		free := crossInner - size
		if free <= 0 {
			continue
		}
		if w.Style.Align == AlignCenter {
			free /= 2
		}
		if w.Style.Direction == Column {
			offsetSubtree(child, free, 0)
		} else {
			offsetSubtree(child, 0, free)
		}
	}
}

func offsetSubtree(w *Widget, dx, dy float64) {
	w.bounds.X += dx
	w.bounds.Y += dy
	for _, child := range w.children {
		offsetSubtree(child, dx, dy)
	}
}

func clampMax(st *Style, width, height, availW, availH float64) (float64, float64) {
	if mw, ok := st.MaxWidth.resolve(availW); ok && width > mw {
		width = mw
	}
	if mh, ok := st.MaxHeight.resolve(availH); ok && height > mh {
		height = mh
	}
	return width, height
}

// assignClip propagates clip rectangles down the tree after layout.
func assignClip(w *Widget, clip Rect, clipped bool) {
	w.clipRect = clip
	w.clipped = clipped
	if w.Style.Clip {
		if clipped {
			clip = clip.Intersect(w.bounds)
		} else {
			clip = w.bounds
		}
		clipped = true
	}
	for _, child := range w.children {
		assignClip(child, clip, clipped)
	}
}
