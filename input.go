package arbor

import "github.com/hajimehoshi/ebiten/v2"

// --- Pointer state ---

type pointerState struct {
	down      bool
	lastX     float64
	lastY     float64
	moved     bool    // lastX/lastY hold a real position
	hitWidget *Widget // widget under the pointer at press time
	hover     *Widget // last widget the pointer was hovering over
	button    MouseButton
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type clickHandler struct {
	id uint32
	fn func(ClickContext)
}

type handlerRegistry struct {
	pointerDown  []pointerHandler
	pointerUp    []pointerHandler
	pointerMove  []pointerHandler
	pointerEnter []pointerHandler
	pointerLeave []pointerHandler
	click        []clickHandler
	nextID       uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerDown:
		h.reg.pointerDown = removeHandler(h.reg.pointerDown, h.id, func(p pointerHandler) uint32 { return p.id })
	case EventPointerUp:
		h.reg.pointerUp = removeHandler(h.reg.pointerUp, h.id, func(p pointerHandler) uint32 { return p.id })
	case EventPointerMove:
		h.reg.pointerMove = removeHandler(h.reg.pointerMove, h.id, func(p pointerHandler) uint32 { return p.id })
	case EventPointerEnter:
		h.reg.pointerEnter = removeHandler(h.reg.pointerEnter, h.id, func(p pointerHandler) uint32 { return p.id })
	case EventPointerLeave:
		h.reg.pointerLeave = removeHandler(h.reg.pointerLeave, h.id, func(p pointerHandler) uint32 { return p.id })
	case EventClick:
		h.reg.click = removeHandler(h.reg.click, h.id, func(c clickHandler) uint32 { return c.id })
	}
}

func removeHandler[H any](s []H, id uint32, key func(H) uint32) []H {
	for i := range s {
		if key(s[i]) == id {
			copy(s[i:], s[i+1:])
			var zero H
			s[len(s)-1] = zero
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Scene-level event registration ---

func (s *Scene) addPointerHandler(list *[]pointerHandler, event EventType, fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	*list = append(*list, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: event}
}

// OnPointerDown registers a scene-level callback for pointer down events.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	return s.addPointerHandler(&s.handlers.pointerDown, EventPointerDown, fn)
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	return s.addPointerHandler(&s.handlers.pointerUp, EventPointerUp, fn)
}

// OnPointerMove registers a scene-level callback for pointer move events.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return s.addPointerHandler(&s.handlers.pointerMove, EventPointerMove, fn)
}

// OnPointerEnter registers a scene-level callback fired when the pointer
// moves over a new interactable widget.
func (s *Scene) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	return s.addPointerHandler(&s.handlers.pointerEnter, EventPointerEnter, fn)
}

// OnPointerLeave registers a scene-level callback fired when the pointer
// leaves an interactable widget.
func (s *Scene) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	return s.addPointerHandler(&s.handlers.pointerLeave, EventPointerLeave, fn)
}

// OnClick registers a scene-level callback for click events.
func (s *Scene) OnClick(fn func(ClickContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.click = append(s.handlers.click, clickHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventClick}
}

// --- Hit testing ---

// collectInteractable walks the tree in painter order, appending interactable
// widgets to buf. Hidden and undisplayed subtrees are skipped.
func collectInteractable(w *Widget, buf []*Widget) []*Widget {
	if !w.Visible || w.Style.Display == DisplayNone {
		return buf
	}
	if w.Interactable {
		buf = append(buf, w)
	}
	for _, child := range w.children {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// widgetContains reports whether (x, y) hits w, honoring clipping.
func widgetContains(w *Widget, x, y float64) bool {
	if !w.bounds.Contains(x, y) {
		return false
	}
	return !w.clipped || w.clipRect.Contains(x, y)
}

// WidgetAt returns the topmost interactable widget at (x, y), or nil.
// Uses the bounds from the most recent layout.
func (s *Scene) WidgetAt(x, y float64) *Widget {
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		if w := s.hitBuf[i]; widgetContains(w, x, y) {
			return w
		}
	}
	return nil
}

// --- Input processing ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// processInput is called from Scene.Update() after layout. Injected events
// take precedence over the real mouse for the frame they are consumed in.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	s.processMouse(readModifiers())
}

// processMouse handles the real mouse pointer.
func (s *Scene) processMouse(mods KeyModifiers) {
	mx, my := ebiten.CursorPosition()

	var pressed bool
	var button MouseButton
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		pressed, button = true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		pressed, button = true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		pressed, button = true, MouseButtonMiddle
	}

	s.processPointer(float64(mx), float64(my), pressed, button, mods)
}

// processPointer runs the pointer state machine and keeps widget
// Interaction states in step with it.
func (s *Scene) processPointer(x, y float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &s.pointer
	target := s.WidgetAt(x, y)

	if ps.hover != nil && ps.hover.disposed {
		ps.hover = nil
	}
	if ps.hitWidget != nil && ps.hitWidget.disposed {
		ps.hitWidget = nil
	}

	if target != ps.hover {
		if ps.hover != nil {
			if ps.hover != ps.hitWidget {
				ps.hover.SetInteraction(InteractionNone)
			}
			s.firePointerLeave(ps.hover, x, y, button, mods)
		}
		if target != nil {
			if !ps.down {
				target.SetInteraction(InteractionHovered)
			}
			s.firePointerEnter(target, x, y, button, mods)
		}
		ps.hover = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.hitWidget = target
		if target != nil {
			target.SetInteraction(InteractionPressed)
		}
		s.firePointerDown(target, x, y, ps.button, mods)

	case !pressed && ps.down:
		if ps.hitWidget != nil {
			if ps.hitWidget == target {
				ps.hitWidget.SetInteraction(InteractionHovered)
				s.fireClick(target, x, y, ps.button, mods)
			} else {
				ps.hitWidget.SetInteraction(InteractionNone)
			}
		}
		if target != nil && target != ps.hitWidget {
			target.SetInteraction(InteractionHovered)
		}
		s.firePointerUp(target, x, y, ps.button, mods)
		ps.down = false
		ps.hitWidget = nil

	case !pressed && !ps.down:
		if !ps.moved || x != ps.lastX || y != ps.lastY {
			s.firePointerMove(target, x, y, button, mods)
		}
	}

	ps.lastX, ps.lastY = x, y
	ps.moved = true
}

// --- Event dispatch ---

func pointerContext(w *Widget, x, y float64, button MouseButton, mods KeyModifiers) PointerContext {
	ctx := PointerContext{Widget: w, GlobalX: x, GlobalY: y, Button: button, Modifiers: mods}
	if w != nil {
		ctx.LocalX = x - w.bounds.X
		ctx.LocalY = y - w.bounds.Y
	}
	return ctx
}

func (s *Scene) dispatchPointer(event EventType, handlers []pointerHandler, perWidget func(*Widget) func(PointerContext), w *Widget, x, y float64, button MouseButton, mods KeyModifiers) {
	ctx := pointerContext(w, x, y, button, mods)
	// Scene-level handlers first.
	for _, h := range handlers {
		h.fn(ctx)
	}
	// Per-widget callback.
	if w != nil {
		if fn := perWidget(w); fn != nil {
			fn(ctx)
		}
	}
	// ECS bridge.
	s.emitInteractionEvent(event, ctx)
}

func (s *Scene) firePointerDown(w *Widget, x, y float64, button MouseButton, mods KeyModifiers) {
	s.dispatchPointer(EventPointerDown, s.handlers.pointerDown,
		func(w *Widget) func(PointerContext) { return w.OnPointerDown }, w, x, y, button, mods)
}

func (s *Scene) firePointerUp(w *Widget, x, y float64, button MouseButton, mods KeyModifiers) {
	s.dispatchPointer(EventPointerUp, s.handlers.pointerUp,
		func(w *Widget) func(PointerContext) { return w.OnPointerUp }, w, x, y, button, mods)
}

func (s *Scene) firePointerMove(w *Widget, x, y float64, button MouseButton, mods KeyModifiers) {
	s.dispatchPointer(EventPointerMove, s.handlers.pointerMove,
		func(*Widget) func(PointerContext) { return nil }, w, x, y, button, mods)
}

func (s *Scene) firePointerEnter(w *Widget, x, y float64, button MouseButton, mods KeyModifiers) {
	s.dispatchPointer(EventPointerEnter, s.handlers.pointerEnter,
		func(w *Widget) func(PointerContext) { return w.OnPointerEnter }, w, x, y, button, mods)
}

func (s *Scene) firePointerLeave(w *Widget, x, y float64, button MouseButton, mods KeyModifiers) {
	s.dispatchPointer(EventPointerLeave, s.handlers.pointerLeave,
		func(w *Widget) func(PointerContext) { return w.OnPointerLeave }, w, x, y, button, mods)
}

func (s *Scene) fireClick(w *Widget, x, y float64, button MouseButton, mods KeyModifiers) {
	pc := pointerContext(w, x, y, button, mods)
	ctx := ClickContext{
		Widget: w, GlobalX: x, GlobalY: y, LocalX: pc.LocalX, LocalY: pc.LocalY,
		Button: button, Modifiers: mods,
	}
	for _, h := range s.handlers.click {
		h.fn(ctx)
	}
	if w != nil && w.OnClick != nil {
		w.OnClick(ctx)
	}
	s.emitInteractionEvent(EventClick, pc)
}

// emitInteractionEvent forwards an event to the ECS bridge. Events without a
// target widget are not forwarded.
func (s *Scene) emitInteractionEvent(event EventType, ctx PointerContext) {
	if s.store == nil || ctx.Widget == nil {
		return
	}
	s.store.EmitEvent(InteractionEvent{
		Type:      event,
		WidgetID:  ctx.Widget.ID,
		GlobalX:   ctx.GlobalX,
		GlobalY:   ctx.GlobalY,
		LocalX:    ctx.LocalX,
		LocalY:    ctx.LocalY,
		Button:    ctx.Button,
		Modifiers: ctx.Modifiers,
	})
}
