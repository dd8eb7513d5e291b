package arbor

import "slices"

// PointerContext carries pointer event data.
type PointerContext struct {
	Widget    *Widget
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	Modifiers KeyModifiers
}

// ClickContext carries click event data.
type ClickContext struct {
	Widget    *Widget
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	Modifiers KeyModifiers
}

// InteractionContext describes a transition of a widget's Interaction state.
type InteractionContext struct {
	Widget   *Widget
	Previous Interaction
	Current  Interaction
}

// WidgetID identifies a widget for its whole lifetime. IDs are never reused.
type WidgetID uint32

// widgetIDCounter is not atomic; arbor is single-threaded.
var widgetIDCounter WidgetID

func nextWidgetID() WidgetID {
	widgetIDCounter++
	return widgetIDCounter
}

// Widget is the fundamental UI element. A single flat struct is used for all
// widget kinds to avoid interface dispatch on the layout and draw paths.
type Widget struct {
	// Identity
	ID   WidgetID
	Name string
	Kind WidgetKind

	// Hierarchy
	Parent   *Widget
	children []*Widget

	// Layout hints
	Style Style

	// Visible=false hides the widget and its subtree but keeps its layout
	// space. Use Style.Display to remove it from layout instead.
	Visible      bool
	Interactable bool

	// Presentation
	Background Color
	Icon       Icon     // WidgetImage
	IconSize   IconSize // WidgetImage
	Text       string   // WidgetText
	TextColor  Color    // WidgetText
	Font       *Font    // WidgetText

	// Per-widget callbacks (nil by default)
	OnInteraction  func(InteractionContext)
	OnPointerDown  func(PointerContext)
	OnPointerUp    func(PointerContext)
	OnClick        func(ClickContext)
	OnPointerEnter func(PointerContext)
	OnPointerLeave func(PointerContext)

	// Computed by the scene's layout pass.
	bounds   Rect
	clipRect Rect
	clipped  bool

	interaction Interaction
	disposed    bool
}

func widgetDefaults(w *Widget) {
	w.ID = nextWidgetID()
	w.Visible = true
	w.TextColor = ColorWhite
	w.IconSize = IconXSmall
}

// NewBox creates a container widget.
func NewBox(name string, style Style) *Widget {
	w := &Widget{Name: name, Kind: WidgetBox, Style: style}
	widgetDefaults(w)
	return w
}

// NewImage creates an image widget showing icon at the given size. The widget
// is sized to the icon unless the style says otherwise.
func NewImage(name string, icon Icon, size IconSize, style Style) *Widget {
	w := &Widget{Name: name, Kind: WidgetImage, Style: style}
	widgetDefaults(w)
	w.Icon = icon
	w.IconSize = size
	return w
}

// NewText creates a text widget.
func NewText(name string, content string, font *Font, style Style) *Widget {
	w := &Widget{Name: name, Kind: WidgetText, Style: style}
	widgetDefaults(w)
	w.Text = content
	w.Font = font
	return w
}

// --- Tree manipulation ---

// AddChild appends child to this widget's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this widget (cycle).
func (w *Widget) AddChild(child *Widget) {
	if child == nil {
		panic("arbor: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(w, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, w) {
		panic("arbor: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = w
	w.children = append(w.children, child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(w)
	}
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (w *Widget) AddChildAt(child *Widget, index int) {
	if child == nil {
		panic("arbor: cannot add nil child")
	}
	if isAncestor(child, w) {
		panic("arbor: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	if index < 0 || index > len(w.children) {
		panic("arbor: child index out of range")
	}
	child.Parent = w
	w.children = slices.Insert(w.children, index, child)
}

// RemoveChild detaches child from this widget.
// Panics if child.Parent != w.
func (w *Widget) RemoveChild(child *Widget) {
	if child.Parent != w {
		panic("arbor: child's parent is not this widget")
	}
	w.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this widget from its parent.
// No-op if this widget has no parent.
func (w *Widget) RemoveFromParent() {
	if w.Parent == nil {
		return
	}
	w.Parent.RemoveChild(w)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (w *Widget) Children() []*Widget {
	return w.children
}

// NumChildren returns the number of children.
func (w *Widget) NumChildren() int {
	return len(w.children)
}

// ChildAt returns the child at the given index.
func (w *Widget) ChildAt(index int) *Widget {
	return w.children[index]
}

// IndexOf returns the position of child among this widget's children, or -1.
func (w *Widget) IndexOf(child *Widget) int {
	return slices.Index(w.children, child)
}

// SetChildIndex moves child to a new index among its siblings.
func (w *Widget) SetChildIndex(child *Widget, index int) {
	if child.Parent != w {
		panic("arbor: child's parent is not this widget")
	}
	if index < 0 || index >= len(w.children) {
		panic("arbor: child index out of range")
	}
	old := w.IndexOf(child)
	if old == index {
		return
	}
	w.children = slices.Delete(w.children, old, old+1)
	w.children = slices.Insert(w.children, index, child)
}

// SortChildren reorders the children with a stable sort using cmp.
// Children that compare equal keep their relative order.
func (w *Widget) SortChildren(cmp func(a, b *Widget) int) {
	slices.SortStableFunc(w.children, cmp)
}

// Find returns the widget with the given ID in this subtree, or nil.
func (w *Widget) Find(id WidgetID) *Widget {
	if w.ID == id {
		return w
	}
	for _, child := range w.children {
		if found := child.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// --- State ---

// Bounds returns the rectangle assigned by the most recent layout pass.
func (w *Widget) Bounds() Rect {
	return w.bounds
}

// Interaction returns the current pointer state of the widget.
func (w *Widget) Interaction() Interaction {
	return w.interaction
}

// SetInteraction changes the pointer state and fires OnInteraction when the
// state actually changes. The scene calls it during input processing; hosts
// may call it to drive widgets programmatically.
func (w *Widget) SetInteraction(state Interaction) {
	if w.interaction == state {
		return
	}
	prev := w.interaction
	w.interaction = state
	if w.OnInteraction != nil {
		w.OnInteraction(InteractionContext{Widget: w, Previous: prev, Current: state})
	}
}

// Displayed reports whether the widget takes part in layout: it and all its
// ancestors have a Display other than DisplayNone.
func (w *Widget) Displayed() bool {
	for p := w; p != nil; p = p.Parent {
		if p.Style.Display == DisplayNone {
			return false
		}
	}
	return true
}

// --- Disposal ---

// Dispose removes this widget from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (w *Widget) Dispose() {
	if w.disposed {
		return
	}
	w.RemoveFromParent()
	w.dispose()
}

func (w *Widget) dispose() {
	w.disposed = true
	w.ID = 0
	for _, child := range w.children {
		child.Parent = nil
		child.dispose()
	}
	w.children = nil
	w.Parent = nil
	w.Icon = nil
	w.Font = nil
	w.OnInteraction = nil
	w.OnPointerDown = nil
	w.OnPointerUp = nil
	w.OnClick = nil
	w.OnPointerEnter = nil
	w.OnPointerLeave = nil
}

// IsDisposed returns true if this widget has been disposed.
func (w *Widget) IsDisposed() bool {
	return w.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of widget (or widget itself).
func isAncestor(candidate, widget *Widget) bool {
	for p := widget; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from w.children without clearing child.Parent.
func (w *Widget) removeChildByPtr(child *Widget) {
	if i := w.IndexOf(child); i >= 0 {
		w.children = slices.Delete(w.children, i, i+1)
	}
}
