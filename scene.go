package arbor

import (
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type      EventType
	WidgetID  WidgetID
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	Modifiers KeyModifiers
}

// Scene is the top-level object that owns the widget tree, input state and
// the asset cache.
type Scene struct {
	root   *Widget
	store  EntityStore
	debug  bool
	logger *slog.Logger
	assets *Assets

	// ClearColor fills the screen before the tree is drawn. Transparent
	// leaves the screen untouched.
	ClearColor Color

	width, height float64
	scale         float64

	// Input state
	handlers    handlerRegistry
	pointer     pointerState
	hitBuf      []*Widget
	injectQueue []syntheticPointerEvent
}

// NewScene creates a new scene with a pre-created root box filling the viewport.
func NewScene() *Scene {
	root := NewBox("root", Style{Width: Percent(100), Height: Percent(100)})
	return &Scene{
		root:   root,
		logger: discardLogger(),
		scale:  1,
	}
}

// Root returns the scene's root box.
func (s *Scene) Root() *Widget {
	return s.root
}

// SetViewport sets the logical size the root is laid out in.
func (s *Scene) SetViewport(width, height float64) {
	s.width, s.height = width, height
}

// Viewport returns the logical size set with SetViewport.
func (s *Scene) Viewport() (width, height float64) {
	return s.width, s.height
}

// SetScale sets the device scale factor used to pick icon resolutions.
func (s *Scene) SetScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	s.scale = scale
}

// Scale returns the device scale factor.
func (s *Scene) Scale() float64 {
	return s.scale
}

// SetAssets sets the asset cache used to resolve named icons.
func (s *Scene) SetAssets(assets *Assets) {
	s.assets = assets
}

// Assets returns the asset cache, or nil if none is set.
func (s *Scene) Assets() *Assets {
	return s.assets
}

// SetLogger sets the logger used for debug output. A nil logger discards it.
func (s *Scene) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = discardLogger()
	}
	s.logger = logger
	if s.debug {
		debugLogger = logger
	}
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-widget
// access panics, tree depth and child count warnings are logged, and
// per-frame timing stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	if enabled {
		debugLogger = s.logger
	} else {
		debugLogger = discardLogger()
	}
}

// Layout assigns bounds to every displayed widget. Update calls it; hosts
// call it directly when they need fresh bounds outside the frame loop.
func (s *Scene) Layout() {
	layoutWidget(s.root, 0, 0, s.width, s.height)
	assignClip(s.root, Rect{}, false)
}

// Update lays the tree out and processes input.
func (s *Scene) Update() {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.Layout()

	if s.debug {
		stats.layoutTime = time.Since(t0)
		t0 = time.Now()
	}

	s.processInput()

	if s.debug {
		stats.inputTime = time.Since(t0)
		stats.widgets = countWidgets(s.root)
		s.debugLog(stats)
	}
}

// Draw renders the widget tree onto screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	drawn := s.drawWidget(screen, s.root)

	if s.debug {
		s.debugLog(debugStats{drawTime: time.Since(t0), drawn: drawn})
	}
}
