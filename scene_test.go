package arbor

import (
	"log/slog"
	"testing"
)

func TestNewScene(t *testing.T) {
	s := NewScene()
	if s.root == nil {
		t.Fatal("root should not be nil")
	}
	if s.root.Name != "root" {
		t.Errorf("root.Name = %q, want %q", s.root.Name, "root")
	}
	if s.root.Kind != WidgetBox {
		t.Errorf("root.Kind = %v, want box", s.root.Kind)
	}
	if s.Scale() != 1 {
		t.Errorf("Scale = %v, want 1", s.Scale())
	}
}

func TestSceneRoot(t *testing.T) {
	s := NewScene()
	if s.Root() != s.root {
		t.Error("Root() should return the internal root widget")
	}
}

func TestSceneSetEntityStore(t *testing.T) {
	s := NewScene()
	s.SetEntityStore(nil) // should not panic
	if s.store != nil {
		t.Error("store should be nil")
	}
}

func TestSceneSetDebugMode(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	if !s.debug || !globalDebug {
		t.Error("debug should be true")
	}
	s.SetDebugMode(false)
	if s.debug || globalDebug {
		t.Error("debug should be false")
	}
}

func TestSceneSetScaleRejectsNonPositive(t *testing.T) {
	s := NewScene()
	s.SetScale(2)
	if s.Scale() != 2 {
		t.Errorf("Scale = %v, want 2", s.Scale())
	}
	s.SetScale(0)
	if s.Scale() != 1 {
		t.Errorf("Scale = %v, want 1 after invalid value", s.Scale())
	}
}

func TestSceneSetLoggerNil(t *testing.T) {
	s := NewScene()
	s.SetLogger(nil)
	if s.logger == nil {
		t.Error("nil logger should be replaced by a discarding logger")
	}
	s.SetLogger(slog.Default())
	if s.logger != slog.Default() {
		t.Error("logger should be stored")
	}
}

func TestSceneUpdateLaysOut(t *testing.T) {
	s := NewScene()
	s.SetViewport(320, 240)
	box := NewBox("box", Style{Width: Percent(50), Height: Px(10)})
	s.Root().AddChild(box)

	s.InjectMove(0, 0) // keep Update away from the real mouse
	s.Update()

	if got := s.Root().Bounds(); got.Width != 320 || got.Height != 240 {
		t.Errorf("root = %+v", got)
	}
	if got := box.Bounds(); got.Width != 160 || got.Height != 10 {
		t.Errorf("box = %+v", got)
	}
}
