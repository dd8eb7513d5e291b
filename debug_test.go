package arbor

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

// ---- Debug mode tests ------------------------------------------------------

func TestDebugMode_DisposedWidgetPanics(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	parent := NewBox("parent", Style{})
	s.Root().AddChild(parent)

	child := NewBox("child", Style{})
	child.Dispose()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on AddChild with disposed widget, got none")
		}
		msg := fmt.Sprint(r)
		if !strings.Contains(msg, "disposed") {
			t.Errorf("panic message should mention 'disposed', got: %s", msg)
		}
	}()

	parent.AddChild(child)
}

func TestDebugMode_DisposedParentPanics(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	parent := NewBox("parent", Style{})
	parent.Dispose()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on AddChild to disposed parent, got none")
		}
		if !strings.Contains(fmt.Sprint(r), "disposed") {
			t.Errorf("panic message should mention 'disposed', got: %v", r)
		}
	}()

	parent.AddChild(NewBox("child", Style{}))
}

func TestReleaseMode_DisposedWidgetNoPanic(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(false)

	child := NewBox("child", Style{})
	child.Dispose()

	// In release mode nothing checks for disposal.
	parent := NewBox("parent", Style{})
	parent.AddChild(child)
	if parent.NumChildren() != 1 {
		t.Error("release mode should not guard disposed widgets")
	}
}

func TestDebugMode_ChildCountWarning(t *testing.T) {
	var logs bytes.Buffer
	s := NewScene()
	s.SetLogger(slog.New(slog.NewTextHandler(&logs, nil)))
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	parent := NewBox("crowded", Style{})
	for i := 0; i <= debugMaxChildCount; i++ {
		parent.AddChild(NewBox("c", Style{}))
	}

	if !strings.Contains(logs.String(), "child count exceeds threshold") {
		t.Errorf("expected child count warning, got: %s", logs.String())
	}
}

func TestCountWidgets(t *testing.T) {
	root := NewBox("root", Style{})
	mid := NewBox("mid", Style{})
	root.AddChild(mid)
	mid.AddChild(NewBox("a", Style{}))
	mid.AddChild(NewBox("b", Style{}))

	if got := countWidgets(root); got != 4 {
		t.Errorf("countWidgets = %d, want 4", got)
	}
}
