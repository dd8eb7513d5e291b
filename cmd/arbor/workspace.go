package main

import (
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/phanxgames/arbor"
	"github.com/phanxgames/arbor/ecs"
	"github.com/phanxgames/arbor/editor"
	"github.com/phanxgames/arbor/fswatch"
	"github.com/phanxgames/arbor/internal/config"
	"github.com/phanxgames/arbor/internal/logging"
	"github.com/phanxgames/arbor/project"
	"github.com/phanxgames/arbor/treeview"

	"github.com/yohamta/donburi"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	panelColor = arbor.Color{R: 0.25, G: 0.25, B: 0.25, A: 1}
	clearColor = arbor.Color{R: 0.12, G: 0.12, B: 0.13, A: 1}
)

// panel is one tree view docked in the workspace.
type panel interface {
	tick(dt float32) treeview.Stats
	route(e arbor.InteractionEvent) bool
}

// workspace lays tree view panels side by side and routes pointer events
// from the UI world to the domain that owns the hit widget.
type workspace struct {
	scene  *arbor.Scene
	ui     donburi.World
	dock   *arbor.Widget
	panels []panel
	tv     treeview.Config
	cfg    config.Config
	logger *slog.Logger
}

func newWorkspace(cfg config.Config, logger *slog.Logger) (*workspace, error) {
	font, err := loadFont(cfg.Font)
	if err != nil {
		return nil, err
	}

	scene := arbor.NewScene()
	scene.ClearColor = clearColor
	scene.SetLogger(logging.Component(logger, "scene"))
	scene.SetAssets(arbor.NewAssets(os.DirFS(cfg.Assets.Dir), logging.Component(logger, "assets")))

	ui := donburi.NewWorld()
	scene.SetEntityStore(ecs.NewDonburiStore(ui))

	dock := arbor.NewBox("dock", arbor.Style{
		Direction: arbor.Row,
		Width:     arbor.Percent(100),
		Height:    arbor.Percent(100),
		Gap:       arbor.Px(2),
	})
	scene.Root().AddChild(dock)

	w := &workspace{
		scene: scene,
		ui:    ui,
		dock:  dock,
		tv: treeview.Config{
			IconSize:        cfg.IconSize(),
			Font:            font,
			HighlightFade:   cfg.Tree.HighlightFade,
			InteractiveRows: true,
			Logger:          logging.Component(logger, "treeview"),
		},
		cfg:    cfg,
		logger: logger,
	}
	ecs.InteractionEventType.Subscribe(ui, w.dispatch)
	return w, nil
}

func loadFont(cfg config.FontConfig) (*arbor.Font, error) {
	data := goregular.TTF
	if cfg.Path != "" {
		var err error
		if data, err = os.ReadFile(cfg.Path); err != nil {
			return nil, err
		}
	}
	return arbor.LoadFont(data, cfg.Size)
}

func (w *workspace) newPanel(name string) *arbor.Widget {
	p := arbor.NewBox(name, arbor.Style{
		Width:  arbor.Px(w.cfg.Tree.PanelWidth),
		Height: arbor.Percent(100),
	})
	p.Background = panelColor
	w.dock.AddChild(p)
	return p
}

func (w *workspace) dispatch(_ donburi.World, e arbor.InteractionEvent) {
	for _, p := range w.panels {
		if p.route(e) {
			return
		}
	}
}

// tick advances every panel by dt seconds. The domain edits made by routed
// events land in the same tick.
func (w *workspace) tick(dt float32) {
	ecs.InteractionEventType.ProcessEvents(w.ui)
	for _, p := range w.panels {
		p.tick(dt)
	}
}

func (w *workspace) addProject(p *project.Project, mirror *fswatch.Mirror) *projectPanel {
	pp := &projectPanel{
		project: p,
		mirror:  mirror,
		tv:      treeview.New[donburi.Entity](w.newPanel("project"), p.Source(), w.tv),
		logger:  logging.Component(w.logger, "workspace"),
	}
	w.panels = append(w.panels, pp)
	return pp
}

func (w *workspace) addOutline(o *editor.Outline) *outlinePanel {
	op := &outlinePanel{
		outline: o,
		tv:      treeview.New[donburi.Entity](w.newPanel("outline"), o.Source(), w.tv),
	}
	w.panels = append(w.panels, op)
	return op
}

type projectPanel struct {
	project *project.Project
	mirror  *fswatch.Mirror
	tv      *treeview.TreeView[donburi.Entity]
	logger  *slog.Logger
}

func (pp *projectPanel) tick(dt float32) treeview.Stats {
	pp.project.ProcessEvents()
	if pp.mirror != nil {
		pp.mirror.Apply()
	}
	stats := pp.tv.Tick(pp.project.Drain())
	pp.tv.Advance(dt)
	return stats
}

func (pp *projectPanel) route(e arbor.InteractionEvent) bool {
	item, role, ok := pp.tv.Registry().Lookup(e.WidgetID)
	if !ok {
		return false
	}
	id, ok := pp.project.UUID(item)
	if !ok {
		// removed from the project, the tree view catches up this tick
		pp.logger.Debug("pointer event on removed item", "event", e.Type, "widget", e.WidgetID)
		return true
	}
	var err error
	switch e.Type {
	case arbor.EventClick:
		if role != treeview.RoleDisclosure {
			err = pp.project.Select(id)
		}
	case arbor.EventPointerEnter:
		err = pp.project.Hover(id)
	case arbor.EventPointerLeave:
		if cur, ok := pp.project.Hovered(); ok && cur == id {
			err = pp.project.Hover(uuid.Nil)
		}
	}
	if err != nil {
		pp.logger.Debug("pointer event not applied", "event", e.Type, "item", id, "error", err)
	}
	return true
}

type outlinePanel struct {
	outline *editor.Outline
	tv      *treeview.TreeView[donburi.Entity]
}

func (op *outlinePanel) tick(dt float32) treeview.Stats {
	stats := op.tv.Tick(op.outline.Drain())
	op.tv.Advance(dt)
	return stats
}

func (op *outlinePanel) route(e arbor.InteractionEvent) bool {
	item, role, ok := op.tv.Registry().Lookup(e.WidgetID)
	if !ok {
		return false
	}
	if e.Type == arbor.EventClick && role != treeview.RoleDisclosure {
		op.outline.Select(item)
	}
	return true
}

// run opens the window and drives the workspace until it closes.
func (w *workspace) run() error {
	return arbor.Run(w.scene, arbor.RunConfig{
		Title:  w.cfg.Window.Title,
		Width:  w.cfg.Window.Width,
		Height: w.cfg.Window.Height,
		Update: func() error {
			w.tick(1.0 / 60)
			return nil
		},
	})
}
