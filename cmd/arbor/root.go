package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/phanxgames/arbor/internal/config"
	"github.com/phanxgames/arbor/internal/logging"
	"github.com/phanxgames/arbor/project"
	"github.com/phanxgames/arbor/store"

	"github.com/spf13/cobra"
)

// App carries the settings shared by every command.
type App struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
	Width      int
	Height     int
	IconSize   string
	StorePath  string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "arbor",
		Short:        "Tree view panels for game project and scene hierarchies",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open the sample project next to a scene outline
  arbor demo

  # Mirror a directory live
  arbor browse ./assets

  # Print the project tree
  arbor ls --store project.sqlite
`),
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.load(cmd)
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&app.ConfigPath, "config", "", "Path to a TOML config file (default: $ARBOR_CONFIG or ~/.config/arbor/config.toml)")
	flags.StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	flags.StringVar(&app.LogFormat, "log-format", "", "Log format (text|json)")
	flags.IntVar(&app.Width, "width", 0, "Window width")
	flags.IntVar(&app.Height, "height", 0, "Window height")
	flags.StringVar(&app.IconSize, "icon-size", "", "Tree icon size (xsmall|small|medium)")
	flags.StringVar(&app.StorePath, "store", "", "SQLite file the project is loaded from and saved to")

	cmd.AddCommand(newDemoCmd(app))
	cmd.AddCommand(newBrowseCmd(app))
	cmd.AddCommand(newLsCmd(app))
	return cmd
}

// load reads the configuration and applies the flags set on the command line.
func (app *App) load(cmd *cobra.Command) error {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = app.LogLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = app.LogFormat
	}
	if flags.Changed("width") {
		cfg.Window.Width = app.Width
	}
	if flags.Changed("height") {
		cfg.Window.Height = app.Height
	}
	if flags.Changed("icon-size") {
		cfg.Tree.IconSize = app.IconSize
	}
	if flags.Changed("store") {
		cfg.Store.Path = app.StorePath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	app.cfg = cfg
	app.logger = logger
	return nil
}

// openProject returns the project kept in the configured store, or the
// sample project when there is no store or it is empty. The returned store
// is nil without a configured path.
func (app *App) openProject(ctx context.Context) (*project.Project, *store.Store, error) {
	p := project.New(logging.Component(app.logger, "project"))
	if app.cfg.Store.Path == "" {
		project.SampleProject(p)
		p.ProcessEvents()
		return p, nil, nil
	}

	s, err := store.Open(ctx, app.cfg.Store.Path)
	if err != nil {
		return nil, nil, err
	}
	records, err := s.Load(ctx)
	if err != nil {
		_ = s.Close()
		return nil, nil, err
	}
	if len(records) == 0 {
		project.SampleProject(p)
		p.ProcessEvents()
	} else if err := p.Restore(records); err != nil {
		_ = s.Close()
		return nil, nil, fmt.Errorf("restore %q: %w", app.cfg.Store.Path, err)
	}
	app.logger.Info("project loaded", "store", app.cfg.Store.Path, "items", p.Len())
	return p, s, nil
}

// saveProject writes p to s and closes s. A nil store is a no-op.
func (app *App) saveProject(ctx context.Context, p *project.Project, s *store.Store) error {
	if s == nil {
		return nil
	}
	defer s.Close()
	if err := s.Save(ctx, p.Snapshot()); err != nil {
		return err
	}
	app.logger.Info("project saved", "store", app.cfg.Store.Path, "items", p.Len())
	return nil
}

// printTree writes the project hierarchy as an indented list, siblings
// ordered by title like the tree view.
func printTree(w io.Writer, p *project.Project) {
	var walk func(ids []uuid.UUID, depth int)
	walk = func(ids []uuid.UUID, depth int) {
		items := make([]project.Item, 0, len(ids))
		for _, id := range ids {
			it, _ := p.Item(id)
			items = append(items, it)
		}
		slices.SortStableFunc(items, func(a, b project.Item) int {
			return strings.Compare(a.Title(), b.Title())
		})
		for _, it := range items {
			fmt.Fprintf(w, "%s%s (%s)\n", strings.Repeat("  ", depth), it.Title(), it.Kind)
			walk(p.Children(it.UUID), depth+1)
		}
	}
	walk(p.Roots(), 0)
}
