package main

import (
	"context"

	"github.com/phanxgames/arbor/fswatch"
	"github.com/phanxgames/arbor/internal/logging"
	"github.com/phanxgames/arbor/project"

	"github.com/spf13/cobra"
)

func newBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse <dir>",
		Short: "Mirror a directory into a live project panel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			p := project.New(logging.Component(app.logger, "project"))
			mirror := fswatch.New(args[0], p, logging.Component(app.logger, "fswatch"))
			if err := mirror.Scan(); err != nil {
				return err
			}
			if err := mirror.Watch(ctx); err != nil {
				return err
			}
			defer mirror.Close()
			app.logger.Info("watching", "dir", args[0], "items", p.Len())

			w, err := newWorkspace(app.cfg, app.logger)
			if err != nil {
				return err
			}
			w.addProject(p, mirror)
			return w.run()
		},
	}
}
