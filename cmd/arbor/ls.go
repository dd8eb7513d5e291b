package main

import (
	"github.com/phanxgames/arbor/fswatch"
	"github.com/phanxgames/arbor/internal/logging"
	"github.com/phanxgames/arbor/project"

	"github.com/spf13/cobra"
)

func newLsCmd(app *App) *cobra.Command {
	var (
		dir  string
		save bool
	)
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "Print the project tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir != "" {
				p := project.New(logging.Component(app.logger, "project"))
				if err := fswatch.New(dir, p, app.logger).Scan(); err != nil {
					return err
				}
				printTree(cmd.OutOrStdout(), p)
				return nil
			}

			ctx := cmd.Context()
			p, s, err := app.openProject(ctx)
			if err != nil {
				return err
			}
			printTree(cmd.OutOrStdout(), p)
			if save {
				return app.saveProject(ctx, p, s)
			}
			if s != nil {
				return s.Close()
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Scan this directory instead of opening the store")
	cmd.Flags().BoolVar(&save, "save", false, "Write the project back to the store")
	return cmd
}
