package main

import (
	"github.com/phanxgames/arbor/editor"

	"github.com/spf13/cobra"
	"github.com/yohamta/donburi"
)

func newDemoCmd(app *App) *cobra.Command {
	var debug bool
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Open the project next to a sample scene outline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, s, err := app.openProject(ctx)
			if err != nil {
				return err
			}

			w, err := newWorkspace(app.cfg, app.logger)
			if err != nil {
				return err
			}
			w.addProject(p, nil)

			outline := editor.NewOutline(donburi.NewWorld())
			editor.SampleScene(outline)
			w.addOutline(outline)

			w.scene.SetDebugMode(debug)
			runErr := w.run()
			if err := app.saveProject(ctx, p, s); err != nil {
				return err
			}
			return runErr
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable scene debug checks and frame timing logs")
	return cmd
}
