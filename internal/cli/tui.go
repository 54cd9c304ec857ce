package cli

import (
	"github.com/spf13/cobra"

	"github.com/opmc/inventory/internal/tui"
)

func newTUICmd(app *App) *cobra.Command {
	var exportDir string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUIWith(app, exportDir)
		},
	}
	cmd.Flags().StringVarP(&exportDir, "out", "o", ".", "Directory for exported workbooks")
	return cmd
}

func runTUI(app *App) error {
	return runTUIWith(app, ".")
}

func runTUIWith(app *App, exportDir string) error {
	closeLog, err := setupLogger(app.cfg.LogPath, true)
	if err != nil {
		return err
	}
	defer closeLog()

	gw, closeGW, err := app.openGateway()
	if err != nil {
		return err
	}
	defer closeGW()

	exporter, err := app.exporter(gw)
	if err != nil {
		return err
	}

	return tui.Run(tui.Options{
		Gateway:   gw,
		Exporter:  exporter,
		ExportDir: exportDir,
	})
}
