package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the master list workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			closeLog, err := setupLogger(app.cfg.LogPath, false)
			if err != nil {
				return err
			}
			defer closeLog()

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}

			gw, closeGW, err := app.openGateway()
			if err != nil {
				return err
			}
			defer closeGW()

			exporter, err := app.exporter(gw)
			if err != nil {
				return err
			}

			path, err := exporter.ExportFile(cmd.Context(), outDir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Output directory")
	return cmd
}
