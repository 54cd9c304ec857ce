// Package cli wires configuration, logging, and the data gateway into the
// opmc command tree.
package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opmc/inventory/internal/config"
	"github.com/opmc/inventory/internal/db"
	"github.com/opmc/inventory/internal/export"
	"github.com/opmc/inventory/internal/inventory"
	"github.com/opmc/inventory/internal/store"
	"github.com/opmc/inventory/internal/supabase"
)

// App carries the resolved configuration shared by every command.
type App struct {
	EnvFile string
	DBPath  string
	LogPath string

	cfg *config.Config
}

// NewRootCmd builds the opmc command tree.
func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "opmc",
		Short:        "OPMC medicine location inventory",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive terminal UI
  opmc

  # Serve the web UI and JSON API
  opmc serve --addr :8080

  # Write the master list workbook into ./exports
  opmc export --out exports
`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.EnvFile, "env-file", ".env", "Path to a .env file (missing file is ignored)")
	cmd.PersistentFlags().StringVarP(&app.DBPath, "db", "d", "", "SQLite database path (overrides OPMC_DB)")
	cmd.PersistentFlags().StringVarP(&app.LogPath, "log", "l", "", "Log file path (overrides OPMC_LOG)")

	cmd.AddCommand(newTUICmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newInitCmd(app))

	return cmd
}

func (app *App) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(app.EnvFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("db") {
		cfg.DBPath = app.DBPath
	}
	if cmd.Flags().Changed("log") {
		cfg.LogPath = app.LogPath
	}
	app.cfg = cfg
	return nil
}

// openGateway returns the Supabase gateway when configured and the local
// SQLite store otherwise. release closes the local database.
func (app *App) openGateway() (gw inventory.Gateway, release func(), err error) {
	if app.cfg.UseSupabase() {
		slog.Info("using supabase gateway", "url", app.cfg.SupabaseURL)
		return supabase.New(app.cfg.SupabaseURL, app.cfg.SupabaseKey), func() {}, nil
	}

	database, err := db.Open(app.cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(database); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("migrating database: %w", err)
	}
	slog.Info("database ready", "path", app.cfg.DBPath)
	return store.NewGateway(database), func() { database.Close() }, nil
}

func (app *App) exporter(gw inventory.Gateway) (*export.Exporter, error) {
	loc, err := app.cfg.Location()
	if err != nil {
		return nil, err
	}
	return &export.Exporter{Gateway: gw, Location: loc}, nil
}
