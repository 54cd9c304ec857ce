package cli

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opmc/inventory/internal/db"
	"github.com/opmc/inventory/internal/store"
)

var errRemoteImport = errors.New("import only writes to the local SQLite store; unset SUPABASE_URL to use it")

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Add medicines from a file with one name per line",
		Long: strings.TrimSpace(`
Reads medicine names from a text file, one per line, and adds them to the
local store with no location set. Blank lines and lines starting with # are
skipped.`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.cfg.UseSupabase() {
				return errRemoteImport
			}

			closeLog, err := setupLogger(app.cfg.LogPath, false)
			if err != nil {
				return err
			}
			defer closeLog()

			names, err := readNames(args[0])
			if err != nil {
				return err
			}

			database, err := db.Open(app.cfg.DBPath)
			if err != nil {
				return err
			}
			defer database.Close()
			if err := db.Migrate(database); err != nil {
				return fmt.Errorf("migrating database: %w", err)
			}

			for _, name := range names {
				if _, err := store.CreateMedicine(cmd.Context(), database, name); err != nil {
					return fmt.Errorf("importing %q: %w", name, err)
				}
			}
			slog.Info("medicines imported", "count", len(names), "path", app.cfg.DBPath)
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d medicines\n", len(names))
			return nil
		},
	}
}

func readNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	var names []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}
	return names, nil
}
