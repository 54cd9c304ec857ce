package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/opmc/inventory/internal/config"
	"github.com/opmc/inventory/internal/db"
	"github.com/opmc/inventory/internal/export"
	"github.com/opmc/inventory/internal/model"
	"github.com/opmc/inventory/internal/store"
)

// localEnv pins configuration to a local SQLite store in a temp dir and
// returns the database path.
func localEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")
	t.Setenv("OPMC_TIMEZONE", "UTC")
	t.Setenv("OPMC_LOG", "")
	t.Setenv("OPMC_DB", filepath.Join(dir, "opmc.sqlite3"))
	return filepath.Join(dir, "opmc.sqlite3")
}

func runCLI(t *testing.T, args []string) (string, error) {
	t.Helper()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer

	cmd := NewRootCmd()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))

	err := cmd.Execute()
	return outBuf.String(), err
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "medicines.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestInitCreatesSchema(t *testing.T) {
	dbPath := localEnv(t)

	out, err := runCLI(t, []string{"init"})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out, dbPath) {
		t.Errorf("output = %q, want it to mention %s", out, dbPath)
	}

	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer database.Close()

	var n int
	if err := database.QueryRow("SELECT COUNT(*) FROM medicines").Scan(&n); err != nil {
		t.Fatalf("count medicines: %v", err)
	}
	if n != 0 {
		t.Errorf("medicines = %d, want 0", n)
	}
}

func TestDBFlagOverridesEnv(t *testing.T) {
	localEnv(t)
	other := filepath.Join(t.TempDir(), "other.sqlite3")

	if _, err := runCLI(t, []string{"init", "--db", other}); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := os.Stat(other); err != nil {
		t.Errorf("expected database at %s: %v", other, err)
	}
}

func TestImportSkipsBlankAndCommentLines(t *testing.T) {
	dbPath := localEnv(t)
	file := writeFile(t, "Paracetamol 500mg\n\n   Amoxicillin 250mg  \n# restock later\nIbuprofen 200mg\n")

	out, err := runCLI(t, []string{"import", file})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "imported 3 medicines") {
		t.Errorf("output = %q", out)
	}

	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer database.Close()

	meds, err := store.ListMedicines(context.Background(), database)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"Amoxicillin 250mg", "Ibuprofen 200mg", "Paracetamol 500mg"}
	if len(meds) != len(want) {
		t.Fatalf("got %d medicines, want %d", len(meds), len(want))
	}
	for i, m := range meds {
		if m.Name != want[i] {
			t.Errorf("medicine %d = %q, want %q", i, m.Name, want[i])
		}
		if m.Location != (model.Location{}) {
			t.Errorf("medicine %q has location %+v, want none", m.Name, m.Location)
		}
	}
}

func TestImportRejectsRemoteStore(t *testing.T) {
	localEnv(t)
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon")
	file := writeFile(t, "Paracetamol\n")

	_, err := runCLI(t, []string{"import", file})
	if !errors.Is(err, errRemoteImport) {
		t.Fatalf("err = %v, want errRemoteImport", err)
	}
}

func TestImportMissingFile(t *testing.T) {
	localEnv(t)

	_, err := runCLI(t, []string{"import", filepath.Join(t.TempDir(), "nope.txt")})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestExportWritesWorkbook(t *testing.T) {
	localEnv(t)
	file := writeFile(t, "Paracetamol\nAmoxicillin\n")
	if _, err := runCLI(t, []string{"import", file}); err != nil {
		t.Fatalf("import: %v", err)
	}

	outDir := filepath.Join(t.TempDir(), "exports")
	out, err := runCLI(t, []string{"export", "--out", outDir})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	path := strings.TrimSpace(out)
	if filepath.Dir(path) != outDir {
		t.Fatalf("export path = %q, want it inside %s", path, outDir)
	}
	if !strings.HasPrefix(filepath.Base(path), export.FilePrefix) {
		t.Errorf("file name = %q, want prefix %q", filepath.Base(path), export.FilePrefix)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(export.SheetName)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header plus 2", len(rows))
	}
	if rows[1][0] != "Amoxicillin" || rows[2][0] != "Paracetamol" {
		t.Errorf("names = %q, %q", rows[1][0], rows[2][0])
	}
}

func TestHandlerRoutesAPIAndWeb(t *testing.T) {
	database := db.NewTestDB(t)
	if _, err := store.CreateMedicine(context.Background(), database, "Paracetamol"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	app := &App{cfg: &config.Config{Timezone: "UTC"}}
	handler, err := app.handler(store.NewGateway(database))
	if err != nil {
		t.Fatalf("handler: %v", err)
	}

	tests := []struct {
		path string
		want string
	}{
		{"/api/medicines", "application/json"},
		{"/", "text/html"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s: status %d", tt.path, rec.Code)
			continue
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, tt.want) {
			t.Errorf("GET %s: content type %q, want %s", tt.path, ct, tt.want)
		}
		if !strings.Contains(rec.Body.String(), "Paracetamol") {
			t.Errorf("GET %s: body does not list the medicine", tt.path)
		}
	}
}
