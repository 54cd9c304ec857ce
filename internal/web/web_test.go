package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/opmc/inventory/internal/db"
	"github.com/opmc/inventory/internal/export"
	"github.com/opmc/inventory/internal/model"
	"github.com/opmc/inventory/internal/store"
)

type testEnv struct {
	server *httptest.Server
	client *http.Client
	gw     *store.Gateway
	meds   []model.Medicine
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()
	database := db.NewTestDB(t)
	ctx := context.Background()

	env := &testEnv{gw: store.NewGateway(database)}
	for _, name := range []string{"Aspirin", "Paracetamol"} {
		m, err := store.CreateMedicine(ctx, database, name)
		if err != nil {
			t.Fatalf("creating medicine: %v", err)
		}
		env.meds = append(env.meds, *m)
	}
	for _, c := range model.Categories {
		if _, err := store.CreateLocationOption(ctx, database, c, "1"); err != nil {
			t.Fatalf("creating option: %v", err)
		}
	}
	store.CreateLocationOption(ctx, database, model.CategoryBaris, "A1")

	router, err := NewRouter(env.gw, &export.Exporter{Gateway: env.gw, Location: time.UTC})
	if err != nil {
		t.Fatalf("creating router: %v", err)
	}
	env.server = httptest.NewServer(router)
	t.Cleanup(env.server.Close)

	env.client = &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
	return env
}

func (env *testEnv) get(t *testing.T, path string) (int, string) {
	t.Helper()
	resp, err := env.client.Get(env.server.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

// post submits a form and returns the redirect target.
func (env *testEnv) post(t *testing.T, path string, form url.Values) (int, *url.URL) {
	t.Helper()
	resp, err := env.client.PostForm(env.server.URL+path, form)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	loc, _ := resp.Location()
	return resp.StatusCode, loc
}

func TestInventoryPage(t *testing.T) {
	env := setupTestServer(t)

	status, body := env.get(t, "/")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	for _, want := range []string{"Aspirin", "Paracetamol", "Set Location", "Missing Location"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}

	_, body = env.get(t, "/?q=para")
	if strings.Contains(body, "Aspirin") {
		t.Error("search must hide non-matching medicines")
	}

	status, _ = env.get(t, "/?tab=bogus")
	if status != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown tab, got %d", status)
	}
}

func TestLocationModal(t *testing.T) {
	env := setupTestServer(t)
	id := strconv.FormatInt(env.meds[0].ID, 10)

	status, body := env.get(t, "/medicines/"+id+"/location?open=baris")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.Contains(body, "Baris (Row)") || !strings.Contains(body, ">A1<") {
		t.Error("expected the open baris picker to list A1")
	}
	if strings.Contains(body, "Location Code:") {
		t.Error("preview must be hidden for an empty draft")
	}

	_, body = env.get(t, "/medicines/"+id+"/location?baris=A1&rak=1&tingkat=1&petak=1")
	if !strings.Contains(body, "A1.1.1.1") {
		t.Error("expected preview of the complete draft")
	}

	status, _ = env.get(t, "/medicines/999/location")
	if status != http.StatusNotFound {
		t.Errorf("expected 404, got %d", status)
	}
}

func TestLocationModalUsesExportZone(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	med, err := store.CreateMedicine(ctx, database, "Aspirin")
	if err != nil {
		t.Fatalf("creating medicine: %v", err)
	}
	at := time.Date(2026, 3, 4, 7, 5, 6, 0, time.UTC)
	if err := store.UpdateMedicineLocation(ctx, database, med.ID, model.Location{Baris: "A1"}, at); err != nil {
		t.Fatalf("updating location: %v", err)
	}

	gw := store.NewGateway(database)
	zone := time.FixedZone("WIB", 7*60*60)
	router, err := NewRouter(gw, &export.Exporter{Gateway: gw, Location: zone})
	if err != nil {
		t.Fatalf("creating router: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/medicines/"+strconv.FormatInt(med.ID, 10)+"/location", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if want := "3/4/2026, 2:05:06 PM"; !strings.Contains(rec.Body.String(), want) {
		t.Errorf("expected last updated %q in the modal", want)
	}
}

func TestLocationSubmit(t *testing.T) {
	env := setupTestServer(t)
	id := strconv.FormatInt(env.meds[0].ID, 10)

	status, loc := env.post(t, "/medicines/"+id+"/location?tab=missing-location",
		url.Values{"baris": {"A1"}, "rak": {"1"}, "tingkat": {"1"}, "petak": {"1"}})
	if status != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", status)
	}
	if loc.Path != "/" || loc.Query().Get("notice") != "Location updated successfully!" || loc.Query().Get("tab") != "missing-location" {
		t.Errorf("unexpected redirect %s", loc)
	}

	meds, _ := env.gw.ListMedicines(context.Background())
	if code, ok := meds[0].LocationCode(); !ok || code != "A1.1.1.1" {
		t.Errorf("expected stored code A1.1.1.1, got (%q, %v)", code, ok)
	}

	_, body := env.get(t, "/?tab=with-location")
	if !strings.Contains(body, "A1.1.1.1") {
		t.Error("expected located medicine on the with-location tab")
	}
}

func TestLocationSubmitRejectsUnknownValue(t *testing.T) {
	env := setupTestServer(t)
	id := strconv.FormatInt(env.meds[0].ID, 10)

	resp, err := env.client.PostForm(env.server.URL+"/medicines/"+id+"/location", url.Values{"baris": {"Z9"}})
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "Set Location") {
		t.Errorf("expected the modal to stay open, got %d", resp.StatusCode)
	}

	meds, _ := env.gw.ListMedicines(context.Background())
	if meds[0].LastUpdated != nil {
		t.Error("rejected draft must not be saved")
	}
}

func TestSettingsOptions(t *testing.T) {
	env := setupTestServer(t)

	_, loc := env.post(t, "/settings/options", url.Values{"category": {"rak"}, "value": {" 9 "}})
	if loc.Query().Get("notice") != "Added successfully" {
		t.Errorf("unexpected redirect %s", loc)
	}

	_, loc = env.post(t, "/settings/options", url.Values{"category": {"rak"}, "value": {"9"}})
	if loc.Query().Get("error") != "This value already exists" {
		t.Errorf("expected duplicate notice, got %s", loc)
	}

	_, loc = env.post(t, "/settings/options", url.Values{"category": {"rak"}, "value": {"  "}})
	if loc.Query().Get("error") != "Please enter a value" {
		t.Errorf("expected empty value notice, got %s", loc)
	}

	status, body := env.get(t, "/settings?notice=Added+successfully")
	if status != http.StatusOK || !strings.Contains(body, "Added successfully") || !strings.Contains(body, ">9<") {
		t.Error("expected settings page to list the new option with the notice")
	}
}

func TestSettingsDeleteConfirmation(t *testing.T) {
	env := setupTestServer(t)
	opts, _ := env.gw.ListLocationOptions(context.Background())
	target := opts[0]
	path := "/settings/options/" + strconv.FormatInt(target.ID, 10) + "/delete"

	status, body := env.get(t, path)
	if status != http.StatusOK || !strings.Contains(body, "Delete &#34;"+target.Value+"&#34; from "+string(target.Category)+"?") {
		t.Errorf("expected confirmation prompt, got %d", status)
	}

	env.post(t, path, url.Values{"confirm": {"no"}})
	after, _ := env.gw.ListLocationOptions(context.Background())
	if len(after) != len(opts) {
		t.Fatal("declined delete must not remove anything")
	}

	_, loc := env.post(t, path, url.Values{"confirm": {"yes"}})
	if loc.Query().Get("notice") != "Deleted successfully" {
		t.Errorf("unexpected redirect %s", loc)
	}
	after, _ = env.gw.ListLocationOptions(context.Background())
	if len(after) != len(opts)-1 {
		t.Errorf("expected exactly one option removed, got %d -> %d", len(opts), len(after))
	}
}

func TestExportDownload(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.client.Get(env.server.URL + "/settings/export")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	cd := resp.Header.Get("Content-Disposition")
	if !strings.Contains(cd, "OPMC_Master_List_") || !strings.HasSuffix(cd, `.xlsx"`) {
		t.Errorf("unexpected disposition %q", cd)
	}
}
