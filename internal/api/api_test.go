package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/opmc/inventory/internal/db"
	"github.com/opmc/inventory/internal/export"
	"github.com/opmc/inventory/internal/model"
	"github.com/opmc/inventory/internal/store"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	database := db.NewTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"Paracetamol", "Aspirin", "Amoxicillin"} {
		if _, err := store.CreateMedicine(ctx, database, name); err != nil {
			t.Fatalf("creating medicine: %v", err)
		}
	}
	for _, o := range []struct {
		c model.Category
		v string
	}{
		{model.CategoryBaris, "A1"},
		{model.CategoryRak, "2"},
		{model.CategoryTingkat, "3"},
		{model.CategoryPetak, "4"},
	} {
		if _, err := store.CreateLocationOption(ctx, database, o.c, o.v); err != nil {
			t.Fatalf("creating option: %v", err)
		}
	}

	gw := store.NewGateway(database)
	exporter := &export.Exporter{Gateway: gw, Location: time.UTC}
	server := httptest.NewServer(NewRouter(gw, exporter))
	t.Cleanup(server.Close)
	return server
}

func jsonRequest(method, url string, body any) (*http.Request, error) {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func listMedicines(t *testing.T, server *httptest.Server, query string) listMedicinesResponse {
	t.Helper()
	resp, err := http.Get(server.URL + "/api/medicines" + query)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var out listMedicinesResponse
	json.NewDecoder(resp.Body).Decode(&out)
	return out
}

func TestMedicinesAPIFlow(t *testing.T) {
	server := setupTestServer(t)

	// Ordered by name, nothing located yet.
	all := listMedicines(t, server, "")
	if len(all.Medicines) != 3 || all.Medicines[0].Name != "Amoxicillin" {
		t.Fatalf("unexpected list %+v", all.Medicines)
	}
	if all.Counts.MissingLocation != 3 || all.Counts.WithLocation != 0 {
		t.Errorf("unexpected counts %+v", all.Counts)
	}
	aspirin := all.Medicines[1]

	// Set a full location.
	req, _ := jsonRequest("PUT", server.URL+"/api/medicines/"+itoa(aspirin.ID)+"/location",
		model.Location{Baris: "A1", Rak: "2", Tingkat: "3", Petak: "4"})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var updated medicineResponse
	json.NewDecoder(resp.Body).Decode(&updated)
	resp.Body.Close()
	if updated.LocationCode != "A1.2.3.4" || updated.LastUpdated == nil {
		t.Errorf("unexpected update response %+v", updated)
	}

	// Tabs and search.
	located := listMedicines(t, server, "?tab=with-location")
	if len(located.Medicines) != 1 || located.Medicines[0].Name != "Aspirin" {
		t.Errorf("unexpected with-location list %+v", located.Medicines)
	}
	missing := listMedicines(t, server, "?q=a&tab=missing-location")
	if len(missing.Medicines) != 2 {
		t.Errorf("expected 2 missing, got %d", len(missing.Medicines))
	}

	// Single medicine.
	resp, _ = http.Get(server.URL + "/api/medicines/" + itoa(aspirin.ID))
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestMedicinesAPIErrors(t *testing.T) {
	server := setupTestServer(t)

	resp, _ := http.Get(server.URL + "/api/medicines?tab=bogus")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown tab, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp, _ = http.Get(server.URL + "/api/medicines/999")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	id := listMedicines(t, server, "").Medicines[0].ID
	req, _ := jsonRequest("PUT", server.URL+"/api/medicines/"+itoa(id)+"/location",
		model.Location{Baris: "Z9"})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for a value that is not an option, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestPartialLocationUpdate(t *testing.T) {
	server := setupTestServer(t)
	id := listMedicines(t, server, "").Medicines[0].ID

	req, _ := jsonRequest("PUT", server.URL+"/api/medicines/"+itoa(id)+"/location",
		map[string]string{"baris": "A1", "rak": "2"})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	all := listMedicines(t, server, "?tab=missing-location")
	if all.Counts.MissingLocation != 3 {
		t.Errorf("partial location must stay missing, got counts %+v", all.Counts)
	}

	// Dropping a stored field is rejected and leaves the row alone.
	req, _ = jsonRequest("PUT", server.URL+"/api/medicines/"+itoa(id)+"/location",
		map[string]string{"baris": "A1"})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 when clearing a stored field, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp, _ = http.Get(server.URL + "/api/medicines/" + itoa(id))
	var med medicineResponse
	json.NewDecoder(resp.Body).Decode(&med)
	resp.Body.Close()
	if med.Location.Rak != "2" {
		t.Errorf("expected rak to stay 2, got %+v", med.Location)
	}
}

func TestLocationOptionsAPIFlow(t *testing.T) {
	server := setupTestServer(t)

	// Create.
	req, _ := jsonRequest("POST", server.URL+"/api/location-options", createOptionRequest{Category: "rak", Value: " 7 "})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created model.LocationOption
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()
	if created.Value != "7" {
		t.Errorf("expected trimmed value, got %q", created.Value)
	}

	// Duplicate.
	req, _ = jsonRequest("POST", server.URL+"/api/location-options", createOptionRequest{Category: "rak", Value: "7"})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Empty and unknown category.
	for _, body := range []createOptionRequest{{"rak", "  "}, {"lantai", "1"}} {
		req, _ = jsonRequest("POST", server.URL+"/api/location-options", body)
		resp, _ = http.DefaultClient.Do(req)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%+v: expected 400, got %d", body, resp.StatusCode)
		}
		resp.Body.Close()
	}

	// Delete without confirmation returns the prompt.
	req, _ = jsonRequest("DELETE", server.URL+"/api/location-options/"+itoa(created.ID), nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusPreconditionRequired {
		t.Fatalf("expected 428, got %d", resp.StatusCode)
	}
	var prompt map[string]string
	json.NewDecoder(resp.Body).Decode(&prompt)
	resp.Body.Close()
	if prompt["prompt"] != `Delete "7" from rak?` {
		t.Errorf("unexpected prompt %q", prompt["prompt"])
	}

	// Confirmed delete.
	req, _ = jsonRequest("DELETE", server.URL+"/api/location-options/"+itoa(created.ID)+"?confirm=true", nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp, _ = http.Get(server.URL + "/api/location-options")
	var groups model.OptionGroups
	json.NewDecoder(resp.Body).Decode(&groups)
	resp.Body.Close()
	if groups.Len() != 4 || groups.Has(model.CategoryRak, "7") {
		t.Errorf("expected only the seeded options, got %+v", groups)
	}

	// Unknown id.
	req, _ = jsonRequest("DELETE", server.URL+"/api/location-options/999?confirm=true", nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestExportEndpoint(t *testing.T) {
	server := setupTestServer(t)

	resp, err := http.Get(server.URL + "/api/export")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Content-Type") != export.ContentType {
		t.Errorf("unexpected content type %q", resp.Header.Get("Content-Type"))
	}

	f, err := excelize.OpenReader(resp.Body)
	if err != nil {
		t.Fatalf("reading workbook: %v", err)
	}
	defer f.Close()

	rows, _ := f.GetRows(export.SheetName)
	if len(rows) != 4 {
		t.Errorf("expected header plus 3 rows, got %d", len(rows))
	}
}

func TestLoggingMiddlewareRecordsStatus(t *testing.T) {
	handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/medicines", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("expected status to pass through, got %d", rec.Code)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
