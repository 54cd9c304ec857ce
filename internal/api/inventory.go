package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/opmc/inventory/internal/inventory"
	"github.com/opmc/inventory/internal/model"
)

// InventoryHandler handles medicine endpoints.
type InventoryHandler struct {
	Gateway inventory.Gateway
}

type medicineResponse struct {
	model.Medicine
	LocationCode string `json:"location_code,omitempty"`
}

type listMedicinesResponse struct {
	Tab       inventory.Tab       `json:"tab"`
	Counts    inventory.TabCounts `json:"counts"`
	Medicines []medicineResponse  `json:"medicines"`
}

func toMedicineResponse(m model.Medicine) medicineResponse {
	code, _ := m.LocationCode()
	return medicineResponse{Medicine: m, LocationCode: code}
}

// List handles GET /api/medicines.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("q")
	tab, err := inventory.ParseTab(r.URL.Query().Get("tab"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "tab must be one of all, with-location, missing-location")
		return
	}

	list := inventory.NewList(h.Gateway)
	if err := list.Load(r.Context()); err != nil {
		operationError(w, "failed to list medicines", err)
		return
	}

	visible := list.Visible(search, tab)
	resp := listMedicinesResponse{
		Tab:       tab,
		Counts:    list.Counts(search),
		Medicines: make([]medicineResponse, 0, len(visible)),
	}
	for _, m := range visible {
		resp.Medicines = append(resp.Medicines, toMedicineResponse(m))
	}
	jsonResponse(w, http.StatusOK, resp)
}

// Get handles GET /api/medicines/{id}.
func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	med, ok := h.load(w, r)
	if !ok {
		return
	}
	jsonResponse(w, http.StatusOK, toMedicineResponse(med))
}

// UpdateLocation handles PUT /api/medicines/{id}/location. The body is the
// full four-field draft. A field may stay unset, but a stored value can only
// be replaced by another option, never cleared.
func (h *InventoryHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	var draft model.Location
	if err := decodeJSON(r, &draft); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	med, ok := h.load(w, r)
	if !ok {
		return
	}

	editor, err := inventory.OpenEditor(r.Context(), h.Gateway, med)
	if err != nil {
		operationError(w, "failed to load location options", err)
		return
	}
	if err := editor.Restore(draft); err != nil {
		operationError(w, "rejected location draft", err)
		return
	}
	now := time.Now()
	editor.Now = func() time.Time { return now }
	if err := editor.Save(r.Context(), h.Gateway); err != nil {
		operationError(w, "failed to update location", err)
		return
	}

	slog.Info("location updated", "medicine", med.Name, "location", fmt.Sprintf("%+v", editor.Draft()))

	med.Location = editor.Draft()
	med.LastUpdated = &now
	jsonResponse(w, http.StatusOK, toMedicineResponse(med))
}

// load resolves the {id} path value against a fresh medicine list. It writes
// the error response itself when ok is false.
func (h *InventoryHandler) load(w http.ResponseWriter, r *http.Request) (med model.Medicine, ok bool) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid medicine id")
		return med, false
	}

	list := inventory.NewList(h.Gateway)
	if err := list.Load(r.Context()); err != nil {
		operationError(w, "failed to load medicines", err)
		return med, false
	}

	med, ok = list.Find(id)
	if !ok {
		jsonError(w, http.StatusNotFound, "medicine not found")
	}
	return med, ok
}
