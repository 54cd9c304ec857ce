package api

import (
	"log/slog"
	"net/http"

	"github.com/opmc/inventory/internal/inventory"
)

// OptionsHandler handles location option endpoints.
type OptionsHandler struct {
	Gateway inventory.Gateway
}

type createOptionRequest struct {
	Category string `json:"category"`
	Value    string `json:"value"`
}

// List handles GET /api/location-options.
func (h *OptionsHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := inventory.FetchOptions(r.Context(), h.Gateway)
	if err != nil {
		operationError(w, "failed to list location options", err)
		return
	}
	jsonResponse(w, http.StatusOK, groups)
}

// Create handles POST /api/location-options.
func (h *OptionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOptionRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	opt, err := inventory.AddOption(r.Context(), h.Gateway, req.Category, req.Value)
	if err != nil {
		operationError(w, "failed to add location option", err)
		return
	}

	slog.Info("location option added", "category", opt.Category, "value", opt.Value)
	jsonResponse(w, http.StatusCreated, opt)
}

// Delete handles DELETE /api/location-options/{id}. Without ?confirm=true it
// only returns the confirmation prompt.
func (h *OptionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid option id")
		return
	}

	settings := inventory.NewSettings(h.Gateway)
	if err := settings.Load(r.Context()); err != nil {
		operationError(w, "failed to load location options", err)
		return
	}

	pending, err := settings.RequestDelete(id)
	if err != nil {
		jsonError(w, http.StatusNotFound, "location option not found")
		return
	}

	if r.URL.Query().Get("confirm") != "true" {
		jsonResponse(w, http.StatusPreconditionRequired, map[string]string{
			"error":  "confirmation required",
			"prompt": pending.Prompt(),
		})
		return
	}

	if _, err := pending.Resolve(r.Context(), true); err != nil {
		operationError(w, "failed to delete location option", err)
		return
	}

	slog.Info("location option deleted", "category", pending.Option.Category, "value", pending.Option.Value)
	w.WriteHeader(http.StatusNoContent)
}
