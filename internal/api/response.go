package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/opmc/inventory/internal/inventory"
	"github.com/opmc/inventory/internal/model"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("error encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// operationError logs err and writes the user notice with a matching status.
func operationError(w http.ResponseWriter, msg string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, inventory.ErrEmptyValue),
		errors.Is(err, inventory.ErrNotAnOption),
		errors.Is(err, model.ErrUnknownCategory):
		status = http.StatusBadRequest
	case errors.Is(err, inventory.ErrNotFound):
		status = http.StatusNotFound
	case inventory.IsKind(err, inventory.KindDuplicate):
		status = http.StatusConflict
	case inventory.IsKind(err, inventory.KindFetch):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		slog.Error(msg, "error", err)
	} else {
		slog.Warn(msg, "error", err)
	}
	jsonError(w, status, inventory.Notice(err))
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
