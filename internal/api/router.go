package api

import (
	"net/http"

	"github.com/opmc/inventory/internal/export"
	"github.com/opmc/inventory/internal/inventory"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(gw inventory.Gateway, exporter *export.Exporter) http.Handler {
	mux := http.NewServeMux()

	inventoryHandler := &InventoryHandler{Gateway: gw}
	optionsHandler := &OptionsHandler{Gateway: gw}
	exportHandler := &ExportHandler{Exporter: exporter}

	// Medicines.
	mux.HandleFunc("GET /api/medicines", inventoryHandler.List)
	mux.HandleFunc("GET /api/medicines/{id}", inventoryHandler.Get)
	mux.HandleFunc("PUT /api/medicines/{id}/location", inventoryHandler.UpdateLocation)

	// Location options.
	mux.HandleFunc("GET /api/location-options", optionsHandler.List)
	mux.HandleFunc("POST /api/location-options", optionsHandler.Create)
	mux.HandleFunc("DELETE /api/location-options/{id}", optionsHandler.Delete)

	// Spreadsheet export.
	mux.HandleFunc("GET /api/export", exportHandler.Download)

	return mux
}
