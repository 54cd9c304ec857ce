package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/opmc/inventory/internal/export"
)

// ExportHandler serves the master list workbook.
type ExportHandler struct {
	Exporter *export.Exporter
}

// Download handles GET /api/export.
func (h *ExportHandler) Download(w http.ResponseWriter, r *http.Request) {
	name, data, err := h.Exporter.Export(r.Context())
	if err != nil {
		operationError(w, "failed to export data", err)
		return
	}

	slog.Info("master list exported", "file", name, "bytes", len(data))

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
