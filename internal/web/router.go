package web

import (
	"net/http"
	"time"

	"github.com/opmc/inventory/internal/export"
	"github.com/opmc/inventory/internal/inventory"
	webembed "github.com/opmc/inventory/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(gw inventory.Gateway, exporter *export.Exporter) (http.Handler, error) {
	assets, err := webembed.Load()
	if err != nil {
		return nil, err
	}
	var loc *time.Location
	if exporter != nil {
		loc = exporter.Location
	}
	templates, err := LoadTemplates(assets.Templates, loc)
	if err != nil {
		return nil, err
	}

	s := &Server{
		Gateway:   gw,
		Exporter:  exporter,
		Templates: templates,
	}

	mux := http.NewServeMux()

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(assets.Static))))

	// Inventory screen and the quick location modal.
	mux.HandleFunc("GET /{$}", s.InventoryPage)
	mux.HandleFunc("GET /medicines/{id}/location", s.LocationPage)
	mux.HandleFunc("POST /medicines/{id}/location", s.LocationSubmit)

	// Settings screen.
	mux.HandleFunc("GET /settings", s.SettingsPage)
	mux.HandleFunc("POST /settings/options", s.OptionCreateSubmit)
	mux.HandleFunc("GET /settings/options/{id}/delete", s.OptionDeletePage)
	mux.HandleFunc("POST /settings/options/{id}/delete", s.OptionDeleteSubmit)
	mux.HandleFunc("GET /settings/export", s.ExportDownload)

	return mux, nil
}
