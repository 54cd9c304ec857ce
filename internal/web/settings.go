package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/opmc/inventory/internal/export"
	"github.com/opmc/inventory/internal/inventory"
	"github.com/opmc/inventory/internal/model"
)

type categoryView struct {
	Category model.Category
	Options  []model.LocationOption
}

// SettingsPage handles GET /settings.
func (s *Server) SettingsPage(w http.ResponseWriter, r *http.Request) {
	settings := inventory.NewSettings(s.Gateway)
	page := pageData(r, "Settings", "settings")
	if err := settings.Load(r.Context()); err != nil {
		slog.Error("failed to load location options", "error", err)
		page.Error = inventory.Notice(err)
	}

	groups := settings.Groups()
	categories := make([]categoryView, 0, len(model.Categories))
	for _, c := range model.Categories {
		categories = append(categories, categoryView{Category: c, Options: groups.For(c)})
	}

	s.Templates.Render(w, "settings.html", &struct {
		PageData
		Categories []categoryView
	}{
		PageData:   page,
		Categories: categories,
	})
}

// OptionCreateSubmit handles POST /settings/options.
func (s *Server) OptionCreateSubmit(w http.ResponseWriter, r *http.Request) {
	opt, err := inventory.AddOption(r.Context(), s.Gateway, r.FormValue("category"), r.FormValue("value"))
	if err != nil {
		if inventory.IsKind(err, inventory.KindWrite) {
			slog.Error("failed to add location option", "error", err)
		} else {
			slog.Warn("rejected location option", "error", err)
		}
		redirectWith(w, r, "/settings", url.Values{"error": {inventory.Notice(err)}})
		return
	}

	slog.Info("location option added", "category", opt.Category, "value", opt.Value)
	redirectWith(w, r, "/settings", url.Values{"notice": {inventory.NoticeOptionAdded}})
}

// pendingDelete loads the options and starts a delete for the path id.
func (s *Server) pendingDelete(w http.ResponseWriter, r *http.Request) (*inventory.PendingDelete, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, false
	}

	settings := inventory.NewSettings(s.Gateway)
	if err := settings.Load(r.Context()); err != nil {
		slog.Error("failed to load location options", "error", err)
		redirectWith(w, r, "/settings", url.Values{"error": {inventory.Notice(err)}})
		return nil, false
	}

	pending, err := settings.RequestDelete(id)
	if err != nil {
		http.Error(w, "option not found", http.StatusNotFound)
		return nil, false
	}
	return pending, true
}

// OptionDeletePage handles GET /settings/options/{id}/delete.
func (s *Server) OptionDeletePage(w http.ResponseWriter, r *http.Request) {
	pending, ok := s.pendingDelete(w, r)
	if !ok {
		return
	}

	s.Templates.Render(w, "confirm_delete.html", &struct {
		PageData
		Prompt    string
		ActionURL string
	}{
		PageData:  pageData(r, "Confirm Delete", "settings"),
		Prompt:    pending.Prompt(),
		ActionURL: fmt.Sprintf("/settings/options/%d/delete", pending.Option.ID),
	})
}

// OptionDeleteSubmit handles POST /settings/options/{id}/delete. Only
// confirm=yes deletes.
func (s *Server) OptionDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	pending, ok := s.pendingDelete(w, r)
	if !ok {
		return
	}

	deleted, err := pending.Resolve(r.Context(), r.FormValue("confirm") == "yes")
	if err != nil {
		slog.Error("failed to delete location option", "error", err)
		redirectWith(w, r, "/settings", url.Values{"error": {inventory.Notice(err)}})
		return
	}
	if !deleted {
		redirectWith(w, r, "/settings", nil)
		return
	}

	slog.Info("location option deleted", "category", pending.Option.Category, "value", pending.Option.Value)
	redirectWith(w, r, "/settings", url.Values{"notice": {inventory.NoticeOptionDeleted}})
}

// ExportDownload handles GET /settings/export.
func (s *Server) ExportDownload(w http.ResponseWriter, r *http.Request) {
	name, data, err := s.Exporter.Export(r.Context())
	if err != nil {
		slog.Error("failed to export data", "error", err)
		redirectWith(w, r, "/settings", url.Values{"error": {inventory.Notice(err)}})
		return
	}

	slog.Info("master list exported", "file", name, "bytes", len(data))

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write export response", "error", err)
	}
}
