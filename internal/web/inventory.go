package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/opmc/inventory/internal/inventory"
	"github.com/opmc/inventory/internal/model"
)

type tabView struct {
	Tab    inventory.Tab
	Title  string
	Count  int
	Active bool
	URL    string
}

type itemView struct {
	Medicine model.Medicine
	Complete bool
	EditURL  string
}

type optionLink struct {
	Value    string
	Selected bool
	URL      string
}

type pickerView struct {
	Category  model.Category
	Value     string
	Open      bool
	ToggleURL string
	Options   []optionLink
}

type editorView struct {
	Medicine   model.Medicine
	Draft      model.Location
	Pickers    []pickerView
	Preview    string
	HasPreview bool
	Error      string
	SaveURL    string
	CancelURL  string
}

type inventoryPage struct {
	PageData
	Search string
	Tab    inventory.Tab
	Tabs   []tabView
	Items  []itemView
	Editor *editorView
}

// listState is the search and tab carried through every inventory link.
type listState struct {
	Search string
	Tab    inventory.Tab
}

func parseListState(r *http.Request) (listState, error) {
	tab, err := inventory.ParseTab(r.FormValue("tab"))
	if err != nil {
		return listState{}, err
	}
	return listState{Search: r.FormValue("q"), Tab: tab}, nil
}

func (st listState) values() url.Values {
	q := url.Values{}
	if st.Search != "" {
		q.Set("q", st.Search)
	}
	if st.Tab != inventory.TabAll {
		q.Set("tab", string(st.Tab))
	}
	return q
}

func (st listState) url(path string) string {
	if q := st.values(); len(q) > 0 {
		return path + "?" + q.Encode()
	}
	return path
}

// editorURL links to the location modal with the given draft and open picker.
func (st listState) editorURL(id int64, draft model.Location, open model.Category) string {
	q := st.values()
	for _, c := range model.Categories {
		q.Set(string(c), draft.Get(c))
	}
	if open != "" {
		q.Set("open", string(open))
	}
	return fmt.Sprintf("/medicines/%d/location?%s", id, q.Encode())
}

// draftFrom reads a location draft from form values. Missing keys keep the
// stored value.
func draftFrom(form url.Values, stored model.Location) model.Location {
	draft := stored
	for _, c := range model.Categories {
		if _, ok := form[string(c)]; ok {
			draft = draft.With(c, form.Get(string(c)))
		}
	}
	return draft
}

func (s *Server) inventoryPage(r *http.Request, st listState, list *inventory.List) *inventoryPage {
	counts := list.Counts(st.Search)
	page := &inventoryPage{
		PageData: pageData(r, "Inventory", "inventory"),
		Search:   st.Search,
		Tab:      st.Tab,
	}

	for _, t := range inventory.Tabs {
		page.Tabs = append(page.Tabs, tabView{
			Tab:    t,
			Title:  t.Title(),
			Count:  counts.For(t),
			Active: t == st.Tab,
			URL:    listState{Search: st.Search, Tab: t}.url("/"),
		})
	}

	for _, m := range list.Visible(st.Search, st.Tab) {
		page.Items = append(page.Items, itemView{
			Medicine: m,
			Complete: m.Location.Complete(),
			EditURL:  st.editorURL(m.ID, m.Location, ""),
		})
	}
	return page
}

func (st listState) editorView(ed *inventory.Editor) *editorView {
	med := ed.Medicine()
	draft := ed.Draft()
	v := &editorView{
		Medicine:  med,
		Draft:     draft,
		SaveURL:   st.url(fmt.Sprintf("/medicines/%d/location", med.ID)),
		CancelURL: st.url("/"),
	}
	v.Preview, v.HasPreview = ed.Preview()

	for _, c := range model.Categories {
		p := pickerView{
			Category: c,
			Value:    draft.Get(c),
			Open:     ed.Active() == c,
		}
		if p.Open {
			p.ToggleURL = st.editorURL(med.ID, draft, "")
		} else {
			p.ToggleURL = st.editorURL(med.ID, draft, c)
		}
		for _, o := range ed.Options().For(c) {
			p.Options = append(p.Options, optionLink{
				Value:    o.Value,
				Selected: o.Value == p.Value,
				URL:      st.editorURL(med.ID, draft.With(c, o.Value), ""),
			})
		}
		v.Pickers = append(v.Pickers, p)
	}
	return v
}

// InventoryPage handles GET /.
func (s *Server) InventoryPage(w http.ResponseWriter, r *http.Request) {
	st, err := parseListState(r)
	if err != nil {
		http.Error(w, "invalid tab", http.StatusBadRequest)
		return
	}

	list := inventory.NewList(s.Gateway)
	loadErr := list.Load(r.Context())
	if loadErr != nil {
		slog.Error("failed to load medicines", "error", loadErr)
	}

	page := s.inventoryPage(r, st, list)
	if loadErr != nil {
		page.Error = inventory.Notice(loadErr)
	}
	s.Templates.Render(w, "inventory.html", page)
}

// openEditor loads the list, finds the medicine named by the path, and opens
// an editor on it with the draft taken from the request. It writes the error
// response itself when the page cannot be built.
func (s *Server) openEditor(w http.ResponseWriter, r *http.Request) (*inventoryPage, *inventory.Editor, listState, bool) {
	st, err := parseListState(r)
	if err != nil {
		http.Error(w, "invalid tab", http.StatusBadRequest)
		return nil, nil, st, false
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, nil, st, false
	}

	list := inventory.NewList(s.Gateway)
	if err := list.Load(r.Context()); err != nil {
		slog.Error("failed to load medicines", "error", err)
		redirectWith(w, r, "/", url.Values{"error": {inventory.Notice(err)}})
		return nil, nil, st, false
	}
	med, ok := list.Find(id)
	if !ok {
		http.Error(w, "medicine not found", http.StatusNotFound)
		return nil, nil, st, false
	}

	page := s.inventoryPage(r, st, list)
	ed, err := inventory.OpenEditor(r.Context(), s.Gateway, med)
	if err != nil {
		slog.Error("failed to load location options", "error", err)
		page.Error = inventory.Notice(err)
	}
	if err := ed.Restore(draftFrom(r.Form, med.Location)); err != nil {
		slog.Warn("discarding location draft", "medicine", med.ID, "error", err)
		page.Error = inventory.Notice(err)
	}
	return page, ed, st, true
}

// LocationPage handles GET /medicines/{id}/location.
func (s *Server) LocationPage(w http.ResponseWriter, r *http.Request) {
	page, ed, st, ok := s.openEditor(w, r)
	if !ok {
		return
	}

	if c, err := model.ParseCategory(r.FormValue("open")); err == nil {
		ed.Toggle(c)
	}

	page.Editor = st.editorView(ed)
	s.Templates.Render(w, "inventory.html", page)
}

// LocationSubmit handles POST /medicines/{id}/location.
func (s *Server) LocationSubmit(w http.ResponseWriter, r *http.Request) {
	page, ed, st, ok := s.openEditor(w, r)
	if !ok {
		return
	}
	if page.Error != "" {
		page.Editor = st.editorView(ed)
		s.Templates.Render(w, "inventory.html", page)
		return
	}

	if err := ed.Save(r.Context(), s.Gateway); err != nil {
		slog.Error("failed to update location", "medicine", ed.Medicine().ID, "error", err)
		page.Error = inventory.Notice(err)
		page.Editor = st.editorView(ed)
		s.Templates.Render(w, "inventory.html", page)
		return
	}

	slog.Info("location updated", "medicine", ed.Medicine().Name, "baris", ed.Draft().Baris,
		"rak", ed.Draft().Rak, "tingkat", ed.Draft().Tingkat, "petak", ed.Draft().Petak)

	q := st.values()
	q.Set("notice", inventory.NoticeLocationUpdated)
	redirectWith(w, r, "/", q)
}
