package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/opmc/inventory/internal/inventory"
	"github.com/opmc/inventory/internal/model"
)

type medicineItem struct {
	medicine model.Medicine
}

func (i medicineItem) FilterValue() string { return i.medicine.Name }
func (i medicineItem) Title() string       { return i.medicine.Name }
func (i medicineItem) Description() string { return inventory.LocationLabel(i.medicine) }

type medicineDelegate struct{}

func (d medicineDelegate) Height() int                             { return 1 }
func (d medicineDelegate) Spacing() int                            { return 0 }
func (d medicineDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d medicineDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(medicineItem)
	if !ok {
		return
	}

	name := it.medicine.Name
	prefix := "  "
	if index == m.Index() {
		prefix = "> "
		name = styleSelected.Render(name)
	}

	tag := styleTagMissing
	if it.medicine.Location.Complete() {
		tag = styleTagComplete
	}
	label := tag.Render(inventory.LocationLabel(it.medicine))

	gap := m.Width() - lipgloss.Width(prefix+it.medicine.Name) - lipgloss.Width(label)
	if gap < 1 {
		gap = 1
	}
	fmt.Fprint(w, prefix+name+strings.Repeat(" ", gap)+label)
}

func newMedicineList() list.Model {
	l := list.New(nil, medicineDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

// refreshItems re-derives the visible list from the loaded collection.
func (m *appModel) refreshItems() {
	visible := m.list.Visible(m.search.Value(), m.tab)
	items := make([]list.Item, 0, len(visible))
	for _, med := range visible {
		items = append(items, medicineItem{medicine: med})
	}
	m.itemsList.SetItems(items)
	if m.itemsList.Index() >= len(items) {
		m.itemsList.Select(0)
	}
}

func (m appModel) selectedMedicine() (model.Medicine, bool) {
	it, ok := m.itemsList.SelectedItem().(medicineItem)
	if !ok {
		return model.Medicine{}, false
	}
	return it.medicine, true
}

func (m *appModel) cycleTab(step int) {
	idx := 0
	for i, t := range inventory.Tabs {
		if t == m.tab {
			idx = i
		}
	}
	n := len(inventory.Tabs)
	m.tab = inventory.Tabs[(idx+step+n)%n]
	m.refreshItems()
}

func (m appModel) updateInventory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.search.Focused() {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.refreshItems()
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Search):
		return m, m.search.Focus()
	case key.Matches(msg, keys.NextTab):
		m.cycleTab(1)
		return m, nil
	case key.Matches(msg, keys.PrevTab):
		m.cycleTab(-1)
		return m, nil
	case key.Matches(msg, keys.Reload):
		return m, m.reloadMedicines()
	case key.Matches(msg, keys.Settings):
		m.view = viewSettings
		return m, loadOptionsCmd(m.gw)
	case key.Matches(msg, keys.Open):
		med, ok := m.selectedMedicine()
		if !ok {
			return m, nil
		}
		return m, openEditorCmd(m.gw, med)
	}

	var cmd tea.Cmd
	m.itemsList, cmd = m.itemsList.Update(msg)
	return m, cmd
}

func (m appModel) viewInventory() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("OPMC Inventory"))
	b.WriteString("\n\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	counts := m.list.Counts(m.search.Value())
	tabs := make([]string, 0, len(inventory.Tabs))
	for _, t := range inventory.Tabs {
		label := fmt.Sprintf("%s (%d)", t.Title(), counts.For(t))
		if t == m.tab {
			tabs = append(tabs, styleTabActive.Render(label))
		} else {
			tabs = append(tabs, styleTab.Render(label))
		}
	}
	b.WriteString(strings.Join(tabs, "   "))
	b.WriteString("\n\n")

	switch {
	case m.list.Loading():
		b.WriteString(styleMuted.Render("Loading..."))
	case len(m.itemsList.Items()) == 0:
		b.WriteString(styleMuted.Render("No medicines found"))
	default:
		b.WriteString(m.itemsList.View())
	}
	b.WriteString("\n\n")
	b.WriteString(styleMuted.Render(helpLine(keys.Search, keys.NextTab, keys.Open, keys.Settings, keys.Reload, keys.Quit)))
	return b.String()
}
