package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/opmc/inventory/internal/model"
)

// settingsRow is a category heading (option nil) or one of its values.
type settingsRow struct {
	category model.Category
	option   *model.LocationOption
}

func (m appModel) settingsRows() []settingsRow {
	groups := m.settings.Groups()
	var rows []settingsRow
	for _, c := range model.Categories {
		rows = append(rows, settingsRow{category: c})
		for _, o := range groups.For(c) {
			rows = append(rows, settingsRow{category: c, option: &o})
		}
	}
	return rows
}

func (m *appModel) clampSettingsCursor() {
	n := len(m.settingsRows())
	if m.settingsCursor >= n {
		m.settingsCursor = n - 1
	}
	if m.settingsCursor < 0 {
		m.settingsCursor = 0
	}
}

func (m appModel) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.settingsRows()
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Back):
		m.view = viewInventory
		return m, m.reloadMedicines()
	case key.Matches(msg, keys.Up):
		if m.settingsCursor > 0 {
			m.settingsCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.settingsCursor < len(rows)-1 {
			m.settingsCursor++
		}
	case key.Matches(msg, keys.Reload):
		return m, loadOptionsCmd(m.gw)
	case key.Matches(msg, keys.Export):
		if m.exporting || m.exporter == nil {
			return m, nil
		}
		m.exporting = true
		return m, exportCmd(m.exporter, m.exportDir)
	case key.Matches(msg, keys.Add), key.Matches(msg, keys.Open) && m.onHeading(rows):
		m.addCategory = 0
		if len(rows) > 0 {
			for i, c := range model.Categories {
				if c == rows[m.settingsCursor].category {
					m.addCategory = i
				}
			}
		}
		m.modal = modalAddOption
		return m, m.addInput.Focus()
	case key.Matches(msg, keys.Delete), key.Matches(msg, keys.Open):
		if len(rows) == 0 || rows[m.settingsCursor].option == nil {
			return m, nil
		}
		pending, err := m.settings.RequestDelete(rows[m.settingsCursor].option.ID)
		if err != nil {
			return m, m.fail(err)
		}
		m.pendingDelete = pending
		m.modal = modalConfirmDelete
	}
	return m, nil
}

func (m appModel) onHeading(rows []settingsRow) bool {
	return len(rows) > 0 && rows[m.settingsCursor].option == nil
}

func (m appModel) updateAddOption(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.addInput.SetValue("")
		m.addInput.Blur()
		m.modal = modalNone
		return m, nil
	case tea.KeyTab:
		m.addCategory = (m.addCategory + 1) % len(model.Categories)
		return m, nil
	case tea.KeyShiftTab:
		m.addCategory = (m.addCategory + len(model.Categories) - 1) % len(model.Categories)
		return m, nil
	case tea.KeyEnter:
		return m, addOptionCmd(m.gw, model.Categories[m.addCategory], m.addInput.Value())
	}

	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	return m, cmd
}

func (m appModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pending := m.pendingDelete
	switch {
	case key.Matches(msg, keys.Yes):
		m.pendingDelete = nil
		m.modal = modalNone
		if pending == nil {
			return m, nil
		}
		return m, deleteOptionCmd(m.gw, pending.Option)
	case key.Matches(msg, keys.No):
		m.pendingDelete = nil
		m.modal = modalNone
	}
	return m, nil
}

func (m appModel) viewSettings() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Settings"))
	b.WriteString("\n\n")

	if !m.settingsLoaded {
		b.WriteString(styleMuted.Render("Loading..."))
		b.WriteString("\n")
	}

	for i, row := range m.settingsRows() {
		cursor := "  "
		if i == m.settingsCursor {
			cursor = styleSelected.Render("> ")
		}
		if row.option == nil {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(cursor + styleTitle.Render(row.category.Label()))
		} else {
			b.WriteString(cursor + "  " + row.option.Value)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.exporting {
		b.WriteString(styleMuted.Render("Exporting..."))
		b.WriteString("\n")
	}
	b.WriteString(styleMuted.Render(helpLine(keys.Add, keys.Delete, keys.Export, keys.Reload, keys.Back)))
	return b.String()
}

func (m appModel) viewAddOption() string {
	c := model.Categories[m.addCategory]
	var b strings.Builder
	b.WriteString(styleTitle.Render("Add " + c.Label()))
	b.WriteString("\n\n")
	b.WriteString(m.addInput.View())
	b.WriteString("\n\n")
	b.WriteString(styleMuted.Render("enter: add   tab: change category   esc: cancel"))
	return styleModal.Render(b.String())
}

func (m appModel) viewConfirmDelete() string {
	if m.pendingDelete == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(styleDanger.Render("Confirm Delete"))
	b.WriteString("\n\n")
	b.WriteString(m.pendingDelete.Prompt())
	b.WriteString("\n\n")
	b.WriteString(styleMuted.Render("y/enter: delete   n/esc: cancel"))
	return styleModal.Render(b.String())
}
