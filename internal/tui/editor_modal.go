package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/opmc/inventory/internal/model"
)

func (m appModel) rowCategory() model.Category {
	return model.Categories[m.row]
}

func (m appModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ed := m.editor
	if ed == nil {
		m.modal = modalNone
		return m, nil
	}
	// The save result owns the editor until it arrives.
	if m.saving {
		return m, nil
	}

	if active := ed.Active(); active != "" {
		opts := ed.Options().For(active)
		switch {
		case key.Matches(msg, keys.Up):
			if m.optCursor > 0 {
				m.optCursor--
			}
		case key.Matches(msg, keys.Down):
			if m.optCursor < len(opts)-1 {
				m.optCursor++
			}
		case key.Matches(msg, keys.Open):
			if len(opts) == 0 {
				ed.Toggle(active)
				return m, nil
			}
			if err := ed.Choose(active, opts[m.optCursor].Value); err != nil {
				return m, m.fail(err)
			}
		case msg.Type == tea.KeyEsc:
			ed.Toggle(active)
		case key.Matches(msg, keys.Save):
			return m.saveEditor()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Up):
		if m.row > 0 {
			m.row--
		}
	case key.Matches(msg, keys.Down):
		if m.row < len(model.Categories)-1 {
			m.row++
		}
	case key.Matches(msg, keys.Open):
		c := m.rowCategory()
		ed.Toggle(c)
		m.optCursor = 0
		for i, o := range ed.Options().For(c) {
			if o.Value == ed.Draft().Get(c) {
				m.optCursor = i
			}
		}
	case key.Matches(msg, keys.Save):
		return m.saveEditor()
	case msg.Type == tea.KeyEsc:
		ed.Cancel()
		m.editor = nil
		m.modal = modalNone
	}
	return m, nil
}

func (m appModel) saveEditor() (tea.Model, tea.Cmd) {
	if m.saving || !m.editor.IsOpen() {
		return m, nil
	}
	m.saving = true
	ed := m.editor
	return m, saveLocationCmd(m.gw, ed.Medicine().ID, ed.Draft(), ed.Now())
}

func (m appModel) viewEditor() string {
	ed := m.editor
	if ed == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render("Set Location"))
	b.WriteString("\n")
	b.WriteString(ed.Medicine().Name)
	b.WriteString("\n\n")

	draft := ed.Draft()
	for i, c := range model.Categories {
		value := draft.Get(c)
		if value == "" {
			value = styleMuted.Render("Select " + c.Title())
		}
		line := fmt.Sprintf("%-22s %s", c.Label(), value)
		if i == m.row {
			line = styleSelected.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")

		if ed.Active() != c {
			continue
		}
		opts := ed.Options().For(c)
		if len(opts) == 0 {
			b.WriteString(styleMuted.Render("      No options configured"))
			b.WriteString("\n")
		}
		for j, o := range opts {
			if j == m.optCursor {
				b.WriteString("    " + styleSelected.Render("• "+o.Value))
			} else {
				b.WriteString("      " + o.Value)
			}
			b.WriteString("\n")
		}
	}

	if code, ok := ed.Preview(); ok {
		b.WriteString("\n")
		b.WriteString("Location Code: " + stylePreview.Render(code))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.saving {
		b.WriteString(styleMuted.Render("Saving..."))
	} else {
		b.WriteString(styleMuted.Render(helpLine(keys.Open, keys.Save) + "   esc: cancel"))
	}

	w := m.width - 4
	if w > 60 {
		w = 60
	}
	return styleModal.Width(w).Render(b.String())
}
