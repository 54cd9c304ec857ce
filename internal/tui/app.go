// Package tui is the interactive terminal front end: an inventory screen with
// a quick location editor and a settings screen for location options.
package tui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/opmc/inventory/internal/export"
	"github.com/opmc/inventory/internal/inventory"
)

const defaultToastTTL = 2 * time.Second

// Options configures the terminal UI.
type Options struct {
	Gateway  inventory.Gateway
	Exporter *export.Exporter
	// ExportDir receives exported workbooks. Defaults to the working directory.
	ExportDir string
}

// Run starts the terminal UI and blocks until the user quits.
func Run(opts Options) error {
	m := newAppModel(opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

type toast struct {
	text string
	ok   bool
}

type appModel struct {
	gw        inventory.Gateway
	exporter  *export.Exporter
	exportDir string

	width  int
	height int

	view  view
	modal modal

	// Inventory screen.
	list      *inventory.List
	tab       inventory.Tab
	search    textinput.Model
	itemsList list.Model

	// Quick location editor. row is the highlighted category, optCursor
	// the highlighted value inside the open picker.
	editor    *inventory.Editor
	row       int
	optCursor int
	saving    bool

	// Settings screen.
	settings       *inventory.Settings
	settingsLoaded bool
	settingsCursor int
	addCategory    int
	addInput       textinput.Model
	pendingDelete  *inventory.PendingDelete
	exporting      bool

	toast    *toast
	toastSeq int
	toastTTL time.Duration
}

func newAppModel(opts Options) appModel {
	dir := opts.ExportDir
	if dir == "" {
		dir = "."
	}
	m := appModel{
		gw:        opts.Gateway,
		exporter:  opts.Exporter,
		exportDir: dir,
		width:     80,
		height:    24,
		view:      viewInventory,
		list:      inventory.NewList(opts.Gateway),
		tab:       inventory.TabAll,
		settings:  inventory.NewSettings(opts.Gateway),
		toastTTL:  defaultToastTTL,
	}

	m.search = newInput("Search medicines...", 100)
	m.addInput = newInput("New value", 60)
	m.itemsList = newMedicineList()
	m.resize()
	return m
}

func (m appModel) Init() tea.Cmd {
	m.list.Begin()
	return loadMedicinesCmd(m.gw)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case toastDoneMsg:
		if msg.seq == m.toastSeq {
			m.toast = nil
		}
		return m, nil

	case medicinesLoadedMsg:
		if err := m.list.Finish(msg.items, msg.err); err != nil {
			slog.Error("failed to load medicines", "error", err)
			return m, m.fail(err)
		}
		m.refreshItems()
		return m, nil

	case editorOpenedMsg:
		m.editor = msg.editor
		m.modal = modalEditor
		m.row = 0
		m.optCursor = 0
		if msg.err != nil {
			slog.Error("failed to load location options", "error", msg.err)
			return m, m.fail(msg.err)
		}
		return m, nil

	case locationSavedMsg:
		m.saving = false
		if m.editor == nil {
			return m, nil
		}
		if err := m.editor.Finish(msg.err); err != nil {
			slog.Error("failed to update location", "error", err)
			return m, m.fail(err)
		}
		slog.Info("location updated", "medicine", m.editor.Medicine().Name)
		m.editor = nil
		m.modal = modalNone
		return m, tea.Batch(m.notify(inventory.NoticeLocationUpdated), m.reloadMedicines())

	case optionsLoadedMsg:
		if err := m.settings.Finish(msg.groups, msg.err); err != nil {
			slog.Error("failed to load location options", "error", err)
			return m, m.fail(err)
		}
		m.settingsLoaded = true
		m.clampSettingsCursor()
		return m, nil

	case optionAddedMsg:
		if msg.err != nil {
			slog.Error("failed to add location option", "error", msg.err)
			return m, m.fail(msg.err)
		}
		slog.Info("location option added", "category", msg.option.Category, "value", msg.option.Value)
		m.addInput.SetValue("")
		m.addInput.Blur()
		m.modal = modalNone
		return m, tea.Batch(m.notify(inventory.NoticeOptionAdded), loadOptionsCmd(m.gw))

	case optionDeletedMsg:
		if msg.err != nil {
			slog.Error("failed to delete location option", "error", msg.err)
			return m, m.fail(msg.err)
		}
		slog.Info("location option deleted", "category", msg.option.Category, "value", msg.option.Value)
		return m, tea.Batch(m.notify(inventory.NoticeOptionDeleted), loadOptionsCmd(m.gw))

	case exportDoneMsg:
		m.exporting = false
		if msg.err != nil {
			slog.Error("failed to export data", "error", msg.err)
			return m, m.fail(msg.err)
		}
		slog.Info("master list exported", "path", msg.path)
		return m, m.notify(inventory.NoticeExported + " " + msg.path)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.modal {
		case modalEditor:
			return m.updateEditor(msg)
		case modalAddOption:
			return m.updateAddOption(msg)
		case modalConfirmDelete:
			return m.updateConfirmDelete(msg)
		}
		if m.view == viewSettings {
			return m.updateSettings(msg)
		}
		return m.updateInventory(msg)
	}
	return m, nil
}

func (m appModel) View() string {
	var body string
	switch m.view {
	case viewSettings:
		body = m.viewSettings()
	default:
		body = m.viewInventory()
	}

	switch m.modal {
	case modalEditor:
		body = m.viewEditor()
	case modalAddOption:
		body = m.viewAddOption()
	case modalConfirmDelete:
		body = m.viewConfirmDelete()
	}

	parts := []string{body}
	if m.toast != nil {
		st := styleToastFail
		if m.toast.ok {
			st = styleToastSuccess
		}
		parts = append(parts, "", st.Render(m.toast.text))
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(strings.Join(parts, "\n"))
}

// notify shows a success toast that expires on its own.
func (m *appModel) notify(text string) tea.Cmd {
	return m.showToast(text, true)
}

// fail shows the user notice for err.
func (m *appModel) fail(err error) tea.Cmd {
	return m.showToast(inventory.Notice(err), false)
}

func (m *appModel) showToast(text string, ok bool) tea.Cmd {
	m.toastSeq++
	m.toast = &toast{text: text, ok: ok}
	seq := m.toastSeq
	return tea.Tick(m.toastTTL, func(time.Time) tea.Msg { return toastDoneMsg{seq: seq} })
}

func (m *appModel) reloadMedicines() tea.Cmd {
	m.list.Begin()
	return loadMedicinesCmd(m.gw)
}

func (m *appModel) resize() {
	h := m.height - 8
	if h < 3 {
		h = 3
	}
	m.itemsList.SetSize(m.width-2, h)
	m.search.Width = m.width - 6
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 40
	in.Cursor.SetMode(cursor.CursorStatic)
	return in
}
