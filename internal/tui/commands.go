package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opmc/inventory/internal/export"
	"github.com/opmc/inventory/internal/inventory"
	"github.com/opmc/inventory/internal/model"
)

// Every gateway call runs off the update loop and reports back as a message.

func loadMedicinesCmd(gw inventory.Gateway) tea.Cmd {
	return func() tea.Msg {
		items, err := inventory.FetchMedicines(context.Background(), gw)
		return medicinesLoadedMsg{items: items, err: err}
	}
}

func loadOptionsCmd(gw inventory.Gateway) tea.Cmd {
	return func() tea.Msg {
		groups, err := inventory.FetchOptions(context.Background(), gw)
		return optionsLoadedMsg{groups: groups, err: err}
	}
}

func openEditorCmd(gw inventory.Gateway, med model.Medicine) tea.Cmd {
	return func() tea.Msg {
		ed, err := inventory.OpenEditor(context.Background(), gw, med)
		return editorOpenedMsg{editor: ed, err: err}
	}
}

func saveLocationCmd(gw inventory.Gateway, id int64, draft model.Location, at time.Time) tea.Cmd {
	return func() tea.Msg {
		return locationSavedMsg{err: inventory.SaveLocation(context.Background(), gw, id, draft, at)}
	}
}

func addOptionCmd(gw inventory.Gateway, category model.Category, value string) tea.Cmd {
	return func() tea.Msg {
		opt, err := inventory.AddOption(context.Background(), gw, string(category), value)
		return optionAddedMsg{option: opt, err: err}
	}
}

func deleteOptionCmd(gw inventory.Gateway, opt model.LocationOption) tea.Cmd {
	return func() tea.Msg {
		return optionDeletedMsg{option: opt, err: inventory.DeleteOption(context.Background(), gw, opt.ID)}
	}
}

func exportCmd(exp *export.Exporter, dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := exp.ExportFile(context.Background(), dir)
		return exportDoneMsg{path: path, err: err}
	}
}
