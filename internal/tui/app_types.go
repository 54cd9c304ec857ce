package tui

import (
	"github.com/opmc/inventory/internal/inventory"
	"github.com/opmc/inventory/internal/model"
)

type view int

const (
	viewInventory view = iota
	viewSettings
)

type modal int

const (
	modalNone modal = iota
	modalEditor
	modalAddOption
	modalConfirmDelete
)

type medicinesLoadedMsg struct {
	items []model.Medicine
	err   error
}

type optionsLoadedMsg struct {
	groups model.OptionGroups
	err    error
}

type editorOpenedMsg struct {
	editor *inventory.Editor
	err    error
}

type locationSavedMsg struct{ err error }

type optionAddedMsg struct {
	option *model.LocationOption
	err    error
}

type optionDeletedMsg struct {
	option model.LocationOption
	err    error
}

type exportDoneMsg struct {
	path string
	err  error
}

type toastDoneMsg struct{ seq int }
