package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/opmc/inventory/internal/model"
)

// EditorState is the lifecycle of a quick location editor.
type EditorState int

// Editor states.
const (
	EditorOpen EditorState = iota
	EditorSaved
	EditorCancelled
)

// Editor holds the location draft for one medicine. At most one category
// picker is active at a time.
type Editor struct {
	medicine model.Medicine
	options  model.OptionGroups
	draft    model.Location
	active   model.Category
	state    EditorState

	// Now stamps saved locations. Defaults to time.Now.
	Now func() time.Time
}

// NewEditor opens an editor on a snapshot of med with the given options.
// The draft starts from the stored location.
func NewEditor(med model.Medicine, options model.OptionGroups) *Editor {
	return &Editor{
		medicine: med,
		options:  options,
		draft:    med.Location,
		Now:      time.Now,
	}
}

// OpenEditor fetches the option lists fresh and opens an editor on med. If the
// options cannot be loaded the editor is still returned, with empty pickers,
// together with the fetch error.
func OpenEditor(ctx context.Context, gw Gateway, med model.Medicine) (*Editor, error) {
	options, err := FetchOptions(ctx, gw)
	return NewEditor(med, options), err
}

// Medicine returns the snapshot the editor was opened on.
func (e *Editor) Medicine() model.Medicine { return e.medicine }

// Options returns the option lists fetched at open.
func (e *Editor) Options() model.OptionGroups { return e.options }

// Draft returns the current draft.
func (e *Editor) Draft() model.Location { return e.draft }

// Active returns the category whose picker is open, or "".
func (e *Editor) Active() model.Category { return e.active }

// State returns the editor lifecycle state.
func (e *Editor) State() EditorState { return e.state }

// IsOpen reports whether the editor still accepts changes.
func (e *Editor) IsOpen() bool { return e.state == EditorOpen }

// Toggle opens the picker for c, closing any other. Toggling the open picker
// closes it.
func (e *Editor) Toggle(c model.Category) {
	if !e.IsOpen() {
		return
	}
	if e.active == c {
		e.active = ""
		return
	}
	e.active = c
}

// Choose sets the draft value for c and closes the picker. The value must be
// one of the category's options.
func (e *Editor) Choose(c model.Category, value string) error {
	if !e.IsOpen() {
		return ErrClosed
	}
	if !e.options.Has(c, value) {
		return fmt.Errorf("%s %q: %w", c, value, ErrNotAnOption)
	}
	e.draft = e.draft.With(c, value)
	e.active = ""
	return nil
}

// Restore reapplies a draft carried outside the editor, such as in a URL.
// Fields equal to the stored value are accepted as-is; changed fields must be
// configured options.
func (e *Editor) Restore(draft model.Location) error {
	for _, c := range model.Categories {
		v := draft.Get(c)
		if v == e.medicine.Location.Get(c) {
			e.draft = e.draft.With(c, v)
			continue
		}
		if err := e.Choose(c, v); err != nil {
			return err
		}
	}
	return nil
}

// Preview returns the complete location code of the draft. ok is false while
// any category is unset.
func (e *Editor) Preview() (code string, ok bool) {
	return e.draft.Code()
}

// Save persists the draft, complete or not. On failure the editor stays open
// with the draft intact.
func (e *Editor) Save(ctx context.Context, gw Gateway) error {
	if !e.IsOpen() {
		return ErrClosed
	}
	return e.Finish(SaveLocation(ctx, gw, e.medicine.ID, e.draft, e.Now()))
}

// Finish applies the result of a save performed elsewhere with the draft.
func (e *Editor) Finish(err error) error {
	if err != nil {
		return err
	}
	e.state = EditorSaved
	e.active = ""
	return nil
}

// Cancel discards the draft.
func (e *Editor) Cancel() {
	if !e.IsOpen() {
		return
	}
	e.state = EditorCancelled
	e.active = ""
	e.draft = e.medicine.Location
}
