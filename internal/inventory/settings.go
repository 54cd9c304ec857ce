package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator"

	"github.com/opmc/inventory/internal/model"
)

var validate = validator.New()

type addOptionInput struct {
	Category string `validate:"required,oneof=baris rak tingkat petak"`
	Value    string `validate:"required"`
}

// AddOption trims value and inserts it under category. It does not touch any
// in-memory option lists.
func AddOption(ctx context.Context, gw Gateway, category, value string) (*model.LocationOption, error) {
	in := addOptionInput{
		Category: strings.ToLower(strings.TrimSpace(category)),
		Value:    strings.TrimSpace(value),
	}
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "Value" {
			return nil, ErrEmptyValue
		}
		return nil, fmt.Errorf("%q: %w", category, model.ErrUnknownCategory)
	}

	opt, err := gw.CreateLocationOption(ctx, model.Category(in.Category), in.Value)
	if errors.Is(err, model.ErrDuplicateOption) {
		return nil, &Error{Kind: KindDuplicate, Op: "adding location option", Notice: "This value already exists", Err: err}
	}
	if err != nil {
		return nil, writeError("adding location option", "Failed to add option", err)
	}
	return opt, nil
}

// DeleteOption removes an option by id.
func DeleteOption(ctx context.Context, gw Gateway, id int64) error {
	if err := gw.DeleteLocationOption(ctx, id); err != nil {
		return writeError("deleting location option", "Failed to delete option", err)
	}
	return nil
}

// Settings is the option configuration screen's state.
type Settings struct {
	gw     Gateway
	groups model.OptionGroups
}

// NewSettings returns settings state reading from gw.
func NewSettings(gw Gateway) *Settings {
	return &Settings{gw: gw}
}

// Load refetches and regroups all options. On failure the previous groups
// are kept.
func (s *Settings) Load(ctx context.Context) error {
	return s.Finish(FetchOptions(ctx, s.gw))
}

// Finish applies the result of a FetchOptions call made elsewhere.
func (s *Settings) Finish(groups model.OptionGroups, err error) error {
	if err != nil {
		return err
	}
	s.groups = groups
	return nil
}

// Groups returns the loaded options.
func (s *Settings) Groups() model.OptionGroups { return s.groups }

// Add inserts a new option and reloads on success.
func (s *Settings) Add(ctx context.Context, category, value string) (*model.LocationOption, error) {
	opt, err := AddOption(ctx, s.gw, category, value)
	if err != nil {
		return nil, err
	}
	return opt, s.Load(ctx)
}

// RequestDelete starts a confirmed delete of a loaded option.
func (s *Settings) RequestDelete(id int64) (*PendingDelete, error) {
	opt, ok := s.groups.Find(id)
	if !ok {
		return nil, fmt.Errorf("location option %d: %w", id, ErrNotFound)
	}
	return &PendingDelete{Option: opt, settings: s}, nil
}

// PendingDelete is a delete waiting for the user's answer.
type PendingDelete struct {
	Option   model.LocationOption
	settings *Settings
}

// Prompt returns the confirmation question.
func (p *PendingDelete) Prompt() string {
	return DeletePrompt(p.Option)
}

// Resolve deletes the option if confirmed and reloads. Declining does nothing.
func (p *PendingDelete) Resolve(ctx context.Context, confirmed bool) (deleted bool, err error) {
	if !confirmed {
		return false, nil
	}
	if err := DeleteOption(ctx, p.settings.gw, p.Option.ID); err != nil {
		return false, err
	}
	return true, p.settings.Load(ctx)
}

// DeletePrompt is the confirmation question for deleting opt.
func DeletePrompt(opt model.LocationOption) string {
	return fmt.Sprintf("Delete %q from %s?", opt.Value, opt.Category)
}
