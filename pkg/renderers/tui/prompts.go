package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formlist/pkg/value"
)

// prompt asks for a new value for v. It reports false for variants the
// terminal cannot edit.
func prompt(ctx context.Context, driver PromptDriver, v value.Value) (value.Value, bool, error) {
	switch typed := v.(type) {
	case value.Text:
		cfg := InputConfig{Message: message(typed.Label, typed.Placeholder), Default: typed.Value}
		base := typed
		base.State = clearServerState(base.State)
		cfg.Validator = validateWith(func(s string) value.Value {
			candidate := base
			candidate.Value = s
			return candidate
		})
		var (
			raw string
			err error
		)
		if typed.Style == value.TextStylePassword {
			raw, err = driver.Password(ctx, cfg)
		} else {
			raw, err = driver.Input(ctx, cfg)
		}
		typed.Value = raw
		return typed, true, err

	case value.Note:
		raw, err := driver.TextArea(ctx, TextAreaConfig{Message: message(typed.Label, typed.Placeholder), Default: typed.Value})
		typed.Value = raw
		return typed, true, err

	case value.Integer:
		raw, err := driver.Input(ctx, InputConfig{
			Message: typed.Label,
			Default: typed.Display(),
			Validator: func(s string) error {
				if strings.TrimSpace(s) == "" {
					return nil
				}
				_, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
				return err
			},
		})
		if err != nil {
			return typed, true, err
		}
		typed.Value, typed.HasValue = 0, false
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			n, err := strconv.ParseInt(trimmed, 10, 64)
			if err != nil {
				return typed, true, fmt.Errorf("tui: %s: %w", typed.Label, err)
			}
			typed.Value, typed.HasValue = n, true
		}
		return typed, true, nil

	case value.Float:
		f, has, err := promptFloat(ctx, driver, typed.Label, typed.Display())
		typed.Value, typed.HasValue = f, has
		return typed, true, err

	case value.Stepper:
		f, _, err := promptFloat(ctx, driver, typed.Label, strconv.FormatFloat(typed.Value, 'f', -1, 64))
		typed.Value = f
		return typed, true, err

	case value.Slider:
		f, _, err := promptFloat(ctx, driver, typed.Label, strconv.FormatFloat(typed.Value, 'f', -1, 64))
		typed.Value = f
		return typed, true, err

	case value.Rating:
		options := make([]string, 0, typed.Max+1)
		for i := 0; i <= typed.Max; i++ {
			options = append(options, strconv.Itoa(i))
		}
		idx, err := driver.Select(ctx, SelectConfig{Message: typed.Label, Options: options, DefaultIndex: typed.Value})
		if idx >= 0 {
			typed.Value = idx
		}
		return typed, true, err

	case value.Toggle:
		on, err := driver.Confirm(ctx, ConfirmConfig{Message: typed.Label, Default: typed.Value})
		typed.Value = on
		return typed, true, err

	case value.Date:
		raw, err := driver.Input(ctx, InputConfig{
			Message: fmt.Sprintf("%s (%s)", typed.Label, typed.Mode.Layout()),
			Default: typed.Display(),
			Validator: func(s string) error {
				if strings.TrimSpace(s) == "" {
					return nil
				}
				_, err := time.Parse(typed.Mode.Layout(), strings.TrimSpace(s))
				return err
			},
		})
		if err != nil {
			return typed, true, err
		}
		typed.Value = time.Time{}
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			parsed, err := time.Parse(typed.Mode.Layout(), trimmed)
			if err != nil {
				return typed, true, fmt.Errorf("tui: %s: %w", typed.Label, err)
			}
			typed.Value = parsed
		}
		return typed, true, nil

	case value.Duration:
		raw, err := driver.Input(ctx, InputConfig{
			Message: typed.Label + " (e.g. 1h30m)",
			Default: typed.Display(),
			Validator: func(s string) error {
				_, err := time.ParseDuration(strings.TrimSpace(s))
				return err
			},
		})
		if err != nil {
			return typed, true, err
		}
		d, err := time.ParseDuration(strings.TrimSpace(raw))
		if err != nil {
			return typed, true, fmt.Errorf("tui: %s: %w", typed.Label, err)
		}
		typed.Value = d
		return typed, true, nil

	case value.Picker:
		if len(typed.Options) == 0 {
			return typed, false, nil
		}
		idx, err := driver.Select(ctx, SelectConfig{Message: typed.Label, Options: titles(typed.Options), DefaultIndex: typed.Selected})
		typed.Selected = idx
		return typed, true, err

	case value.Segment:
		if len(typed.Options) == 0 {
			return typed, false, nil
		}
		idx, err := driver.Select(ctx, SelectConfig{Message: typed.Label, Options: titles(typed.Options), DefaultIndex: typed.Selected})
		typed.Selected = idx
		return typed, true, err

	case value.ListSelection:
		if len(typed.Options) == 0 {
			return typed, false, nil
		}
		if !typed.Multiple {
			current := -1
			if len(typed.Selected) > 0 {
				current = typed.Selected[0]
			}
			idx, err := driver.Select(ctx, SelectConfig{Message: typed.Label, Options: titles(typed.Options), DefaultIndex: current})
			typed.Selected = nil
			if idx >= 0 {
				typed.Selected = []int{idx}
			}
			return typed, true, err
		}
		chosen, err := driver.MultiSelect(ctx, SelectConfig{Message: typed.Label, Options: titles(typed.Options), Defaults: typed.Selected})
		typed.Selected = chosen
		return typed, true, err

	case value.Color:
		raw, err := driver.Input(ctx, InputConfig{Message: typed.Label + " (#rrggbb)", Default: typed.Value})
		typed.Value = raw
		return typed, true, err

	case value.Custom:
		raw, err := driver.Input(ctx, InputConfig{Message: typed.Label, Default: typed.Value})
		typed.Value = raw
		return typed, true, err

	default:
		return v, false, nil
	}
}

func promptFloat(ctx context.Context, driver PromptDriver, label, current string) (float64, bool, error) {
	raw, err := driver.Input(ctx, InputConfig{
		Message: label,
		Default: current,
		Validator: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return nil
			}
			_, err := parseFinite(s)
			return err
		},
	})
	if err != nil {
		return 0, false, err
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false, nil
	}
	f, err := parseFinite(trimmed)
	if err != nil {
		return 0, false, fmt.Errorf("tui: %s: %w", label, err)
	}
	return f, true, nil
}

// parseFinite parses a float and refuses NaN and the infinities.
func parseFinite(raw string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a finite number", raw)
	}
	return f, nil
}

// validateWith rejects input whose resulting value fails validation for a
// reason other than being empty.
func validateWith(build func(string) value.Value) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		if msgs := build(s).Validate(); len(msgs) > 0 {
			return errors.New(msgs[0])
		}
		return nil
	}
}

// clearServerState drops errors attached from outside, such as a server
// rejection, which an edit supersedes.
func clearServerState(state value.State) value.State {
	state.Invalid = false
	state.Errors = nil
	return state
}

func message(label, placeholder string) string {
	if placeholder == "" {
		return label
	}
	return fmt.Sprintf("%s (%s)", label, placeholder)
}

func titles(options []value.Option) []string {
	out := make([]string, 0, len(options))
	for _, opt := range options {
		out = append(out, opt.Title)
	}
	return out
}
