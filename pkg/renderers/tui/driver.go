package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// InputConfig configures a basic text input prompt.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// ConfirmConfig configures a yes/no style prompt.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// SelectConfig configures a single or multi-select prompt.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Defaults     []int // used for multi-select; indices into Options
	Help         string
	PageSize     int
}

// TextAreaConfig configures a multi-line text prompt.
type TextAreaConfig struct {
	Message string
	Default string
	Help    string
}

// PromptDriver abstracts the terminal so sessions can be tested without one
// and callers can swap implementations.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Password(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error)
	TextArea(ctx context.Context, cfg TextAreaConfig) (string, error)
	Info(ctx context.Context, msg string) error
}

type surveyDriver struct {
	out  io.Writer
	opts []survey.AskOpt
}

// NewSurveyDriver returns the interactive driver backed by survey. A nil
// writer prints informational lines to stdout.
func NewSurveyDriver(out io.Writer, opts ...survey.AskOpt) PromptDriver {
	if out == nil {
		out = os.Stdout
	}
	return &surveyDriver{out: out, opts: opts}
}

// askOne runs a single survey prompt and returns the answer as T. Select
// prompts answer with an int index and multi-selects with []int.
func askOne[T any](ctx context.Context, d *surveyDriver, prompt survey.Prompt, validator func(string) error) (T, error) {
	var answer T
	if err := ctx.Err(); err != nil {
		return answer, err
	}
	opts := append([]survey.AskOpt(nil), d.opts...)
	if validator != nil {
		opts = append(opts, survey.WithValidator(func(ans any) error {
			text, _ := ans.(string)
			return validator(text)
		}))
	}
	if err := survey.AskOne(prompt, &answer, opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return answer, ErrAborted
		}
		return answer, err
	}
	return answer, nil
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	return askOne[string](ctx, d, &survey.Input{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}, cfg.Validator)
}

// Password falls back to cfg.Default when the answer is empty, since survey
// cannot prefill a masked input.
func (d *surveyDriver) Password(ctx context.Context, cfg InputConfig) (string, error) {
	out, err := askOne[string](ctx, d, &survey.Password{Message: cfg.Message, Help: cfg.Help}, cfg.Validator)
	if err == nil && out == "" {
		out = cfg.Default
	}
	return out, err
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	return askOne[bool](ctx, d, &survey.Confirm{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}, nil)
}

func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if len(cfg.Options) == 0 {
		return -1, nil
	}
	prompt := &survey.Select{Message: cfg.Message, Options: cfg.Options, Help: cfg.Help, PageSize: cfg.PageSize}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.DefaultIndex
	}
	return askOne[int](ctx, d, prompt, nil)
}

func (d *surveyDriver) MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error) {
	if len(cfg.Options) == 0 {
		return nil, nil
	}
	prompt := &survey.MultiSelect{Message: cfg.Message, Options: cfg.Options, Help: cfg.Help, PageSize: cfg.PageSize}
	var defaults []string
	for _, idx := range cfg.Defaults {
		if idx >= 0 && idx < len(cfg.Options) {
			defaults = append(defaults, cfg.Options[idx])
		}
	}
	if len(defaults) > 0 {
		prompt.Default = defaults
	}
	return askOne[[]int](ctx, d, prompt, nil)
}

func (d *surveyDriver) TextArea(ctx context.Context, cfg TextAreaConfig) (string, error) {
	return askOne[string](ctx, d, &survey.Multiline{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}, nil)
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}
