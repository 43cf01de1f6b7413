package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formlist/pkg/form"
	"github.com/goliatone/go-formlist/pkg/present"
	"github.com/goliatone/go-formlist/pkg/value"
)

// Session fills a form interactively. It drives a Presenter over a Surface:
// every answer goes through Presenter.ApplyEdit, so the surface sees the
// same change scripts a graphical surface would.
type Session struct {
	presenter *present.Presenter
	driver    PromptDriver
	theme     Theme
	logger    *zap.Logger
	maxPasses int
	confirm   bool
}

// NewSession binds ds to a printing Surface and returns a session over it.
func NewSession(ds *form.DataSource, opts ...Option) (*Session, error) {
	cfg := newConfig(opts)
	surface := &Surface{out: cfg.out, theme: cfg.theme, logger: cfg.logger}
	presenterOpts := append([]present.Option{present.WithLogger(cfg.logger)}, cfg.presenter...)
	p, err := present.New(ds, surface, presenterOpts...)
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	return &Session{
		presenter: p,
		driver:    cfg.driver,
		theme:     cfg.theme,
		logger:    cfg.logger,
		maxPasses: cfg.maxPasses,
		confirm:   cfg.confirm,
	}, nil
}

// Presenter exposes the presenter driving the surface.
func (s *Session) Presenter() *present.Presenter {
	return s.presenter
}

// Fill renders the form, prompts for every editable row and then again for
// rows that are still invalid, up to the configured number of passes. When
// the form is valid it confirms the first enabled action and returns the
// submission params.
func (s *Session) Fill(ctx context.Context) (map[string]string, error) {
	if err := s.presenter.Start(); err != nil {
		return nil, err
	}

	if err := s.expandCollapsed(ctx); err != nil {
		return nil, err
	}

	ds := s.presenter.DataSource()
	for pass := 0; ; pass++ {
		for _, row := range s.presenter.View().Rows() {
			if pass > 0 && len(row.Errors) == 0 {
				continue
			}
			if err := s.editRow(ctx, row.Coordinate); err != nil {
				return nil, err
			}
		}
		if ds.IsValid() {
			break
		}
		if pass+1 >= s.maxPasses {
			return nil, ErrStillInvalid
		}
		if err := s.reportErrors(ctx, ds); err != nil {
			return nil, err
		}
	}

	action, ok := enabledAction(ds)
	if !ok {
		return nil, ErrNoSubmit
	}
	if s.confirm {
		yes, err := s.driver.Confirm(ctx, ConfirmConfig{Message: action.Label + "?", Default: true})
		if err != nil {
			return nil, err
		}
		if !yes {
			return nil, ErrAborted
		}
	}
	return s.presenter.Submit(), nil
}

// Action returns the action Fill would submit through.
func (s *Session) Action() (value.Action, bool) {
	return enabledAction(s.presenter.DataSource())
}

func (s *Session) expandCollapsed(ctx context.Context) error {
	for _, section := range s.presenter.View().Sections {
		if !section.Header.Collapsed || !section.Header.Interactable || section.Total == 0 {
			continue
		}
		open, err := s.driver.Confirm(ctx, ConfirmConfig{Message: fmt.Sprintf("Edit %s?", sectionName(section))})
		if err != nil {
			return err
		}
		if open {
			s.presenter.ToggleSection(section.Index, 0)
		}
	}
	return nil
}

func (s *Session) editRow(ctx context.Context, c form.Coordinate) error {
	item, ok := s.presenter.OnRowSelected(c)
	if !ok || !item.Descriptor().Interactive {
		return nil
	}
	next, prompted, err := prompt(ctx, s.driver, item.Value())
	if err != nil {
		return err
	}
	if !prompted {
		s.logger.Debug("tui: row skipped", zap.String("kind", string(item.Kind())), zap.String("key", item.Key()))
		return nil
	}
	next = value.WithState(next, clearServerState)
	s.presenter.ApplyEdit(next, c)
	return nil
}

func (s *Session) reportErrors(ctx context.Context, ds *form.DataSource) error {
	errs := ds.Errors()
	coords := make([]form.Coordinate, 0, len(errs))
	for c := range errs {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Section != coords[j].Section {
			return coords[i].Section < coords[j].Section
		}
		return coords[i].Row < coords[j].Row
	})
	for _, c := range coords {
		for _, msg := range errs[c] {
			if err := s.driver.Info(ctx, s.theme.ErrorPrefix+msg); err != nil {
				return err
			}
		}
		if section, ok := ds.Section(c.Section); ok && !section.Expanded() {
			s.presenter.ToggleSection(c.Section, 0)
		}
	}
	return nil
}

func enabledAction(ds *form.DataSource) (value.Action, bool) {
	for _, section := range ds.Sections() {
		for _, item := range section.Rows() {
			if action, ok := item.Value().(value.Action); ok && action.Enabled {
				return action, true
			}
		}
	}
	return value.Action{}, false
}

// Serialize encodes params in format. Keys are sorted for the text formats.
func Serialize(params map[string]string, format OutputFormat) ([]byte, error) {
	switch format {
	case OutputFormatJSON, "":
		out, err := json.MarshalIndent(params, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return append(out, '\n'), nil
	case OutputFormatFormURLEncoded:
		values := url.Values{}
		for k, v := range params {
			values.Set(k, v)
		}
		return []byte(values.Encode() + "\n"), nil
	case OutputFormatPrettyText:
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var b strings.Builder
		for _, k := range keys {
			fmt.Fprintf(&b, "%s: %s\n", k, params[k])
		}
		return []byte(b.String()), nil
	default:
		return nil, fmt.Errorf("tui: unknown output format %q", format)
	}
}

// ParseOutputFormat validates a format name.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch format := OutputFormat(strings.ToLower(strings.TrimSpace(name))); format {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
		return format, nil
	case "":
		return OutputFormatJSON, nil
	default:
		return "", errors.New("tui: unknown output format " + name)
	}
}
