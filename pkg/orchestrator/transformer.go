package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formlist/pkg/form"
	"github.com/goliatone/go-formlist/pkg/value"
)

// Transformer mutates a generated data source before it is handed out.
type Transformer interface {
	Transform(ctx context.Context, ds *form.DataSource) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, ds *form.DataSource) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, ds *form.DataSource) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, ds)
}

// PresetTransformer applies declarative overrides loaded from YAML or JSON:
//
//	title: Edit account
//	sections:
//	  General: {title: Basics, footer: Shown to everyone, collapsed: false}
//	fields:
//	  name: {label: Full name, required: true}
//	  tracking: {hide: true}
//
// Sections are matched by their generated title, fields by row key.
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Title    string                  `yaml:"title" json:"title"`
	Sections map[string]sectionPatch `yaml:"sections" json:"sections"`
	Fields   map[string]fieldPatch   `yaml:"fields" json:"fields"`
}

type sectionPatch struct {
	Title     string `yaml:"title" json:"title"`
	Footer    string `yaml:"footer" json:"footer"`
	Collapsed *bool  `yaml:"collapsed" json:"collapsed"`
}

type fieldPatch struct {
	Label    string `yaml:"label" json:"label"`
	Required *bool  `yaml:"required" json:"required"`
	Hide     bool   `yaml:"hide" json:"hide"`
}

// NewPresetTransformer parses a preset document. JSON input is accepted as
// the YAML subset it is.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the patches and replaces the sections once. Patches that
// name a missing section or field fail without modifying ds.
func (t *PresetTransformer) Transform(ctx context.Context, ds *form.DataSource) error {
	if ds == nil {
		return errors.New("preset transformer: data source is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	pending := make(map[string]fieldPatch, len(t.document.Fields))
	for key, patch := range t.document.Fields {
		pending[key] = patch
	}
	matchedSections := make(map[string]bool, len(t.document.Sections))

	sections := make([]*form.Section, 0, ds.SectionCount())
	for _, section := range ds.Sections() {
		clone := section.Clone()
		if patch, ok := t.document.Sections[section.Title]; ok {
			matchedSections[section.Title] = true
			applySectionPatch(clone, patch)
		}

		rows := make([]form.Item, 0, clone.Len())
		for _, item := range clone.Rows() {
			patch, ok := pending[item.Key()]
			if !ok {
				rows = append(rows, item)
				continue
			}
			delete(pending, item.Key())
			if patch.Hide {
				continue
			}
			rows = append(rows, form.NewItem(applyFieldPatch(item.Value(), patch)))
		}
		clone.SetRows(rows)
		sections = append(sections, clone)
	}

	for title := range t.document.Sections {
		if !matchedSections[title] {
			return fmt.Errorf("preset transformer: section %q not found", title)
		}
	}
	if len(pending) > 0 {
		missing := make([]string, 0, len(pending))
		for key := range pending {
			missing = append(missing, key)
		}
		sort.Strings(missing)
		return fmt.Errorf("preset transformer: field %q not found", missing[0])
	}

	if t.document.Title != "" {
		ds.SetTitle(t.document.Title)
	}
	ds.SetSections(sections)
	return nil
}

func applySectionPatch(section *form.Section, patch sectionPatch) {
	if patch.Title != "" {
		section.Title = patch.Title
	}
	if patch.Footer != "" {
		section.Footer = patch.Footer
	}
	if patch.Collapsed != nil {
		section.Header.Interactable = true
		section.Header.Collapsed = *patch.Collapsed
	}
}

func applyFieldPatch(v value.Value, patch fieldPatch) value.Value {
	if patch.Label != "" {
		v = value.WithTitle(v, patch.Label)
	}
	if patch.Required != nil {
		required := *patch.Required
		v = value.WithState(v, func(state value.State) value.State {
			state.Required = required
			return state
		})
	}
	return v
}
