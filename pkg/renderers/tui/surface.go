package tui

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formlist/pkg/diff"
	"github.com/goliatone/go-formlist/pkg/evaluate"
	"github.com/goliatone/go-formlist/pkg/form"
	"github.com/goliatone/go-formlist/pkg/render"
	"github.com/goliatone/go-formlist/pkg/value"
)

// Surface prints a form to a writer. Render prints the whole view; Apply
// prints only the rows a change script touches and completes immediately.
type Surface struct {
	out    io.Writer
	theme  Theme
	logger *zap.Logger
}

var _ render.Surface = (*Surface)(nil)

// NewSurface builds a printing surface. Without WithOutput it prints
// nothing.
func NewSurface(opts ...Option) *Surface {
	cfg := newConfig(opts)
	return &Surface{out: cfg.out, theme: cfg.theme, logger: cfg.logger}
}

func (s *Surface) Name() string { return "tui" }

func (s *Surface) Render(view render.View) error {
	var b strings.Builder
	if view.Title != "" {
		fmt.Fprintf(&b, "%s\n", view.Title)
	}
	for _, section := range view.Sections {
		s.writeSection(&b, section)
	}
	_, err := io.WriteString(s.out, b.String())
	return err
}

// Apply prints the replaced and inserted rows of script and reports removed
// ones, then calls done.
func (s *Surface) Apply(script evaluate.Script, view render.View, _ render.Animation, done func()) error {
	defer func() {
		if done != nil {
			done()
		}
	}()

	var b strings.Builder
	for _, idx := range script.SectionInserts {
		if idx < len(view.Sections) {
			s.writeSection(&b, view.Sections[idx])
		}
	}
	for _, idx := range script.SectionReloads {
		if idx < len(view.Sections) {
			s.writeSection(&b, view.Sections[idx])
		}
	}
	for _, sIdx := range script.RowEditIndices() {
		if sIdx >= len(view.Sections) {
			continue
		}
		section := view.Sections[sIdx]
		for _, edit := range script.RowEdits[sIdx] {
			switch edit.Op {
			case diff.OpReplace, diff.OpInsert:
				if row, ok := rowAt(section, edit.Index); ok {
					s.writeRow(&b, row)
				}
			case diff.OpDelete:
				fmt.Fprintf(&b, "%s- removed row %d of %s\n", s.theme.RowPrefix, edit.Index+1, sectionName(section))
			}
		}
	}
	s.logger.Debug("tui: script applied", zap.Int("sections", len(script.RowEdits)))
	_, err := io.WriteString(s.out, b.String())
	return err
}

func (s *Surface) writeSection(b *strings.Builder, section render.SectionView) {
	fmt.Fprintf(b, "%s%s\n", s.theme.SectionPrefix, sectionName(section))
	if section.Header.Collapsed {
		fmt.Fprintf(b, "%s(%d hidden)\n", s.theme.RowPrefix, section.Total)
	}
	for _, row := range section.Rows {
		s.writeRow(b, row)
	}
	if section.Footer != "" {
		fmt.Fprintf(b, "%s%s\n", s.theme.RowPrefix, section.Footer)
	}
}

func (s *Surface) writeRow(b *strings.Builder, row render.Row) {
	line, ok := describeRow(row)
	if !ok {
		return
	}
	fmt.Fprintf(b, "%s%s\n", s.theme.RowPrefix, line)
	for _, msg := range row.Errors {
		fmt.Fprintf(b, "%s%s\n", s.theme.ErrorPrefix, msg)
	}
}

func describeRow(row render.Row) (string, bool) {
	v := row.Item.Value()
	switch typed := v.(type) {
	case nil, value.Spacer, value.Hidden:
		return "", false
	case value.Action:
		state := "disabled"
		if typed.Enabled {
			state = "enabled"
		}
		return fmt.Sprintf("[%s] (%s)", typed.Label, state), true
	}
	if v.Title() == "" {
		return v.Display(), true
	}
	return fmt.Sprintf("%s: %s", v.Title(), v.Display()), true
}

func rowAt(section render.SectionView, index int) (render.Row, bool) {
	for _, row := range section.Rows {
		if row.Coordinate == form.At(section.Index, index) {
			return row, true
		}
	}
	return render.Row{}, false
}

func sectionName(section render.SectionView) string {
	if section.Title != "" {
		return section.Title
	}
	return fmt.Sprintf("Section %d", section.Index+1)
}
