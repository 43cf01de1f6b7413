package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formlist/pkg/diff"
	"github.com/goliatone/go-formlist/pkg/evaluate"
	"github.com/goliatone/go-formlist/pkg/form"
	"github.com/goliatone/go-formlist/pkg/present"
	"github.com/goliatone/go-formlist/pkg/render"
	"github.com/goliatone/go-formlist/pkg/renderers/tui"
)

var diffSurface string

var diffCmd = &cobra.Command{
	Use:   "diff <old-form> <new-form>",
	Short: "Print the change script between two wire forms",
	Long: `Show the first form on a surface, replace it with the second through a
presenter and print what the surface is asked to apply. The script surface
lists section and row edits; the tui surface prints the rows it redraws.`,
	Example: `  formlist diff before.yaml after.yaml
  formlist diff before.yaml after.yaml --surface tui`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		old, err := loadForm(args[0])
		if err != nil {
			return err
		}
		next, err := loadForm(args[1])
		if err != nil {
			return err
		}
		return runDiff(cmd.OutOrStdout(), old, next, diffSurface)
	},
}

func init() {
	diffCmd.Flags().StringVar(&diffSurface, "surface", "script", "surface printing the change (script, tui)")
}

func runDiff(out io.Writer, old, next *form.DataSource, surfaceName string) error {
	surfaces := render.NewRegistry()
	surfaces.MustRegister(&scriptSurface{out: out, old: old})
	surfaces.MustRegister(tui.NewSurface(tui.WithOutput(out)))

	surface, err := surfaces.Get(surfaceName)
	if err != nil {
		return fmt.Errorf("%w (available: %v)", err, surfaces.List())
	}
	p, err := present.New(old, surface)
	if err != nil {
		return err
	}
	if err := p.Start(); err != nil {
		return err
	}
	return p.Replace(next.Sections())
}

// scriptSurface prints change scripts as text and ignores full renders.
type scriptSurface struct {
	out io.Writer
	old *form.DataSource
}

var _ render.Surface = (*scriptSurface)(nil)

func (s *scriptSurface) Name() string { return "script" }

func (s *scriptSurface) Render(render.View) error { return nil }

func (s *scriptSurface) Apply(script evaluate.Script, view render.View, _ render.Animation, done func()) error {
	defer done()
	return writeScript(s.out, s.old, view, script)
}

func writeScript(w io.Writer, old *form.DataSource, next render.View, script evaluate.Script) error {
	if script.IsEmpty() {
		_, err := fmt.Fprintln(w, "no changes")
		return err
	}

	var lines []string
	for _, idx := range script.SectionDeletes {
		lines = append(lines, fmt.Sprintf("section %d: delete %q", idx, sectionTitle(old, idx)))
	}
	for _, idx := range script.SectionInserts {
		lines = append(lines, fmt.Sprintf("section %d: insert %q", idx, viewTitle(next, idx)))
	}
	for _, idx := range script.SectionReloads {
		lines = append(lines, fmt.Sprintf("section %d: reload %q", idx, viewTitle(next, idx)))
	}
	for _, idx := range script.RowEditIndices() {
		for _, edit := range script.RowEdits[idx] {
			lines = append(lines, fmt.Sprintf("section %d: %s %s", idx, edit, editKey(edit)))
		}
	}
	for _, move := range script.SectionMoves {
		lines = append(lines, fmt.Sprintf("section %d: moved to %d", move.From, move.To))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func sectionTitle(ds *form.DataSource, idx int) string {
	if section, ok := ds.Section(idx); ok {
		return section.Title
	}
	return ""
}

func viewTitle(view render.View, idx int) string {
	for _, section := range view.Sections {
		if section.Index == idx {
			return section.Title
		}
	}
	return ""
}

// editKey names the row an edit touches.
func editKey(edit diff.Edit[form.Item]) string {
	if key := edit.Item.Key(); key != "" {
		return key
	}
	return "<" + string(edit.Item.Kind()) + ">"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
