package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formlist/pkg/evaluate"
	"github.com/goliatone/go-formlist/pkg/form"
	"github.com/goliatone/go-formlist/pkg/render"
	"github.com/goliatone/go-formlist/pkg/value"
	"github.com/goliatone/go-formlist/pkg/widgets"
)

func TestProject_HonoursCollapsedSections(t *testing.T) {
	ds := form.New([]*form.Section{
		form.NewSectionBuilder("Visible").
			Add(value.Text{Name: "name", State: value.State{Required: true}}).
			Build(),
		form.NewSectionBuilder("Hidden rows").
			Collapsible(true).
			Collapsed(true).
			Add(value.Text{Name: "a"}, value.Text{Name: "b"}).
			Build(),
	}, form.WithTitle("Profile"))

	view := render.Project(ds)

	if view.Title != "Profile" || view.Valid {
		t.Fatalf("unexpected view header: %+v", view)
	}
	if len(view.Sections) != 2 {
		t.Fatalf("expected both section headers, got %d", len(view.Sections))
	}
	if view.Sections[1].Total != 2 || len(view.Sections[1].Rows) != 0 {
		t.Fatalf("expected collapsed section to keep its total but show no rows")
	}

	rows := view.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected one visible row, got %d", len(rows))
	}
	if rows[0].Coordinate != form.At(0, 0) {
		t.Fatalf("unexpected coordinate %+v", rows[0].Coordinate)
	}
	if rows[0].Descriptor.Widget != widgets.WidgetTextField {
		t.Fatalf("expected text field widget, got %q", rows[0].Descriptor.Widget)
	}
	if diff := cmp.Diff([]string{"value is required"}, rows[0].Errors); diff != "" {
		t.Fatalf("row errors mismatch (-want +got):\n%s", diff)
	}
}

func TestProject_NilDataSource(t *testing.T) {
	view := render.Project(nil)
	if !view.Valid || len(view.Sections) != 0 {
		t.Fatalf("expected empty valid view, got %+v", view)
	}
}

type namedSurface string

func (s namedSurface) Name() string           { return string(s) }
func (namedSurface) Render(render.View) error { return nil }
func (namedSurface) Apply(evaluate.Script, render.View, render.Animation, func()) error {
	return nil
}

func TestRegistry(t *testing.T) {
	reg := render.NewRegistry()
	if err := reg.Register(namedSurface("tui")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(namedSurface("tui")); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := reg.Register(namedSurface("")); err == nil {
		t.Fatalf("expected unnamed surface to fail")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatalf("expected nil surface to fail")
	}
	reg.MustRegister(namedSurface("log"))

	if diff := cmp.Diff([]string{"log", "tui"}, reg.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if !reg.Has("tui") || reg.Has("web") {
		t.Fatalf("unexpected Has results")
	}
	if _, err := reg.Get("web"); err == nil {
		t.Fatalf("expected missing surface lookup to fail")
	}
}
