package present_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formlist/pkg/evaluate"
	"github.com/goliatone/go-formlist/pkg/form"
	"github.com/goliatone/go-formlist/pkg/present"
	"github.com/goliatone/go-formlist/pkg/render"
	"github.com/goliatone/go-formlist/pkg/value"
)

type recordingSurface struct {
	async   bool
	renders []render.View
	scripts []evaluate.Script
	views   []render.View
	dones   []func()
}

func (s *recordingSurface) Name() string { return "recording" }

func (s *recordingSurface) Render(view render.View) error {
	s.renders = append(s.renders, view)
	return nil
}

func (s *recordingSurface) Apply(script evaluate.Script, view render.View, _ render.Animation, done func()) error {
	s.scripts = append(s.scripts, script)
	s.views = append(s.views, view)
	if s.async {
		s.dones = append(s.dones, done)
		return nil
	}
	done()
	return nil
}

func (s *recordingSurface) lastOps() map[int][]string {
	if len(s.scripts) == 0 {
		return nil
	}
	out := map[int][]string{}
	for idx, edits := range s.scripts[len(s.scripts)-1].RowEdits {
		for _, edit := range edits {
			out[idx] = append(out[idx], edit.String())
		}
	}
	return out
}

func profileForm() *form.DataSource {
	return form.New([]*form.Section{
		form.NewSectionBuilder("A").
			Add(value.Text{Name: "name", State: value.State{Required: true}}).
			Build(),
		form.NewSectionBuilder("B").
			Add(value.Action{Name: "save", Label: "Save", TracksValidity: true}).
			Build(),
	})
}

func textSection(title string, names ...string) *form.Section {
	b := form.NewSectionBuilder(title)
	for _, name := range names {
		b.Add(value.Text{Name: name, Value: name})
	}
	return b.Build()
}

func newPresenter(t *testing.T, ds *form.DataSource, surface render.Surface, opts ...present.Option) *present.Presenter {
	t.Helper()
	p, err := present.New(ds, surface, opts...)
	if err != nil {
		t.Fatalf("new presenter: %v", err)
	}
	if err := p.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	return p
}

func TestNew_RequiresCollaborators(t *testing.T) {
	if _, err := present.New(nil, &recordingSurface{}); !errors.Is(err, present.ErrNilDataSource) {
		t.Fatalf("expected ErrNilDataSource, got %v", err)
	}
	if _, err := present.New(profileForm(), nil); !errors.Is(err, present.ErrNilSurface) {
		t.Fatalf("expected ErrNilSurface, got %v", err)
	}
}

func TestPresenter_EditEnablesTrackedAction(t *testing.T) {
	surface := &recordingSurface{}
	p := newPresenter(t, profileForm(), surface)

	if len(surface.renders) != 1 || len(surface.renders[0].Sections) != 2 {
		t.Fatalf("expected an initial render with two sections, got %+v", surface.renders)
	}

	changed := p.ApplyEdit(value.Text{Name: "name", Value: "Ada", State: value.State{Required: true}}, form.At(0, 0))
	if !changed {
		t.Fatalf("expected edit to apply")
	}

	want := map[int][]string{0: {"replace(0)"}, 1: {"replace(0)"}}
	if diff := cmp.Diff(want, surface.lastOps()); diff != "" {
		t.Fatalf("row edits mismatch (-want +got):\n%s", diff)
	}
	view := surface.views[len(surface.views)-1]
	if !view.Valid || !view.Sections[1].Rows[0].Descriptor.Interactive {
		t.Fatalf("expected valid view with an enabled save action")
	}
	if diff := cmp.Diff(map[string]string{"name": "Ada"}, p.Submit()); diff != "" {
		t.Fatalf("submit mismatch (-want +got):\n%s", diff)
	}

	p.ApplyEdit(value.Text{Name: "name", Value: "Ada", State: value.State{Required: true}}, form.At(0, 0))
	if len(surface.scripts) != 1 {
		t.Fatalf("expected unchanged edit to stay silent, got %d scripts", len(surface.scripts))
	}
}

func TestPresenter_ReplaceDropsOverlapping(t *testing.T) {
	surface := &recordingSurface{async: true}
	p := newPresenter(t, form.New([]*form.Section{textSection("S", "a")}), surface)

	if err := p.Replace([]*form.Section{textSection("S", "b")}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if !p.Evaluating() {
		t.Fatalf("expected presenter to wait for the surface")
	}
	if err := p.Replace([]*form.Section{textSection("S", "c")}); err != nil {
		t.Fatalf("overlapping replace: %v", err)
	}
	surface.dones[0]()

	if p.Evaluating() || len(surface.scripts) != 1 {
		t.Fatalf("expected the overlapping replacement to be dropped")
	}
	item, _ := p.DataSource().ItemAt(form.At(0, 0))
	if item.Key() != "b" {
		t.Fatalf("expected first replacement to stay live, got %q", item.Key())
	}
}

func TestPresenter_ReplaceCoalescesOverlapping(t *testing.T) {
	surface := &recordingSurface{async: true}
	p := newPresenter(t, form.New([]*form.Section{textSection("S", "a")}), surface,
		present.WithPolicy(present.CoalesceOverlapping))

	for _, name := range []string{"b", "c", "d"} {
		if err := p.Replace([]*form.Section{textSection("S", "a", name)}); err != nil {
			t.Fatalf("replace %s: %v", name, err)
		}
	}
	surface.dones[0]()

	if len(surface.scripts) != 2 {
		t.Fatalf("expected the latest pending replacement to run, got %d scripts", len(surface.scripts))
	}
	if diff := cmp.Diff(map[int][]string{0: {"replace(1)"}}, surface.lastOps()); diff != "" {
		t.Fatalf("coalesced edits mismatch (-want +got):\n%s", diff)
	}
	item, _ := p.DataSource().ItemAt(form.At(0, 1))
	if item.Key() != "d" {
		t.Fatalf("expected last write to win, got %q", item.Key())
	}

	surface.dones[0]()
	if !p.Evaluating() {
		t.Fatalf("expected a stale completion to be ignored")
	}
	surface.dones[1]()
	if p.Evaluating() {
		t.Fatalf("expected presenter to settle")
	}
}

func TestPresenter_ReplaceRejectsOverlapping(t *testing.T) {
	surface := &recordingSurface{async: true}
	p := newPresenter(t, form.New([]*form.Section{textSection("S", "a")}), surface,
		present.WithPolicy(present.RejectOverlapping))

	if err := p.Replace(nil); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := p.Replace(nil); !errors.Is(err, present.ErrReplaceInProgress) {
		t.Fatalf("expected ErrReplaceInProgress, got %v", err)
	}
	if diff := cmp.Diff([]int{0}, surface.scripts[0].SectionDeletes); diff != "" {
		t.Fatalf("section deletes mismatch (-want +got):\n%s", diff)
	}
}

func TestPresenter_ListenerSeesReplacement(t *testing.T) {
	var changes []form.Change
	surface := &recordingSurface{}
	p := newPresenter(t, form.New([]*form.Section{textSection("S", "a")}), surface,
		present.WithListener(func(c form.Change) { changes = append(changes, c) }))

	if err := p.Replace([]*form.Section{textSection("S", "a"), textSection("T", "b")}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	if len(changes) != 1 || changes[0].Kind != form.ChangeSections {
		t.Fatalf("expected one sections change, got %+v", changes)
	}
	if changes[0].Source != p.DataSource() {
		t.Fatalf("expected change source to be the new live data source")
	}
	if diff := cmp.Diff([]int{1}, surface.scripts[0].SectionInserts); diff != "" {
		t.Fatalf("section inserts mismatch (-want +got):\n%s", diff)
	}
	if len(surface.renders) != 1 {
		t.Fatalf("expected replacement to animate rather than re-render")
	}

	p.DataSource().SetSections([]*form.Section{textSection("S", "z")})
	if len(surface.renders) != 2 {
		t.Fatalf("expected direct section assignment to re-render")
	}
}

func TestPresenter_SwipeAndDelete(t *testing.T) {
	surface := &recordingSurface{}
	ds := form.New([]*form.Section{
		form.NewSectionBuilder("S").
			Add(value.Text{Name: "a"}, value.Text{Name: "b"}).
			Add(value.Action{Name: "go", Enabled: true}).
			Build(),
	})
	p := newPresenter(t, ds, surface)

	if p.OnRowSwiped(form.At(0, 2)).Allowed {
		t.Fatalf("expected actions to refuse deletion")
	}
	if p.OnRowSwiped(form.At(3, 0)).Allowed {
		t.Fatalf("expected missing rows to refuse deletion")
	}

	intent := p.OnRowSwiped(form.At(0, 0))
	if !intent.Allowed {
		t.Fatalf("expected text row to allow deletion")
	}
	removed, ok := p.ConfirmDeletion(intent)
	if !ok || removed.Key() != "a" {
		t.Fatalf("expected row a to be removed, got %q", removed.Key())
	}
	if diff := cmp.Diff(map[int][]string{0: {"delete(0)"}}, surface.lastOps()); diff != "" {
		t.Fatalf("row edits mismatch (-want +got):\n%s", diff)
	}

	if _, ok := p.ConfirmDeletion(intent); ok {
		t.Fatalf("expected stale intent to be ignored")
	}
}

func TestPresenter_SelectionAndToggle(t *testing.T) {
	surface := &recordingSurface{}
	ds := form.New([]*form.Section{
		form.NewSectionBuilder("Details").
			Collapsible(true).
			Add(value.Text{Name: "a"}).
			Build(),
	})
	p := newPresenter(t, ds, surface)

	item, ok := p.OnRowSelected(form.At(0, 0))
	if !ok || item.Key() != "a" {
		t.Fatalf("expected selected item a")
	}
	if touched, ok := p.DataSource().LastTouched(); !ok || touched != form.At(0, 0) {
		t.Fatalf("expected selection to be recorded, got %+v", touched)
	}
	if _, ok := p.OnRowSelected(form.At(0, 5)); ok {
		t.Fatalf("expected out of range selection to miss")
	}

	if !p.ToggleSection(0, 44) {
		t.Fatalf("expected toggle to apply")
	}
	if diff := cmp.Diff([]int{0}, surface.scripts[0].SectionReloads); diff != "" {
		t.Fatalf("section reloads mismatch (-want +got):\n%s", diff)
	}
	if len(surface.views[0].Sections[0].Rows) != 0 {
		t.Fatalf("expected collapsed section to hide its rows")
	}
}

func TestParsePolicy(t *testing.T) {
	for name, want := range map[string]present.Policy{
		"":         present.DropOverlapping,
		"drop":     present.DropOverlapping,
		"coalesce": present.CoalesceOverlapping,
		"reject":   present.RejectOverlapping,
	} {
		got, err := present.ParsePolicy(name)
		if err != nil || got != want {
			t.Fatalf("ParsePolicy(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := present.ParsePolicy("queue"); err == nil {
		t.Fatalf("expected unknown policy to fail")
	}
}
