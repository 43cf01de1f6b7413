package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formlist/pkg/form"
	"github.com/goliatone/go-formlist/pkg/render"
	"github.com/goliatone/go-formlist/pkg/value"
)

func invoiceForm() *form.DataSource {
	return form.New([]*form.Section{
		form.NewSection("Invoice", form.Items(
			value.Text{Name: "number", Value: "INV-7"},
			value.Hidden{Name: "revision", Value: "1"},
		)...),
	})
}

func TestApplyHiddenFields_WinOverRows(t *testing.T) {
	ds := invoiceForm()

	render.ApplyHiddenFields(ds,
		render.CSRFToken(" _csrf ", "s3cr3t"),
		render.VersionField("revision", 2),
		render.Hidden("", "dropped"),
	)

	want := map[string]string{"number": "INV-7", "_csrf": "s3cr3t", "revision": "2"}
	if diff := cmp.Diff(want, ds.Submit()); diff != "" {
		t.Fatalf("submission mismatch (-want +got):\n%s", diff)
	}

	wantParams := []render.HiddenField{
		{Name: "_csrf", Value: "s3cr3t"},
		{Name: "revision", Value: "2"},
	}
	if diff := cmp.Diff(wantParams, render.HiddenFieldsOf(ds)); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}
	if got := render.HiddenFieldsOf(nil); got != nil {
		t.Fatalf("expected nil for a nil data source, got %v", got)
	}
}

func TestHiddenValues_LastWriteWins(t *testing.T) {
	got := render.HiddenValues(
		render.VersionField("revision", 3),
		render.CSRFToken("_csrf", "a"),
		render.Hidden("revision", 4),
		render.Hidden(" ", "blank"),
	)
	want := []value.Value{
		value.Hidden{Name: "_csrf", Value: "a"},
		value.Hidden{Name: "revision", Value: "4"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("hidden values mismatch (-want +got):\n%s", diff)
	}
}
