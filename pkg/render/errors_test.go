package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formlist/pkg/form"
	"github.com/goliatone/go-formlist/pkg/render"
	"github.com/goliatone/go-formlist/pkg/value"
)

func shipmentForm() *form.DataSource {
	return form.New([]*form.Section{
		form.NewSection("Parcel", form.Items(
			value.Text{Name: "sku", Value: "BOX-1"},
			value.ListSelection{Name: "labels", Options: value.Options("fragile", "upright"), Multiple: true},
		)...),
		form.NewSection("Recipient", form.Items(
			value.Text{Name: "recipient", Value: "Grace"},
			value.Text{Name: "recipient.email", Value: "grace@example.com", Style: value.TextStyleEmail},
			value.Text{Name: "recipient.phone", Value: "555-0100"},
		)...),
	})
}

func TestMapErrorPayload_ResolvesPaths(t *testing.T) {
	mapped := render.MapErrorPayload(shipmentForm(), map[string][]string{
		"/body/sku":                       {"Unknown SKU"},
		"data.attributes.recipient.email": {"Address bounced"},
		"$.labels[1]":                     {"Label not allowed"},
		"payload/recipient":               {"Recipient required"},
		"recipient/phone/~1ext":           {"Extension invalid"},
		"base":                            {"Quota exceeded"},
		"body.carrier":                    {"Carrier unavailable"},
		"#":                               {"Check the highlighted fields"},
	})

	wantFields := map[string][]string{
		"sku":             {"Unknown SKU"},
		"recipient.email": {"Address bounced"},
		"labels":          {"Label not allowed"},
		"recipient":       {"Recipient required"},
		"recipient.phone": {"Extension invalid"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Carrier unavailable", "Check the highlighted fields", "Quota exceeded"}
	if diff := cmp.Diff(wantForm, mapped.Form, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayload_Empty(t *testing.T) {
	mapped := render.MapErrorPayload(nil, map[string][]string{"sku": {"  "}})
	if diff := cmp.Diff(render.ErrorMapping{}, mapped); diff != "" {
		t.Fatalf("expected empty mapping (-want +got):\n%s", diff)
	}
}

func TestApplyErrorPayload_FlagsRows(t *testing.T) {
	ds := shipmentForm()
	if !ds.IsValid() {
		t.Fatalf("expected fixture to start valid, errors: %v", ds.Errors())
	}

	mapped := render.ApplyErrorPayload(ds, map[string][]string{
		"request.recipient.email": {" Address bounced ", "Address bounced"},
		"__all__":                 {"Retry later"},
	})

	if ds.IsValid() {
		t.Fatalf("expected server errors to invalidate the form")
	}
	if diff := cmp.Diff(map[form.Coordinate][]string{form.At(1, 1): {"Address bounced"}}, ds.Errors()); diff != "" {
		t.Fatalf("row errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Retry later"}, mapped.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{"Card declined", " Retry "}, "Retry", "", "Contact support")
	want := []string{"Card declined", "Retry", "Contact support"}
	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}
