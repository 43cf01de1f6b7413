package form

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formlist/pkg/value"
)

func TestSection_MutationsNotifyOnce(t *testing.T) {
	section := NewSection("Profile", Items(
		value.Text{Name: "first"},
		value.Text{Name: "last"},
	)...)

	var ops []SectionOp
	section.Observe(func(change SectionChange) {
		ops = append(ops, change.Op)
	})

	section.ReplaceRow(0, NewItem(value.Text{Name: "first", Value: "Ada"}))
	section.InsertRow(1, NewItem(value.Hidden{Name: "id", Value: "7"}))
	section.AppendRow(NewItem(value.Spacer{Height: 8}))
	section.RemoveRow(1)
	section.SetRows(Items(value.Text{Name: "only"}))

	want := []SectionOp{SectionOpReplace, SectionOpInsert, SectionOpInsert, SectionOpRemove, SectionOpSetRows}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Fatalf("observer ops mismatch (-want +got):\n%s", diff)
	}
	if section.Len() != 1 {
		t.Fatalf("expected one row after SetRows, got %d", section.Len())
	}
}

func TestSection_NoOpsDoNotNotify(t *testing.T) {
	section := NewSection("Profile", Items(value.Text{Name: "first", Value: "Ada"})...)
	calls := 0
	section.Observe(func(SectionChange) { calls++ })

	if change := section.ReplaceRow(0, NewItem(value.Text{Name: "first", Value: "Ada"})); change.Changed {
		t.Fatalf("expected equal replacement to be a no-op")
	}
	if change := section.ReplaceRow(3, NewItem(value.Text{Name: "x"})); !change.OutOfRange || change.Changed {
		t.Fatalf("expected out-of-range replacement to report OutOfRange, got %+v", change)
	}
	if change := section.InsertRow(-1, NewItem(value.Text{Name: "x"})); !change.OutOfRange {
		t.Fatalf("expected negative insert to be out of range")
	}
	if change := section.RemoveRow(1); !change.OutOfRange {
		t.Fatalf("expected remove past end to be out of range")
	}
	if change := section.SetRows(Items(value.Text{Name: "first", Value: "Ada"})); change.Changed {
		t.Fatalf("expected structurally equal rows to be a no-op")
	}
	if calls != 0 {
		t.Fatalf("expected no notifications, got %d", calls)
	}
}

func TestSection_ToggleExpansion(t *testing.T) {
	section := NewSectionBuilder("Advanced").
		Add(value.Text{Name: "a"}, value.Text{Name: "b"}).
		Build()

	if change := section.ToggleExpansion(44); change.Changed {
		t.Fatalf("expected non-interactable header to ignore toggle")
	}
	if section.VisibleRowCount() != 2 {
		t.Fatalf("expected expanded section to show 2 rows, got %d", section.VisibleRowCount())
	}

	section.Header.Interactable = true
	if change := section.ToggleExpansion(44); !change.Changed {
		t.Fatalf("expected toggle to change state")
	}
	if section.Expanded() || section.VisibleRowCount() != 0 {
		t.Fatalf("expected collapsed section with no visible rows")
	}
	if section.Len() != 2 {
		t.Fatalf("expected row data to survive collapse, got %d rows", section.Len())
	}
	if section.Header.Height != 44 {
		t.Fatalf("expected measured height to be recorded, got %v", section.Header.Height)
	}

	section.ToggleExpansion(40)
	if !section.Expanded() || section.VisibleRowCount() != 2 {
		t.Fatalf("expected second toggle to expand again")
	}
}

func TestSection_IsValid(t *testing.T) {
	section := NewSection("Account", Items(
		value.Text{Name: "name", State: value.State{Required: true}},
		value.Toggle{Name: "terms"},
	)...)
	if section.IsValid() {
		t.Fatalf("expected empty required text to invalidate the section")
	}

	section.ReplaceRow(0, NewItem(value.Text{Name: "name", Value: "Ada", State: value.State{Required: true}}))
	if !section.IsValid() {
		t.Fatalf("expected section to be valid, errors: %v", section.Rows()[0].Errors())
	}

	if !NewSection("empty").IsValid() {
		t.Fatalf("expected an empty section to be valid")
	}
}

func TestSectionBuilder(t *testing.T) {
	section := NewSectionBuilder("Shipping").
		Footer("We never share your address").
		Collapsible(true).
		Collapsed(true).
		Icon("truck").
		Style("grouped").
		Add(value.Text{Name: "street"}, nil).
		AddItems(NewItem(value.Text{Name: "city"}), Item{}).
		Build()

	if section.Title != "Shipping" || section.Footer != "We never share your address" {
		t.Fatalf("unexpected title/footer: %q / %q", section.Title, section.Footer)
	}
	wantHeader := Header{Collapsed: true, Interactable: true, Icon: "truck", Style: "grouped"}
	if diff := cmp.Diff(wantHeader, section.Header); diff != "" {
		t.Fatalf("header mismatch (-want +got):\n%s", diff)
	}
	if section.Len() != 2 {
		t.Fatalf("expected nil values and zero items to be skipped, got %d rows", section.Len())
	}
	if section.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatalf("expected builder to assign a section ID")
	}
}

func TestSection_Clone(t *testing.T) {
	section := NewSection("A", Items(value.Text{Name: "a"})...)
	clone := section.Clone()
	clone.ReplaceRow(0, NewItem(value.Text{Name: "b"}))

	if section.Rows()[0].Key() != "a" {
		t.Fatalf("expected clone rows to be independent")
	}
	if clone.ID != section.ID {
		t.Fatalf("expected clone to keep the stable ID")
	}
}
