package orchestrator_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formlist/pkg/orchestrator"
	"github.com/goliatone/go-formlist/pkg/value"
)

const preset = `
title: Adopt a pet
sections:
  Owner: {title: Contact, collapsed: true}
fields:
  species: {label: Kind, required: true}
  owner.email: {hide: true}
`

func TestPresetTransformer_AppliesPatches(t *testing.T) {
	transformer, err := orchestrator.NewPresetTransformerFromFS(fstest.MapFS{"preset.yaml": {Data: []byte(preset)}}, "preset.yaml")
	if err != nil {
		t.Fatalf("load preset: %v", err)
	}

	ds, err := orchestrator.New(orchestrator.WithTransformer(transformer)).Generate(context.Background(), petstoreRequest(t, "createPet"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if ds.Title() != "Adopt a pet" {
		t.Fatalf("title = %q", ds.Title())
	}
	species, ok := ds.ItemForKey("species")
	if !ok {
		t.Fatalf("missing species row")
	}
	state, _ := value.StateOf(species.Value())
	if species.Value().Title() != "Kind" || !state.Required {
		t.Fatalf("unexpected species row: %+v", species.Value())
	}
	if _, ok := ds.ItemForKey("owner.email"); ok {
		t.Fatalf("expected hidden field to be removed")
	}
	contact, _ := ds.Section(1)
	if contact.Title != "Contact" || !contact.Header.Collapsed {
		t.Fatalf("unexpected contact section: %+v", contact.Header)
	}
}

func TestPresetTransformer_UnknownTargets(t *testing.T) {
	for name, doc := range map[string]string{
		"field":   `fields: {nope: {label: X}}`,
		"section": `sections: {Nope: {title: X}}`,
	} {
		transformer, err := orchestrator.NewPresetTransformer([]byte(doc))
		if err != nil {
			t.Fatalf("%s: parse: %v", name, err)
		}
		if _, err := orchestrator.New(orchestrator.WithTransformer(transformer)).Generate(context.Background(), petstoreRequest(t, "createPet")); err == nil {
			t.Fatalf("%s: expected unknown target to fail", name)
		}
	}
}

func TestNewPresetTransformer_RejectsEmpty(t *testing.T) {
	if _, err := orchestrator.NewPresetTransformer([]byte("  ")); err == nil {
		t.Fatalf("expected empty document to fail")
	}
	if _, err := orchestrator.NewPresetTransformer([]byte(`{"title": "JSON works"}`)); err != nil {
		t.Fatalf("expected JSON document to parse: %v", err)
	}
}
