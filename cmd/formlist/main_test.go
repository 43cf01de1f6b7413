package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formlist/pkg/renderers/tui"
	"github.com/goliatone/go-formlist/pkg/wire"
)

const petstore = `
openapi: 3.0.0
info: { title: Pets, version: "1.0.0" }
servers:
  - url: https://pets.example.com
paths:
  /pets:
    post:
      operationId: createPet
      summary: New pet
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [name]
              properties:
                name: { type: string, x-formlist-widget: slider }
      responses:
        "201": { description: created }
    get:
      operationId: listPets
      responses:
        "200": { description: ok }
`

const profileTemplate = `
title: Profile
sections:
  - title: Account
    values:
      - type: text
        data: { key: name, title: Name, required: true }
      - type: submit
        data: { key: save, title: Save, url: "URL", method: POST, tracksValidity: true }
`

type scriptedDriver struct {
	inputs []string
}

func (d *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	next := d.inputs[0]
	d.inputs = d.inputs[1:]
	return next, nil
}

func (d *scriptedDriver) Password(ctx context.Context, cfg tui.InputConfig) (string, error) {
	return d.Input(ctx, cfg)
}

func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	return true, nil
}

func (d *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	return 0, nil
}

func (d *scriptedDriver) MultiSelect(context.Context, tui.SelectConfig) ([]int, error) {
	return nil, nil
}

func (d *scriptedDriver) TextArea(ctx context.Context, cfg tui.TextAreaConfig) (string, error) {
	return d.Input(ctx, tui.InputConfig{Message: cfg.Message})
}

func (d *scriptedDriver) Info(context.Context, string) error {
	return nil
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestDiffCommand(t *testing.T) {
	oldPath := writeFile(t, "old.yaml", `
sections:
  - title: Account
    values:
      - { type: text, data: { key: name, title: Name, value: Ada } }
      - { type: text, data: { key: email, title: Email, value: ada@example.com } }
`)
	newPath := writeFile(t, "new.yaml", `
sections:
  - title: Account
    values:
      - { type: text, data: { key: name, title: Name, value: Grace } }
      - { type: text, data: { key: email, title: Email, value: ada@example.com } }
  - title: Extra
    values:
      - { type: int, data: { key: age, title: Age } }
`)

	out, err := execute(t, "diff", oldPath, newPath)
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	want := "section 1: insert \"Extra\"\nsection 0: replace(0) name\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}

	out, err = execute(t, "diff", oldPath, oldPath)
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	if out != "no changes\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestDiffCommand_TUISurface(t *testing.T) {
	old, err := wire.Unmarshal([]byte(`{"sections": [{"title": "Account", "values": [{"type": "text", "data": {"key": "name", "title": "Name", "value": "Ada"}}]}]}`))
	if err != nil {
		t.Fatalf("decode old: %v", err)
	}
	next, err := wire.Unmarshal([]byte(`{"sections": [{"title": "Account", "values": [{"type": "text", "data": {"key": "name", "title": "Name", "value": "Grace"}}]}]}`))
	if err != nil {
		t.Fatalf("decode new: %v", err)
	}

	var out bytes.Buffer
	if err := runDiff(&out, old, next, "tui"); err != nil {
		t.Fatalf("diff: %v", err)
	}
	want := "== Account\n  Name: Ada\n  Name: Grace\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}

	if err := runDiff(&bytes.Buffer{}, old, next, "web"); err == nil {
		t.Fatalf("expected unknown surface to fail")
	}
}

func TestOpenAPICommand(t *testing.T) {
	path := writeFile(t, "petstore.yaml", petstore)
	t.Cleanup(func() {
		openapiOperation = ""
		openapiList = false
		openapiOutput = "json"
	})

	out, err := execute(t, "openapi", path, "--list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if diff := cmp.Diff("createPet\nlistPets\n", out); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	openapiList = false
	out, err = execute(t, "openapi", path, "-o", "createPet", "--output", "yaml")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, fragment := range []string{"title: New pet", "type: submit", "url: https://pets.example.com/pets"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, out)
		}
	}
}

func TestLint(t *testing.T) {
	path := writeFile(t, "petstore.yaml", petstore)

	var out bytes.Buffer
	count, err := runLint(context.Background(), &out, []string{path})
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one violation, got %d:\n%s", count, out.String())
	}
	want := path + ": createPet/requestBody/name: unknown widget \"slider\"\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}

	if _, err := runLint(context.Background(), &out, []string{filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Fatalf("expected missing file to fail")
	}
}

func TestRunFill_PrintsParams(t *testing.T) {
	promptDriver = &scriptedDriver{inputs: []string{"Ada"}}
	t.Cleanup(func() { promptDriver = nil })

	ds, err := wire.Unmarshal([]byte(strings.ReplaceAll(profileTemplate, "URL", "/profile")))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	var out bytes.Buffer
	flags := fillFlags{format: "json", policy: "coalesce", yes: true, maxPasses: 2, hidden: []string{"_csrf=abc"}}
	if err := runFill(context.Background(), &out, ds, flags); err != nil {
		t.Fatalf("fill: %v", err)
	}
	want := "{\n  \"_csrf\": \"abc\",\n  \"name\": \"Ada\"\n}\n"
	if !strings.HasSuffix(out.String(), want) {
		t.Fatalf("expected params %q at the end of:\n%s", want, out.String())
	}
}

func TestRunFill_Submits(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		got = r.PostForm.Get("name")
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(server.Close)

	promptDriver = &scriptedDriver{inputs: []string{"Grace"}}
	t.Cleanup(func() { promptDriver = nil })

	ds, err := wire.Unmarshal([]byte(strings.ReplaceAll(profileTemplate, "URL", server.URL+"/profile")))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	var out bytes.Buffer
	flags := fillFlags{format: "json", policy: "drop", submit: true, maxPasses: 2}
	if err := runFill(context.Background(), &out, ds, flags); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if got != "Grace" {
		t.Fatalf("server received name %q", got)
	}
	if !strings.HasSuffix(out.String(), "submitted: 201\n") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestRunFill_RejectsBadFlags(t *testing.T) {
	ds, err := wire.Unmarshal([]byte(strings.ReplaceAll(profileTemplate, "URL", "/profile")))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	cases := []fillFlags{
		{format: "json", policy: "sometimes"},
		{format: "xml", policy: "drop"},
		{format: "json", policy: "drop", hidden: []string{"novalue"}},
		{format: "json", policy: "drop", headers: []string{": x"}},
	}
	for _, flags := range cases {
		if err := runFill(context.Background(), &bytes.Buffer{}, ds, flags); err == nil {
			t.Fatalf("expected %+v to fail", flags)
		}
	}
}

func TestParsePairs(t *testing.T) {
	got, err := parsePairs([]string{"_csrf=abc", " version = 3 "}, "=")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := [][2]string{{"_csrf", "abc"}, {"version", "3"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("pairs mismatch (-want +got):\n%s", diff)
	}
}

func TestLocalize(t *testing.T) {
	ds, err := wire.Unmarshal([]byte(strings.ReplaceAll(profileTemplate, "URL", "/profile")))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	path := writeFile(t, "i18n.yaml", `
fr:
  sections.0.title: Compte
  name.label: Nom
`)

	if err := localize(ds, path, "de"); err == nil {
		t.Fatalf("expected unknown locale to fail")
	}
	if err := localize(ds, path, "fr"); err != nil {
		t.Fatalf("localize: %v", err)
	}

	section, _ := ds.Section(0)
	if section.Title != "Compte" {
		t.Fatalf("section title = %q", section.Title)
	}
	item, _ := ds.ItemForKey("name")
	if got := item.Value().Title(); got != "Nom" {
		t.Fatalf("label = %q", got)
	}
	save, _ := ds.ItemForKey("save")
	if got := save.Value().Title(); got != "Save" {
		t.Fatalf("untranslated label changed to %q", got)
	}
}
