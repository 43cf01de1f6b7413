package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formlist/pkg/form"
	"github.com/goliatone/go-formlist/pkg/render"
)

// catalog is a YAML translation file keyed by locale then message key:
//
//	fr:
//	  sections.0.title: Compte
//	  name.label: Nom
type catalog map[string]map[string]string

func (c catalog) Translate(locale, key string, _ ...any) (string, error) {
	if msg, ok := c[locale][key]; ok {
		return msg, nil
	}
	return "", fmt.Errorf("no %s translation for %q", locale, key)
}

func loadCatalog(path string) (catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read translations: %w", err)
	}
	var c catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode translations %s: %w", path, err)
	}
	return c, nil
}

// localize rewrites section titles and row labels of ds for locale.
func localize(ds *form.DataSource, path, locale string) error {
	if path == "" {
		return nil
	}
	c, err := loadCatalog(path)
	if err != nil {
		return err
	}
	if _, ok := c[locale]; !ok {
		return fmt.Errorf("translations %s have no locale %q", path, locale)
	}
	ds.SetSections(render.LocalizeSections(ds.Sections(), render.LocalizeOptions{
		Locale:     locale,
		Translator: c,
	}))
	return nil
}
