package openapi

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }
func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source naming a file inside the loader's fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type urlSource struct {
	raw string
}

func (s urlSource) Location() string { return s.raw }
func (s urlSource) Kind() SourceKind { return SourceKindURL }

// SourceFromURL returns a Source for an HTTP(S) document. It panics on an
// invalid URL; use ParseSource for user input.
func SourceFromURL(raw string) Source {
	src, err := urlSourceFrom(raw)
	if err != nil {
		panic(err)
	}
	return src
}

// ParseSource treats http:// and https:// locations as URLs and anything
// else as a file path.
func ParseSource(raw string) (Source, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("openapi: empty source")
	}
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return urlSourceFrom(raw)
	}
	return SourceFromFile(raw), nil
}

func urlSourceFrom(raw string) (Source, error) {
	if raw == "" {
		return nil, fmt.Errorf("openapi: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		return nil, fmt.Errorf("openapi: invalid URL %q: %w", raw, err)
	}
	return urlSource{raw: raw}, nil
}
