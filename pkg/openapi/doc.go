// Package openapi defines the loader and parser contracts used to turn an
// OpenAPI operation into a form. Implementations live under internal/openapi
// so kin-openapi types never leak into callers; the root formlist package
// wires them together.
package openapi
