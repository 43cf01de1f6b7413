// Package orchestrator wires the loader → parser → builder pipeline that turns
// an OpenAPI operation into a form data source, with hooks to transform the
// result before a presenter takes it over.
package orchestrator
