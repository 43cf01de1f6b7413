// Package value defines the closed set of field values a form is built from.
// Each variant carries its own state, structural equality, validation and a
// projection onto a flat key/value pair used for submission. Values are pure
// data: edits construct a new value and hand it to the owning data source.
//
// Invalid input never fails construction. Editable variants carry a State
// whose Invalid flag and Errors describe the problem, and Validate folds in
// the variant specific rules (required, ranges, formats).
package value
