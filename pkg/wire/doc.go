// Package wire reads and writes the form interchange format
//
//	{title, sections: [{title, footer, values: [{type, data}]}]}
//
// as JSON or YAML, and submits forms to the endpoint carried by a submit
// value. Malformed payloads fail at decode time with a *DecodeError and
// never reach the form packages.
package wire
