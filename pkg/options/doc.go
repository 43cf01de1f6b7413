// Package options supplies choice lists for picker values. Providers return
// value.Option slices so a picker can be filled from a static list, an
// embedded IANA timezone list or any custom source.
package options
