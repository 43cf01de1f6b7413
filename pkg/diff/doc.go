// Package diff computes move-aware edit scripts between two ordered
// sequences compared by a caller supplied equality.
package diff
