package diff

import (
	"fmt"
	"slices"
)

// Op names a row edit.
type Op string

const (
	OpDelete  Op = "delete"
	OpMove    Op = "move"
	OpInsert  Op = "insert"
	OpReplace Op = "replace"
)

// Edit is one step of an edit script.
//
// Delete removes the element at Index. Move removes the element at From and
// reinserts it so it ends up at To. Insert places Item so it ends up at
// Index. Replace overwrites the element at Index with Item.
type Edit[T any] struct {
	Op    Op
	Index int
	From  int
	To    int
	Item  T
}

func (e Edit[T]) String() string {
	switch e.Op {
	case OpMove:
		return fmt.Sprintf("move(%d,%d)", e.From, e.To)
	default:
		return fmt.Sprintf("%s(%d)", e.Op, e.Index)
	}
}

// Compute returns an edit script turning a into b using ==.
func Compute[T comparable](a, b []T) []Edit[T] {
	return ComputeFunc(a, b, func(x, y T) bool { return x == y })
}

// ComputeFunc returns an edit script turning a into b under eq.
//
// Edits are ordered so they can be replayed one after another: deletes by
// descending index, then moves, then inserts by ascending index, then
// replaces addressed by final index. Identical inputs produce an empty
// script.
func ComputeFunc[T any](a, b []T, eq func(x, y T) bool) []Edit[T] {
	return build(a, b, func(i, j int) bool { return eq(a[i], b[j]) })
}

// ComputeHashed is ComputeFunc with a hash prefilter: eq only runs for
// elements whose hashes match. hash must be consistent with eq.
func ComputeHashed[T any](a, b []T, eq func(x, y T) bool, hash func(T) uint64) []Edit[T] {
	ha := make([]uint64, len(a))
	for i := range a {
		ha[i] = hash(a[i])
	}
	hb := make([]uint64, len(b))
	for j := range b {
		hb[j] = hash(b[j])
	}
	return build(a, b, func(i, j int) bool { return ha[i] == hb[j] && eq(a[i], b[j]) })
}

// Apply replays script against a copy of a.
func Apply[T any](a []T, script []Edit[T]) ([]T, error) {
	out := slices.Clone(a)
	for n, edit := range script {
		switch edit.Op {
		case OpDelete:
			if edit.Index < 0 || edit.Index >= len(out) {
				return nil, fmt.Errorf("diff: edit %d %s out of range (len %d)", n, edit, len(out))
			}
			out = slices.Delete(out, edit.Index, edit.Index+1)
		case OpMove:
			if edit.From < 0 || edit.From >= len(out) || edit.To < 0 || edit.To >= len(out) {
				return nil, fmt.Errorf("diff: edit %d %s out of range (len %d)", n, edit, len(out))
			}
			moved := out[edit.From]
			out = slices.Delete(out, edit.From, edit.From+1)
			out = slices.Insert(out, edit.To, moved)
		case OpInsert:
			if edit.Index < 0 || edit.Index > len(out) {
				return nil, fmt.Errorf("diff: edit %d %s out of range (len %d)", n, edit, len(out))
			}
			out = slices.Insert(out, edit.Index, edit.Item)
		case OpReplace:
			if edit.Index < 0 || edit.Index >= len(out) {
				return nil, fmt.Errorf("diff: edit %d %s out of range (len %d)", n, edit, len(out))
			}
			out[edit.Index] = edit.Item
		default:
			return nil, fmt.Errorf("diff: edit %d has unknown op %q", n, edit.Op)
		}
	}
	return out, nil
}

// Count tallies the script by op.
func Count[T any](script []Edit[T]) map[Op]int {
	out := map[Op]int{}
	for _, edit := range script {
		out[edit.Op]++
	}
	return out
}
