package types

import "sort"

// RowMap is the nested row structure stored by the document backend. A value
// is either a terminal scalar or another nested map (RowMap or a plain
// map[string]any as produced by encoding/json).
type RowMap map[string]any

// Tuple is a flat column to value record as seen by the persistence layer.
// Keys are full column names, possibly dotted.
type Tuple map[string]any

// ColumnSet is an unordered set of column names.
type ColumnSet map[string]struct{}

// NewColumnSet returns a set holding the given names.
func NewColumnSet(names ...string) ColumnSet {
	s := make(ColumnSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Add inserts name into the set.
func (s ColumnSet) Add(name string) {
	s[name] = struct{}{}
}

// Remove deletes name from the set.
func (s ColumnSet) Remove(name string) {
	delete(s, name)
}

// Contains reports whether name is in the set.
func (s ColumnSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Len returns the number of names in the set.
func (s ColumnSet) Len() int {
	return len(s)
}

// Sorted returns the names in lexical order.
func (s ColumnSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
