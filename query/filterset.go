package query

import (
	"fmt"
	"strings"
)

// FilterSet is an ordered sequence of predicates combined by logical AND.
// A FilterSet is an immutable snapshot: Append, RemoveAt, and Clear return
// a new set and never modify the receiver, so a set handed to Apply can
// never change underneath it. The zero value is the empty set.
//
// Predicates are identified by position, not content; the same predicate
// may appear twice and both occurrences apply.
type FilterSet struct {
	preds []Predicate
}

// NewFilterSet returns a set holding the given predicates in order.
func NewFilterSet(preds ...Predicate) FilterSet {
	return FilterSet{preds: append([]Predicate(nil), preds...)}
}

// Append returns a new set with p added at the end.
func (fs FilterSet) Append(p Predicate) FilterSet {
	next := make([]Predicate, len(fs.preds)+1)
	copy(next, fs.preds)
	next[len(fs.preds)] = p
	return FilterSet{preds: next}
}

// RemoveAt returns a new set with the predicate at index i removed.
// Out-of-range indices return the set unchanged.
func (fs FilterSet) RemoveAt(i int) FilterSet {
	if i < 0 || i >= len(fs.preds) {
		return fs
	}
	next := make([]Predicate, 0, len(fs.preds)-1)
	next = append(next, fs.preds[:i]...)
	next = append(next, fs.preds[i+1:]...)
	return FilterSet{preds: next}
}

// Clear returns the empty set.
func (fs FilterSet) Clear() FilterSet {
	return FilterSet{}
}

// Len returns the number of predicates.
func (fs FilterSet) Len() int {
	return len(fs.preds)
}

// At returns the predicate at index i.
func (fs FilterSet) At(i int) Predicate {
	return fs.preds[i]
}

// Predicates returns a copy of the predicates in order.
func (fs FilterSet) Predicates() []Predicate {
	return append([]Predicate(nil), fs.preds...)
}

// String formats the set as numbered predicates, one per line.
func (fs FilterSet) String() string {
	if len(fs.preds) == 0 {
		return "(no filters)"
	}
	var b strings.Builder
	for i, p := range fs.preds {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, p)
	}
	return b.String()
}
