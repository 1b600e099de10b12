// Package query builds, manages, and evaluates row filters over tables.
//
// A filter is a Predicate: one column, one operator, one operand. The
// operators legal for a predicate depend on the column's kind:
//
//   - Numeric and Temporal columns take ==, !=, <, <=, >, >=
//   - Categorical columns take ==, !=, contains, not contains, in, not in
//
// Predicates are validated when constructed; NewPredicate rejects an
// operator outside the column's legal set or an operand of the wrong shape
// with an error wrapping ErrInvalidPredicate.
//
// # Filter Sets
//
// Predicates collect into a FilterSet, an immutable ordered snapshot
// combined by logical AND. Every change returns a new set:
//
//	fs := query.NewFilterSet()
//	fs = fs.Append(pred)
//	fs = fs.RemoveAt(0)
//
// Because sets never mutate, a snapshot handed to Apply cannot change
// mid-evaluation, and concurrent readers of an older snapshot are safe.
//
// # Evaluation
//
//	filtered := query.Apply(tbl, fs)
//
// Apply returns a new table holding the rows satisfying every predicate;
// the input table is never modified. Applying the empty set returns the
// table unchanged. Evaluation is permissive: a predicate whose operand
// cannot be coerced to the column's native type, or that names an unknown
// column, is skipped rather than failing the whole pass.
//
// Missing values never satisfy a positive test (==, <, contains, in); the
// complement operators (!=, not contains, not in) are true for them.
//
// # Parsing
//
// ParsePredicate turns one textual filter expression into a validated
// predicate:
//
//	pred, err := query.ParsePredicate(`city in (NYC, "San Francisco")`, tbl.Kind)
//
// Supported forms include comparisons (age >= 30), substring tests
// (city contains ny, name not contains bob), and set membership
// (city in (NYC, LA)). Quoted strings may hold spaces and commas; bare
// values keep dashes, dots, slashes, and colons so dates and numbers lex
// as single tokens.
package query
