// Package fields extracts the student name and issuing institution
// from transcript rows.
//
// Both extractions are ordered cascades of matcher strategies: each
// matcher is a pure function over a row's text, applied in sequence
// until one succeeds. A cascade that finds nothing returns an empty
// string; that is a normal outcome, not an error.
package fields
