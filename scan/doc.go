// Package scan detects course records in transcript rows.
//
// A row whose leading tokens match a subject-prefix/course-number pair
// is an anchor; the scanner harvests a title from the tokens to the
// right of the number, stitches in continuation rows by horizontal
// alignment, and resolves a grade through an ordered cascade of
// layout-specific rules.
package scan
