package model

import "strings"

// Word is a single positioned token. Coordinates are in a top-down page
// space: Y0 is the top edge, Y1 the bottom edge, and Y grows downward.
// Words from the PDF text layer and from OCR share this shape.
type Word struct {
	Text string
	X0   float64
	X1   float64
	Y0   float64
	Y1   float64
	Page int
}

// WordFromQuad builds a Word from an OCR quadrilateral. OCR engines
// return four corner points rather than an axis-aligned box; the box is
// derived from corner min/max.
func WordFromQuad(text string, quad Quad, page int) Word {
	x0, x1, y0, y1 := quad.Bounds()
	return Word{Text: text, X0: x0, X1: x1, Y0: y0, Y1: y1, Page: page}
}

// Row is a horizontal cluster of words on one page. Words are ordered by
// X0. Y is the representative vertical position (the top of the word
// that opened the row); every word in the row lies within the grouping
// tolerance of Y.
type Row struct {
	Page  int
	Y     float64
	Words []Word
}

// Text joins the row's words with single spaces, in X order.
func (r Row) Text() string {
	parts := make([]string, len(r.Words))
	for i, w := range r.Words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

// RightOf returns the row's words whose left edge lies strictly to the
// right of x.
func (r Row) RightOf(x float64) []Word {
	for i, w := range r.Words {
		if w.X0 > x {
			return r.Words[i:]
		}
	}
	return nil
}

// GradeNone is the sentinel grade reported when no grade could be
// detected for a course.
const GradeNone = "none"

// GradeInProgress is reported when the document carries an
// "IN PROGRESS" marker and no explicit grade was found for the course.
const GradeInProgress = "IN PROGRESS"

// CourseRecord is one recognized course mention.
type CourseRecord struct {
	// Code is the normalized "PREFIX NUMBER" form, e.g. "MATH 101".
	Code string `json:"code"`

	// Title is the harvested course title; may be empty.
	Title string `json:"title"`

	// Grade is a letter grade, GradeInProgress, or GradeNone.
	Grade string `json:"grade"`
}

// Source identifies which extraction pipeline produced the data used
// for the final report.
type Source string

const (
	// SourcePDF means the PDF text layer was used.
	SourcePDF Source = "pdf"

	// SourceOCR means the OCR fallback produced the reported result.
	SourceOCR Source = "ocr"
)

// TranscriptSummary is the final per-file result. Empty Student or
// University means the field could not be extracted; callers render a
// placeholder rather than treating it as an error.
type TranscriptSummary struct {
	Student    string         `json:"student,omitempty"`
	University string         `json:"university,omitempty"`
	Courses    []CourseRecord `json:"courses"`
	TextSource Source         `json:"text_source"`

	// Notes carries free-form diagnostics (pages read, text lengths,
	// OCR availability) surfaced in JSON output.
	Notes map[string]string `json:"notes,omitempty"`
}
