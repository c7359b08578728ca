package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/transcripta/model"
)

// RowConfig holds configuration for row grouping
type RowConfig struct {
	// YTolerance is the maximum distance between a word's top edge and
	// the row's representative Y for the word to join the row. Vector
	// text layers are precise and want a tight tolerance; OCR output
	// jitters and wants a loose one. Useful values are 2.0-6.0.
	YTolerance float64
}

// DefaultRowConfig returns the configuration for vector (PDF text
// layer) input.
func DefaultRowConfig() RowConfig {
	return RowConfig{YTolerance: 3.0}
}

// OCRRowConfig returns the configuration for OCR-derived input, with a
// looser tolerance to absorb bounding-box jitter.
func OCRRowConfig() RowConfig {
	return RowConfig{YTolerance: 6.0}
}

// RowGrouper clusters words into horizontal rows
type RowGrouper struct {
	config RowConfig
}

// NewRowGrouper creates a row grouper with default configuration
func NewRowGrouper() *RowGrouper {
	return &RowGrouper{config: DefaultRowConfig()}
}

// NewRowGrouperWithConfig creates a row grouper with custom configuration
func NewRowGrouperWithConfig(config RowConfig) *RowGrouper {
	return &RowGrouper{config: config}
}

// Group clusters words into rows. The input is expected in reading
// order (sorted by page, then top, then X0); each word joins the
// current row while its top stays within YTolerance of the row's
// representative Y and its page matches. Words inside a row are sorted
// by X0 when the row is closed.
//
// Whitespace-only words are discarded. An empty input yields an empty
// result, never an error: a word source that produced nothing (failed
// extraction, image-only PDF) is a normal degraded state.
func (g *RowGrouper) Group(words []model.Word) []model.Row {
	var rows []model.Row
	var cur *model.Row

	for _, w := range words {
		if strings.TrimSpace(w.Text) == "" {
			continue
		}

		if cur == nil || w.Page != cur.Page || abs(w.Y0-cur.Y) > g.config.YTolerance {
			if cur != nil {
				rows = append(rows, closeRow(*cur))
			}
			cur = &model.Row{Page: w.Page, Y: w.Y0, Words: []model.Word{w}}
			continue
		}

		cur.Words = append(cur.Words, w)
	}

	if cur != nil {
		rows = append(rows, closeRow(*cur))
	}

	return rows
}

// closeRow finalizes a row accumulator: its words are sorted
// left-to-right before the row becomes visible to callers.
func closeRow(r model.Row) model.Row {
	sort.SliceStable(r.Words, func(i, j int) bool {
		return r.Words[i].X0 < r.Words[j].X0
	})
	return r
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
