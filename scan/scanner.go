package scan

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/tsawler/transcripta/model"
)

// ScanConfig holds configuration for course scanning
type ScanConfig struct {
	// MaxContinuationRows bounds how many rows after an anchor may be
	// stitched into its title.
	MaxContinuationRows int

	// AlignTolerance is the maximum horizontal distance between a
	// continuation row's first token and the established title left
	// edge. Useful values are 24-40 units.
	AlignTolerance float64

	// MinTitleTokens is the title length below which continuation rows
	// are examined.
	MinTitleTokens int
}

// DefaultScanConfig returns sensible default configuration
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		MaxContinuationRows: 3,
		AlignTolerance:      32.0,
		MinTitleTokens:      2,
	}
}

// CourseScanner scans rows for course records matching a set of
// subject prefixes.
type CourseScanner struct {
	config   ScanConfig
	prefixes map[string]bool
}

// NewCourseScanner creates a scanner for the given expanded subject
// prefixes with default configuration.
func NewCourseScanner(prefixes []string) *CourseScanner {
	return NewCourseScannerWithConfig(prefixes, DefaultScanConfig())
}

// NewCourseScannerWithConfig creates a scanner with custom configuration
func NewCourseScannerWithConfig(prefixes []string, config ScanConfig) *CourseScanner {
	set := make(map[string]bool, len(prefixes))
	for _, p := range prefixes {
		set[strings.ToUpper(p)] = true
	}
	return &CourseScanner{config: config, prefixes: set}
}

// anchor is one matched subject-prefix/course-number pair within a row.
type anchor struct {
	code     string // normalized "PREFIX NUMBER"
	number   string
	startX   float64 // left edge of the prefix token
	endX     float64 // right edge of the number token
	tokenIdx int     // index of the prefix token within the row
	lastIdx  int     // index of the number token within the row
}

// Scan walks the rows in order and returns the de-duplicated course
// records, sorted by numeric course number with any non-numeric suffix
// as secondary key. Records with equal sort keys keep insertion order.
func (s *CourseScanner) Scan(rows []model.Row) []model.CourseRecord {
	inProgress := false
	for _, row := range rows {
		if strings.Contains(strings.ToUpper(row.Text()), "IN PROGRESS") {
			inProgress = true
			break
		}
	}

	var records []model.CourseRecord
	for i, row := range rows {
		if adminRowRe.MatchString(row.Text()) {
			continue
		}

		anchors := s.findAnchors(row)
		if len(anchors) == 0 || anchors[0].tokenIdx > 2 {
			continue
		}

		for ai, a := range anchors {
			limitX := math.Inf(1)
			if ai+1 < len(anchors) {
				limitX = anchors[ai+1].startX
			}

			title, titleLeft := s.harvestTitle(row, a, limitX)
			if len(title) < s.config.MinTitleTokens && ai == len(anchors)-1 {
				title = s.stitchContinuations(rows, i, a, title, titleLeft)
			}

			grade := s.detectGrade(row, a)
			if grade == "" {
				if inProgress {
					grade = model.GradeInProgress
				} else {
					grade = model.GradeNone
				}
			}

			records = append(records, model.CourseRecord{
				Code:  a.code,
				Title: strings.Join(title, " "),
				Grade: grade,
			})
		}
	}

	return sortRecords(dedupe(records))
}

// findAnchors locates every prefix/number pair in the row. The first
// anchor decides whether the row is a course row; later anchors bound
// title harvesting and cover two-column layouts.
func (s *CourseScanner) findAnchors(row model.Row) []anchor {
	var anchors []anchor
	words := row.Words

	for idx := 0; idx < len(words); idx++ {
		// Fused token: MATH101, MATH-101.
		if m := combinedCodeRe.FindStringSubmatch(words[idx].Text); m != nil {
			prefix := strings.ToUpper(m[1])
			if s.prefixes[prefix] {
				anchors = append(anchors, anchor{
					code:     prefix + " " + strings.ToUpper(m[2]),
					number:   strings.ToUpper(m[2]),
					startX:   words[idx].X0,
					endX:     words[idx].X1,
					tokenIdx: idx,
					lastIdx:  idx,
				})
				continue
			}
		}

		prefix := strings.ToUpper(words[idx].Text)
		if !s.prefixes[prefix] || idx+1 >= len(words) {
			continue
		}

		numIdx := idx + 1
		if separatorTokens[words[numIdx].Text] {
			numIdx++
			if numIdx >= len(words) {
				continue
			}
		}

		number := strings.ToUpper(words[numIdx].Text)
		if !courseNumberRe.MatchString(number) {
			continue
		}

		anchors = append(anchors, anchor{
			code:     prefix + " " + number,
			number:   number,
			startX:   words[idx].X0,
			endX:     words[numIdx].X1,
			tokenIdx: idx,
			lastIdx:  numIdx,
		})
		idx = numIdx
	}

	return anchors
}

// harvestTitle collects title tokens strictly to the right of the
// anchor's number, stopping at stoplist tokens, a credits token, a
// letter grade once title content exists, or the next anchor's x
// position. It returns the tokens and the left edge of the first
// accepted token (NaN when no token was accepted).
func (s *CourseScanner) harvestTitle(row model.Row, a anchor, limitX float64) ([]string, float64) {
	var title []string
	titleLeft := math.NaN()

	candidates := row.RightOf(a.endX - 0.1)
	for ci, w := range candidates {
		if w.X0 >= limitX {
			break
		}
		// Skip words that are part of the code itself.
		if w.X1 <= a.endX {
			continue
		}

		upper := strings.ToUpper(w.Text)

		// A solitary single-letter column marker directly after the
		// code is layout noise, not the first title word.
		if ci == 0 && len(upper) == 1 && upper >= "A" && upper <= "Z" && len(candidates) > 1 {
			continue
		}

		if markerTokens[upper] {
			if len(title) == 0 {
				continue
			}
			break
		}
		if stopTokens[upper] || creditsRe.MatchString(w.Text) {
			break
		}
		if len(title) > 0 && letterGradeRe.MatchString(upper) && w.Text == upper {
			break
		}

		title = append(title, w.Text)
		if math.IsNaN(titleLeft) {
			titleLeft = w.X0
		}
	}

	return title, titleLeft
}

// stitchContinuations extends a short title with tokens from up to
// MaxContinuationRows following rows. A row contributes only if its
// first token right of the code's end aligns with the established
// title left edge; stitching stops at the first anchor or
// administrative row.
func (s *CourseScanner) stitchContinuations(rows []model.Row, anchorIdx int, a anchor, title []string, titleLeft float64) []string {
	for k := anchorIdx + 1; k <= anchorIdx+s.config.MaxContinuationRows && k < len(rows); k++ {
		row := rows[k]
		if row.Page != rows[anchorIdx].Page {
			break
		}
		if adminRowRe.MatchString(row.Text()) {
			break
		}
		if more := s.findAnchors(row); len(more) > 0 && more[0].tokenIdx <= 2 {
			break
		}

		cand := row.RightOf(a.endX - 0.1)
		if len(cand) == 0 {
			break
		}
		if math.IsNaN(titleLeft) {
			titleLeft = cand[0].X0
		} else if math.Abs(cand[0].X0-titleLeft) > s.config.AlignTolerance {
			break
		}

		for _, w := range cand {
			upper := strings.ToUpper(w.Text)
			if markerTokens[upper] || stopTokens[upper] || creditsRe.MatchString(w.Text) {
				return title
			}
			if len(title) > 0 && letterGradeRe.MatchString(upper) && w.Text == upper {
				return title
			}
			title = append(title, w.Text)
		}
	}

	return title
}

// detectGrade resolves a grade for the anchor row. Search order: a
// strict letter grade to the right of a credits marker, then a strict
// letter grade to the left of the code (leading grade column). The
// document-wide IN PROGRESS fallback and the "none" sentinel are
// applied by the caller.
func (s *CourseScanner) detectGrade(row model.Row, a anchor) string {
	// (a) grade column after the credits column.
	var creditsRight float64
	haveCredits := false
	for _, w := range row.RightOf(a.endX - 0.1) {
		if creditsRe.MatchString(w.Text) {
			creditsRight = w.X1
			haveCredits = true
			break
		}
	}
	if haveCredits {
		for _, w := range row.Words {
			if w.X0 > creditsRight && letterGradeRe.MatchString(w.Text) {
				return w.Text
			}
		}
	}

	// (b) leading grade column: nearest strict letter grade left of the code.
	var grade string
	for _, w := range row.Words {
		if w.X1 > a.startX {
			break
		}
		if letterGradeRe.MatchString(w.Text) {
			grade = w.Text
		}
	}
	return grade
}

// dedupe drops repeated (code, grade) pairs, keeping first occurrence.
// Overlapping continuation stitching and two-column layouts can emit
// the same course twice.
func dedupe(records []model.CourseRecord) []model.CourseRecord {
	seen := make(map[string]bool, len(records))
	out := records[:0]
	for _, r := range records {
		key := r.Code + "\x00" + r.Grade
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

// sortRecords orders records by numeric course number, then by the
// non-numeric suffix. The sort is stable so equal keys keep scan order.
func sortRecords(records []model.CourseRecord) []model.CourseRecord {
	sort.SliceStable(records, func(i, j int) bool {
		ni, si := splitCourseNumber(records[i].Code)
		nj, sj := splitCourseNumber(records[j].Code)
		if ni != nj {
			return ni < nj
		}
		return si < sj
	})
	return records
}

// splitCourseNumber extracts the numeric part and suffix of a
// normalized "PREFIX NUMBER" code.
func splitCourseNumber(code string) (int, string) {
	_, numPart, ok := strings.Cut(code, " ")
	if !ok {
		return 0, ""
	}
	m := courseNumberRe.FindStringSubmatch(numPart)
	if m == nil {
		return 0, numPart
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, numPart
	}
	return n, m[2]
}
