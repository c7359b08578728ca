package fields

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/transcripta/model"
)

// Config holds configuration for field extraction
type Config struct {
	// MaxPages restricts extraction to the first pages of the
	// document; names and letterheads do not appear deeper.
	MaxPages int
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{MaxPages: 2}
}

// Extractor extracts the student name and issuing institution from rows.
type Extractor struct {
	config  Config
	domains map[string]string
}

// NewExtractor creates an extractor with default configuration
func NewExtractor() *Extractor {
	return NewExtractorWithConfig(DefaultConfig())
}

// NewExtractorWithConfig creates an extractor with custom configuration
func NewExtractorWithConfig(config Config) *Extractor {
	return &Extractor{config: config, domains: defaultDomainTable()}
}

// Extract runs the name and university cascades over the rows. Either
// result may be empty when no pattern matched; callers render a
// placeholder for empty fields rather than failing.
func (e *Extractor) Extract(rows []model.Row) (student, university string) {
	rows = e.limitPages(rows)
	return e.extractName(rows), e.extractUniversity(rows)
}

func (e *Extractor) limitPages(rows []model.Row) []model.Row {
	if e.config.MaxPages <= 0 || len(rows) == 0 {
		return rows
	}
	firstPage := rows[0].Page
	for i, r := range rows {
		if r.Page >= firstPage+e.config.MaxPages {
			return rows[:i]
		}
	}
	return rows
}

// matcher is one strategy in a cascade: it either extracts a candidate
// from a row's text or reports no match.
type matcher func(text string) (string, bool)

// reMatcher builds a matcher from a regexp with one capture group.
func reMatcher(re *regexp.Regexp) matcher {
	return func(text string) (string, bool) {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
		return "", false
	}
}

var nameMatchers = []matcher{
	// "Record of: JANE DOE ... Page: 1" ledger headers.
	reMatcher(regexp.MustCompile(`(?i)record of:?\s+(.+?)\s+page:?\s*\d+`)),
	reMatcher(regexp.MustCompile(`(?i)issued to:?\s+(.+)`)),
	reMatcher(regexp.MustCompile(`(?i)student name:?\s+(.+)`)),
	reMatcher(regexp.MustCompile(`(?i)^name:\s*(.+)`)),
	// "DOE, JANE 001234567" roster lines; the id confirms the shape.
	func(text string) (string, bool) {
		m := lastFirstIDRe.FindStringSubmatch(text)
		if m == nil {
			return "", false
		}
		return m[1] + ", " + m[2], true
	},
}

var lastFirstIDRe = regexp.MustCompile(`^([A-Z][A-Za-z'\-]+),\s+([A-Z][A-Za-z.'\-]+(?:\s+[A-Z][A-Za-z.'\-]+)*)\s+\d{5,}\b`)

// extractName applies the name matchers in order; the first match
// across the cascade wins, with earlier matchers taking priority over
// earlier rows.
func (e *Extractor) extractName(rows []model.Row) string {
	for _, match := range nameMatchers {
		for _, row := range rows {
			if cand, ok := match(row.Text()); ok {
				if cleaned := cleanName(cand); cleaned != "" {
					return cleaned
				}
			}
		}
	}
	return ""
}

var (
	trailingIDParenRe = regexp.MustCompile(`\s*\([^)]*\d[^)]*\)\s*$`)
	spacesRe          = regexp.MustCompile(`\s{2,}`)
)

// cleanName normalizes a raw name candidate: NFKC normalization, email
// tokens dropped, a trailing parenthetical containing a digit removed
// (institutional IDs), whitespace collapsed, trailing punctuation
// stripped.
func cleanName(s string) string {
	s = norm.NFKC.String(s)

	if strings.Contains(s, "@") {
		var kept []string
		for _, tok := range strings.Fields(s) {
			if !strings.Contains(tok, "@") {
				kept = append(kept, tok)
			}
		}
		s = strings.Join(kept, " ")
	}

	s = trailingIDParenRe.ReplaceAllString(s, "")
	s = spacesRe.ReplaceAllString(strings.TrimSpace(s), " ")
	return strings.TrimRight(s, " .,;:-")
}

// universityKeywords maps institution keywords to their weight in
// candidate scoring.
var universityKeywords = []struct {
	word   string
	weight int
}{
	{"COMMUNITY COLLEGE", 4},
	{"UNIVERSITY", 3},
	{"COLLEGE", 2},
	{"INSTITUTE", 2},
	{"POLYTECHNIC", 2},
}

var (
	labelValueRe = regexp.MustCompile(`^[A-Za-z][A-Za-z ]{1,24}:\s`)
	phoneRe      = regexp.MustCompile(`\(?\d{3}\)?[ .\-]?\d{3}[.\-]\d{4}`)
	campusAddonRe = regexp.MustCompile(`(?i)^(at\s+[A-Z][\w. ]+|[A-Z][\w. ]+\s+campus)\s*$`)

	// boilerplateMarkers cut a letterhead row where the institution
	// name ends and transcript boilerplate begins.
	boilerplateMarkers = []string{
		"TRANSCRIPT", "EXPLANATION", "REGISTRAR", "PHONE", "FAX",
		"P.O. BOX", "PO BOX", "STREET", "AVENUE", "SUITE",
	}
)

// extractUniversity runs the institution cascade: keyword-bearing
// letterhead rows scored by keyword weight (with campus-addon
// stitching), then an email-domain lookup as a last resort.
func (e *Extractor) extractUniversity(rows []model.Row) string {
	type candidate struct {
		text  string
		score int
	}

	var best candidate
	var addon string

	for _, row := range rows {
		text := strings.TrimSpace(row.Text())
		if text == "" {
			continue
		}

		if addon == "" && campusAddonRe.MatchString(text) {
			addon = text
			continue
		}

		upper := strings.ToUpper(text)
		score := 0
		for _, kw := range universityKeywords {
			if strings.Contains(upper, kw.word) {
				score = kw.weight
				break
			}
		}
		if score == 0 || labelValueRe.MatchString(text) {
			continue
		}

		trimmed := truncateLetterhead(text)
		if trimmed == "" || !containsKeyword(trimmed) {
			continue
		}

		if score > best.score {
			best = candidate{text: trimmed, score: score}
		}
	}

	if best.text != "" {
		if addon != "" {
			return best.text + " " + addon
		}
		return best.text
	}

	return e.lookupByEmailDomain(rows)
}

// truncateLetterhead cuts a candidate row at the first boilerplate
// marker or phone-number-shaped substring.
func truncateLetterhead(text string) string {
	cut := len(text)
	upper := strings.ToUpper(text)
	for _, marker := range boilerplateMarkers {
		if idx := strings.Index(upper, marker); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	if loc := phoneRe.FindStringIndex(text); loc != nil && loc[0] < cut {
		cut = loc[0]
	}
	return strings.TrimRight(strings.TrimSpace(text[:cut]), " .,;:-|")
}

func containsKeyword(text string) bool {
	upper := strings.ToUpper(text)
	for _, kw := range universityKeywords {
		if strings.Contains(upper, kw.word) {
			return true
		}
	}
	return false
}

var emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@([A-Za-z0-9.\-]+\.[A-Za-z]{2,})`)

// lookupByEmailDomain resolves the institution from any email address
// found in the rows, trying the full domain and then its registrable
// tail (mail.asu.edu -> asu.edu).
func (e *Extractor) lookupByEmailDomain(rows []model.Row) string {
	for _, row := range rows {
		m := emailRe.FindStringSubmatch(row.Text())
		if m == nil {
			continue
		}
		domain := strings.ToLower(m[1])
		if name, ok := e.domains[domain]; ok {
			return name
		}
		parts := strings.Split(domain, ".")
		if len(parts) > 2 {
			tail := strings.Join(parts[len(parts)-2:], ".")
			if name, ok := e.domains[tail]; ok {
				return name
			}
		}
	}
	return ""
}

// defaultDomainTable is the known email-domain-to-institution mapping
// used as the last-resort university source.
func defaultDomainTable() map[string]string {
	return map[string]string{
		"asu.edu":    "Arizona State University",
		"umich.edu":  "University of Michigan",
		"osu.edu":    "The Ohio State University",
		"psu.edu":    "The Pennsylvania State University",
		"ucla.edu":   "University of California, Los Angeles",
		"utexas.edu": "The University of Texas at Austin",
		"umn.edu":    "University of Minnesota",
		"wisc.edu":   "University of Wisconsin-Madison",
	}
}
