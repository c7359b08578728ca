// Package subjects maps short subject names to the course-code prefixes
// institutions actually print on transcripts.
package subjects

import "strings"

// AliasTable maps a lowercase short subject name (e.g. "math") to the
// set of accepted course-code prefixes (e.g. MATH, MAT, MTH, MA). It is
// passed into the scanners at construction so tests can substitute an
// alternate table.
type AliasTable map[string][]string

// DefaultAliases returns the built-in alias table.
func DefaultAliases() AliasTable {
	return AliasTable{
		"math":    {"MATH", "MAT", "MTH", "MA", "MATG"},
		"stat":    {"STAT", "STA"},
		"cs":      {"CS", "CSC", "CSCI", "CSE", "COSC"},
		"physics": {"PHYS", "PHY"},
		"chem":    {"CHEM", "CHM"},
		"bio":     {"BIOL", "BIO"},
		"econ":    {"ECON", "ECN"},
		"engr":    {"ENGR", "EGR"},
	}
}

// Expand resolves a list of subject names into course-code prefixes.
// Known names expand through the table; unrecognized tokens pass
// through uppercased as literal prefixes. The result is de-duplicated
// with order preserved.
func (t AliasTable) Expand(names []string) []string {
	var out []string
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if prefixes, ok := t[key]; ok {
			out = append(out, prefixes...)
			continue
		}
		if key != "" {
			out = append(out, strings.ToUpper(key))
		}
	}

	seen := make(map[string]bool, len(out))
	uniq := out[:0]
	for _, p := range out {
		u := strings.ToUpper(p)
		if !seen[u] {
			seen[u] = true
			uniq = append(uniq, u)
		}
	}
	return uniq
}
