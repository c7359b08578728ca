package scan

import "regexp"

var (
	// courseNumberRe matches a course number token: 3-4 digits with an
	// optional trailing letter (e.g. 101, 2410, 301A).
	courseNumberRe = regexp.MustCompile(`^(\d{3,4})([A-Z]?)$`)

	// combinedCodeRe matches prefix and number fused into one token,
	// optionally separated by a colon, hyphen, en dash, or em dash
	// (e.g. MATH101, MATH-101, MATH:101).
	combinedCodeRe = regexp.MustCompile(`^([A-Za-z]{2,5})[:\-\x{2013}\x{2014}]?(\d{3,4}[A-Za-z]?)$`)

	// creditsRe matches a numeric credits token such as 3.00 or 4.000.
	creditsRe = regexp.MustCompile(`^\d+\.\d{2,3}$`)

	// letterGradeRe matches a strict letter grade with optional modifier.
	letterGradeRe = regexp.MustCompile(`^[A-F][+-]?$`)

	// adminRowRe matches administrative and banner rows that must never
	// be treated as course anchors: GPA and totals lines, Dean's List
	// mentions, semester/term banners, header boilerplate, and URLs.
	adminRowRe = regexp.MustCompile(`(?i)\b(gpa|totals?|dean'?s\s+list|(fall|spring|summer|winter)\s+(semester|term|\d{4})|semester\s+\d|credits?\s+(attempted|earned)|cum(ulative)?\s|academic\s+(standing|year)|transcript|registrar|continued\s+on|www\.|https?:)`)
)

// separatorTokens are the tokens accepted between a subject prefix and
// a course number when the layout splits them apart.
var separatorTokens = map[string]bool{
	":":      true,
	"-":      true,
	"–": true, // en dash
	"—": true, // em dash
}

// stopTokens terminate title harvesting: credit, term, status, grade,
// and administrative column markers.
var stopTokens = map[string]bool{
	"CREDIT":    true,
	"CREDITS":   true,
	"CR":        true,
	"HRS":       true,
	"HOURS":     true,
	"UNITS":     true,
	"TERM":      true,
	"SEMESTER":  true,
	"GRADE":     true,
	"PASS":      true,
	"FAIL":      true,
	"WITHDRAWN": true,
	"AUDIT":     true,
	"REPEAT":    true,
	"GPA":       true,
	"TOTAL":     true,
	"TOTALS":    true,
	"ATTEMPTED": true,
	"EARNED":    true,
	"POINTS":    true,
	"QUALITY":   true,
}

// markerTokens are campus, delivery-mode, and level markers. Before any
// title content they are layout noise and get skipped; after title
// content has started they terminate the title.
var markerTokens = map[string]bool{
	"CAMPUS":   true,
	"MAIN":     true,
	"ONLINE":   true,
	"WEB":      true,
	"DISTANCE": true,
	"HYBRID":   true,
	"LEC":      true,
	"LAB":      true,
	"UG":       true,
	"GR":       true,
	"UGRD":     true,
	"GRAD":     true,
	"EVE":      true,
	"DAY":      true,
}
