package transcripta

import (
	"fmt"
	"strings"
)

// Warning describes a non-fatal issue encountered while parsing.
// Parsing continued, but the results for the affected stage may be
// incomplete.
type Warning struct {
	// Stage names the pipeline stage that produced the warning
	// ("pdf", "ocr", "scan", "fields").
	Stage string

	// Message describes what went wrong.
	Message string
}

// String returns the warning as "stage: message".
func (w Warning) String() string {
	return w.Stage + ": " + w.Message
}

// FormatWarnings joins warnings into a single semicolon-separated
// string, suitable for logging.
//
// Example:
//
//	summary, warnings, err := transcripta.Open("transcript.pdf").Summary()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", transcripta.FormatWarnings(warnings))
//	}
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}

// warn appends a formatted warning for the given stage.
func (p *Parser) warn(stage, format string, args ...any) {
	p.warnings = append(p.warnings, Warning{
		Stage:   stage,
		Message: fmt.Sprintf(format, args...),
	})
}
