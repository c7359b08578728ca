package transcripta

import "github.com/tsawler/transcripta/subjects"

// ParseOptions holds configuration for transcript parsing.
type ParseOptions struct {
	// Subject selection
	subjects []string
	aliases  subjects.AliasTable

	// Source selection
	preferOCR    bool
	forceOCR     bool
	minTextChars int
	minCourses   int

	// OCR engine settings
	ocrDPI      int
	ocrLanguage string

	// Identity search depth (pages)
	maxPages int
}

// defaultParseOptions returns the default parsing options.
func defaultParseOptions() ParseOptions {
	return ParseOptions{
		subjects:     nil, // nil means all known subject families
		aliases:      nil, // nil means subjects.DefaultAliases()
		preferOCR:    false,
		forceOCR:     false,
		minTextChars: 400,
		minCourses:   2,
		ocrDPI:       300,
		ocrLanguage:  "eng",
		maxPages:     2,
	}
}

// clone creates a deep copy of ParseOptions.
func (o ParseOptions) clone() ParseOptions {
	newOpts := o

	if o.subjects != nil {
		newOpts.subjects = make([]string, len(o.subjects))
		copy(newOpts.subjects, o.subjects)
	}
	if o.aliases != nil {
		newOpts.aliases = make(subjects.AliasTable, len(o.aliases))
		for name, prefixes := range o.aliases {
			newOpts.aliases[name] = append([]string(nil), prefixes...)
		}
	}

	return newOpts
}
