package transcripta

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/tsawler/transcripta/fields"
	"github.com/tsawler/transcripta/layout"
	"github.com/tsawler/transcripta/model"
	"github.com/tsawler/transcripta/ocr"
	"github.com/tsawler/transcripta/pdfsource"
	"github.com/tsawler/transcripta/scan"
	"github.com/tsawler/transcripta/subjects"
)

// ForceOCREnv is an environment variable that, when set to anything
// but "0" or "false", forces the OCR pass as if ForceOCR had been
// called. Useful for re-running a batch against the OCR path without
// touching the invocation.
const ForceOCREnv = "TRANSCRIPTA_FORCE_OCR"

// Parser provides a fluent interface for parsing transcript PDFs.
// Each configuration method returns a new Parser instance, making it
// safe for concurrent use and allowing method chaining.
type Parser struct {
	// Source
	filename string
	source   WordSource

	// Optional OCR engine override
	recognizer Recognizer

	// Lifecycle
	ownsSource   bool // true if we opened the source and should close it
	sourceOpened bool // true if source has been opened

	// Configuration
	options ParseOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Parser with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (p *Parser) clone() *Parser {
	return &Parser{
		filename:     p.filename,
		source:       p.source,
		recognizer:   p.recognizer,
		ownsSource:   p.ownsSource,
		sourceOpened: p.sourceOpened,
		options:      p.options.clone(),
		err:          p.err,
		warnings:     append([]Warning(nil), p.warnings...),
	}
}

// ensureSource opens the word source if not already open.
func (p *Parser) ensureSource() error {
	if p.sourceOpened {
		return nil
	}
	if p.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	src, err := pdfsource.Open(p.filename)
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	p.source = src
	p.ownsSource = true
	p.sourceOpened = true
	return nil
}

// Close releases resources associated with the Parser.
// It is safe to call Close multiple times.
func (p *Parser) Close() error {
	if p.ownsSource && p.source != nil {
		err := p.source.Close()
		p.source = nil
		p.ownsSource = false
		p.sourceOpened = false
		return err
	}
	return nil
}

// Subjects restricts course scanning to the named subject families or
// raw department prefixes. Family names ("math", "cs") expand to their
// known prefix aliases; anything else passes through as an uppercased
// prefix. With no subjects configured, every known family is scanned.
func (p *Parser) Subjects(names ...string) *Parser {
	n := p.clone()
	n.options.subjects = append([]string(nil), names...)
	return n
}

// Aliases replaces the subject alias table used to expand family
// names.
func (p *Parser) Aliases(table subjects.AliasTable) *Parser {
	n := p.clone()
	n.options.aliases = table
	return n
}

// PreferOCR always runs the OCR pass and adopts its results when they
// find at least as many courses as the text layer.
func (p *Parser) PreferOCR() *Parser {
	n := p.clone()
	n.options.preferOCR = true
	return n
}

// ForceOCR always runs the OCR pass and adopts its results regardless
// of what the text layer found.
func (p *Parser) ForceOCR() *Parser {
	n := p.clone()
	n.options.forceOCR = true
	return n
}

// OCRDPI sets the resolution reported to the OCR engine and the
// upscale target for small page images.
func (p *Parser) OCRDPI(dpi int) *Parser {
	n := p.clone()
	if dpi <= 0 {
		n.err = fmt.Errorf("invalid OCR DPI: %d", dpi)
		return n
	}
	n.options.ocrDPI = dpi
	return n
}

// OCRLanguage sets the OCR language code. Multiple languages can be
// specified as a "+" separated string (e.g. "eng+fra").
func (p *Parser) OCRLanguage(lang string) *Parser {
	n := p.clone()
	n.options.ocrLanguage = lang
	return n
}

// MaxPages limits how many leading pages the student name and
// university searches look at. Course scanning always covers the full
// document.
func (p *Parser) MaxPages(pages int) *Parser {
	n := p.clone()
	if pages < 1 {
		n.err = fmt.Errorf("invalid page limit: %d", pages)
		return n
	}
	n.options.maxPages = pages
	return n
}

// WithWordSource replaces the word source, bypassing the file open.
// The caller is responsible for closing the source.
func (p *Parser) WithWordSource(src WordSource) *Parser {
	n := p.clone()
	n.source = src
	n.ownsSource = false
	n.sourceOpened = true
	return n
}

// WithRecognizer replaces the OCR engine used by the OCR pass.
func (p *Parser) WithRecognizer(r Recognizer) *Parser {
	n := p.clone()
	n.recognizer = r
	return n
}

// passResult holds the output of one extraction pass over the
// document, from either the text layer or OCR.
type passResult struct {
	rows       []model.Row
	courses    []model.CourseRecord
	student    string
	university string
	textChars  int
}

// Summary parses the transcript and returns the extracted summary.
// This is a terminal operation that closes the underlying source.
//
// The text layer is parsed first. When it looks unreliable (too
// little text, too few courses, no identity) and the document carries
// page images, an OCR pass runs and its results are adopted only if
// they recover strictly more courses. ForceOCR and PreferOCR widen
// that acceptance rule. Every fallback decision is recorded in the
// summary's Notes.
//
// Returns the summary, any warnings encountered during processing,
// and an error if parsing failed outright. Warnings indicate
// non-fatal issues (e.g. a page that could not be decoded) where
// parsing succeeded but results may be incomplete.
func (p *Parser) Summary() (*model.TranscriptSummary, []Warning, error) {
	if p.err != nil {
		return nil, nil, p.err
	}
	if err := p.ensureSource(); err != nil {
		return nil, nil, err
	}
	defer p.Close()

	notes := make(map[string]string)
	scanner := scan.NewCourseScanner(p.resolvePrefixes())
	identity := fields.NewExtractorWithConfig(fields.Config{MaxPages: p.options.maxPages})

	textPass := p.textLayerPass(scanner, identity, notes)

	summary := &model.TranscriptSummary{
		Student:    textPass.student,
		University: textPass.university,
		Courses:    textPass.courses,
		TextSource: model.SourcePDF,
		Notes:      notes,
	}

	if p.shouldRunOCR(textPass) {
		ocrPass, ok := p.ocrPass(scanner, identity, notes)
		if ok {
			if p.acceptOCR(textPass, ocrPass) {
				summary.Courses = ocrPass.courses
				summary.TextSource = model.SourceOCR
				if summary.Student == "" {
					summary.Student = ocrPass.student
				}
				if summary.University == "" {
					summary.University = ocrPass.university
				}
			} else {
				notes["ocr_unused"] = fmt.Sprintf(
					"OCR found %d courses, text layer %d; keeping text layer",
					len(ocrPass.courses), len(textPass.courses))
			}
		}
	}

	return summary, p.warnings, nil
}

// Rows parses the text layer and returns the grouped rows without
// scanning them. This is a terminal operation that closes the
// underlying source. Intended for debugging layout issues.
func (p *Parser) Rows() ([]model.Row, []Warning, error) {
	if p.err != nil {
		return nil, nil, p.err
	}
	if err := p.ensureSource(); err != nil {
		return nil, nil, err
	}
	defer p.Close()

	words, _ := p.collectWords(make(map[string]string))
	rows := layout.NewRowGrouper().Group(words)
	return rows, p.warnings, nil
}

// resolvePrefixes expands the configured subjects into department
// prefixes, defaulting to every family in the alias table.
func (p *Parser) resolvePrefixes() []string {
	table := p.options.aliases
	if table == nil {
		table = subjects.DefaultAliases()
	}
	names := p.options.subjects
	if len(names) == 0 {
		names = make([]string, 0, len(table))
		for name := range table {
			names = append(names, name)
		}
		sort.Strings(names)
	}
	return table.Expand(names)
}

// collectWords gathers positioned words from every page of the text
// layer and counts the plain-text characters seen along the way.
func (p *Parser) collectWords(notes map[string]string) ([]model.Word, int) {
	var words []model.Word
	textChars := 0

	for pageNr := 1; pageNr <= p.source.PageCount(); pageNr++ {
		w, err := p.source.ExtractWords(pageNr)
		if err != nil {
			if errors.Is(err, pdfsource.ErrNoTextLayer) {
				notes["pdf_error"] = err.Error()
				p.warn("pdf", "no readable text layer")
				break
			}
			p.warn("pdf", "page %d: %v", pageNr, err)
			continue
		}
		words = append(words, w...)

		if text, err := p.source.ExtractText(pageNr); err == nil {
			textChars += len(strings.TrimSpace(text))
		}
	}
	return words, textChars
}

// textLayerPass runs the full pipeline over the text layer.
func (p *Parser) textLayerPass(scanner *scan.CourseScanner, identity *fields.Extractor, notes map[string]string) passResult {
	words, textChars := p.collectWords(notes)

	rows := layout.NewRowGrouper().Group(words)
	student, university := identity.Extract(rows)
	return passResult{
		rows:       rows,
		courses:    scanner.Scan(rows),
		student:    student,
		university: university,
		textChars:  textChars,
	}
}

// shouldRunOCR decides whether the OCR pass is worth running after a
// text-layer pass.
func (p *Parser) shouldRunOCR(pass passResult) bool {
	if p.options.forceOCR || p.options.preferOCR || forcedByEnv() {
		return true
	}
	if !p.source.HasImages() {
		return false
	}
	if pass.textChars < p.options.minTextChars {
		return true
	}
	if len(pass.courses) < p.options.minCourses {
		return true
	}
	if pass.student == "" && pass.university == "" {
		return true
	}
	return false
}

// acceptOCR decides whether the OCR pass replaces the text-layer
// results.
func (p *Parser) acceptOCR(textPass, ocrPass passResult) bool {
	switch {
	case p.options.forceOCR || forcedByEnv():
		return true
	case p.options.preferOCR:
		return len(ocrPass.courses) > 0 && len(ocrPass.courses) >= len(textPass.courses)
	default:
		return len(ocrPass.courses) > len(textPass.courses)
	}
}

// ocrPass recognizes every page image and runs the pipeline over the
// recognized words. The second return value is false when no image
// produced any recognition result, in which case the pass carries no
// signal and the caller should ignore it.
func (p *Parser) ocrPass(scanner *scan.CourseScanner, identity *fields.Extractor, notes map[string]string) (passResult, bool) {
	rec := p.recognizer
	if rec == nil {
		client, err := ocr.NewWithConfig(ocr.Config{
			Language:      p.options.ocrLanguage,
			DPI:           p.options.ocrDPI,
			SegMode:       ocr.PSM_AUTO,
			MinConfidence: 30,
		})
		if err != nil {
			notes["ocr_error"] = err.Error()
			p.warn("ocr", "%v", err)
			return passResult{}, false
		}
		defer client.Close()
		rec = client
	}

	var words []model.Word
	recognized := false
	for pageNr := 1; pageNr <= p.source.PageCount(); pageNr++ {
		images, err := p.source.PageImages(pageNr)
		if err != nil {
			p.warn("ocr", "page %d images: %v", pageNr, err)
			continue
		}
		for _, img := range images {
			w, err := rec.RecognizeWords(img.Data, pageNr)
			if err != nil {
				p.warn("ocr", "page %d: %v", pageNr, err)
				continue
			}
			recognized = true
			words = append(words, w...)
		}
	}
	if !recognized {
		if _, set := notes["ocr_error"]; !set {
			notes["ocr_error"] = "no page image produced recognition results"
		}
		return passResult{}, false
	}

	rows := layout.NewRowGrouperWithConfig(layout.OCRRowConfig()).Group(words)
	student, university := identity.Extract(rows)
	return passResult{
		rows:       rows,
		courses:    scanner.Scan(rows),
		student:    student,
		university: university,
	}, true
}

func forcedByEnv() bool {
	v := os.Getenv(ForceOCREnv)
	return v != "" && v != "0" && !strings.EqualFold(v, "false")
}
