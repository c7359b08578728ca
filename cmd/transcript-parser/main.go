// Command transcript-parser extracts course records, student name, and
// issuing institution from academic transcript PDFs.
//
// Usage:
//
//	transcript-parser --subjects math,stat transcript.pdf
//	transcript-parser --subjects cs --force-ocr --ocr-dpi 600 scan.pdf
//	transcript-parser --subjects math --out report.json *.pdf
//	transcript-parser --dump-rows --grep MATH transcript.pdf
//
// Per-file failures are reported inline and do not abort the run; the
// exit code is nonzero only for usage errors.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/tsawler/transcripta"
)

// subjectsFlag collects --subjects values, accepting both repeated
// flags and comma-separated lists.
type subjectsFlag []string

func (s *subjectsFlag) String() string {
	return strings.Join(*s, ",")
}

func (s *subjectsFlag) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			*s = append(*s, part)
		}
	}
	return nil
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("transcript-parser", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var subjects subjectsFlag
	fs.Var(&subjects, "subjects", "subject families or department prefixes (repeatable or comma-separated)")
	out := fs.String("out", "", "write the combined report as JSON to this path")
	preferOCR := fs.Bool("prefer-ocr", false, "run OCR and adopt its results unless the text layer finds more courses")
	forceOCR := fs.Bool("force-ocr", false, "run OCR and adopt its results unconditionally")
	ocrDPI := fs.Int("ocr-dpi", 300, "OCR resolution")
	ocrLang := fs.String("ocr-lang", "eng", "OCR language code (e.g. eng, eng+fra)")
	maxPages := fs.Int("max-pages", 2, "leading pages searched for student name and university")
	verbose := fs.Bool("verbose", false, "log per-stage details to stderr")
	dumpRows := fs.Bool("dump-rows", false, "print the grouped rows instead of parsing (for tuning)")
	grep := fs.String("grep", "", "with --dump-rows, only print rows matching this pattern")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	files := fs.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: transcript-parser --subjects <name>[,<name>...] <pdf>...")
		fs.PrintDefaults()
		return 2
	}
	if len(subjects) == 0 && !*dumpRows {
		fmt.Fprintln(os.Stderr, "transcript-parser: --subjects is required")
		return 2
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var grepRe *regexp.Regexp
	if *grep != "" {
		re, err := regexp.Compile(*grep)
		if err != nil {
			fmt.Fprintf(os.Stderr, "transcript-parser: bad --grep pattern: %v\n", err)
			return 2
		}
		grepRe = re
	}

	var reports []fileReport
	for _, file := range files {
		if *dumpRows {
			dumpFileRows(logger, file, grepRe)
			continue
		}

		parser := transcripta.Open(file).
			Subjects(subjects...).
			OCRDPI(*ocrDPI).
			OCRLanguage(*ocrLang).
			MaxPages(*maxPages)
		if *preferOCR {
			parser = parser.PreferOCR()
		}
		if *forceOCR {
			parser = parser.ForceOCR()
		}

		summary, warnings, err := parser.Summary()
		for _, w := range warnings {
			logger.Warn("parse warning", "file", file, "stage", w.Stage, "message", w.Message)
		}
		if err != nil {
			logger.Error("parse failed", "file", file, "error", err)
		} else {
			logger.Debug("parsed",
				"file", file,
				"courses", len(summary.Courses),
				"text_source", summary.TextSource)
		}

		report := buildReport(file, subjects, summary, warnings, err)
		printReport(os.Stdout, report)
		reports = append(reports, report)
	}

	if *out != "" && !*dumpRows {
		if err := writeJSON(*out, reports); err != nil {
			logger.Warn("failed to write JSON report", "path", *out, "error", err)
		}
	}

	return 0
}

// dumpFileRows prints the grouped rows of one file, one per line, for
// tuning grouping and scanning heuristics.
func dumpFileRows(logger *slog.Logger, file string, grepRe *regexp.Regexp) {
	rows, warnings, err := transcripta.Open(file).Rows()
	for _, w := range warnings {
		logger.Warn("parse warning", "file", file, "stage", w.Stage, "message", w.Message)
	}
	if err != nil {
		logger.Error("row dump failed", "file", file, "error", err)
		return
	}

	fmt.Printf("Rows for %s\n", file)
	for _, row := range rows {
		text := row.Text()
		if grepRe != nil && !grepRe.MatchString(text) {
			continue
		}
		fmt.Printf("  p%d y%.1f: %s\n", row.Page, row.Y, text)
	}
}
