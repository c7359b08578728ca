// Package transcripta provides a fluent API for extracting course
// records, student identity, and institution from academic transcript
// PDFs, with OCR fallback for scanned documents.
//
// Basic usage:
//
//	summary, warnings, err := transcripta.Open("transcript.pdf").
//	    Subjects("math", "stat").
//	    Summary()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", transcripta.FormatWarnings(warnings))
//	}
//
// With options:
//
//	summary, _, err := transcripta.Open("scan.pdf").
//	    Subjects("cs").
//	    ForceOCR().
//	    OCRDPI(600).
//	    Summary()
//
// OCR requires building with the "ocr" tag and a system Tesseract
// install; without it, scanned documents yield an ocr_error note in
// the summary and whatever the text layer provided.
package transcripta

import (
	"github.com/tsawler/transcripta/model"
	"github.com/tsawler/transcripta/pdfsource"
)

// WordSource supplies positioned words, plain text, and page images
// for one document. *pdfsource.File is the standard implementation.
type WordSource interface {
	PageCount() int
	ExtractWords(pageNr int) ([]model.Word, error)
	ExtractText(pageNr int) (string, error)
	HasImages() bool
	PageImages(pageNr int) ([]pdfsource.PageImage, error)
	Close() error
}

// Recognizer turns a page image into positioned words. *ocr.Client is
// the standard implementation.
type Recognizer interface {
	RecognizeWords(imageData []byte, pageNr int) ([]model.Word, error)
	Close() error
}

// Open opens a transcript PDF and returns a Parser for fluent
// configuration. The returned Parser must be closed when done, either
// explicitly via Close() or implicitly when calling a terminal
// operation like Summary().
//
// Example:
//
//	summary, warnings, err := transcripta.Open("transcript.pdf").Summary()
func Open(filename string) *Parser {
	return &Parser{
		filename: filename,
		options:  defaultParseOptions(),
	}
}

// FromSource creates a Parser from an already-opened word source.
// The caller is responsible for closing the source.
func FromSource(src WordSource) *Parser {
	return &Parser{
		source:       src,
		ownsSource:   false,
		sourceOpened: true,
		options:      defaultParseOptions(),
	}
}
