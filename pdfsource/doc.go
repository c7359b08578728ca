// Package pdfsource reads words, text, and page images out of PDF
// files.
//
// Two backends cooperate: the text layer (positioned words and plain
// text) is read through github.com/ledongthuc/pdf, and document
// structure (page count, image streams, embedded page images for OCR)
// through pdfcpu. Either backend may fail to open a given file; the
// package degrades to whatever the other can provide, because a
// damaged or image-only PDF is a normal input, not an error.
package pdfsource
