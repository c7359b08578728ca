package pdfsource

import (
	"errors"
	"fmt"

	"github.com/tsawler/transcripta/model"
)

// PageImage is one embedded raster image extracted from a page,
// encoded in the format named by Type ("png", "jpg", "tiff").
type PageImage struct {
	Data []byte
	Type string
}

// ErrNoTextLayer is returned by text operations when the file could
// not be opened by the text-layer backend at all.
var ErrNoTextLayer = errors.New("pdfsource: no readable text layer")

// ErrNoStructure is returned by structure operations when the file
// could not be opened by the structure backend at all.
var ErrNoStructure = errors.New("pdfsource: document structure unreadable")

// File is a PDF opened for transcript extraction. The zero value is
// not usable; obtain one with Open.
type File struct {
	path string
	doc  *textLayer
	imgs *imageSource
}

// Open opens path with both backends. It fails only when neither
// backend can read the file; a single-backend failure leaves the
// corresponding operations returning their sentinel errors.
func Open(path string) (*File, error) {
	f := &File{path: path}

	doc, docErr := openTextLayer(path)
	if docErr == nil {
		f.doc = doc
	}

	imgs, imgErr := openImageSource(path)
	if imgErr == nil {
		f.imgs = imgs
	}

	if f.doc == nil && f.imgs == nil {
		return nil, fmt.Errorf("pdfsource: open %s: %w", path, docErr)
	}
	return f, nil
}

// Path returns the path the file was opened from.
func (f *File) Path() string { return f.path }

// PageCount reports the number of pages, preferring the structure
// backend's count when available.
func (f *File) PageCount() int {
	if f.imgs != nil {
		return f.imgs.pageCount()
	}
	if f.doc != nil {
		return f.doc.pageCount()
	}
	return 0
}

// ExtractWords returns the positioned words on the 1-based page
// pageNr, sorted by top edge then left edge. A page the text layer
// cannot decode yields an empty slice, not an error.
func (f *File) ExtractWords(pageNr int) ([]model.Word, error) {
	if f.doc == nil {
		return nil, ErrNoTextLayer
	}
	return f.doc.extractWords(pageNr)
}

// ExtractText returns the plain text of the 1-based page pageNr.
func (f *File) ExtractText(pageNr int) (string, error) {
	if f.doc == nil {
		return "", ErrNoTextLayer
	}
	return f.doc.extractText(pageNr)
}

// HasImages reports whether any page carries an embedded image
// stream. False when the structure backend is unavailable.
func (f *File) HasImages() bool {
	if f.imgs == nil {
		return false
	}
	return f.imgs.hasImages()
}

// PageImages extracts the embedded raster images of the 1-based page
// pageNr.
func (f *File) PageImages(pageNr int) ([]PageImage, error) {
	if f.imgs == nil {
		return nil, ErrNoStructure
	}
	return f.imgs.pageImages(pageNr)
}

// Close releases both backends. Safe to call on a partially opened
// file.
func (f *File) Close() error {
	var err error
	if f.doc != nil {
		err = f.doc.close()
		f.doc = nil
	}
	if f.imgs != nil {
		if cerr := f.imgs.close(); err == nil {
			err = cerr
		}
		f.imgs = nil
	}
	return err
}
