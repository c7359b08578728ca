package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// minRecognitionWidth is the page-image width, in pixels, below which
// upscaling measurably improves recognition of transcript type sizes.
const minRecognitionWidth = 1200

// Prepare converts a page image into the form handed to the OCR
// engine: decoded, converted to grayscale, upscaled when the source
// resolution is too low for reliable recognition, and re-encoded as
// PNG. dpi of 0 applies the default scaling target.
func Prepare(data []byte, dpi int) ([]byte, error) {
	src, err := decodeImage(data)
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, src, bounds.Min, draw.Src)

	target := targetWidth(bounds.Dx(), dpi)
	out := image.Image(gray)
	if target > bounds.Dx() {
		scale := float64(target) / float64(bounds.Dx())
		dst := image.NewGray(image.Rect(0, 0, target, int(float64(bounds.Dy())*scale)))
		draw.CatmullRom.Scale(dst, dst.Bounds(), gray, bounds, draw.Src, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// decodeImage decodes PNG, JPEG, or TIFF data. TIFF needs an explicit
// attempt because pdfcpu emits it for CCITT-compressed scans and the
// stdlib registry does not cover it.
func decodeImage(data []byte) (image.Image, error) {
	if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	if img, err := tiff.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	if img, err := jpeg.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	return nil, fmt.Errorf("unsupported image format")
}

// targetWidth picks the width an image should be scaled to before
// recognition. Higher configured DPI raises the target proportionally.
func targetWidth(width, dpi int) int {
	target := minRecognitionWidth
	if dpi > 300 {
		target = minRecognitionWidth * dpi / 300
	}
	if width >= target {
		return width
	}
	// Cap the upscale factor; blowing a thumbnail up further only
	// amplifies compression artifacts.
	if target > width*4 {
		target = width * 4
	}
	return target
}
