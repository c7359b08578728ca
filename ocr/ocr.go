//go:build ocr

// Package ocr recognizes text in scanned transcript pages.
//
// This package wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/transcripta/model"
)

// Config holds OCR engine settings.
type Config struct {
	// Language is the Tesseract language code. Multiple languages can
	// be specified as a "+" separated string (e.g. "eng+fra").
	Language string

	// DPI is reported to Tesseract as the source resolution and used
	// to upscale small page images before recognition.
	DPI int

	// SegMode is the Tesseract page segmentation mode.
	SegMode PageSegMode

	// MinConfidence drops recognized words whose confidence falls
	// below this value (0-100).
	MinConfidence float64
}

// DefaultConfig returns settings suited to typed transcript pages.
func DefaultConfig() Config {
	return Config{
		Language:      "eng",
		DPI:           300,
		SegMode:       PSM_AUTO,
		MinConfidence: 30,
	}
}

// Client wraps Tesseract for OCR operations.
// The client should be closed when no longer needed to release resources.
type Client struct {
	client *gosseract.Client
	config Config
}

// New creates an OCR client with default settings.
func New() (*Client, error) {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates an OCR client with the given settings.
func NewWithConfig(config Config) (*Client, error) {
	client := gosseract.NewClient()

	if config.Language != "" {
		if err := client.SetLanguage(strings.Split(config.Language, "+")...); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set language: %w", err)
		}
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(config.SegMode)); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set segmentation mode: %w", err)
	}
	if config.DPI > 0 {
		if err := client.SetVariable("user_defined_dpi", strconv.Itoa(config.DPI)); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set dpi: %w", err)
		}
	}

	return &Client{client: client, config: config}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c != nil && c.client != nil {
		return c.client.Close()
	}
	return nil
}

// RecognizeText performs OCR on image data (PNG, TIFF, JPEG) and
// returns the recognized text with surrounding whitespace trimmed.
func (c *Client) RecognizeText(imageData []byte) (string, error) {
	prepared, err := Prepare(imageData, c.config.DPI)
	if err != nil {
		return "", err
	}
	if err := c.client.SetImageFromBytes(prepared); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// RecognizeWords performs OCR on image data and returns the recognized
// words with their pixel-space bounding boxes, tagged with pageNr.
// Words below the configured confidence threshold are dropped.
func (c *Client) RecognizeWords(imageData []byte, pageNr int) ([]model.Word, error) {
	prepared, err := Prepare(imageData, c.config.DPI)
	if err != nil {
		return nil, err
	}
	if err := c.client.SetImageFromBytes(prepared); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	var words []model.Word
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		if box.Confidence < c.config.MinConfidence {
			continue
		}
		words = append(words, model.Word{
			Text: text,
			X0:   float64(box.Box.Min.X),
			X1:   float64(box.Box.Max.X),
			Y0:   float64(box.Box.Min.Y),
			Y1:   float64(box.Box.Max.Y),
			Page: pageNr,
		})
	}
	return words, nil
}
