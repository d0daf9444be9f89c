//go:build !noocr

// Package ocr recognizes text in page images with Tesseract via gosseract.
//
// Tesseract and its headers must be installed. On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr libtesseract-dev
//
// Build with -tags noocr to leave Tesseract out; every recognition then
// fails with ErrOCRNotEnabled.
package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// TesseractRecognizer runs Tesseract with its default settings. Each call
// uses its own client, so a recognizer is safe for concurrent use.
type TesseractRecognizer struct {
	languages     []string
	clientFactory func() *gosseract.Client
}

// NewTesseractRecognizer creates a recognizer for the given languages
// (e.g. "eng"). No languages means Tesseract's default.
func NewTesseractRecognizer(languages ...string) *TesseractRecognizer {
	return &TesseractRecognizer{
		languages:     languages,
		clientFactory: gosseract.NewClient,
	}
}

// Recognize returns the text Tesseract reads from img, untrimmed.
func (t *TesseractRecognizer) Recognize(img image.Image) (string, error) {
	data, err := encodePNG(img)
	if err != nil {
		return "", err
	}

	client := t.clientFactory()
	defer client.Close()

	if len(t.languages) > 0 {
		if err := client.SetLanguage(t.languages...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode page image: %w", err)
	}
	return buf.Bytes(), nil
}
