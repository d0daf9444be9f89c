//go:build noocr

package ocr

import (
	"errors"
	"image"
)

// ErrOCRNotEnabled is returned by every recognition when the binary was
// built without Tesseract.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild without -tags noocr")

// TesseractRecognizer is a placeholder that always fails.
type TesseractRecognizer struct{}

// NewTesseractRecognizer accepts the same arguments as the real recognizer.
func NewTesseractRecognizer(languages ...string) *TesseractRecognizer {
	return &TesseractRecognizer{}
}

// Recognize always returns ErrOCRNotEnabled.
func (t *TesseractRecognizer) Recognize(img image.Image) (string, error) {
	return "", ErrOCRNotEnabled
}
