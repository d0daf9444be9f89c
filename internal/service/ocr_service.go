package service

import (
	"fmt"
	"image"
	"strings"
)

// Rasterizer renders every page of a PDF to an image, in page order.
type Rasterizer interface {
	Rasterize(data []byte) ([]image.Image, error)
}

// Recognizer reads text out of a single image.
type Recognizer interface {
	Recognize(img image.Image) (string, error)
}

// OCRFallback recovers text from image-only PDFs by rendering and OCRing
// each page. The whole document is always reprocessed.
type OCRFallback struct {
	rasterizer Rasterizer
	recognizer Recognizer
}

// NewOCRFallback creates a new OCRFallback.
func NewOCRFallback(rasterizer Rasterizer, recognizer Recognizer) *OCRFallback {
	return &OCRFallback{
		rasterizer: rasterizer,
		recognizer: recognizer,
	}
}

// ExtractText returns the recognized text of each page followed by a newline.
// The first page that fails aborts the whole run.
func (o *OCRFallback) ExtractText(data []byte) (string, error) {
	images, err := o.rasterizer.Rasterize(data)
	if err != nil {
		return "", fmt.Errorf("rasterizing PDF: %w", err)
	}

	var sb strings.Builder
	for i, img := range images {
		text, err := o.recognizer.Recognize(img)
		if err != nil {
			return "", fmt.Errorf("recognizing page %d: %w", i+1, err)
		}
		sb.WriteString(text)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
