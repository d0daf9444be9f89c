// Package raster renders PDF pages to images with MuPDF via go-fitz.
//
// go-fitz ships prebuilt MuPDF libraries for common platforms; building
// requires cgo.
package raster

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// FitzRasterizer renders pages at MuPDF's default resolution.
type FitzRasterizer struct{}

// NewFitzRasterizer creates a new FitzRasterizer.
func NewFitzRasterizer() *FitzRasterizer {
	return &FitzRasterizer{}
}

// Rasterize returns one image per page, in page order.
func (r *FitzRasterizer) Rasterize(data []byte) ([]image.Image, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("opening PDF for rendering: %w", err)
	}
	defer doc.Close()

	n := doc.NumPage()
	images := make([]image.Image, 0, n)
	for i := 0; i < n; i++ {
		img, err := doc.Image(i)
		if err != nil {
			return nil, fmt.Errorf("rendering page %d: %w", i+1, err)
		}
		images = append(images, img)
	}
	return images, nil
}
