package pdfrenderer

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// FitzRenderer implements PDF rendering using go-fitz (requires CGo and MuPDF)
type FitzRenderer struct {
}

// NewFitzRenderer creates a new Fitz-based PDF renderer
func NewFitzRenderer() (*FitzRenderer, error) {
	return &FitzRenderer{}, nil
}

// PageCount reports the number of pages in a PDF file
func (r *FitzRenderer) PageCount(filename string) (int, error) {
	doc, err := fitz.New(filename)
	if err != nil {
		return 0, fmt.Errorf("unable to open PDF document: %w", err)
	}
	defer doc.Close()

	return doc.NumPage(), nil
}

// RenderPage converts one page of a PDF file to an image using go-fitz.
// The document is opened per call; fitz handles are not safe for
// concurrent use, so each worker gets its own.
func (r *FitzRenderer) RenderPage(filename string, pageIndex int, dpi float64) (image.Image, error) {
	doc, err := fitz.New(filename)
	if err != nil {
		return nil, fmt.Errorf("unable to open PDF document: %w", err)
	}
	defer doc.Close()

	if pageIndex < 0 || pageIndex >= doc.NumPage() {
		return nil, fmt.Errorf("page %d out of range (document has %d pages)", pageIndex+1, doc.NumPage())
	}

	img, err := doc.ImageDPI(pageIndex, dpi)
	if err != nil {
		return nil, fmt.Errorf("unable to render page %d: %w", pageIndex+1, err)
	}

	return img, nil
}

// Close cleans up resources (no-op for Fitz renderer as docs are closed per-render)
func (r *FitzRenderer) Close() error {
	return nil
}
