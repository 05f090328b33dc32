package pdfrenderer

import (
	"fmt"
	"image"
)

// Renderer defines the interface for PDF page rasterization
type Renderer interface {
	// PageCount reports the number of pages in a PDF file
	PageCount(filename string) (int, error)

	// RenderPage converts a single page of a PDF file to an image
	// at the given DPI. Page indices are 0-based.
	RenderPage(filename string, pageIndex int, dpi float64) (image.Image, error)

	// Close cleans up any resources used by the renderer
	Close() error
}

// NewRenderer creates a renderer for the named backend.
// "fitz" (the default) uses MuPDF via CGo; "pdfium" is pure Go
// through a WebAssembly build of PDFium.
func NewRenderer(backend string) (Renderer, error) {
	switch backend {
	case "", "fitz":
		return NewFitzRenderer()
	case "pdfium":
		return NewPDFiumRenderer()
	default:
		return nil, fmt.Errorf("unknown renderer backend %q (expected fitz or pdfium)", backend)
	}
}
