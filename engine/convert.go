package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// convertPage renders one page and writes it out as a JPEG
func (c *Converter) convertPage(task renderTask) error {
	img, err := c.Renderer.RenderPage(task.doc, task.page, c.Config.RenderDPI)
	if err != nil {
		return fmt.Errorf("render page %d of %s: %w", task.page+1, filepath.Base(task.doc), err)
	}

	// Optionally scale down to MaxWidth, with light sharpening to keep
	// text legible after the resample
	if c.Config.MaxWidth > 0 && img.Bounds().Dx() > c.Config.MaxWidth {
		img = imaging.Resize(img, c.Config.MaxWidth, 0, imaging.Lanczos)
		img = imaging.Sharpen(img, 0.5)
	}

	err = imaging.Save(img, task.outPath, imaging.JPEGQuality(c.Config.JPEGQuality))
	if err != nil {
		// Don't leave a truncated JPEG behind
		os.Remove(task.outPath)
		return fmt.Errorf("write %s: %w", task.outPath, err)
	}

	Logger.Debug("Page converted", "file", task.outPath)
	return nil
}

// outputDir returns the directory images for a PDF are written into,
// a sibling directory named after the PDF without its extension
func outputDir(pdfPath string) string {
	base := filepath.Base(pdfPath)
	stem := base[:len(base)-len(filepath.Ext(base))]
	return filepath.Join(filepath.Dir(pdfPath), stem)
}

// pageFileName names the JPEG for a page. Numbers are 1-based and
// zero-padded to padWidth so directory listings sort in page order.
func pageFileName(pageIndex, padWidth int) string {
	return fmt.Sprintf("page_%0*d.jpg", padWidth, pageIndex+1)
}
