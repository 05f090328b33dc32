package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestPendingPDFs(t *testing.T) {
	tempDir := t.TempDir()

	writeTestPDF(t, tempDir, "new.pdf")
	donePath := writeTestPDF(t, tempDir, "done.pdf")
	if err := os.MkdirAll(outputDir(donePath), os.ModePerm); err != nil {
		t.Fatalf("Failed to create output dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tempDir, "notes.txt"), []byte("not a pdf"), 0644); err != nil {
		t.Fatalf("Failed to create text file: %v", err)
	}

	pending, err := pendingPDFs(tempDir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(pending) != 1 || pending[0] != filepath.Join(tempDir, "new.pdf") {
		t.Errorf("Expected only new.pdf to be pending, got %v", pending)
	}
}

func TestConvertNewPDFs(t *testing.T) {
	tempDir := t.TempDir()

	writeTestPDF(t, tempDir, "new.pdf")
	donePath := writeTestPDF(t, tempDir, "done.pdf")
	if err := os.MkdirAll(outputDir(donePath), os.ModePerm); err != nil {
		t.Fatalf("Failed to create output dir: %v", err)
	}

	converter := testConverter(&fakeRenderer{pages: 2, failPage: -1})
	if err := converter.convertNewPDFs(context.Background(), tempDir, 100); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	for _, name := range []string{"page_1.jpg", "page_2.jpg"} {
		if _, err := os.Stat(filepath.Join(tempDir, "new", name)); err != nil {
			t.Errorf("Expected %s for new.pdf: %v", name, err)
		}
	}

	entries, err := os.ReadDir(filepath.Join(tempDir, "done"))
	if err != nil {
		t.Fatalf("Failed to read done dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected already-converted document to be left alone, found %d files", len(entries))
	}
}
