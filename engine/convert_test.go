package engine

import (
	"path/filepath"
	"testing"
)

func TestOutputDir(t *testing.T) {
	got := outputDir(filepath.Join("some", "where", "report.pdf"))
	want := filepath.Join("some", "where", "report")
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestOutputDir_NoExtension(t *testing.T) {
	got := outputDir(filepath.Join("some", "report"))
	want := filepath.Join("some", "report")
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestPageFileName(t *testing.T) {
	if got := pageFileName(0, 1); got != "page_1.jpg" {
		t.Errorf("Expected page_1.jpg, got %s", got)
	}
	if got := pageFileName(0, 2); got != "page_01.jpg" {
		t.Errorf("Expected page_01.jpg, got %s", got)
	}
	if got := pageFileName(9, 2); got != "page_10.jpg" {
		t.Errorf("Expected page_10.jpg, got %s", got)
	}
	if got := pageFileName(99, 3); got != "page_100.jpg" {
		t.Errorf("Expected page_100.jpg, got %s", got)
	}
}
