package pdfrenderer

import (
	"testing"
)

func TestNewRenderer_DefaultsToFitz(t *testing.T) {
	renderer, err := NewRenderer("")
	if err != nil {
		t.Fatalf("Expected no error for default backend, got: %v", err)
	}
	defer renderer.Close()

	if _, ok := renderer.(*FitzRenderer); !ok {
		t.Errorf("Expected default backend to be FitzRenderer, got %T", renderer)
	}
}

func TestNewRenderer_UnknownBackend(t *testing.T) {
	_, err := NewRenderer("ghostscript")
	if err == nil {
		t.Error("Expected error for unknown backend, got nil")
	}
}
