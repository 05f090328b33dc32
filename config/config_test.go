package config

import (
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	if got := parseLevel("debug"); got != slog.LevelDebug {
		t.Errorf("Expected debug level, got %v", got)
	}
	if got := parseLevel("warn"); got != slog.LevelWarn {
		t.Errorf("Expected warn level, got %v", got)
	}
	if got := parseLevel("error"); got != slog.LevelError {
		t.Errorf("Expected error level, got %v", got)
	}
	if got := parseLevel("nonsense"); got != slog.LevelInfo {
		t.Errorf("Expected unknown level to default to info, got %v", got)
	}
}

func TestDefaultWorkerCount(t *testing.T) {
	workers := DefaultWorkerCount()
	if workers < 1 {
		t.Errorf("Expected at least one worker, got %d", workers)
	}
	if workers > 32 {
		t.Errorf("Expected worker count capped at 32, got %d", workers)
	}
}

func TestSetup_Defaults(t *testing.T) {
	cfg, logger := Setup()
	if logger == nil {
		t.Fatal("Expected a logger")
	}
	if cfg.WorkerCount < 1 {
		t.Errorf("Expected a positive worker count, got %d", cfg.WorkerCount)
	}
	if cfg.JPEGQuality != 85 {
		t.Errorf("Expected default quality 85, got %d", cfg.JPEGQuality)
	}
	if cfg.RenderDPI != 150 {
		t.Errorf("Expected default DPI 150, got %v", cfg.RenderDPI)
	}
	if cfg.Renderer != "fitz" {
		t.Errorf("Expected default renderer fitz, got %s", cfg.Renderer)
	}
}
