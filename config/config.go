package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Logger is global since we will need it everywhere
var Logger *slog.Logger

// maxWorkerDefault caps the default pool size on big machines; rendering a
// page holds a full decoded bitmap in memory.
const maxWorkerDefault = 32

// Config contains all of the converter settings
type Config struct {
	WorkerCount   int     // size of the render worker pool
	JPEGQuality   int     // 1-100, passed to the JPEG encoder
	RenderDPI     float64 // resolution pages are rasterized at
	MaxWidth      int     // resize output to this width, 0 leaves pages full size
	Renderer      string  // "fitz" or "pdfium"
	WatchInterval int     // minutes between watch-mode scans
}

// Setup loads configuration and returns Config and Logger
func Setup() (Config, *slog.Logger) {
	// Load .env file (silently ignore if doesn't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load("config.env")

	logger := setupLogging()
	Logger = logger

	viper.SetEnvPrefix("PDFIMAGES")
	viper.AutomaticEnv()

	viper.SetDefault("workers", DefaultWorkerCount())
	viper.SetDefault("quality", 85)
	viper.SetDefault("dpi", 150)
	viper.SetDefault("width", 0)
	viper.SetDefault("renderer", "fitz")
	viper.SetDefault("watch_interval", 10)

	cfg := Config{
		WorkerCount:   viper.GetInt("workers"),
		JPEGQuality:   viper.GetInt("quality"),
		RenderDPI:     viper.GetFloat64("dpi"),
		MaxWidth:      viper.GetInt("width"),
		Renderer:      viper.GetString("renderer"),
		WatchInterval: viper.GetInt("watch_interval"),
	}

	if cfg.WorkerCount < 1 {
		logger.Warn("Invalid worker count, falling back to default", "workers", cfg.WorkerCount)
		cfg.WorkerCount = DefaultWorkerCount()
	}
	if cfg.WatchInterval < 1 {
		cfg.WatchInterval = 10
	}

	logger.Info("Configuration loaded",
		"workers", cfg.WorkerCount,
		"quality", cfg.JPEGQuality,
		"dpi", cfg.RenderDPI,
		"renderer", cfg.Renderer)

	return cfg, logger
}

// DefaultWorkerCount sizes the pool from available CPUs, capped at 32
func DefaultWorkerCount() int {
	workers := runtime.NumCPU()
	if workers > maxWorkerDefault {
		workers = maxWorkerDefault
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseLevel maps a LOG_LEVEL string to a slog level
func parseLevel(logLevel string) slog.Level {
	switch logLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupLogging configures the application logger. Logs go to stderr by
// default so the progress bar and summary own stdout.
func setupLogging() *slog.Logger {
	handlerOptions := &slog.HandlerOptions{Level: parseLevel(getEnv("LOG_LEVEL", "info"))}

	logOutput := getEnv("LOG_OUTPUT", "stderr")
	var logWriter io.Writer

	switch logOutput {
	case "stdout":
		logWriter = os.Stdout
	case "stderr":
		logWriter = os.Stderr
	default:
		logPath, err := filepath.Abs(filepath.ToSlash(getEnv("LOG_FILE", "pdfimages.log")))
		if err != nil {
			fmt.Printf("Error creating log file path: %v\n", err)
			logWriter = os.Stderr
		} else {
			logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
			if err != nil {
				fmt.Printf("Failed to open log file: %v\n", err)
				logWriter = os.Stderr
			} else {
				logWriter = logFile
			}
		}
	}

	handler := slog.NewTextHandler(logWriter, handlerOptions)
	return slog.New(handler)
}
