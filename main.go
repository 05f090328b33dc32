// Package main is the entry point for the pdfimages CLI, which converts
// PDF documents into per-page JPEG files using a pool of render workers.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	config "github.com/drummonds/pdfimages/config"
	engine "github.com/drummonds/pdfimages/engine"
	"github.com/drummonds/pdfimages/engine/pdfrenderer"
)

// version is set at build time via ldflags.
var version = "dev"

// Logger is global since we will need it everywhere
var Logger *slog.Logger

// Exit codes. Invocation errors (bad flags, missing files) are
// distinguished from batches where some pages failed to convert.
const (
	exitSuccess    = 0
	exitInvocation = 1
	exitConversion = 2
)

// errConversionFailed marks a batch that ran but did not fully succeed
var errConversionFailed = errors.New("one or more pages failed to convert")

// injectGlobals injects all of our globals into their packages
func injectGlobals(logger *slog.Logger) {
	Logger = logger
	config.Logger = Logger
	engine.Logger = Logger
}

// rootCmd converts the PDFs named on the command line.
var rootCmd = &cobra.Command{
	Use:   "pdfimages [flags] <pdf>...",
	Short: "Convert PDF documents to JPEG images",
	Long: `pdfimages converts each input PDF into JPEG files, one per page,
written to a directory next to the PDF named after it (report.pdf
becomes report/page_1.jpg, page_2.jpg, ...). Pages are rendered in
parallel across a fixed worker pool with a combined progress bar.

--sample converts only an evenly spaced percentage of each document's
pages, which is useful for previewing large files.

Exit codes: 0 on success, 1 for invocation errors, 2 when the batch ran
but some pages failed (successfully converted files stay on disk).`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdfimages.yaml or ~/.config/pdfimages/config.yaml)")
	rootCmd.PersistentFlags().Int("sample", 100, "percentage of pages to convert per PDF (0-100)")
	rootCmd.PersistentFlags().Int("workers", 0, "render worker count (default: number of CPUs, capped at 32)")
	rootCmd.PersistentFlags().Int("quality", 85, "JPEG quality (1-100)")
	rootCmd.PersistentFlags().Float64("dpi", 150, "render resolution in DPI")
	rootCmd.PersistentFlags().Int("width", 0, "resize output images to this width in pixels (0 = full size)")
	rootCmd.PersistentFlags().String("renderer", "", "rendering backend: fitz or pdfium")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdfimages")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdfimages"))
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// buildConverter loads configuration, applies flag overrides and opens
// the rendering backend. The returned cleanup closes the renderer.
func buildConverter(cmd *cobra.Command) (*engine.Converter, func(), error) {
	cfg, logger := config.Setup()
	injectGlobals(logger)

	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.WorkerCount, _ = flags.GetInt("workers")
		if cfg.WorkerCount < 1 {
			return nil, nil, fmt.Errorf("workers must be at least 1")
		}
	}
	if flags.Changed("quality") {
		cfg.JPEGQuality, _ = flags.GetInt("quality")
	}
	if cfg.JPEGQuality < 1 || cfg.JPEGQuality > 100 {
		return nil, nil, fmt.Errorf("quality must be between 1 and 100, got %d", cfg.JPEGQuality)
	}
	if flags.Changed("dpi") {
		cfg.RenderDPI, _ = flags.GetFloat64("dpi")
	}
	if cfg.RenderDPI <= 0 {
		return nil, nil, fmt.Errorf("dpi must be positive")
	}
	if flags.Changed("width") {
		cfg.MaxWidth, _ = flags.GetInt("width")
	}
	if flags.Changed("renderer") {
		cfg.Renderer, _ = flags.GetString("renderer")
	}

	renderer, err := pdfrenderer.NewRenderer(cfg.Renderer)
	if err != nil {
		return nil, nil, err
	}

	converter := &engine.Converter{Config: cfg, Renderer: renderer}
	cleanup := func() {
		if err := renderer.Close(); err != nil {
			Logger.Error("Error closing renderer", "error", err)
		}
	}
	return converter, cleanup, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	converter, cleanup, err := buildConverter(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	sample, _ := cmd.Flags().GetInt("sample")
	summary, err := converter.ConvertAll(cmd.Context(), args, sample)
	if err != nil {
		return err
	}

	printSummary(summary)
	if summary.Failed() || summary.Cancelled > 0 {
		return errConversionFailed
	}
	return nil
}

// printSummary mirrors the log output for users running without logs:
// totals on stdout, per-page failures on stderr.
func printSummary(summary *engine.Summary) {
	fmt.Printf("Saved %d images in their respective subfolders.\n", summary.Images)
	for _, failure := range summary.Failures {
		fmt.Fprintf(os.Stderr, "failed: %s page %d: %v\n", failure.Path, failure.Page+1, failure.Err)
	}
	for _, skipped := range summary.Skipped {
		fmt.Fprintf(os.Stderr, "skipped: %s: %v\n", skipped.Path, skipped.Err)
	}
	if summary.Cancelled > 0 {
		fmt.Fprintf(os.Stderr, "interrupted: %d pages were not converted\n", summary.Cancelled)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		os.Exit(exitSuccess)
	case errors.Is(err, errConversionFailed):
		os.Exit(exitConversion)
	default:
		os.Exit(exitInvocation)
	}
}
