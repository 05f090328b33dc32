package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/robfig/cron/v3"
)

// WatchDirectory polls a directory for PDFs that have not been converted
// yet and converts them on a fixed schedule. The first scan runs
// immediately; later scans are skipped while a previous one is still
// running. Returns when ctx is cancelled.
func (c *Converter) WatchDirectory(ctx context.Context, dir string, samplePercent int) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrFileNotFound, dir)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	scan := func() {
		if err := c.convertNewPDFs(ctx, dir, samplePercent); err != nil {
			Logger.Error("Watch scan failed", "dir", dir, "error", err)
		}
	}

	Logger.Info("Running initial scan", "dir", dir)
	scan()

	cr := cron.New()
	var scanJob cron.Job
	scanJob = cron.FuncJob(scan)
	scanJob = cron.NewChain(cron.SkipIfStillRunning(cron.DefaultLogger)).Then(scanJob) //ensure we don't kick off another if old one is still running
	if _, err := cr.AddJob(fmt.Sprintf("@every %dm", c.Config.WatchInterval), scanJob); err != nil {
		return fmt.Errorf("unable to schedule watch job: %w", err)
	}
	Logger.Info("Watching for new PDFs", "dir", dir, "interval_minutes", c.Config.WatchInterval)
	cr.Start()

	<-ctx.Done()
	cr.Stop()
	Logger.Info("Watch stopped", "dir", dir)
	return nil
}

// convertNewPDFs converts every PDF in dir that has no output directory yet
func (c *Converter) convertNewPDFs(ctx context.Context, dir string, samplePercent int) error {
	pending, err := pendingPDFs(dir)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		Logger.Debug("No new PDFs", "dir", dir)
		return nil
	}

	summary, err := c.ConvertAll(ctx, pending, samplePercent)
	if err != nil {
		return err
	}
	Logger.Info("Watch scan converted documents",
		"dir", dir,
		"documents", len(pending),
		"images", summary.Images,
		"failed", len(summary.Failures))
	return nil
}

// pendingPDFs lists PDFs in dir whose output directory does not exist yet
func pendingPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to read watch directory: %w", err)
	}

	var pending []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if _, err := os.Stat(outputDir(path)); os.IsNotExist(err) {
			pending = append(pending, path)
		}
	}
	return pending, nil
}
