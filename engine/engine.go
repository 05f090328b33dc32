package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"

	config "github.com/drummonds/pdfimages/config"
	"github.com/drummonds/pdfimages/engine/pdfrenderer"
)

// Logger is global since we will need it everywhere
var Logger *slog.Logger

// Error classes checked by the CLI to pick an exit code. Both are
// detected before any rendering or file I/O starts.
var (
	ErrInvalidSamplePercent = errors.New("sample percent must be between 0 and 100")
	ErrFileNotFound         = errors.New("file not found")
)

// Converter drives batches of PDF to JPEG conversions
type Converter struct {
	Config   config.Config
	Renderer pdfrenderer.Renderer
}

// TaskFailure records one page that could not be converted
type TaskFailure struct {
	Path string
	Page int // 0-based page index
	Err  error
}

// SkippedDocument records a PDF that was dropped from the batch entirely
type SkippedDocument struct {
	Path string
	Err  error
}

// Summary reports the outcome of one conversion batch
type Summary struct {
	JobID     string
	Images    int // JPEG files written
	Cancelled int // tasks never dispatched due to an interrupt
	Failures  []TaskFailure
	Skipped   []SkippedDocument
}

// Failed reports whether anything in the batch went wrong
func (s *Summary) Failed() bool {
	return len(s.Failures) > 0 || len(s.Skipped) > 0
}

// document is one input PDF with its resolved page plan
type document struct {
	path     string
	pages    []int
	padWidth int
}

// ConvertAll converts every listed PDF into per-page JPEGs under a
// sibling directory named after the file. All documents share one worker
// pool and one progress bar. Validation errors (bad percent, missing
// file) fail the whole batch before any rendering; per-page render or
// write errors are collected in the summary and the batch carries on.
func (c *Converter) ConvertAll(ctx context.Context, paths []string, samplePercent int) (*Summary, error) {
	if samplePercent < 0 || samplePercent > 100 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSamplePercent, samplePercent)
	}
	if err := preflight(paths); err != nil {
		return nil, err
	}

	jobID, err := newJobID()
	if err != nil {
		Logger.Error("Cannot generate job ULID", "error", err)
	}
	summary := &Summary{JobID: jobID.String()}

	Logger.Info("Starting conversion batch",
		"job", summary.JobID,
		"documents", len(paths),
		"sample", samplePercent,
		"workers", c.Config.WorkerCount)

	if samplePercent == 0 {
		Logger.Warn("Sample percent is 0, nothing to convert", "job", summary.JobID)
		return summary, nil
	}

	// Enumerate pages up front so the progress bar knows its total.
	// A document whose page count cannot be read is skipped, the rest
	// of the batch still runs.
	var docs []document
	for _, path := range paths {
		count, err := c.Renderer.PageCount(path)
		if err != nil {
			Logger.Error("Unable to read page count, skipping document", "file", path, "error", err)
			summary.Skipped = append(summary.Skipped, SkippedDocument{Path: path, Err: err})
			continue
		}
		if count == 0 {
			Logger.Warn("Document has no pages, skipping", "file", path)
			summary.Skipped = append(summary.Skipped, SkippedDocument{Path: path, Err: errors.New("document has no pages")})
			continue
		}
		pages, err := SamplePlan(count, samplePercent)
		if err != nil {
			return nil, err
		}
		docs = append(docs, document{
			path:     path,
			pages:    pages,
			padWidth: len(strconv.Itoa(count)),
		})
	}

	var tasks []renderTask
	for _, doc := range docs {
		outDir := outputDir(doc.path)
		if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
			Logger.Error("Unable to create output directory, skipping document", "dir", outDir, "error", err)
			summary.Skipped = append(summary.Skipped, SkippedDocument{Path: doc.path, Err: err})
			continue
		}
		for _, page := range doc.pages {
			tasks = append(tasks, renderTask{
				doc:     doc.path,
				page:    page,
				outPath: filepath.Join(outDir, pageFileName(page, doc.padWidth)),
			})
		}
	}

	if len(tasks) == 0 {
		Logger.Warn("No pages to convert", "job", summary.JobID)
		return summary, nil
	}

	bar := newProgressBar(len(tasks))
	results := c.runTasks(ctx, tasks, c.Config.WorkerCount, func() { bar.Add(1) })
	summary.Cancelled = len(tasks) - len(results)

	for _, res := range results {
		if res.err != nil {
			summary.Failures = append(summary.Failures, TaskFailure{Path: res.task.doc, Page: res.task.page, Err: res.err})
		} else {
			summary.Images++
		}
	}
	sort.Slice(summary.Failures, func(i, j int) bool {
		if summary.Failures[i].Path != summary.Failures[j].Path {
			return summary.Failures[i].Path < summary.Failures[j].Path
		}
		return summary.Failures[i].Page < summary.Failures[j].Page
	})

	Logger.Info("Conversion batch finished",
		"job", summary.JobID,
		"images", summary.Images,
		"failed", len(summary.Failures),
		"skipped", len(summary.Skipped),
		"cancelled", summary.Cancelled)

	return summary, nil
}

// preflight validates every input path before any work is dispatched
func preflight(paths []string) error {
	if len(paths) == 0 {
		return errors.New("no input files given")
	}
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if info.IsDir() {
			return fmt.Errorf("%s is a directory, expected a PDF file", path)
		}
	}
	return nil
}

// newJobID generates the ULID used to correlate a batch in the logs
func newJobID() (ulid.ULID, error) {
	now := time.Now()
	entropy := ulid.Monotonic(rand.New(rand.NewSource(now.UnixNano())), 0)
	return ulid.New(ulid.Timestamp(now), entropy)
}
