package engine

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func TestRunTasks_OnDoneExactlyOncePerTask(t *testing.T) {
	tempDir := t.TempDir()
	converter := testConverter(&fakeRenderer{pages: 3, failPage: -1})

	var tasks []renderTask
	for page := 0; page < 3; page++ {
		tasks = append(tasks, renderTask{
			doc:     "doc.pdf",
			page:    page,
			outPath: filepath.Join(tempDir, pageFileName(page, 1)),
		})
	}

	var doneCalls int32
	results := converter.runTasks(context.Background(), tasks, 2, func() {
		atomic.AddInt32(&doneCalls, 1)
	})

	if len(results) != 3 {
		t.Errorf("Expected 3 results, got %d", len(results))
	}
	if calls := atomic.LoadInt32(&doneCalls); calls != 3 {
		t.Errorf("Expected onDone to be called 3 times, got %d", calls)
	}
	for _, res := range results {
		if res.err != nil {
			t.Errorf("Unexpected task error: %v", res.err)
		}
	}
}

func TestRunTasks_FailureDoesNotAbortSiblings(t *testing.T) {
	tempDir := t.TempDir()
	converter := testConverter(&fakeRenderer{pages: 4, failPage: 2})

	var tasks []renderTask
	for page := 0; page < 4; page++ {
		tasks = append(tasks, renderTask{
			doc:     "doc.pdf",
			page:    page,
			outPath: filepath.Join(tempDir, pageFileName(page, 1)),
		})
	}

	results := converter.runTasks(context.Background(), tasks, 2, func() {})
	if len(results) != 4 {
		t.Fatalf("Expected 4 results, got %d", len(results))
	}

	failed := 0
	for _, res := range results {
		if res.err != nil {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("Expected exactly 1 failed task, got %d", failed)
	}
}

func TestRunTasks_WriteErrorLeavesNoFile(t *testing.T) {
	tempDir := t.TempDir()
	converter := testConverter(&fakeRenderer{pages: 1, failPage: -1})

	// Output directory does not exist, so the JPEG write must fail
	outPath := filepath.Join(tempDir, "missing", "page_1.jpg")
	results := converter.runTasks(context.Background(), []renderTask{
		{doc: "doc.pdf", page: 0, outPath: outPath},
	}, 1, func() {})

	if len(results) != 1 || results[0].err == nil {
		t.Fatalf("Expected a write error, got %v", results)
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Error("Expected no file after a failed write")
	}
}

func TestRunTasks_CancelledContextStopsFeeding(t *testing.T) {
	tempDir := t.TempDir()
	converter := testConverter(&fakeRenderer{pages: 8, failPage: -1})

	var tasks []renderTask
	for page := 0; page < 8; page++ {
		tasks = append(tasks, renderTask{
			doc:     "doc.pdf",
			page:    page,
			outPath: filepath.Join(tempDir, pageFileName(page, 1)),
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Must return without deadlocking; completed work is a subset
	results := converter.runTasks(ctx, tasks, 2, func() {})
	if len(results) > len(tasks) {
		t.Errorf("Got more results than tasks: %d > %d", len(results), len(tasks))
	}
}
