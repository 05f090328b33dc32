package engine

import (
	"context"
	"sync"
)

// renderTask is one page of one document bound for one JPEG file
type renderTask struct {
	doc     string
	page    int // 0-based page index
	outPath string
}

// taskResult pairs a task with its outcome
type taskResult struct {
	task renderTask
	err  error
}

// runTasks fans tasks out across a fixed pool of workers. Every executed
// task produces exactly one result and one onDone call; a failing task
// never stops its siblings. Cancelling ctx stops feeding the queue while
// in-flight pages run to completion, so fewer results than tasks may
// come back.
func (c *Converter) runTasks(ctx context.Context, tasks []renderTask, workers int, onDone func()) []taskResult {
	if workers < 1 {
		workers = 1
	}
	if workers > len(tasks) {
		workers = len(tasks)
	}

	queue := make(chan renderTask)
	results := make(chan taskResult, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range queue {
				results <- taskResult{task: task, err: c.convertPage(task)}
				onDone()
			}
		}()
	}

	go func() {
		defer close(queue)
		for i, task := range tasks {
			select {
			case queue <- task:
			case <-ctx.Done():
				Logger.Warn("Interrupted, letting in-flight pages finish", "remaining", len(tasks)-i)
				return
			}
		}
	}()

	wg.Wait()
	close(results)

	out := make([]taskResult, 0, len(tasks))
	for res := range results {
		out = append(out, res)
	}
	return out
}
