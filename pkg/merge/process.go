// File: pkg/merge/process.go
package merge

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"srcpress/pkg/squeeze"
)

// transform is the per-file work: read, decode, optionally compress.
// Failures land on the Result instead of propagating; the file is then
// reported and skipped downstream.
func transform(task FileTask, cfg *Config, progress *Progress, logger *zap.Logger) Result {
	raw, err := readContent(task.AbsPath)
	if err != nil {
		logger.Warn("Failed to read file",
			zap.String("file", task.RelPath), zap.Error(err))
		progress.MarkTransformed()
		return Result{Index: task.Index, Task: task, Err: err}
	}

	decoded := decodeUTF8(raw)
	content := decoded
	if cfg.Compress {
		content = squeeze.Compress(decoded, task.Profile, squeeze.Options{
			KeepComments: cfg.KeepComments,
		})
	}

	progress.MarkTransformed()
	return Result{
		Index:    task.Index,
		Task:     task,
		Content:  content,
		RawBytes: len(decoded),
		Lines:    strings.Count(decoded, "\n"),
	}
}

// startWorkers fans the task list out over a fixed pool and returns the
// results channel. Results arrive in completion order; the channel is
// buffered for the whole task list so workers never block on a slow
// consumer, and it closes once every worker has drained the job queue.
// After cancellation workers stop picking up new jobs; in-flight reads
// finish and deliver their result.
func startWorkers(ctx context.Context, tasks []FileTask, workers int, cfg *Config, progress *Progress, logger *zap.Logger) <-chan Result {
	jobs := make(chan FileTask, len(tasks))
	results := make(chan Result, len(tasks))
	var wg sync.WaitGroup

	logger.Debug("Initializing worker pool", zap.Int("workers", workers))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		workerLogger := logger.With(zap.Int("workerID", w))
		go func() {
			defer wg.Done()
			for task := range jobs {
				if ctx.Err() != nil {
					return
				}
				results <- transform(task, cfg, progress, workerLogger)
			}
		}()
	}

	for _, task := range tasks {
		jobs <- task
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()
	return results
}
