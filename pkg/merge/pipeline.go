package merge

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"go.uber.org/zap"

	"srcpress/pkg/ignore"
)

// parallelMin is the smallest task count worth fanning out; below it the
// pipeline runs sequentially in one goroutine.
const parallelMin = 4

// ErrNoFiles reports a run whose discovery admitted nothing.
var ErrNoFiles = errors.New("no files found")

// Run executes a merge: load ignore rules, discover tasks, transform them,
// and write framed entries to out in task order. The returned Session is
// populated even when err != nil.
func Run(ctx context.Context, cfg *Config, out io.Writer, logger *zap.Logger) (*Session, error) {
	start := time.Now()
	session := NewSession()

	rules, err := loadRules(cfg, logger)
	if err != nil {
		return session, err
	}

	disc := NewDiscoverer(rules, logger)
	if cfg.Output != "" && cfg.Output != "-" && !cfg.Clipboard {
		if abs, err := filepath.Abs(cfg.Output); err == nil {
			disc.excludeAbs = abs
		}
	}
	tasks, skips, err := disc.Discover(cfg.Paths)
	if err != nil {
		return session, err
	}
	for _, sk := range skips {
		session.RecordSkip(sk)
	}
	if len(tasks) == 0 {
		return session, ErrNoFiles
	}

	progress := NewProgress(len(tasks), cfg.Progress)
	defer progress.Finish()

	bw := bufio.NewWriter(out)
	w := NewWriter(bw, session, progress, logger)

	var tree string
	if cfg.Tree {
		tree = RenderTree(tasks)
	}
	if err := w.Preamble(cfg.Directive, tree); err != nil {
		return session, fmt.Errorf("failed to write output: %w", err)
	}

	workers := effectiveWorkers(cfg.Workers, len(tasks))
	logger.Info("Starting merge",
		zap.Int("files", len(tasks)),
		zap.Int("workers", workers),
		zap.Bool("compress", cfg.Compress))

	var runErr error
	if workers <= 1 {
		runErr = runSequential(ctx, tasks, cfg, w, progress, logger)
	} else {
		results := startWorkers(ctx, tasks, workers, cfg, progress, logger)
		runErr = w.Drain(ctx, results, len(tasks))
	}

	if err := bw.Flush(); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to flush output: %w", err)
	}

	session.Elapsed = time.Since(start)
	if runErr != nil {
		logger.Info("Merge aborted",
			zap.Int64("transformed", progress.Transformed()),
			zap.Int64("written", progress.Written()),
			zap.Error(runErr))
		return session, runErr
	}

	logger.Info("Merge complete",
		zap.Int("processed", session.Processed),
		zap.Int("skipped", len(session.Skips)),
		zap.Int64("bytesIn", session.BytesIn),
		zap.Int64("bytesOut", session.BytesOut),
		zap.Duration("elapsed", session.Elapsed))
	return session, nil
}

// runSequential is the degenerate mode: transform and write interleaved in
// index order, no reordering needed.
func runSequential(ctx context.Context, tasks []FileTask, cfg *Config, w *Writer, progress *Progress, logger *zap.Logger) error {
	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.Emit(transform(task, cfg, progress, logger)); err != nil {
			return err
		}
	}
	return nil
}

// effectiveWorkers resolves the transform pool size: the CPU count when
// unset, one below the activation threshold, and never more workers than
// tasks.
func effectiveWorkers(requested, taskCount int) int {
	if requested <= 0 {
		requested = runtime.NumCPU()
	}
	if taskCount < parallelMin {
		return 1
	}
	if requested > taskCount {
		requested = taskCount
	}
	return requested
}

// loadRules assembles the exclusion rule set: the explicit ignore file
// when given, otherwise a .srcpressignore beside the first root, plus any
// command-line patterns. A missing ignore file means no patterns, never a
// failed run.
func loadRules(cfg *Config, logger *zap.Logger) (*ignore.RuleSet, error) {
	rules := ignore.NewRuleSet(logger)

	path := cfg.IgnoreFile
	implicit := false
	if path == "" && len(cfg.Paths) > 0 {
		path = filepath.Join(cfg.Paths[0], DefaultIgnoreName)
		implicit = true
	}
	if path != "" {
		if err := rules.LoadFile(path); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load ignore patterns: %w", err)
			}
			if !implicit {
				logger.Warn("Ignore file not found", zap.String("file", path))
			}
		}
	}

	rules.AddPatterns(cfg.Patterns...)
	return rules, nil
}
