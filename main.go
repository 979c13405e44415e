package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"srcpress/cmd"
	"srcpress/pkg/logging"
	"srcpress/pkg/version"
)

func main() {
	if err := logging.Setup(false, "srcpress", version.Version); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := logging.Logger

	// Ctrl-C cancels the run; workers stop and the exit code reports the
	// interruption.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := cmd.Execute(ctx, logger)
	syncLogger(logger)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}

// syncLogger flushes the logger, but only when stderr can actually take a
// sync. Syncing a terminal stderr returns "invalid argument" on some
// platforms, which is not worth reporting.
func syncLogger(logger *zap.Logger) {
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if err := logger.Sync(); err != nil {
		if !strings.Contains(strings.ToLower(err.Error()), "invalid argument") {
			log.Printf("Logger sync failed: %v", err)
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
