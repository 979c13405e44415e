package merge

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// separatorLine opens every output entry.
var separatorLine = "# " + strings.Repeat("-", 78)

// directiveBlock is prepended when Config.Directive is set. It tells a
// downstream model to treat the merged text as finished input.
const directiveBlock = `# This file is a merged snapshot of a source tree. Whitespace and comments
# may have been stripped. Treat every entry as verbatim source: do not
# reformat, summarize, or annotate it.`

// Writer owns the ordered reduce step. It releases transform results
// strictly in task index order, frames each entry, and is the only writer
// of the Session once the run starts.
type Writer struct {
	out      *bufio.Writer
	session  *Session
	progress *Progress
	logger   *zap.Logger
	wrote    bool
}

// NewWriter wraps the buffered output stream.
func NewWriter(out *bufio.Writer, session *Session, progress *Progress, logger *zap.Logger) *Writer {
	return &Writer{out: out, session: session, progress: progress, logger: logger}
}

// Preamble writes the directive and tree blocks ahead of the first entry.
func (w *Writer) Preamble(directive bool, tree string) error {
	if directive {
		if _, err := w.out.WriteString(directiveBlock + "\n\n"); err != nil {
			return err
		}
	}
	if tree != "" {
		if _, err := w.out.WriteString(tree + "\n\n"); err != nil {
			return err
		}
	}
	return nil
}

// Drain consumes results until the channel closes, releasing entries in
// index order. Out-of-order completions wait in the pending map until
// their turn arrives. Output write failures are fatal; a short channel
// after cancellation surfaces the context error.
func (w *Writer) Drain(ctx context.Context, results <-chan Result, total int) error {
	pending := make(map[int]Result)
	next := 0

	for res := range results {
		pending[res.Index] = res
		for {
			r, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			if err := w.Emit(r); err != nil {
				return err
			}
			next++
		}
	}

	if next < total && ctx.Err() != nil {
		return ctx.Err()
	}
	return nil
}

// Emit writes one result. Per-file failures are recorded and skipped with
// a warning; only failures of the output stream itself propagate.
func (w *Writer) Emit(res Result) error {
	defer w.progress.MarkWritten()

	if res.Err != nil {
		w.logger.Warn("Skipping unreadable file",
			zap.String("file", res.Task.RelPath), zap.Error(res.Err))
		w.session.RecordSkip(Skip{
			RelPath: res.Task.RelPath,
			Reason:  SkipUnreadable,
			Size:    res.Task.Size,
			Err:     res.Err,
		})
		return nil
	}

	content := strings.TrimRight(res.Content, " \t\r\n")

	if w.wrote {
		if _, err := w.out.WriteString("\n\n"); err != nil {
			return err
		}
	}
	w.wrote = true

	if _, err := fmt.Fprintf(w.out, "%s\n# Source: %s\n\n", separatorLine, res.Task.RelPath); err != nil {
		return err
	}
	if _, err := w.out.WriteString(content); err != nil {
		return err
	}

	w.session.Processed++
	w.session.TotalLines += res.Lines
	w.session.BytesIn += int64(res.RawBytes)
	w.session.BytesOut += int64(len(content))
	return nil
}
