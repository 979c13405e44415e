// File: pkg/merge/progress.go
package merge

import (
	"os"
	"sync/atomic"

	progressbar "github.com/schollz/progressbar/v3"
)

// Progress tracks phase completion. The transformed counter is the only
// value touched from multiple goroutines and is atomic; the bar itself is
// driven solely by the single-threaded writer.
type Progress struct {
	total       int64
	transformed atomic.Int64
	written     atomic.Int64
	bar         *progressbar.ProgressBar
}

// NewProgress sets up counters for total files and, when visible, a
// progress bar on stderr.
func NewProgress(total int, visible bool) *Progress {
	p := &Progress{total: int64(total)}
	if visible {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription("merging"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}
	return p
}

// MarkTransformed counts one finished transform. Safe for concurrent use.
func (p *Progress) MarkTransformed() {
	p.transformed.Add(1)
}

// MarkWritten counts one released entry and advances the bar.
func (p *Progress) MarkWritten() {
	n := p.written.Add(1)
	if p.bar != nil {
		_ = p.bar.Set64(n)
	}
}

// Transformed returns the number of completed transforms.
func (p *Progress) Transformed() int64 {
	return p.transformed.Load()
}

// Written returns the number of released entries.
func (p *Progress) Written() int64 {
	return p.written.Load()
}

// Finish clears the bar.
func (p *Progress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
