package merge

import (
	"time"

	"srcpress/pkg/lang"
)

// Size ceilings enforced during discovery. These are fixed properties of
// the output contract, not tunable defaults.
const (
	// MaxFileSize is the per-file ceiling in bytes.
	MaxFileSize = 10 * 1024 * 1024
	// MaxTotalSize is the cumulative ceiling across all admitted files.
	MaxTotalSize = 1 * 1024 * 1024 * 1024
)

// SkipReason classifies why a candidate file was left out of the output.
type SkipReason int

const (
	SkipOversize SkipReason = iota
	SkipBinary
	SkipEmpty
	SkipTotalLimit
	SkipUnreadable
)

func (r SkipReason) String() string {
	switch r {
	case SkipOversize:
		return "over the 10 MiB file limit"
	case SkipBinary:
		return "binary"
	case SkipEmpty:
		return "empty"
	case SkipTotalLimit:
		return "beyond the 1 GiB total limit"
	case SkipUnreadable:
		return "unreadable"
	}
	return "unknown"
}

// Skip records one excluded candidate.
type Skip struct {
	RelPath string
	Reason  SkipReason
	Size    int64
	Err     error
}

// FileTask is one file admitted by discovery, in final output order.
type FileTask struct {
	Index   int           // position in the sorted task sequence
	AbsPath string        // absolute path on disk
	RelPath string        // display path, slash-separated, rooted at the scanned directory's name
	Size    int64         // size in bytes at discovery time
	Profile *lang.Profile // delimiter profile; nil means pass-through
}

// Result is the transform outcome for one task. A non-nil Err marks a
// recorded per-file failure; the entry is then skipped with a warning,
// never fatal to the run.
type Result struct {
	Index    int
	Task     FileTask
	Content  string // decoded, possibly compressed
	RawBytes int    // decoded length before compression
	Lines    int    // line-feed count in the decoded content
	Err      error
}

// Session accumulates counters for one run. Discovery seeds the skip list;
// after that the ordered writer is its only writer.
type Session struct {
	Processed  int
	TotalLines int
	BytesIn    int64
	BytesOut   int64
	Skips      []Skip
	Elapsed    time.Duration
	Tokens     int    // estimated token count, -1 when not measured
	TokensBy   string // tokenizer that produced the estimate
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{Tokens: -1}
}

// RecordSkip appends one excluded candidate.
func (s *Session) RecordSkip(sk Skip) {
	s.Skips = append(s.Skips, sk)
}

// SkipCounts groups the recorded skips by reason.
func (s *Session) SkipCounts() map[SkipReason]int {
	counts := make(map[SkipReason]int, len(s.Skips))
	for _, sk := range s.Skips {
		counts[sk.Reason]++
	}
	return counts
}
