package merge

import (
	"fmt"
	"io"
)

// Report prints the human summary for a finished session. Individual skip
// paths are logged at debug level during the run; the summary carries the
// per-reason counts.
func Report(w io.Writer, s *Session, dest string) {
	if s.BytesOut != s.BytesIn && s.BytesIn > 0 {
		ratio := float64(s.BytesOut) / float64(s.BytesIn) * 100
		fmt.Fprintf(w, "Merged %d files (%d -> %d bytes, %.1f%%) in %.2fs\n",
			s.Processed, s.BytesIn, s.BytesOut, ratio, s.Elapsed.Seconds())
	} else {
		fmt.Fprintf(w, "Merged %d files (%d bytes) in %.2fs\n",
			s.Processed, s.BytesIn, s.Elapsed.Seconds())
	}
	fmt.Fprintf(w, "Output: %s\n", dest)

	if s.Tokens >= 0 {
		fmt.Fprintf(w, "Tokens: ~%d (%s)\n", s.Tokens, s.TokensBy)
	}

	if len(s.Skips) == 0 {
		return
	}
	counts := s.SkipCounts()
	fmt.Fprintf(w, "Skipped %d files:\n", len(s.Skips))
	for _, reason := range []SkipReason{SkipOversize, SkipBinary, SkipEmpty, SkipUnreadable, SkipTotalLimit} {
		if n := counts[reason]; n > 0 {
			fmt.Fprintf(w, "  %d %s\n", n, reason)
		}
	}
}
