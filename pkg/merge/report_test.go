package merge

import (
	"strings"
	"testing"
	"time"
)

func TestReport_WithCompression(t *testing.T) {
	s := NewSession()
	s.Processed = 3
	s.BytesIn = 1000
	s.BytesOut = 250
	s.Elapsed = 1500 * time.Millisecond

	var b strings.Builder
	Report(&b, s, "out.txt")

	got := b.String()
	want := "Merged 3 files (1000 -> 250 bytes, 25.0%) in 1.50s\nOutput: out.txt\n"
	if got != want {
		t.Errorf("report = %q, want %q", got, want)
	}
}

func TestReport_WithoutCompression(t *testing.T) {
	s := NewSession()
	s.Processed = 2
	s.BytesIn = 500
	s.BytesOut = 500
	s.Elapsed = 20 * time.Millisecond

	var b strings.Builder
	Report(&b, s, "-")

	got := b.String()
	if !strings.HasPrefix(got, "Merged 2 files (500 bytes) in 0.02s\n") {
		t.Errorf("report = %q", got)
	}
}

func TestReport_SkipsAndTokens(t *testing.T) {
	s := NewSession()
	s.Processed = 1
	s.BytesIn = 100
	s.BytesOut = 100
	s.Tokens = 1234
	s.TokensBy = "tiktoken/gpt-4o"
	s.RecordSkip(Skip{RelPath: "r/big.iso", Reason: SkipOversize})
	s.RecordSkip(Skip{RelPath: "r/a.png", Reason: SkipBinary})
	s.RecordSkip(Skip{RelPath: "r/b.png", Reason: SkipBinary})

	var b strings.Builder
	Report(&b, s, "out.txt")

	got := b.String()
	for _, want := range []string{
		"Tokens: ~1234 (tiktoken/gpt-4o)\n",
		"Skipped 3 files:\n",
		"  1 over the 10 MiB file limit\n",
		"  2 binary\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q:\n%s", want, got)
		}
	}
}
