// File: pkg/merge/read.go
package merge

import (
	"bytes"
	"io"
	"os"
	"unicode/utf8"

	mmap "github.com/blevesearch/mmap-go"

	"srcpress/pkg/lang"
)

// directReadMax is the largest file read directly into memory; anything
// bigger goes through a read-only memory mapping so a wide fan-out does
// not hold every large file on the heap at once.
const directReadMax = 256 * 1024

// isTextFile reads the classification window from the file and applies
// the null-byte heuristic.
func isTextFile(absPath string, size int64) (bool, error) {
	f, err := os.Open(absPath)
	if err != nil {
		return false, err
	}
	defer f.Close()

	window := int64(lang.ClassifyWindow)
	if size < window {
		window = size
	}
	buf := make([]byte, window)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return false, err
	}
	return lang.IsText(buf[:n]), nil
}

// readContent returns the raw bytes of the file at absPath.
func readContent(absPath string) ([]byte, error) {
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if info.Size() <= directReadMax {
		return os.ReadFile(absPath)
	}

	f, err := os.Open(absPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		// mapping can fail on unusual filesystems; fall back to a plain read
		return io.ReadAll(f)
	}
	defer m.Unmap()

	buf := make([]byte, len(m))
	copy(buf, m)
	return buf, nil
}

// decodeUTF8 converts raw bytes to a string, substituting the Unicode
// replacement character for invalid sequences. It never fails.
func decodeUTF8(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	return string(bytes.ToValidUTF8(raw, []byte(string(utf8.RuneError))))
}
