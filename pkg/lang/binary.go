// File: pkg/lang/binary.go
package lang

import "bytes"

// ClassifyWindow is the number of leading bytes inspected when deciding
// whether content is text or binary.
const ClassifyWindow = 8192

// IsText reports whether content looks like text. It scans at most the
// first ClassifyWindow bytes for a null byte; a null byte anywhere in that
// window classifies the content as binary. Empty content counts as text.
//
// The check is deliberately byte-level. Invalid UTF-8 does not make a file
// binary; decoding problems are repaired later with replacement characters.
func IsText(content []byte) bool {
	if len(content) > ClassifyWindow {
		content = content[:ClassifyWindow]
	}
	return bytes.IndexByte(content, 0x00) < 0
}
