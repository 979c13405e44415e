// File: pkg/squeeze/squeeze.go
package squeeze

import (
	"strings"

	"srcpress/pkg/lang"
)

// Scanner states.
const (
	stateNormal = iota
	stateString
	stateComment
)

// Options control what Compress removes.
type Options struct {
	// KeepComments emits comments verbatim, delimiters included, instead
	// of discarding them. Whitespace outside strings and comments is
	// still removed.
	KeepComments bool
}

// Compress removes insignificant whitespace and comments from source text
// in a single left-to-right scan. The profile supplies the string and
// comment delimiters; a nil profile returns content unchanged.
//
// Outside strings and comments, space, tab, CR, and LF bytes are dropped
// with no replacement. String literals are emitted byte for byte,
// delimiters included. Comments are discarded through their closing
// delimiter. Comment openers are tested before string openers at every
// position, and within each table the first matching delimiter wins.
//
// Running out of input inside a string or comment is not an error: an
// unterminated string keeps whatever was emitted, an unterminated comment
// discards the rest. Compress never fails.
func Compress(content string, profile *lang.Profile, opts Options) string {
	if profile == nil {
		return content
	}

	var out strings.Builder
	out.Grow(len(content))

	state := stateNormal
	var closing string

	i := 0
	for i < len(content) {
		switch state {
		case stateNormal:
			c := content[i]
			if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
				i++
				continue
			}
			if d, ok := openerAt(content, i, profile.Comments); ok {
				if opts.KeepComments {
					out.WriteString(d.Start)
				}
				closing = d.End
				state = stateComment
				i += len(d.Start)
				continue
			}
			if d, ok := openerAt(content, i, profile.Strings); ok {
				out.WriteString(d.Start)
				closing = d.End
				state = stateString
				i += len(d.Start)
				continue
			}
			out.WriteByte(c)
			i++

		case stateString:
			if content[i] == '\\' {
				// The backslash and the byte after it pass through as a
				// unit, so an escaped quote cannot close the string.
				if i+1 < len(content) {
					out.WriteString(content[i : i+2])
					i += 2
				} else {
					out.WriteByte('\\')
					i++
				}
				continue
			}
			if strings.HasPrefix(content[i:], closing) {
				out.WriteString(closing)
				i += len(closing)
				state = stateNormal
				continue
			}
			out.WriteByte(content[i])
			i++

		case stateComment:
			if strings.HasPrefix(content[i:], closing) {
				if opts.KeepComments {
					out.WriteString(closing)
				}
				i += len(closing)
				state = stateNormal
				continue
			}
			if opts.KeepComments {
				out.WriteByte(content[i])
			}
			i++
		}
	}
	return out.String()
}

// openerAt returns the first delimiter pair whose start matches content at
// position i. Table order decides ties, so longer openers must be listed
// before shorter ones that share a prefix.
func openerAt(content string, i int, pairs []lang.Pair) (lang.Pair, bool) {
	for _, p := range pairs {
		if strings.HasPrefix(content[i:], p.Start) {
			return p, true
		}
	}
	return lang.Pair{}, false
}
