// File: pkg/merge/config.go
package merge

// DefaultIgnoreName is the ignore file picked up from the first scanned
// directory when no explicit --ignore-file is given.
const DefaultIgnoreName = ".srcpressignore"

// DefaultOutput is the destination used when --output is not given.
const DefaultOutput = "srcpress.txt"

// Config carries the options for one merge run. Paths must already be
// local directories; git URLs are resolved to clones before Run.
type Config struct {
	Paths        []string // directories to scan, in command-line order
	Output       string   // destination file, "-" for stdout
	Clipboard    bool     // copy the merged output to the system clipboard
	IgnoreFile   string   // explicit ignore file path
	Patterns     []string // extra exclusion patterns from the command line
	Compress     bool     // run the whitespace/comment compressor
	KeepComments bool     // keep comments when compressing
	Directive    bool     // prefix the output with the instruction block
	Tree         bool     // prefix the output with a tree of included files
	Workers      int      // transform worker count, 0 picks the CPU count
	Progress     bool     // render a progress bar on stderr
	Tokens       bool     // estimate the token count of the final output
	Tokenizer    string   // "tiktoken" or "huggingface"
	Model        string   // model name for the tokenizer
}
