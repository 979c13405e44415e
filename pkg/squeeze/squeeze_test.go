package squeeze

import (
	"strings"
	"testing"

	"srcpress/pkg/lang"
)

func compressExt(t *testing.T, ext, content string, opts Options) string {
	t.Helper()
	p := lang.ProfileFor(ext)
	if p == nil {
		t.Fatalf("no profile registered for %s", ext)
	}
	return Compress(content, p, opts)
}

func TestCompress_Python(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"whitespace and trailing comment", "x = \"a b\"  # note\n", `x="a b"`},
		{"line comment ends at newline", "a = 1  # one\nb = 2\n", "a=1b=2"},
		{"triple quoted string", "s = \"\"\"a # b\nc\"\"\"\nx = 1\n", "s=\"\"\"a # b\nc\"\"\"x=1"},
		{"escaped quote stays inside", "s = \"a\\\"b\"  # c\n", "s=\"a\\\"b\""},
		{"hash inside string", "s = '#not a comment'\n", "s='#not a comment'"},
		{"unterminated string", "s = \"abc", "s=\"abc"},
		{"backslash at end of input", "s = \"abc\\", "s=\"abc\\"},
		{"crlf input", "a = 1\r\nb = 2\r\n", "a=1b=2"},
		{"multibyte text", "café = 'héllo wörld'  # ünïcode\n", "café='héllo wörld'"},
		{"empty input", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compressExt(t, ".py", tt.in, Options{}); got != tt.want {
				t.Errorf("Compress(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCompress_Go(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"block comment", "a := 1 /* note\nmore */\nb := 2\n", "a:=1b:=2"},
		{"line comment", "x := 1 // note\ny := 2\n", "x:=1y:=2"},
		{"raw string keeps newline", "s := `a b\nc`\n", "s:=`a b\nc`"},
		{"division is not a comment", "x := 10 / 2\n", "x:=10/2"},
		{"unterminated block comment", "a := 1 /* rest", "a:=1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compressExt(t, ".go", tt.in, Options{}); got != tt.want {
				t.Errorf("Compress(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCompress_Lua(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"long comment wins over long string", "--[[ note ]] x = 1\n", "x=1"},
		{"long string preserved", "s = [[a b]]\n", "s=[[a b]]"},
		{"line comment", "x = 1 -- note\ny = 2\n", "x=1y=2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compressExt(t, ".lua", tt.in, Options{}); got != tt.want {
				t.Errorf("Compress(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCompress_NoProfile(t *testing.T) {
	const content = "anything  at all\n\twith whitespace and # punctuation\n"
	if got := Compress(content, nil, Options{}); got != content {
		t.Errorf("Compress with nil profile = %q, want input unchanged", got)
	}
}

func TestCompress_KeepComments(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		in   string
		want string
	}{
		{"python line comment kept", ".py", "x = 1  # note\ny = 2\n", "x=1# note\ny=2"},
		{"c block comment kept", ".c", "a; /* x */ b;\n", "a;/* x */b;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compressExt(t, tt.ext, tt.in, Options{KeepComments: true})
			if got != tt.want {
				t.Errorf("Compress(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// At a position where both tables could match, the comment table is
// consulted first.
func TestCompress_CommentBeforeString(t *testing.T) {
	p := &lang.Profile{
		Name:     "synthetic",
		Strings:  []lang.Pair{{Start: "#", End: "#"}},
		Comments: []lang.Pair{{Start: "#", End: "\n"}},
	}
	if got := Compress("a #string?# no\nb", p, Options{}); got != "ab" {
		t.Errorf("Compress = %q, want %q", got, "ab")
	}
}

func TestCompress_StringPreservation(t *testing.T) {
	in := "a = \"  spaced  out\t\" + 'x\ny'\n"
	want := "a=\"  spaced  out\t\"+'x\ny'"
	if got := compressExt(t, ".py", in, Options{}); got != want {
		t.Errorf("Compress(%q) = %q, want %q", in, got, want)
	}
}

func TestCompress_WhitespaceElision(t *testing.T) {
	tests := []struct {
		ext string
		in  string
	}{
		{".go", "func f() int {\r\n\treturn 1 + 2\r\n}\r\n"},
		{".py", "if a:\n    b = 1\n    # c\n"},
		{".css", "body {\n  margin: 0;\n}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			out := compressExt(t, tt.ext, tt.in, Options{})
			if strings.ContainsAny(out, " \t\r\n") {
				t.Errorf("whitespace survived outside strings: %q", out)
			}
		})
	}
}

func TestCompress_Idempotent(t *testing.T) {
	samples := []struct {
		ext     string
		content string
	}{
		{".py", "def f(a, b):\n    # add\n    return a + b\n\n\nprint(f(1, 2))  # call\n"},
		{".go", "package main\n\n// entry\nfunc main() {\n\tprintln(\"hi there\")\n}\n"},
		{".c", "int main(void) {\n\t/* return\n\t * code */\n\treturn 0;\n}\n"},
		{".json", "{\n  \"key\": \"a b\",\n  \"n\": 1\n}\n"},
		{".sql", "SELECT *\nFROM t -- all rows\nWHERE name = 'a b';\n"},
		{".html", "<!-- head -->\n<p class=\"x y\">a b</p>\n"},
	}
	for _, s := range samples {
		t.Run(s.ext, func(t *testing.T) {
			p := lang.ProfileFor(s.ext)
			once := Compress(s.content, p, Options{})
			twice := Compress(once, p, Options{})
			if twice != once {
				t.Errorf("second pass changed output:\nonce:  %q\ntwice: %q", once, twice)
			}
		})
	}
}
