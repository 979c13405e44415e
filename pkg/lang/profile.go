// File: pkg/lang/profile.go
package lang

// Pair is a delimiter pair. Start opens the region and End closes it.
// Line comments use "\n" as their End delimiter.
type Pair struct {
	Start string
	End   string
}

// Profile describes the string and comment delimiters of one grammar.
// Delimiter order matters: when one opener is a prefix of another, the
// longer opener must be listed first so it is matched first. Python's
// `"""` before `"` is the canonical case.
type Profile struct {
	Name     string
	Strings  []Pair
	Comments []Pair
}

// Shared profiles. Several extensions map to the same grammar family.
var (
	python = &Profile{
		Name: "Python",
		Strings: []Pair{
			{`"""`, `"""`},
			{`'''`, `'''`},
			{`"`, `"`},
			{`'`, `'`},
		},
		Comments: []Pair{
			{"#", "\n"},
		},
	}

	goSource = &Profile{
		Name: "Go",
		Strings: []Pair{
			{"`", "`"},
			{`"`, `"`},
			{`'`, `'`},
		},
		Comments: []Pair{
			{"/*", "*/"},
			{"//", "\n"},
		},
	}

	jsFamily = &Profile{
		Name: "JavaScript",
		Strings: []Pair{
			{"`", "`"},
			{`"`, `"`},
			{`'`, `'`},
		},
		Comments: []Pair{
			{"/*", "*/"},
			{"//", "\n"},
		},
	}

	cFamily = &Profile{
		Name: "C",
		Strings: []Pair{
			{`"`, `"`},
			{`'`, `'`},
		},
		Comments: []Pair{
			{"/*", "*/"},
			{"//", "\n"},
		},
	}

	rust = &Profile{
		Name: "Rust",
		Strings: []Pair{
			{`"`, `"`},
		},
		Comments: []Pair{
			{"/*", "*/"},
			{"//", "\n"},
		},
	}

	php = &Profile{
		Name: "PHP",
		Strings: []Pair{
			{`"`, `"`},
			{`'`, `'`},
		},
		Comments: []Pair{
			{"/*", "*/"},
			{"//", "\n"},
			{"#", "\n"},
		},
	}

	ruby = &Profile{
		Name: "Ruby",
		Strings: []Pair{
			{`"`, `"`},
			{`'`, `'`},
		},
		Comments: []Pair{
			{"#", "\n"},
		},
	}

	// hashScript covers shells, config formats, and other grammars whose
	// only comment form is # to end of line.
	hashScript = &Profile{
		Name: "Script",
		Strings: []Pair{
			{`"`, `"`},
			{`'`, `'`},
		},
		Comments: []Pair{
			{"#", "\n"},
		},
	}

	lua = &Profile{
		Name: "Lua",
		Strings: []Pair{
			{"[[", "]]"},
			{`"`, `"`},
			{`'`, `'`},
		},
		Comments: []Pair{
			{"--[[", "]]"},
			{"--", "\n"},
		},
	}

	sqlDialect = &Profile{
		Name: "SQL",
		Strings: []Pair{
			{`'`, `'`},
			{`"`, `"`},
		},
		Comments: []Pair{
			{"/*", "*/"},
			{"--", "\n"},
		},
	}

	markup = &Profile{
		Name: "Markup",
		Strings: []Pair{
			{`"`, `"`},
			{`'`, `'`},
		},
		Comments: []Pair{
			{"<!--", "-->"},
		},
	}

	css = &Profile{
		Name: "CSS",
		Strings: []Pair{
			{`"`, `"`},
			{`'`, `'`},
		},
		Comments: []Pair{
			{"/*", "*/"},
		},
	}

	scss = &Profile{
		Name: "SCSS",
		Strings: []Pair{
			{`"`, `"`},
			{`'`, `'`},
		},
		Comments: []Pair{
			{"/*", "*/"},
			{"//", "\n"},
		},
	}

	iniFile = &Profile{
		Name: "INI",
		Strings: []Pair{
			{`"`, `"`},
			{`'`, `'`},
		},
		Comments: []Pair{
			{"#", "\n"},
			{";", "\n"},
		},
	}

	jsonData = &Profile{
		Name: "JSON",
		Strings: []Pair{
			{`"`, `"`},
		},
	}

	jsonc = &Profile{
		Name: "JSONC",
		Strings: []Pair{
			{`"`, `"`},
		},
		Comments: []Pair{
			{"/*", "*/"},
			{"//", "\n"},
		},
	}

	haskell = &Profile{
		Name: "Haskell",
		Strings: []Pair{
			{`"`, `"`},
		},
		Comments: []Pair{
			{"{-", "-}"},
			{"--", "\n"},
		},
	}

	elixir = &Profile{
		Name: "Elixir",
		Strings: []Pair{
			{`"""`, `"""`},
			{`"`, `"`},
			{`'`, `'`},
		},
		Comments: []Pair{
			{"#", "\n"},
		},
	}

	erlang = &Profile{
		Name: "Erlang",
		Strings: []Pair{
			{`"`, `"`},
		},
		Comments: []Pair{
			{"%", "\n"},
		},
	}

	lisp = &Profile{
		Name: "Lisp",
		Strings: []Pair{
			{`"`, `"`},
		},
		Comments: []Pair{
			{";", "\n"},
		},
	}

	ocaml = &Profile{
		Name: "OCaml",
		Strings: []Pair{
			{`"`, `"`},
		},
		Comments: []Pair{
			{"(*", "*)"},
		},
	}

	fsharp = &Profile{
		Name: "F#",
		Strings: []Pair{
			{`"`, `"`},
		},
		Comments: []Pair{
			{"(*", "*)"},
			{"//", "\n"},
		},
	}

	julia = &Profile{
		Name: "Julia",
		Strings: []Pair{
			{`"""`, `"""`},
			{`"`, `"`},
		},
		Comments: []Pair{
			{"#=", "=#"},
			{"#", "\n"},
		},
	}

	powershell = &Profile{
		Name: "PowerShell",
		Strings: []Pair{
			{`"`, `"`},
			{`'`, `'`},
		},
		Comments: []Pair{
			{"<#", "#>"},
			{"#", "\n"},
		},
	}

	latex = &Profile{
		Name: "TeX",
		Comments: []Pair{
			{"%", "\n"},
		},
	}

	zig = &Profile{
		Name: "Zig",
		Strings: []Pair{
			{`"`, `"`},
		},
		Comments: []Pair{
			{"//", "\n"},
		},
	}

	graphql = &Profile{
		Name: "GraphQL",
		Strings: []Pair{
			{`"""`, `"""`},
			{`"`, `"`},
		},
		Comments: []Pair{
			{"#", "\n"},
		},
	}

	hcl = &Profile{
		Name: "HCL",
		Strings: []Pair{
			{`"`, `"`},
		},
		Comments: []Pair{
			{"/*", "*/"},
			{"#", "\n"},
			{"//", "\n"},
		},
	}

	// Vim script uses a bare double quote for line comments, so only
	// single-quoted strings are safe to preserve.
	vimscript = &Profile{
		Name: "Vim script",
		Strings: []Pair{
			{`'`, `'`},
		},
		Comments: []Pair{
			{`"`, "\n"},
		},
	}
)

// profiles maps a file extension, dot included and case-sensitive, to its
// delimiter profile. Extensions without an entry pass through untouched.
var profiles = map[string]*Profile{
	// Python
	".py":  python,
	".pyi": python,
	".pyw": python,

	// Go
	".go": goSource,

	// JavaScript / TypeScript
	".js":  jsFamily,
	".jsx": jsFamily,
	".mjs": jsFamily,
	".cjs": jsFamily,
	".ts":  jsFamily,
	".tsx": jsFamily,
	".mts": jsFamily,
	".cts": jsFamily,

	// JVM languages
	".java":   cFamily,
	".kt":     cFamily,
	".kts":    cFamily,
	".scala":  cFamily,
	".groovy": cFamily,
	".gradle": cFamily,

	// C / C++ / Objective-C
	".c":   cFamily,
	".h":   cFamily,
	".cpp": cFamily,
	".cc":  cFamily,
	".cxx": cFamily,
	".hpp": cFamily,
	".hxx": cFamily,
	".m":   cFamily,
	".mm":  cFamily,

	// Other curly-brace languages
	".cs":    cFamily,
	".swift": cFamily,
	".dart":  cFamily,
	".d":     cFamily,
	".proto": cFamily,

	// Rust
	".rs": rust,

	// PHP
	".php": php,

	// Ruby
	".rb":   ruby,
	".rake": ruby,

	// Shells
	".sh":   hashScript,
	".bash": hashScript,
	".zsh":  hashScript,
	".fish": hashScript,

	// Perl
	".pl": hashScript,
	".pm": hashScript,

	// Lua
	".lua": lua,

	// SQL
	".sql": sqlDialect,

	// Markup
	".html":   markup,
	".htm":    markup,
	".xml":    markup,
	".xsl":    markup,
	".svg":    markup,
	".vue":    markup,
	".svelte": markup,

	// Stylesheets
	".css":  css,
	".scss": scss,
	".less": scss,
	".sass": scss,

	// Config formats
	".yaml": hashScript,
	".yml":  hashScript,
	".toml": hashScript,
	".ini":  iniFile,
	".cfg":  iniFile,
	".conf": iniFile,
	".mk":   hashScript,

	// Data formats
	".json":  jsonData,
	".jsonc": jsonc,

	// R
	".r": hashScript,
	".R": hashScript,

	// Haskell
	".hs": haskell,

	// Elixir
	".ex":  elixir,
	".exs": elixir,

	// Erlang
	".erl": erlang,
	".hrl": erlang,

	// Lisps
	".clj":  lisp,
	".cljs": lisp,
	".edn":  lisp,
	".el":   lisp,

	// ML family
	".ml":  ocaml,
	".mli": ocaml,
	".fs":  fsharp,
	".fsi": fsharp,
	".fsx": fsharp,

	// Julia
	".jl": julia,

	// PowerShell
	".ps1":  powershell,
	".psm1": powershell,
	".psd1": powershell,

	// TeX
	".tex": latex,
	".sty": latex,

	// Zig
	".zig": zig,

	// GraphQL
	".graphql": graphql,
	".gql":     graphql,

	// Terraform / HCL
	".tf":     hcl,
	".tfvars": hcl,
	".hcl":    hcl,

	// Nim / Crystal
	".nim": hashScript,
	".cr":  hashScript,

	// Vim script
	".vim": vimscript,
}

// ProfileFor returns the delimiter profile registered for the given file
// extension, including the leading dot. It returns nil when the extension
// is unknown; callers treat nil as "no compression possible".
func ProfileFor(ext string) *Profile {
	return profiles[ext]
}
