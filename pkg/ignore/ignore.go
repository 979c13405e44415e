package ignore

import (
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Pattern is one compiled exclusion rule.
type Pattern struct {
	Expr   *regexp.Regexp // Compiled form of the glob.
	Line   string         // Original pattern text.
	LineNo int            // Line number in the source (1-based).
}

// RuleSet holds the exclusion patterns for one run. A path is excluded when
// any pattern matches either its full relative path or its base name alone.
type RuleSet struct {
	Patterns []*Pattern
	logger   *zap.Logger
}

// NewRuleSet initializes an empty RuleSet with an optional logger.
func NewRuleSet(logger *zap.Logger) *RuleSet {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RuleSet{logger: logger}
}

// AddPatterns parses pattern lines and adds the valid ones to the set.
// Blank lines and lines starting with '#' are skipped; lines that fail to
// compile are dropped.
func (rs *RuleSet) AddPatterns(lines ...string) {
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		expr, err := translate(trimmed)
		if err != nil {
			rs.logger.Warn("Skipping unparsable ignore pattern",
				zap.String("pattern", trimmed), zap.Error(err))
			continue
		}
		rs.Patterns = append(rs.Patterns, &Pattern{
			Expr:   expr,
			Line:   trimmed,
			LineNo: i + 1,
		})
	}
}

// LoadFile reads an ignore file and adds its patterns to the set.
func (rs *RuleSet) LoadFile(fpath string) error {
	content, err := os.ReadFile(fpath)
	if err != nil {
		return err
	}
	rs.AddPatterns(strings.Split(string(content), "\n")...)
	rs.logger.Debug("Compiled ignore patterns",
		zap.String("filePath", fpath), zap.Int("patternCount", len(rs.Patterns)))
	return nil
}

// Len returns the number of compiled patterns.
func (rs *RuleSet) Len() int {
	return len(rs.Patterns)
}

// Excluded checks whether a relative path is matched by any pattern.
func (rs *RuleSet) Excluded(relPath string) bool {
	excluded, _ := rs.ExcludedByPattern(relPath)
	return excluded
}

// ExcludedByPattern checks whether a relative path is matched by any
// pattern and returns the first pattern that matched.
//
// Each pattern is tried against the full slash-separated relative path and
// against the base name on its own, so `*.log` excludes log files at any
// depth while `build/out` only excludes that exact path.
func (rs *RuleSet) ExcludedByPattern(relPath string) (bool, *Pattern) {
	rel := filepath.ToSlash(relPath)
	base := path.Base(rel)

	for _, p := range rs.Patterns {
		if p.Expr.MatchString(rel) || p.Expr.MatchString(base) {
			return true, p
		}
	}
	return false, nil
}

// translate compiles one glob pattern into an anchored regular expression.
// `*` matches any run of characters including path separators, `?` matches
// exactly one character, everything else matches literally. Matching is
// case-sensitive.
func translate(pattern string) (*regexp.Regexp, error) {
	escaped := escapeSpecialChars(pattern)
	escaped = strings.ReplaceAll(escaped, "*", ".*")
	escaped = strings.ReplaceAll(escaped, "?", ".")
	return regexp.Compile("^" + escaped + "$")
}

// escapeSpecialChars escapes regex special characters except for `*`, `?`,
// and `/`. Backslash is escaped first so the escapes added for the other
// characters survive.
func escapeSpecialChars(pattern string) string {
	specialChars := `\.+()|^$[]{}`
	for _, char := range specialChars {
		pattern = strings.ReplaceAll(pattern, string(char), `\`+string(char))
	}
	return pattern
}
