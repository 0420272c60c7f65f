package patterns

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/pkg/errors"
)

// DefaultMatchTimeout bounds a single backtracking match of one pattern.
const DefaultMatchTimeout = 100 * time.Millisecond

// rawMarkers mark a stored line as a ready-made expression.
var rawMarkers = []string{`\b`, `\w`, `^`, `$`, `\d`}

var ErrMatchTimeout = errors.New("pattern match timed out")

// Pattern is one compiled line of the banned words file.
type Pattern struct {
	source string
	raw    bool
	re     *regexp2.Regexp
}

// IsRawExpression reports whether the trimmed line is used verbatim as a
// regular expression instead of being treated as a literal word.
func IsRawExpression(line string) bool {
	for _, marker := range rawMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// Compile builds a case-insensitive pattern from a stored line. Literal words
// are escaped and wrapped in word boundaries, raw expressions are kept as is
// apart from Python named groups.
// Word boundaries and \w follow Unicode rules, so Cyrillic words are whole
// tokens just like Latin ones.
func Compile(line string, timeout time.Duration) (*Pattern, error) {
	var expr string
	raw := IsRawExpression(line)
	if raw {
		expr = rewriteNamedGroups(line)
	} else {
		expr = `\b` + regexp2.Escape(line) + `\b`
	}

	re, err := regexp2.Compile(expr, regexp2.IgnoreCase)
	if err != nil {
		return nil, errors.Wrapf(err, "compile %q", line)
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}

	return &Pattern{
		source: line,
		raw:    raw,
		re:     re,
	}, nil
}

// Match reports whether the pattern occurs anywhere in text.
func (p *Pattern) Match(text string) (bool, error) {
	ok, err := p.re.MatchString(text)
	if err != nil {
		return false, errors.WithMessagef(ErrMatchTimeout, "%s: %v", p.re.String(), err)
	}
	return ok, nil
}

// Source returns the line the pattern was built from.
func (p *Pattern) Source() string {
	return p.source
}

// String returns the compiled expression.
func (p *Pattern) String() string {
	return p.re.String()
}

// Raw reports whether the stored line was used as an expression.
func (p *Pattern) Raw() bool {
	return p.raw
}

// rewriteNamedGroups turns the Python named group forms (?P<name>...) and
// (?P=name) into the (?<name>...) and \k<name> forms regexp2 understands, so
// word lists written for Python's re keep compiling.
func rewriteNamedGroups(expr string) string {
	expr = strings.ReplaceAll(expr, `(?P<`, `(?<`)
	for {
		i := strings.Index(expr, `(?P=`)
		if i < 0 {
			return expr
		}
		end := strings.IndexByte(expr[i:], ')')
		if end < 0 {
			return expr
		}
		name := expr[i+len(`(?P=`) : i+end]
		expr = expr[:i] + `\k<` + name + `>` + expr[i+end+1:]
	}
}
