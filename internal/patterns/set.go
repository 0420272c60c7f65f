package patterns

import (
	"bufio"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Set is an ordered, immutable list of patterns in file order.
type Set struct {
	patterns []*Pattern
}

// NewSet copies the given patterns into a new set.
func NewSet(patterns ...*Pattern) *Set {
	return &Set{patterns: append([]*Pattern(nil), patterns...)}
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.patterns)
}

// Patterns returns a copy of the ordered pattern list.
func (s *Set) Patterns() []*Pattern {
	if s == nil {
		return nil
	}
	return append([]*Pattern(nil), s.patterns...)
}

// FirstMatch returns the first pattern of the set found in text, or nil.
func (s *Set) FirstMatch(text string) *Pattern {
	if s == nil {
		return nil
	}
	return FirstMatch(text, s.patterns)
}

// FirstMatch scans patterns in order and returns the first one occurring in
// text. Blank text never matches. A pattern that fails to finish matching is
// logged and skipped.
func FirstMatch(text string, patterns []*Pattern) *Pattern {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	for _, p := range patterns {
		ok, err := p.Match(text)
		if err != nil {
			entry := getLogEntry().WithError(err).WithField("pattern", p.Source())
			if errors.Is(err, ErrMatchTimeout) {
				entry.Warn("pattern match timed out, skipping")
			} else {
				entry.Error("cant match pattern, skipping")
			}
			continue
		}
		if ok {
			return p
		}
	}
	return nil
}

// ParseFile reads the banned words file. Blank lines and lines starting with
// "#" are skipped, a line that does not compile is logged and skipped. On a
// read error the patterns parsed so far are returned together with the error.
func ParseFile(path string, timeout time.Duration) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return NewSet(), errors.Wrap(err, "open words file")
	}
	defer f.Close()

	entry := getLogEntry().WithField("path", path)
	set := &Set{}
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p, err := Compile(line, timeout)
		if err != nil {
			entry.WithError(err).WithField("line", lineNo).Warn("cant compile banned word")
			continue
		}
		entry.WithFields(log.Fields{"line": lineNo, "raw": p.Raw()}).Tracef("compiled %s", p)
		set.patterns = append(set.patterns, p)
	}
	if err := scanner.Err(); err != nil {
		return set, errors.Wrap(err, "read words file")
	}
	return set, nil
}

func getLogEntry() *log.Entry {
	return log.WithField("context", "patterns")
}
