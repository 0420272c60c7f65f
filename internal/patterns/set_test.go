package patterns

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeWords(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "banned_words.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write words file: %v", err)
	}
	return path
}

func TestParseFileSkipsBlanksAndComments(t *testing.T) {
	t.Parallel()

	path := writeWords(t, "# header\n\n  casino  \n\t\n# another\n\\d{6}\nbet\n")
	set, err := ParseFile(path, DefaultMatchTimeout)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	got := set.Patterns()
	if len(got) != 3 {
		t.Fatalf("expected 3 patterns, got %d", len(got))
	}
	want := []string{`\bcasino\b`, `\d{6}`, `\bbet\b`}
	for i, p := range got {
		if p.String() != want[i] {
			t.Fatalf("pattern %d: got %q want %q", i, p.String(), want[i])
		}
	}
}

func TestParseFileSkipsLinesThatDoNotCompile(t *testing.T) {
	t.Parallel()

	path := writeWords(t, "casino\n^(broken\nbet\n")
	set, err := ParseFile(path, DefaultMatchTimeout)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("expected broken line to be skipped, got %d patterns", set.Len())
	}
}

func TestParseFileMissingFile(t *testing.T) {
	t.Parallel()

	set, err := ParseFile(filepath.Join(t.TempDir(), "absent.txt"), DefaultMatchTimeout)
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if set == nil || set.Len() != 0 {
		t.Fatalf("expected empty set for missing file")
	}
}

func TestFirstMatchReturnsFirstInFileOrder(t *testing.T) {
	t.Parallel()

	set, err := ParseFile(writeWords(t, "bet\ncasino\n\\bcas\\w+\n"), DefaultMatchTimeout)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	p := set.FirstMatch("casino bets")
	if p == nil || p.Source() != "casino" {
		t.Fatalf("expected casino to win, got %v", p)
	}
	if p := set.FirstMatch("place your bet at the casino"); p == nil || p.Source() != "bet" {
		t.Fatalf("expected bet to win, got %v", p)
	}
	if p := set.FirstMatch("hello world"); p != nil {
		t.Fatalf("unexpected match %v", p)
	}
}

func TestFirstMatchSkipsPatternThatTimesOut(t *testing.T) {
	t.Parallel()

	slow, err := Compile(`^(\w+\s?)*$`, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	text := strings.Repeat("a", 40) + "! spam"

	if _, err := slow.Match(text); !errors.Is(err, ErrMatchTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
	p := FirstMatch(text, []*Pattern{slow, mustCompile(t, "spam")})
	if p == nil || p.Source() != "spam" {
		t.Fatalf("expected the next pattern to match, got %v", p)
	}
}

func TestFirstMatchIgnoresBlankText(t *testing.T) {
	t.Parallel()

	set := NewSet(mustCompile(t, `^\s*$`))
	if p := set.FirstMatch("   "); p != nil {
		t.Fatalf("blank text must never match, got %v", p)
	}
	if p := FirstMatch("", set.Patterns()); p != nil {
		t.Fatalf("empty text must never match, got %v", p)
	}
}

func TestNilSetIsEmpty(t *testing.T) {
	t.Parallel()

	var set *Set
	if set.Len() != 0 || set.FirstMatch("casino") != nil || set.Patterns() != nil {
		t.Fatalf("nil set must behave as empty")
	}
}
