package tui

import (
	"strings"
	"testing"

	"github.com/mkurev/typedrill/internal/engine"
	"github.com/mkurev/typedrill/internal/model"
)

func typedChars(t *testing.T, text, keys string) ([]engine.Char, int) {
	t.Helper()
	s, err := engine.New(text, engine.Config{Mode: model.ModeLesson})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	for _, r := range keys {
		s.Key(r)
	}
	return s.Chars(), s.Cursor()
}

func TestBuildStyledRunesCursor(t *testing.T) {
	chars, cursor := typedChars(t, "ab", "a")

	runes := buildStyledRunes(chars, cursor)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != currentWordStyle.Underline(true).Render("b") {
		t.Fatalf("expected underlined cursor rune")
	}
}

func TestBuildStyledRunesNoCursorWhenComplete(t *testing.T) {
	chars, cursor := typedChars(t, "a", "a")

	runes := buildStyledRunes(chars, cursor)
	if len(runes) != 1 {
		t.Fatalf("expected 1 rune, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for completed rune")
	}
}

func TestBuildStyledRunesKeepsTargetOnMistype(t *testing.T) {
	chars, cursor := typedChars(t, "ab", "ax")

	runes := buildStyledRunes(chars, cursor)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != incorrectStyle.Underline(true).Render("b") {
		t.Fatalf("expected incorrect style to keep the target rune")
	}
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	chars, cursor := typedChars(t, "one two", "o")

	runes := buildStyledRunes(chars, cursor)
	if runes[0].s != correctStyle.Render("o") {
		t.Fatalf("expected correct style for typed rune")
	}
	if runes[1].s != currentWordStyle.Underline(true).Render("n") {
		t.Fatalf("expected current word style under the cursor")
	}
	if runes[2].s != currentWordStyle.Render("e") {
		t.Fatalf("expected current word style for untyped in current word")
	}
	if runes[4].s != pendingStyle.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
	if runes[6].s != pendingStyle.Render("o") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestBuildStyledRunesWrongSpaceDot(t *testing.T) {
	chars, cursor := typedChars(t, "a b", "ax")

	runes := buildStyledRunes(chars, cursor)
	if len(runes) != 3 {
		t.Fatalf("expected 3 runes, got %d", len(runes))
	}
	if runes[1].s != incorrectStyle.Underline(true).Render("•") {
		t.Fatalf("expected red dot for wrong space")
	}
}

func TestWrapStyledRunesBreaksAtSpaces(t *testing.T) {
	chars, cursor := typedChars(t, "one two three", "")

	runes := buildStyledRunes(chars, cursor)
	wrapped := wrapStyledRunes(runes, 7)
	lines := strings.Split(wrapped, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), wrapped)
	}
	if !strings.Contains(lines[0], "o") || !strings.Contains(lines[2], "r") {
		t.Fatalf("unexpected wrap: %q", wrapped)
	}
}
