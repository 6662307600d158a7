package engine

import (
	"testing"
	"time"

	"github.com/mkurev/typedrill/internal/model"
)

// fakeClock lets tests advance session time without sleeping.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestSession(t *testing.T, text string, cfg Config) (*Session, *fakeClock) {
	t.Helper()
	s, err := New(text, cfg)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	clock := newFakeClock()
	s.now = clock.now
	return s, clock
}

func typeString(s *Session, text string) {
	for _, r := range text {
		s.Key(r)
	}
}

func TestNewEmptyText(t *testing.T) {
	if _, err := New("", Config{Mode: model.ModeLesson}); err != ErrNoText {
		t.Fatalf("expected ErrNoText, got %v", err)
	}
}

func TestNewInitialState(t *testing.T) {
	s, _ := newTestSession(t, "abc", Config{Mode: model.ModeLesson})
	chars := s.Chars()
	if chars[0].Status != StatusCurrent {
		t.Fatalf("expected first char current, got %v", chars[0].Status)
	}
	for i := 1; i < len(chars); i++ {
		if chars[i].Status != StatusPending {
			t.Fatalf("expected char %d pending, got %v", i, chars[i].Status)
		}
	}
	if s.Active() || s.Done() {
		t.Fatalf("expected inactive session, active=%v done=%v", s.Active(), s.Done())
	}
}

func TestPerfectRun(t *testing.T) {
	s, clock := newTestSession(t, "go fast", Config{Mode: model.ModeLesson, ReferenceID: "l1"})
	clock.advance(time.Second)
	typeString(s, "go fast")
	if !s.Done() {
		t.Fatalf("expected session done after typing full text")
	}
	for i, c := range s.Chars() {
		if c.Status != StatusCorrect {
			t.Fatalf("char %d not correct: %v", i, c.Status)
		}
	}
	if s.Errors() != 0 {
		t.Fatalf("expected 0 errors, got %d", s.Errors())
	}
	res := s.Result()
	if res.Accuracy != 100 {
		t.Fatalf("expected accuracy 100, got %v", res.Accuracy)
	}
	if res.Mode != model.ModeLesson || res.ReferenceID != "l1" {
		t.Fatalf("unexpected result identity: %+v", res)
	}
}

func TestWrongThenCorrected(t *testing.T) {
	s, _ := newTestSession(t, "hi", Config{Mode: model.ModeLesson})

	s.Key('x')
	if s.Errors() != 1 {
		t.Fatalf("expected 1 error, got %d", s.Errors())
	}
	if s.Cursor() != 0 {
		t.Fatalf("cursor advanced on wrong key: %d", s.Cursor())
	}
	if s.Chars()[0].Status != StatusIncorrect {
		t.Fatalf("expected char 0 incorrect, got %v", s.Chars()[0].Status)
	}

	// Re-typing another wrong char must not double-count.
	s.Key('y')
	if s.Errors() != 1 {
		t.Fatalf("repeated wrong key double-counted: %d", s.Errors())
	}

	s.Key('h')
	if s.Chars()[0].Status != StatusCorrect {
		t.Fatalf("expected char 0 correct after fix, got %v", s.Chars()[0].Status)
	}
	if s.Cursor() != 1 || s.correct != 1 {
		t.Fatalf("cursor=%d correct=%d after fix", s.Cursor(), s.correct)
	}
	if s.Errors() != 1 {
		t.Fatalf("error count changed after fix: %d", s.Errors())
	}
}

func TestBackspaceInvertsCorrectKeystroke(t *testing.T) {
	s, _ := newTestSession(t, "abc", Config{Mode: model.ModeLesson})
	s.Key('a')
	s.Key('b')
	wantCorrect, wantCursor := s.correct, s.Cursor()

	s.Key('c') // session done at end of text? no: 3 chars, cursor==3 -> done
	if !s.Done() {
		t.Fatalf("expected done at end of text")
	}

	s, _ = newTestSession(t, "abc", Config{Mode: model.ModeLesson})
	s.Key('a')
	s.Key('b')
	s.Backspace()
	if s.correct != wantCorrect-1 || s.Cursor() != wantCursor-1 {
		t.Fatalf("backspace did not invert: correct=%d cursor=%d", s.correct, s.Cursor())
	}
	if s.Chars()[1].Status != StatusCurrent {
		t.Fatalf("backed-into char not current: %v", s.Chars()[1].Status)
	}
	if s.Chars()[2].Status != StatusPending {
		t.Fatalf("abandoned char not pending: %v", s.Chars()[2].Status)
	}
}

func TestBackspaceNeverDecrementsErrors(t *testing.T) {
	s, _ := newTestSession(t, "ab", Config{Mode: model.ModeLesson})
	s.Key('x')
	s.Key('a')
	s.Backspace()
	if s.Errors() != 1 {
		t.Fatalf("backspace changed error count: %d", s.Errors())
	}
}

func TestBackspaceAtStartIsNoop(t *testing.T) {
	s, _ := newTestSession(t, "ab", Config{Mode: model.ModeLesson})
	s.Key('a')
	s.Backspace()
	before := s.attempts
	s.Backspace()
	if s.Cursor() != 0 {
		t.Fatalf("cursor moved below zero: %d", s.Cursor())
	}
	if s.attempts != before {
		t.Fatalf("no-op backspace counted as attempt")
	}
}

func TestBackspaceStartsSession(t *testing.T) {
	s, _ := newTestSession(t, "ab", Config{Mode: model.ModeLesson})
	s.Backspace()
	if !s.Active() {
		t.Fatalf("backspace did not start the session")
	}
}

func TestTypingPastEndIgnored(t *testing.T) {
	s, clock := newTestSession(t, "a b", Config{Mode: model.ModeWords, WordTarget: 5})
	typeString(s, "a b")
	clock.advance(time.Second)
	attempts := s.attempts
	s.Key('z')
	if s.attempts != attempts {
		t.Fatalf("keystroke past end counted as attempt")
	}
}

func TestStatusPartition(t *testing.T) {
	s, _ := newTestSession(t, "one two", Config{Mode: model.ModeLesson})
	typeString(s, "one")
	s.Key('q') // wrong space attempt stays at the cursor
	for i, c := range s.Chars() {
		switch {
		case i < s.Cursor():
			if c.Status != StatusCorrect && c.Status != StatusIncorrect {
				t.Fatalf("char %d before cursor is %v", i, c.Status)
			}
		case i == s.Cursor():
			if c.Status != StatusCurrent && c.Status != StatusIncorrect {
				t.Fatalf("char %d at cursor is %v", i, c.Status)
			}
		default:
			if c.Status != StatusPending {
				t.Fatalf("char %d after cursor is %v", i, c.Status)
			}
		}
	}
}

func TestWordCountUnterminatedFinalWord(t *testing.T) {
	s, _ := newTestSession(t, "ab cd", Config{Mode: model.ModeWords, WordTarget: 2})
	for _, r := range []rune{'a', 'b', ' ', 'c'} {
		if done := s.Key(r); done {
			t.Fatalf("session ended early at %q", r)
		}
	}
	// The final word has no boundary space: it closes when the cursor
	// reaches the end of the text fully correct.
	if !s.Key('d') {
		t.Fatalf("expected session to end on the final character")
	}
	if got := s.completedWords(); got != 2 {
		t.Fatalf("expected 2 completed words, got %d", got)
	}
}

func TestWordCountBoundarySpace(t *testing.T) {
	s, _ := newTestSession(t, "ab cd ", Config{Mode: model.ModeWords, WordTarget: 2})
	keys := []rune{'a', 'b', ' ', 'c', 'd'}
	for _, r := range keys {
		if done := s.Key(r); done {
			t.Fatalf("session ended before final boundary space")
		}
	}
	if !s.Key(' ') {
		t.Fatalf("expected session to end exactly on the 6th keystroke")
	}
	if got := s.completedWords(); got != 2 {
		t.Fatalf("expected 2 completed words, got %d", got)
	}
}

func TestWordWithErrorDoesNotCount(t *testing.T) {
	s, _ := newTestSession(t, "ab cd ", Config{Mode: model.ModeWords, WordTarget: 2})
	// Type the boundary space wrong first: the word must stay open.
	typeString(s, "ab")
	s.Key('x')
	if s.completedWords() != 0 {
		t.Fatalf("incorrect boundary space closed a word")
	}
	s.Key(' ')
	if s.completedWords() != 1 {
		t.Fatalf("corrected boundary space did not close the word: %d", s.completedWords())
	}
}

func TestTimeBoundedCompletion(t *testing.T) {
	s, clock := newTestSession(t, "abcdefghij", Config{Mode: model.ModeTime, DurationTarget: 10})
	s.Key('a')
	clock.advance(9900 * time.Millisecond)
	if s.Complete(true) {
		t.Fatalf("session complete at 9.9s of 10s")
	}
	if s.Tick() {
		t.Fatalf("tick ended session before the deadline")
	}
	clock.advance(100 * time.Millisecond)
	if !s.Complete(true) {
		t.Fatalf("session not complete at 10.0s")
	}
	if !s.Tick() {
		t.Fatalf("tick did not end the session at the deadline")
	}
	if s.Active() {
		t.Fatalf("session still active after end")
	}
}

func TestTimeCheckSkippedWhenNotRequested(t *testing.T) {
	s, clock := newTestSession(t, "abc", Config{Mode: model.ModeTime, DurationTarget: 1})
	s.Key('a')
	clock.advance(5 * time.Second)
	if s.Complete(false) {
		t.Fatalf("checkTime=false still triggered the time condition")
	}
}

func TestTestModeKindResolvedAtSetup(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want endKind
	}{
		{"timed test", Config{Mode: model.ModeTest, DurationTarget: 60}, endTime},
		{"word test", Config{Mode: model.ModeTest, WordTarget: 50}, endWords},
		{"embedded text test", Config{Mode: model.ModeTest}, endText},
		{"quote", Config{Mode: model.ModeQuote}, endText},
		{"code", Config{Mode: model.ModeCode}, endText},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolveEndKind(tc.cfg); got != tc.want {
				t.Fatalf("kind = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestKeystrokesBeforeStartOnCompletedSession(t *testing.T) {
	// Word target of zero words is unreachable, but an already-satisfied
	// text condition must refuse to start.
	s, _ := newTestSession(t, "a", Config{Mode: model.ModeLesson})
	s.Key('a')
	if !s.Done() {
		t.Fatalf("expected done")
	}
	if s.Key('a') {
		t.Fatalf("keystroke on ended session reported completion")
	}
	if s.attempts != 1 {
		t.Fatalf("keystroke after end mutated state: attempts=%d", s.attempts)
	}
}
