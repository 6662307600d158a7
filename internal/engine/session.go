// Package engine implements the typing-session state machine: it consumes
// keystroke and tick events, tracks per-character status, and decides when
// a session is over.
package engine

import (
	"errors"
	"math"
	"time"

	"github.com/mkurev/typedrill/internal/model"
)

// ErrNoText indicates that no practice text could be resolved for a session.
var ErrNoText = errors.New("no text for session")

// Status is the typing state of a single target character.
type Status int8

const (
	StatusPending Status = iota
	StatusCurrent
	StatusCorrect
	StatusIncorrect
)

// Char pairs a target rune with its typing status. The character under the
// cursor holds StatusCurrent, or StatusIncorrect after a wrong attempt that
// has not been corrected yet.
type Char struct {
	R      rune
	Status Status
}

// Config fixes the parameters of one session. At most one of WordTarget and
// DurationTarget is nonzero outside of test mode; a test carries whichever
// its category implies.
type Config struct {
	Mode           model.Mode
	ReferenceID    string
	WordTarget     int
	DurationTarget int // seconds
}

// endKind is the effective end condition, resolved once at construction so
// the evaluator never re-derives it from the mode string.
type endKind int8

const (
	endText endKind = iota
	endWords
	endTime
)

func resolveEndKind(cfg Config) endKind {
	switch cfg.Mode {
	case model.ModeTime:
		return endTime
	case model.ModeWords:
		return endWords
	case model.ModeTest:
		if cfg.DurationTarget > 0 {
			return endTime
		}
		if cfg.WordTarget > 0 {
			return endWords
		}
		return endText
	default:
		return endText
	}
}

// Session is the authoritative state of one practice attempt. It has a
// single writer: keystroke and tick events delivered serially by the host
// event loop.
type Session struct {
	cfg  Config
	kind endKind

	chars    []Char
	cursor   int
	errors   int
	attempts int
	correct  int

	startedAt time.Time
	endedAt   time.Time
	active    bool
	done      bool

	now func() time.Time
}

// New builds a session over the given text with all characters pending and
// the first one current.
func New(text string, cfg Config) (*Session, error) {
	if text == "" {
		return nil, ErrNoText
	}
	runes := []rune(text)
	chars := make([]Char, len(runes))
	for i, r := range runes {
		chars[i] = Char{R: r}
	}
	chars[0].Status = StatusCurrent
	return &Session{
		cfg:   cfg,
		kind:  resolveEndKind(cfg),
		chars: chars,
		now:   time.Now,
	}, nil
}

// Chars exposes the per-character states for rendering.
func (s *Session) Chars() []Char { return s.chars }

// Cursor is the index of the next character expected to be typed correctly.
func (s *Session) Cursor() int { return s.cursor }

// Config returns the session's immutable configuration.
func (s *Session) Config() Config { return s.cfg }

// Active reports whether the session has started and not yet ended.
func (s *Session) Active() bool { return s.active }

// Done reports whether the session has reached its end condition.
func (s *Session) Done() bool { return s.done }

// Errors returns the number of distinct mistakes made so far.
func (s *Session) Errors() int { return s.errors }

// Key processes one printable character. The first qualifying keystroke
// starts the clock, unless the end condition already holds. Returns true
// when the event ended the session.
func (s *Session) Key(r rune) bool {
	if s.done || !s.start() {
		return false
	}
	if s.cursor < len(s.chars) {
		s.attempts++
		if r == s.chars[s.cursor].R {
			s.chars[s.cursor].Status = StatusCorrect
			s.correct++
			s.cursor++
			if s.cursor < len(s.chars) {
				s.chars[s.cursor].Status = StatusCurrent
			}
		} else if s.chars[s.cursor].Status != StatusIncorrect {
			s.errors++
			s.chars[s.cursor].Status = StatusIncorrect
		}
	}
	return s.evaluate()
}

// Backspace steps the cursor back one position. The abandoned position
// returns to pending and the backed-into character becomes current again;
// a correct mark is taken back, an error stays counted.
func (s *Session) Backspace() bool {
	if s.done || !s.start() {
		return false
	}
	if s.cursor > 0 {
		s.attempts++
		if s.cursor < len(s.chars) {
			s.chars[s.cursor].Status = StatusPending
		}
		s.cursor--
		if s.chars[s.cursor].Status == StatusCorrect {
			s.correct--
		}
		s.chars[s.cursor].Status = StatusCurrent
	}
	return s.evaluate()
}

// Tick processes a one-second timer tick. It shares the completion check
// with the keystroke path so countdown sessions end on whichever event
// observes the deadline first.
func (s *Session) Tick() bool {
	if s.done || !s.active {
		return false
	}
	return s.evaluate()
}

func (s *Session) start() bool {
	if s.active {
		return true
	}
	if s.Complete(false) {
		return false
	}
	s.active = true
	s.startedAt = s.now()
	return true
}

func (s *Session) evaluate() bool {
	if s.Complete(true) {
		s.active = false
		s.done = true
		s.endedAt = s.now()
		return true
	}
	return false
}

// Result packages the final metrics for persistence. Duration is the actual
// elapsed time, also for countdown sessions that ran out.
func (s *Session) Result() model.ResultRecord {
	end := s.endedAt
	if end.IsZero() {
		end = s.now()
	}
	duration := 0
	if !s.startedAt.IsZero() {
		duration = int(math.Round(end.Sub(s.startedAt).Seconds()))
	}
	m := s.metricsAt(end, true)
	return model.ResultRecord{
		WPM:             m.WPM,
		Accuracy:        float64(m.Accuracy),
		Errors:          s.errors,
		DurationSeconds: duration,
		Mode:            s.cfg.Mode,
		ReferenceID:     s.cfg.ReferenceID,
	}
}
