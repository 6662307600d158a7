// Package content resolves a practice selection against the stored catalog
// into the text and configuration of a new session.
package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkurev/typedrill/internal/engine"
	"github.com/mkurev/typedrill/internal/model"
	"github.com/mkurev/typedrill/internal/store"
	"github.com/mkurev/typedrill/internal/text"
)

const (
	// DefaultWordList feeds plain word and timed practice.
	DefaultWordList = "common_words_medium"
	// timedWordBlock is the assembled text size for countdown sessions,
	// large enough that the clock runs out before the text does.
	timedWordBlock = 250
)

// Setup is everything needed to begin one session.
type Setup struct {
	Title  string
	Text   string
	Config engine.Config
}

// Catalog builds session setups from stored lessons, tests, and word pools.
type Catalog struct {
	store *store.Store
	asm   *text.Assembler
	pool  string
}

// NewCatalog returns a catalog over the given store.
func NewCatalog(st *store.Store, asm *text.Assembler) *Catalog {
	return &Catalog{store: st, asm: asm, pool: DefaultWordList}
}

// UseWordList switches the pool for word and timed practice. An empty
// name keeps the current pool.
func (c *Catalog) UseWordList(name string) {
	if name != "" {
		c.pool = name
	}
}

// Lessons lists all lessons in sequence order.
func (c *Catalog) Lessons(ctx context.Context) ([]model.Lesson, error) {
	return c.store.ListLessons(ctx)
}

// Tests lists all tests.
func (c *Catalog) Tests(ctx context.Context) ([]model.Test, error) {
	return c.store.ListTests(ctx)
}

// LessonSession prepares a session over a lesson's text.
func (c *Catalog) LessonSession(l model.Lesson) (Setup, error) {
	body := text.Normalize(l.Text)
	if body == "" {
		return Setup{}, engine.ErrNoText
	}
	return Setup{
		Title: fmt.Sprintf("L%d: %s", l.Sequence, l.Title),
		Text:  body,
		Config: engine.Config{
			Mode:        model.ModeLesson,
			ReferenceID: l.GUID,
		},
	}, nil
}

// TestSession prepares a session for a test. The test's category fixes the
// effective end condition here, once, rather than in the evaluator: "time"
// and "words" tests assemble text from their word-list source (or use
// embedded text), everything else requires embedded text.
func (c *Catalog) TestSession(ctx context.Context, t model.Test) (Setup, error) {
	setup := Setup{
		Title: t.Title,
		Config: engine.Config{
			Mode:        model.Mode(t.Category),
			ReferenceID: t.GUID,
		},
	}
	switch t.Category {
	case string(model.ModeTime), string(model.ModeWords):
		setup.Config.Mode = model.ModeTest
		setup.Config.DurationTarget = t.Duration
		setup.Config.WordTarget = t.WordCount
		if t.TextSource != "" {
			count := timedWordBlock
			trailing := false
			if t.Category == string(model.ModeWords) {
				count = t.WordCount
				trailing = true
			}
			body, err := c.assembleFromList(ctx, t.TextSource, count, trailing)
			if err != nil {
				return Setup{}, err
			}
			setup.Text = body
			return setup, nil
		}
		setup.Text = text.Normalize(t.Text)
	default:
		setup.Text = text.Normalize(t.Text)
	}
	if setup.Text == "" {
		return Setup{}, fmt.Errorf("test %q: %w", t.GUID, engine.ErrNoText)
	}
	return setup, nil
}

// WordsSession prepares a word-count practice session from the word pool.
func (c *Catalog) WordsSession(ctx context.Context, count int) (Setup, error) {
	body, err := c.assembleFromList(ctx, c.pool, count, true)
	if err != nil {
		return Setup{}, err
	}
	return Setup{
		Title: fmt.Sprintf("%d words Practice", count),
		Text:  body,
		Config: engine.Config{
			Mode:       model.ModeWords,
			WordTarget: count,
		},
	}, nil
}

// TimedSession prepares a countdown practice session from the word pool.
func (c *Catalog) TimedSession(ctx context.Context, seconds int) (Setup, error) {
	body, err := c.assembleFromList(ctx, c.pool, timedWordBlock, false)
	if err != nil {
		return Setup{}, err
	}
	return Setup{
		Title: fmt.Sprintf("%ds Practice", seconds),
		Text:  body,
		Config: engine.Config{
			Mode:           model.ModeTime,
			DurationTarget: seconds,
		},
	}, nil
}

func (c *Catalog) assembleFromList(ctx context.Context, name string, count int, trailing bool) (string, error) {
	if count <= 0 {
		return "", engine.ErrNoText
	}
	wl, err := c.store.GetWordList(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("word list %q: %w", name, text.ErrEmptyPool)
		}
		return "", fmt.Errorf("failed to load word list %q: %w", name, err)
	}
	body, err := c.asm.Assemble(wl.Words, count, trailing)
	if err != nil {
		return "", fmt.Errorf("word list %q: %w", name, err)
	}
	return body, nil
}
