package store

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/mkurev/typedrill/internal/model"
)

//go:embed content.json
var defaultContent []byte

// Content is the on-disk seed format: lessons, tests, and named word pools
// (stored as space-joined strings, matching the content file layout).
type Content struct {
	Lessons []seedLesson      `json:"lessons"`
	Tests   []seedTest        `json:"tests"`
	Lists   map[string]string `json:"wordLists"`
}

type seedLesson struct {
	GUID      string `json:"guid"`
	Title     string `json:"title"`
	FocusKeys string `json:"focusKeys"`
	Sequence  int    `json:"sequence"`
	Category  string `json:"category"`
	Text      string `json:"text"`
}

type seedTest struct {
	GUID       string `json:"guid"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	WordCount  int    `json:"wordCount"`
	Duration   int    `json:"duration"`
	TextSource string `json:"textSource"`
	Text       string `json:"text"`
}

// DefaultContent parses the embedded seed content.
func DefaultContent() (Content, error) {
	return ParseContent(defaultContent)
}

// ParseContent decodes a content JSON document.
func ParseContent(data []byte) (Content, error) {
	var c Content
	if err := json.Unmarshal(data, &c); err != nil {
		return Content{}, fmt.Errorf("failed to parse content: %w", err)
	}
	return c, nil
}

// Seed upserts the content into the store. Items without a guid get one
// assigned, so re-running seed with the same file stays idempotent only for
// items that carry stable guids.
func (s *Store) Seed(ctx context.Context, c Content) error {
	for _, l := range c.Lessons {
		if l.GUID == "" {
			l.GUID = uuid.NewString()
		}
		category := l.Category
		if category == "" {
			category = "lesson"
		}
		lesson := model.Lesson{
			GUID:      l.GUID,
			Title:     l.Title,
			FocusKeys: l.FocusKeys,
			Sequence:  l.Sequence,
			Category:  category,
			Text:      l.Text,
		}
		if err := s.UpsertLesson(ctx, lesson); err != nil {
			return fmt.Errorf("failed to seed lesson %q: %w", l.Title, err)
		}
	}
	for _, t := range c.Tests {
		if t.GUID == "" {
			t.GUID = uuid.NewString()
		}
		test := model.Test{
			GUID:       t.GUID,
			Title:      t.Title,
			Category:   t.Category,
			Difficulty: t.Difficulty,
			WordCount:  t.WordCount,
			Duration:   t.Duration,
			TextSource: t.TextSource,
			Text:       t.Text,
		}
		if err := s.UpsertTest(ctx, test); err != nil {
			return fmt.Errorf("failed to seed test %q: %w", t.Title, err)
		}
	}
	for name, words := range c.Lists {
		if err := s.UpsertWordList(ctx, name, strings.Fields(words)); err != nil {
			return fmt.Errorf("failed to seed word list %q: %w", name, err)
		}
	}
	return nil
}
