// Package model defines shared data structures.
package model

import "time"

// Mode identifies the end-condition family governing a practice session.
type Mode string

const (
	ModeLesson Mode = "lesson"
	ModeTest   Mode = "test"
	ModeWords  Mode = "words"
	ModeTime   Mode = "time"
	ModeQuote  Mode = "quote"
	ModeCode   Mode = "code"
)

// Lesson is a sequenced practice text.
type Lesson struct {
	GUID      string    `json:"guid"`
	Title     string    `json:"title"`
	FocusKeys string    `json:"focus_keys,omitempty"`
	Sequence  int       `json:"sequence"`
	Category  string    `json:"category"`
	Text      string    `json:"lesson_text"`
	CreatedAt time.Time `json:"created_at"`
}

// Test is a scored practice item. Category decides the end condition:
// "time" and "words" tests draw their text from TextSource (a word list
// name) unless Text is embedded; "quote" and "code" always embed Text.
type Test struct {
	GUID       string    `json:"guid"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	Difficulty string    `json:"difficulty,omitempty"`
	WordCount  int       `json:"wordCount"`
	Duration   int       `json:"duration"`
	TextSource string    `json:"textSource,omitempty"`
	Text       string    `json:"test_text,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// WordList is a named pool of words for assembled practice texts.
type WordList struct {
	Name  string   `json:"name"`
	Words []string `json:"words"`
}

// ResultRecord is the immutable snapshot persisted when a session ends.
type ResultRecord struct {
	ID              int64     `json:"id,omitempty"`
	Timestamp       time.Time `json:"timestamp,omitempty"`
	WPM             int       `json:"wpm"`
	Accuracy        float64   `json:"accuracy"`
	Errors          int       `json:"errors"`
	DurationSeconds int       `json:"duration_seconds"`
	Mode            Mode      `json:"mode"`
	ReferenceID     string    `json:"reference_id,omitempty"`
}

// ResultFilter selects which results a stats view includes.
type ResultFilter string

const (
	FilterAll     ResultFilter = "all"
	FilterLessons ResultFilter = "lessons"
	FilterTests   ResultFilter = "tests"
)

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Filter      ResultFilter
	Since       *time.Time
	Last        int
	CurveWindow int
}
