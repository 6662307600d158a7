package engine

import (
	"testing"
	"time"

	"github.com/mkurev/typedrill/internal/model"
)

func TestMetricsBeforeStart(t *testing.T) {
	s, _ := newTestSession(t, "abc", Config{Mode: model.ModeTime, DurationTarget: 30})
	m := s.Metrics()
	if m.WPM != 0 {
		t.Fatalf("WPM before start = %d", m.WPM)
	}
	if m.Accuracy != 100 {
		t.Fatalf("accuracy before start = %d", m.Accuracy)
	}
	if !m.Countdown || m.Seconds != 30 {
		t.Fatalf("countdown display before start = %+v", m)
	}
}

func TestMetricsNetWPM(t *testing.T) {
	// 25 correct characters in 60 seconds is 5 words per minute.
	s, clock := newTestSession(t, "aaaaaaaaaaaaaaaaaaaaaaaaa", Config{Mode: model.ModeLesson})
	typeString(s, "aaaaaaaaaaaaaaaaaaaaaaaaa")
	clock.advance(time.Minute)
	m := s.metricsAt(clock.now(), true)
	if m.WPM != 5 {
		t.Fatalf("WPM = %d, want 5", m.WPM)
	}
}

func TestMetricsSubSecondSessionClamped(t *testing.T) {
	s, clock := newTestSession(t, "ab", Config{Mode: model.ModeLesson})
	s.Key('a')
	clock.advance(10 * time.Millisecond)
	m := s.Metrics()
	// Elapsed minutes are floored at 0.001, so WPM stays finite.
	if m.WPM < 0 || m.WPM > 200 {
		t.Fatalf("sub-second WPM out of range: %d", m.WPM)
	}
}

func TestAccuracyTable(t *testing.T) {
	cases := []struct {
		name     string
		attempts int
		errs     int
		want     int
	}{
		{"untouched", 0, 0, 100},
		{"errors without attempts", 0, 2, 0},
		{"clean", 10, 0, 100},
		{"half", 10, 5, 50},
		{"rounded", 3, 1, 67},
		{"more errors than attempts", 2, 5, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := accuracyPct(tc.attempts, tc.errs); got != tc.want {
				t.Fatalf("accuracy(%d, %d) = %d, want %d", tc.attempts, tc.errs, got, tc.want)
			}
		})
	}
}

func TestMetricsBounds(t *testing.T) {
	s, clock := newTestSession(t, "abcd", Config{Mode: model.ModeLesson})
	for _, r := range []rune{'x', 'a', 'x', 'b'} {
		s.Key(r)
		m := s.Metrics()
		if m.Accuracy < 0 || m.Accuracy > 100 {
			t.Fatalf("accuracy out of range: %d", m.Accuracy)
		}
		if m.WPM < 0 {
			t.Fatalf("negative WPM: %d", m.WPM)
		}
		clock.advance(200 * time.Millisecond)
	}
}

func TestCountdownRemainingTime(t *testing.T) {
	s, clock := newTestSession(t, "abcdef", Config{Mode: model.ModeTime, DurationTarget: 10})
	s.Key('a')
	clock.advance(3500 * time.Millisecond)
	m := s.Metrics()
	if m.Seconds != 7 {
		t.Fatalf("remaining = %d, want ceil(10-3.5) = 7", m.Seconds)
	}
	clock.advance(20 * time.Second)
	if got := s.Metrics().Seconds; got != 0 {
		t.Fatalf("remaining clamped below zero: %d", got)
	}
}

func TestResultUsesActualDuration(t *testing.T) {
	s, clock := newTestSession(t, "abcdef", Config{Mode: model.ModeTime, DurationTarget: 10, ReferenceID: "t9"})
	s.Key('a')
	clock.advance(10400 * time.Millisecond)
	if !s.Tick() {
		t.Fatalf("expected countdown to end")
	}
	res := s.Result()
	if res.DurationSeconds != 10 {
		t.Fatalf("duration = %d, want round(10.4) = 10", res.DurationSeconds)
	}
	if res.Mode != model.ModeTime || res.ReferenceID != "t9" {
		t.Fatalf("unexpected result identity: %+v", res)
	}
}
