package engine

import (
	"math"
	"time"
)

// Metrics is a pure projection of session state at a point in time.
type Metrics struct {
	WPM      int
	Accuracy int // percent, 0-100
	// Seconds is the remaining time for countdown sessions, elapsed time
	// otherwise.
	Seconds   int
	Countdown bool
}

// Metrics computes net WPM, accuracy, and elapsed or remaining time.
func (s *Session) Metrics() Metrics {
	return s.metricsAt(s.now(), false)
}

func (s *Session) metricsAt(now time.Time, final bool) Metrics {
	m := Metrics{
		Accuracy:  accuracyPct(s.attempts, s.errors),
		Countdown: s.cfg.DurationTarget > 0,
	}
	if s.startedAt.IsZero() && !final {
		if m.Countdown {
			m.Seconds = s.cfg.DurationTarget
		}
		return m
	}

	start := s.startedAt
	if start.IsZero() {
		start = now
	}
	elapsed := now.Sub(start).Seconds()
	minutes := elapsed / 60
	if minutes < 0.001 {
		minutes = 0.001
	}
	wpm := int(math.Round(float64(s.correct) / 5 / minutes))
	if wpm < 0 {
		wpm = 0
	}
	m.WPM = wpm

	if m.Countdown {
		remaining := int(math.Ceil(float64(s.cfg.DurationTarget) - elapsed))
		if remaining < 0 {
			remaining = 0
		}
		m.Seconds = remaining
	} else {
		m.Seconds = int(elapsed)
	}
	return m
}

func accuracyPct(attempts, errs int) int {
	if attempts == 0 {
		if errs > 0 {
			return 0
		}
		return 100
	}
	correct := attempts - errs
	if correct < 0 {
		correct = 0
	}
	pct := int(math.Round(float64(correct) / float64(attempts) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
