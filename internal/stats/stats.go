// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/mkurev/typedrill/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary aggregates a set of session results.
type Summary struct {
	Count        int
	AvgWPM       float64
	BestWPM      int
	AvgAccuracy  float64
	TotalErrors  int
	TotalSeconds int
}

// Summarize computes aggregate metrics over the given results.
func Summarize(results []model.ResultRecord) Summary {
	s := Summary{Count: len(results)}
	if len(results) == 0 {
		return s
	}
	var wpmSum, accSum float64
	for _, r := range results {
		wpmSum += float64(r.WPM)
		accSum += r.Accuracy
		if r.WPM > s.BestWPM {
			s.BestWPM = r.WPM
		}
		s.TotalErrors += r.Errors
		s.TotalSeconds += r.DurationSeconds
	}
	count := float64(len(results))
	s.AvgWPM = wpmSum / count
	s.AvgAccuracy = accSum / count
	return s
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints the aggregate block for a set of results.
func RenderSummary(w io.Writer, s Summary) error {
	if s.Count == 0 {
		_, err := fmt.Fprintln(w, "No results found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Sessions: %d\n", s.Count); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg WPM: %.2f\n", s.AvgWPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best WPM: %d\n", s.BestWPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Accuracy: %.2f%%\n", s.AvgAccuracy); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total Errors: %d\n", s.TotalErrors); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Time Typed: %s\n", formatDuration(s.TotalSeconds)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func formatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds < 3600 {
		return fmt.Sprintf("%dm%02ds", seconds/60, seconds%60)
	}
	return fmt.Sprintf("%dh%02dm", seconds/3600, (seconds%3600)/60)
}
