package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPlotSeriesDimensions(t *testing.T) {
	var buf bytes.Buffer
	values := []float64{10, 20, 30, 40, 50}
	if err := PlotSeries(&buf, "WPM", values, 20, 4); err != nil {
		t.Fatalf("plot: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// title + 4 rows + trailing blank
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6", len(lines))
	}
	if !strings.HasPrefix(lines[0], "WPM (min=") {
		t.Fatalf("title = %q", lines[0])
	}
	for _, row := range lines[1:5] {
		if !strings.HasPrefix(row, axisPrefix) {
			t.Fatalf("row missing axis prefix: %q", row)
		}
		if w := utf8.RuneCountInString(row); w > len([]rune(axisPrefix))+20 {
			t.Fatalf("row wider than plot width: %q", row)
		}
	}
}

func TestPlotSeriesEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "WPM", nil, 10, 4); err != nil {
		t.Fatalf("plot: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for empty series, got %q", buf.String())
	}
}

func TestPlotSeriesFlat(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "Accuracy", []float64{100, 100, 100}, 10, 3); err != nil {
		t.Fatalf("plot: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("flat series should still render")
	}
}

func TestResampleShrink(t *testing.T) {
	in := []float64{1, 2, 3, 4, 5, 6}
	out := resample(in, 3)
	if len(out) != 3 {
		t.Fatalf("length = %d", len(out))
	}
	want := []float64{1.5, 3.5, 5.5}
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-9 {
			t.Fatalf("out[%d] = %f, want %f", i, out[i], want[i])
		}
	}
}

func TestResampleStretch(t *testing.T) {
	out := resample([]float64{0, 10}, 5)
	if len(out) != 5 {
		t.Fatalf("length = %d", len(out))
	}
	if out[0] != 0 || out[4] != 10 {
		t.Fatalf("endpoints = %f, %f", out[0], out[4])
	}
	if math.Abs(out[2]-5) > 1e-9 {
		t.Fatalf("midpoint = %f, want 5", out[2])
	}
}

func TestPlotWidthFor(t *testing.T) {
	if w := PlotWidthFor(80); w != 80-len([]rune(axisPrefix)) {
		t.Fatalf("width = %d", w)
	}
	if w := PlotWidthFor(5); w != minPlotWidth {
		t.Fatalf("narrow terminal width = %d, want %d", w, minPlotWidth)
	}
}
