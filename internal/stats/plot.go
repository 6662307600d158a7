// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	defaultPlotHeight   = 6
	minPlotWidth        = 10
	axisPrefix          = " │"
	terminalWidthBackup = 80
)

// Eighth-block bars, lowest to tallest.
var blockLevels = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// PlotSeries renders a block-column chart for a single value series.
// Width and height of zero pick sensible defaults; width adapts to the
// terminal when detectable.
func PlotSeries(w io.Writer, name string, values []float64, width, height int) error {
	if len(values) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	if width < 1 {
		width = 1
	}

	values = resample(values, width)
	minVal, maxVal := seriesMinMax(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		minVal--
		maxVal++
	}

	// Each column holds its bar height in eighths of a row.
	eighths := make([]int, len(values))
	span := float64(height * len(blockLevels))
	for i, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		n := int(math.Round(pos * span))
		if n < 1 {
			n = 1
		}
		if n > int(span) {
			n = int(span)
		}
		eighths[i] = n
	}

	if _, err := fmt.Fprintf(w, "%s (min=%.1f max=%.1f)\n", name, minVal, maxVal); err != nil {
		return err
	}
	for row := 0; row < height; row++ {
		floor := (height - row - 1) * len(blockLevels)
		var b strings.Builder
		b.WriteString(axisPrefix)
		for _, n := range eighths {
			switch {
			case n >= floor+len(blockLevels):
				b.WriteRune(blockLevels[len(blockLevels)-1])
			case n > floor:
				b.WriteRune(blockLevels[n-floor-1])
			default:
				b.WriteByte(' ')
			}
		}
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	plotWidth := totalWidth - len([]rune(axisPrefix))
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}
	return plotWidth
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func seriesMinMax(values []float64) (float64, float64) {
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
	return minVal, maxVal
}

// resample stretches or shrinks values to exactly width points. Shrinking
// averages buckets, stretching interpolates linearly.
func resample(values []float64, width int) []float64 {
	if len(values) == width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	if len(values) > width {
		for i := 0; i < width; i++ {
			start := i * len(values) / width
			end := (i + 1) * len(values) / width
			if end <= start {
				end = start + 1
			}
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
		return out
	}
	if len(values) == 1 || width == 1 {
		for i := range out {
			out[i] = values[0]
		}
		return out
	}
	for i := 0; i < width; i++ {
		pos := float64(i) * float64(len(values)-1) / float64(width-1)
		idx := int(math.Floor(pos))
		if idx >= len(values)-1 {
			out[i] = values[len(values)-1]
			continue
		}
		frac := pos - float64(idx)
		out[i] = values[idx]*(1-frac) + values[idx+1]*frac
	}
	return out
}
