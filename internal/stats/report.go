// Package stats contains statistics calculations and reporting.
package stats

import (
	"context"
	"fmt"
	"io"

	"github.com/mkurev/typedrill/internal/model"
	"github.com/mkurev/typedrill/internal/store"
)

// Report contains precomputed data for stats rendering. Results are
// ordered oldest first so curves read left to right.
type Report struct {
	Results []model.ResultRecord
	Summary Summary
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	results, err := st.ListResults(ctx, cfg, false)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Results: results,
		Summary: Summarize(results),
	}, nil
}

// RenderReport prints the summary, history table, and learning curves.
func RenderReport(w io.Writer, r Report, curveWindow int, plain bool) error {
	if err := RenderSummary(w, r.Summary); err != nil {
		return err
	}
	if len(r.Results) == 0 {
		return nil
	}
	if err := RenderHistory(w, r.Results); err != nil {
		return err
	}
	if plain || len(r.Results) < 2 {
		return nil
	}
	return RenderCurves(w, r.Results, curveWindow, 0, 0)
}

// RenderHistory prints one row per result, oldest first.
func RenderHistory(w io.Writer, results []model.ResultRecord) error {
	headers := []string{"When", "Mode", "Reference", "WPM", "Accuracy", "Errors", "Duration"}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		ref := r.ReferenceID
		if ref == "" {
			ref = "-"
		}
		rows = append(rows, []string{
			r.Timestamp.Format("2006-01-02 15:04"),
			string(r.Mode),
			ref,
			fmt.Sprintf("%d", r.WPM),
			fmt.Sprintf("%.0f%%", r.Accuracy),
			fmt.Sprintf("%d", r.Errors),
			formatDuration(r.DurationSeconds),
		})
	}
	rightAlign := map[int]bool{3: true, 4: true, 5: true, 6: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderCurves prints smoothed WPM and accuracy progressions.
func RenderCurves(w io.Writer, results []model.ResultRecord, window, width, height int) error {
	if len(results) == 0 {
		return nil
	}
	wpms := make([]float64, len(results))
	accs := make([]float64, len(results))
	for i, r := range results {
		wpms[i] = float64(r.WPM)
		accs[i] = r.Accuracy
	}
	wpms = MovingAverage(wpms, window)
	accs = MovingAverage(accs, window)

	if err := PlotSeries(w, "WPM", wpms, width, height); err != nil {
		return err
	}
	return PlotSeries(w, "Accuracy", accs, width, height)
}
