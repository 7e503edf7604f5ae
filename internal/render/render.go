// Package render draws the chart and table as text. Pure functions of
// (rows, viewport window); all state decisions happen upstream.
package render

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"noladash/internal/dashboard/domain"
	"noladash/internal/dashboard/format"
	"noladash/internal/dashboard/viewport"
)

// visible slices rows to the window, clamped to the current length
func visible(rows []domain.ResultRow, win viewport.Window) []domain.ResultRow {
	if len(rows) == 0 {
		return nil
	}
	start, end := win.Visible(len(rows))
	return rows[start : end+1]
}

// Table renders the windowed rows as an aligned two-column table
func Table(rows []domain.ResultRow, win viewport.Window, m domain.Metric, d domain.Dimension) string {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n", d.Label(), m.Label())
	for _, row := range visible(rows, win) {
		fmt.Fprintf(tw, "%s\t%s\n", format.Label(d, row.EntityLabel), format.Value(m, row.MetricValue))
	}
	_ = tw.Flush()
	return b.String()
}

// Chart renders the windowed rows as a horizontal bar chart scaled to the
// window maximum. width is the bar area in cells.
func Chart(rows []domain.ResultRow, win viewport.Window, m domain.Metric, d domain.Dimension, width int) string {
	vis := visible(rows, win)
	if len(vis) == 0 {
		return "(sem dados)\n"
	}
	if width <= 0 {
		width = 40
	}

	maxVal := 0.0
	labelW := 0
	for _, row := range vis {
		if v := row.MetricValue.Float(); row.MetricValue.Valid() && v > maxVal {
			maxVal = v
		}
		if l := len([]rune(format.Label(d, row.EntityLabel))); l > labelW {
			labelW = l
		}
	}

	var b strings.Builder
	for _, row := range vis {
		label := format.Label(d, row.EntityLabel)
		pad := strings.Repeat(" ", labelW-len([]rune(label)))
		bar := 0
		if maxVal > 0 && row.MetricValue.Valid() && row.MetricValue.Float() > 0 {
			bar = int(row.MetricValue.Float() / maxVal * float64(width))
			if bar == 0 {
				bar = 1
			}
		}
		fmt.Fprintf(&b, "%s%s  %s %s\n",
			label, pad, strings.Repeat("█", bar), format.Value(m, row.MetricValue))
	}
	return b.String()
}
