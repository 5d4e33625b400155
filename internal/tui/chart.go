package tui

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/sadopc/punchclock/internal/record"
)

const maxChartBars = 14

// buildChart draws the most recent closed records, oldest on the left, in
// hours. Bars over the budget use the warning color.
func buildChart(th theme, records []record.Record, budgetMs int64, width, height int) (barchart.Model, bool) {
	chartWidth := max(width-8, 20)
	chartHeight := max(height, 6)

	limit := min(maxChartBars, chartWidth/4)
	var closed []record.Record
	for _, r := range records {
		if len(closed) == limit {
			break
		}
		if _, ok := r.TotalDuration.Get(); ok {
			closed = append(closed, r)
		}
	}
	if len(closed) == 0 {
		return barchart.Model{}, false
	}

	bars := make([]barchart.BarData, 0, len(closed))
	for i := len(closed) - 1; i >= 0; i-- {
		r := closed[i]
		d, _ := r.TotalDuration.Get()
		style := th.underBar
		if d > budgetMs {
			style = th.overBar
		}
		bars = append(bars, barchart.BarData{
			Label: fmt.Sprintf("#%d", r.ID),
			Values: []barchart.BarValue{{
				Name:  fmt.Sprintf("#%d", r.ID),
				Value: max(float64(d), 0) / 3_600_000,
				Style: style,
			}},
		})
	}

	chart := barchart.New(chartWidth, chartHeight)
	chart.PushAll(bars)
	chart.Draw()
	return chart, true
}
