package tui

import (
	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/vehicledesk/internal/catalog"
)

const maxChartBars = 8

// categoryChart draws one bar per category, largest first. It returns ""
// when there is no room or nothing to draw.
func categoryChart(buckets []catalog.Bucket, width, height int) string {
	if len(buckets) == 0 || width < 20 || height < 4 {
		return ""
	}
	if len(buckets) > maxChartBars {
		buckets = buckets[:maxChartBars]
	}
	data := make([]barchart.BarData, 0, len(buckets))
	for i, b := range buckets {
		style := lipgloss.NewStyle().Foreground(chartColors[i%len(chartColors)])
		data = append(data, barchart.BarData{
			Label: b.Label,
			Values: []barchart.BarValue{
				{Name: b.Label, Value: float64(b.Count), Style: style},
			},
		})
	}
	bc := barchart.New(width, height)
	bc.PushAll(data)
	bc.Draw()
	return bc.View()
}
