package render

import (
	"fmt"

	"github.com/matzehuels/chartkit/pkg/dataset"
	"github.com/matzehuels/chartkit/pkg/surface"
)

// DefaultTipLabels are the bubble tooltip row labels for X, Y and Size.
var DefaultTipLabels = []string{"Tax Revenue", "Health Expenditure", "Population"}

// BubbleTooltip summarizes one bubble record: money values with thousands
// separators and the size field in millions with two decimals.
func BubbleTooltip(r dataset.Record, labels []string) surface.TooltipContent {
	if len(labels) < 3 {
		labels = DefaultTipLabels
	}
	return surface.TooltipContent{
		Title: r.Category,
		Rows: []surface.TooltipRow{
			{Label: labels[0], Value: "$" + Grouped(r.X)},
			{Label: labels[1], Value: "$" + Grouped(r.Y)},
			{Label: labels[2], Value: fmt.Sprintf("%.2f million", r.Size/1e6)},
		},
	}
}

// SeriesRow formats one line-chart tooltip row.
func SeriesRow(key string, value float64, color string) surface.TooltipRow {
	return surface.TooltipRow{Label: key, Value: fmt.Sprintf("%.2f%%", value), Color: color}
}
