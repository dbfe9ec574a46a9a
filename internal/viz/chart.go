package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/projsim/internal/experiment"
	"github.com/san-kum/projsim/internal/export"
)

// OptimalChart plots the optimal angle of each record against its index
// in the drag sweep. Records without an optimum are left out.
func OptimalChart(records []experiment.OptimalAngle, width, height int) string {
	data := make([]float64, 0, len(records))
	first, last := 0.0, 0.0
	for _, rec := range records {
		if !rec.Found {
			continue
		}
		if len(data) == 0 {
			first = rec.Drag
		}
		last = rec.Drag
		data = append(data, rec.BestAngle)
	}
	if len(data) == 0 {
		return missingStyle.Render("no optimal angle found for any drag coefficient")
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.Caption(fmt.Sprintf("%s (drag %g .. %g)", strings.ToLower(export.OptimalTitle), first, last)),
	)
}

// HeightChart plots altitude against step for each series.
func HeightChart(heights [][]float64, width, height int, caption string) string {
	data := make([][]float64, 0, len(heights))
	for _, h := range heights {
		if len(h) > 0 {
			data = append(data, h)
		}
	}
	if len(data) == 0 {
		return missingStyle.Render("no data to plot")
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// RenderTable formats records the way they are written to CSV, with
// aligned columns.
func RenderTable(records []experiment.OptimalAngle) string {
	var b strings.Builder

	header := fmt.Sprintf("%16s  %23s  %13s", export.TableHeader[0], export.TableHeader[1], export.TableHeader[2])
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	for _, rec := range records {
		if !rec.Found {
			b.WriteString(fmt.Sprintf("%16.1f  %s  %13s\n", rec.Drag, missingStyle.Render(fmt.Sprintf("%23s", "-")), "-"))
			continue
		}
		b.WriteString(fmt.Sprintf("%16.1f  %s  %13.3f\n", rec.Drag, valueStyle.Render(fmt.Sprintf("%23g", rec.BestAngle)), rec.MaxRange))
	}

	return b.String()
}
