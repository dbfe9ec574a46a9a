package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/projsim/internal/experiment"
	"github.com/san-kum/projsim/internal/export"
	"github.com/san-kum/projsim/internal/flight"
)

// NoHighlight renders every trajectory in its own color.
const NoHighlight = -1

func split(pts []flight.Point) (xs, ys []float64) {
	xs = make([]float64, len(pts))
	ys = make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys
}

func viewportFor(trajs [][]flight.Point) Viewport {
	v := Viewport{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	for _, pts := range trajs {
		for _, p := range pts {
			v.MinX = math.Min(v.MinX, p.X)
			v.MaxX = math.Max(v.MaxX, p.X)
			v.MinY = math.Min(v.MinY, p.Y)
			v.MaxY = math.Max(v.MaxY, p.Y)
		}
	}
	if math.IsInf(v.MinX, 1) {
		return Viewport{0, 1, 0, 1}
	}
	return v
}

// RenderSweep draws all trajectories of res on one Braille canvas of
// width x height cells, followed by the axis extents and a legend. When
// highlight is a valid index the other trajectories are dimmed.
func RenderSweep(res *experiment.SweepResult, width, height, highlight int) (string, error) {
	trajs, err := res.Trajectories()
	if err != nil {
		return "", err
	}
	legend, err := res.Legend()
	if err != nil {
		return "", err
	}
	if width < 1 || height < 1 {
		return "", fmt.Errorf("canvas size must be positive, got %dx%d", width, height)
	}
	if highlight >= len(trajs) {
		highlight = NoHighlight
	}

	vp := viewportFor(trajs)
	canvases := make([]*Canvas, len(trajs))
	for i, pts := range trajs {
		canvases[i] = NewCanvas(width, height)
		xs, ys := split(pts)
		canvases[i].Polyline(vp, xs, ys)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(export.TrajectoryTitle))
	b.WriteString("\n")

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			r := rune(blank)
			owner := -1
			for i, c := range canvases {
				if cell := c.Grid[row][col]; cell != blank {
					r |= cell
					owner = i
				}
			}
			if highlight >= 0 && canvases[highlight].Grid[row][col] != blank {
				owner = highlight
			}

			switch {
			case owner < 0:
				b.WriteRune(r)
			case highlight >= 0 && owner != highlight:
				b.WriteString(mutedStyle.Render(string(r)))
			default:
				b.WriteString(seriesStyle(owner).Render(string(r)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(mutedStyle.Render(fmt.Sprintf("x: %.2f .. %.2f m   y: %.2f .. %.2f m", vp.MinX, vp.MaxX, vp.MinY, vp.MaxY)))
	b.WriteString("\n")

	for i, label := range legend {
		marker := "──"
		if i == highlight {
			marker = "━━"
		}
		b.WriteString(seriesStyle(i).Render(marker))
		b.WriteString(" " + label + "\n")
	}

	return b.String(), nil
}
