package export

import (
	"fmt"
	"html"
	"math"
	"os"
	"strings"

	"github.com/san-kum/projsim/internal/experiment"
	"github.com/san-kum/projsim/internal/flight"
)

const (
	TrajectoryTitle  = "Projectile Motion Trajectory"
	TrajectoryXLabel = "Horizontal Distance (meters)"
	TrajectoryYLabel = "Vertical Distance (meters)"

	OptimalTitle  = "Optimal Angle vs Drag Coefficient"
	OptimalXLabel = "Drag Coefficient"
	OptimalYLabel = "Launch angle (in degrees)"
)

// matplotlib's default cycle
var palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

type Series struct {
	Label  string
	Points []flight.Point
}

// Chart is a line chart with shared axes and an optional legend.
type Chart struct {
	Title   string
	XLabel  string
	YLabel  string
	Series  []Series
	Width   int
	Height  int
	Markers bool
}

type bounds struct {
	minX, maxX, minY, maxY float64
}

func (c *Chart) bounds() bounds {
	b := bounds{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	for _, s := range c.Series {
		for _, p := range s.Points {
			b.minX = math.Min(b.minX, p.X)
			b.maxX = math.Max(b.maxX, p.X)
			b.minY = math.Min(b.minY, p.Y)
			b.maxY = math.Max(b.maxY, p.Y)
		}
	}
	if math.IsInf(b.minX, 1) {
		return bounds{0, 1, 0, 1}
	}

	// Add padding
	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minX -= rangeX * 0.05
	b.maxX += rangeX * 0.05
	b.minY -= rangeY * 0.05
	b.maxY += rangeY * 0.05
	return b
}

// SVG renders the chart. Plot area margins leave room for tick labels,
// axis labels and the title.
func (c *Chart) SVG() string {
	width, height := c.Width, c.Height
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 600
	}

	const left, right, top, bottom = 70.0, 20.0, 40.0, 60.0
	plotW := float64(width) - left - right
	plotH := float64(height) - top - bottom

	b := c.bounds()
	sx := func(x float64) float64 { return left + (x-b.minX)/(b.maxX-b.minX)*plotW }
	sy := func(y float64) float64 { return top + plotH - (y-b.minY)/(b.maxY-b.minY)*plotH }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif" font-size="12">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, width, height, width, height))

	// grid and ticks
	for i := 0; i <= 5; i++ {
		fx := b.minX + (b.maxX-b.minX)*float64(i)/5
		fy := b.minY + (b.maxY-b.minY)*float64(i)/5
		x, y := sx(fx), sy(fy)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#dddddd"/>
`, x, top, x, top+plotH))
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#dddddd"/>
`, left, y, left+plotW, y))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="middle">%.2f</text>
`, x, top+plotH+16, fx))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="end">%.2f</text>
`, left-6, y+4, fy))
	}

	sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#333333"/>
`, left, top, plotW, plotH))

	for i, s := range c.Series {
		if len(s.Points) == 0 {
			continue
		}
		color := palette[i%len(palette)]

		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="`, color))
		for j, p := range s.Points {
			if j == 0 {
				sb.WriteString(fmt.Sprintf("M%.1f,%.1f", sx(p.X), sy(p.Y)))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", sx(p.X), sy(p.Y)))
			}
		}
		sb.WriteString("\"/>\n")

		if c.Markers {
			for _, p := range s.Points {
				sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="2.5" fill="%s"/>
`, sx(p.X), sy(p.Y), color))
			}
		}
	}

	// legend
	legendY := top + 14
	for i, s := range c.Series {
		if s.Label == "" {
			continue
		}
		color := palette[i%len(palette)]
		lx := left + plotW - 140
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>
<text x="%.1f" y="%.1f">%s</text>
`, lx, legendY-4, lx+20, legendY-4, color, lx+26, legendY, html.EscapeString(s.Label)))
		legendY += 16
	}

	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="24" text-anchor="middle" font-size="16">%s</text>
<text x="%.1f" y="%.1f" text-anchor="middle">%s</text>
<text x="16" y="%.1f" text-anchor="middle" transform="rotate(-90 16 %.1f)">%s</text>
`, left+plotW/2, html.EscapeString(c.Title),
		left+plotW/2, float64(height)-16, html.EscapeString(c.XLabel),
		top+plotH/2, top+plotH/2, html.EscapeString(c.YLabel)))

	sb.WriteString("</svg>\n")
	return sb.String()
}

// SweepChart builds a trajectory chart with one line per swept value.
func SweepChart(res *experiment.SweepResult) (*Chart, error) {
	trajs, err := res.Trajectories()
	if err != nil {
		return nil, err
	}
	legend, err := res.Legend()
	if err != nil {
		return nil, err
	}

	c := &Chart{
		Title:  TrajectoryTitle,
		XLabel: TrajectoryXLabel,
		YLabel: TrajectoryYLabel,
		Series: make([]Series, len(trajs)),
	}
	for i := range trajs {
		c.Series[i] = Series{Label: legend[i], Points: trajs[i]}
	}
	return c, nil
}

// OptimalChart plots optimal angle against drag coefficient. Records
// without an optimum are skipped.
func OptimalChart(records []experiment.OptimalAngle) *Chart {
	pts := make([]flight.Point, 0, len(records))
	for _, rec := range records {
		if rec.Found {
			pts = append(pts, flight.Point{X: rec.Drag, Y: rec.BestAngle})
		}
	}
	return &Chart{
		Title:   OptimalTitle,
		XLabel:  OptimalXLabel,
		YLabel:  OptimalYLabel,
		Series:  []Series{{Label: "Optimal Angle (degrees)", Points: pts}},
		Markers: true,
	}
}

func WriteSweepSVG(path string, res *experiment.SweepResult) error {
	c, err := SweepChart(res)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(c.SVG()), 0644)
}

func WriteOptimalSVG(path string, records []experiment.OptimalAngle) error {
	return os.WriteFile(path, []byte(OptimalChart(records).SVG()), 0644)
}
