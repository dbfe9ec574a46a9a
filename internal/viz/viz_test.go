package viz

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/projsim/internal/experiment"
)

func sweep(t *testing.T) *experiment.SweepResult {
	t.Helper()
	res, err := experiment.NewAngleSweep(0, []float64{30, 45, 60}).Run(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	return res
}

func TestCanvasSetAndBounds(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)

	if c.Grid[0][0] != blank|0x1 {
		t.Errorf("cell 0 = %U, want %U", c.Grid[0][0], blank|0x1)
	}
	if c.Grid[0][1] != blank|0x80 {
		t.Errorf("cell 1 = %U, want %U", c.Grid[0][1], blank|0x80)
	}

	c.Clear()
	if c.Grid[0][0] != blank || c.Grid[0][1] != blank {
		t.Error("Clear did not reset cells")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0)

	for col, r := range c.Grid[0] {
		if r != blank|0x1|0x8 {
			t.Errorf("col %d = %U, want top row set", col, r)
		}
	}
	if got := strings.Count(c.String(), "\n"); got != 1 {
		t.Errorf("expected 1 line, got %d", got)
	}
}

func TestCanvasPolylineCorners(t *testing.T) {
	c := NewCanvas(10, 5)
	vp := Viewport{MinX: 0, MaxX: 1, MinY: 0, MaxY: 1}
	c.Polyline(vp, []float64{0, 1}, []float64{0, 1})

	// bottom-left and top-right sub-pixels
	if c.Grid[4][0]&0x40 == 0 {
		t.Error("expected bottom-left pixel set")
	}
	if c.Grid[0][9]&0x8 == 0 {
		t.Error("expected top-right pixel set")
	}
}

func TestRenderSweep(t *testing.T) {
	out, err := RenderSweep(sweep(t), 60, 15, NoHighlight)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	for _, want := range []string{"Projectile Motion Trajectory", "30 degrees", "45 degrees", "60 degrees"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if lines := strings.Count(out, "\n"); lines != 1+15+1+3 {
		t.Errorf("expected %d lines, got %d", 1+15+1+3, lines)
	}
}

func TestRenderSweepBeforeRun(t *testing.T) {
	if _, err := RenderSweep(&experiment.SweepResult{}, 60, 15, NoHighlight); !errors.Is(err, experiment.ErrNotRun) {
		t.Errorf("expected ErrNotRun, got %v", err)
	}
}

func TestOptimalChart(t *testing.T) {
	records := []experiment.OptimalAngle{
		{Drag: 0, BestAngle: 45, Found: true},
		{Drag: 1, BestAngle: 43, Found: true},
		{Drag: 2, BestAngle: 41, Found: true},
	}

	out := OptimalChart(records, 40, 8)
	if !strings.Contains(out, "drag 0 .. 2") {
		t.Errorf("caption missing from chart:\n%s", out)
	}

	if out := OptimalChart([]experiment.OptimalAngle{{Drag: 3}}, 40, 8); !strings.Contains(out, "no optimal angle") {
		t.Errorf("expected empty-chart message, got %q", out)
	}
}

func TestHeightChart(t *testing.T) {
	out := HeightChart([][]float64{{0, 1, 2, 1, 0}, {0, 2, 0}, nil}, 30, 5, "heights")
	if !strings.Contains(out, "heights") {
		t.Errorf("caption missing:\n%s", out)
	}
	if out := HeightChart(nil, 30, 5, "x"); !strings.Contains(out, "no data") {
		t.Errorf("expected no-data message, got %q", out)
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable([]experiment.OptimalAngle{
		{Drag: 0, BestAngle: 45, MaxRange: 41.012, Found: true},
		{Drag: 0.2},
	})

	if !strings.Contains(out, "Drag Coefficient") || !strings.Contains(out, "41.012") {
		t.Errorf("unexpected table:\n%s", out)
	}
	if strings.Count(out, "\n") < 3 {
		t.Errorf("expected header and two rows:\n%s", out)
	}
}

func TestViewerNavigation(t *testing.T) {
	v, err := NewViewer("angles", sweep(t))
	if err != nil {
		t.Fatalf("new viewer failed: %v", err)
	}

	v.Update(tea.KeyMsg{Type: tea.KeyRight})
	v.Update(tea.KeyMsg{Type: tea.KeyRight})
	if v.Selected() != 2 {
		t.Errorf("expected selection 2, got %d", v.Selected())
	}

	v.Update(tea.KeyMsg{Type: tea.KeyRight})
	if v.Selected() != 0 {
		t.Errorf("expected selection to wrap to 0, got %d", v.Selected())
	}

	v.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if v.Selected() != 2 {
		t.Errorf("expected selection to wrap to 2, got %d", v.Selected())
	}

	v.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if view := v.View(); !strings.Contains(view, "60 degrees") || !strings.Contains(view, "range") {
		t.Errorf("view missing selection details:\n%s", view)
	}

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestNewViewerBeforeRun(t *testing.T) {
	if _, err := NewViewer("none", nil); !errors.Is(err, experiment.ErrNotRun) {
		t.Errorf("expected ErrNotRun, got %v", err)
	}
}
