package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/projsim/internal/experiment"
)

// Viewer is an interactive browser over the trajectories of one sweep.
type Viewer struct {
	res           *experiment.SweepResult
	name          string
	selected      int
	width, height int
}

func NewViewer(name string, res *experiment.SweepResult) (*Viewer, error) {
	if err := res.Check(); err != nil {
		return nil, err
	}
	return &Viewer{res: res, name: name, width: 80, height: 24}, nil
}

// Show runs the viewer until the user quits.
func Show(name string, res *experiment.SweepResult, opts ...tea.ProgramOption) error {
	v, err := NewViewer(name, res)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(v, opts...).Run()
	return err
}

func (v *Viewer) Selected() int { return v.selected }

func (v *Viewer) Init() tea.Cmd { return nil }

func (v *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return v, tea.Quit
		case "right", "l", "down", "j":
			v.selected = (v.selected + 1) % len(v.res.Entries)
		case "left", "h", "up", "k":
			v.selected = (v.selected - 1 + len(v.res.Entries)) % len(v.res.Entries)
		}
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height
	}
	return v, nil
}

func (v *Viewer) canvasSize() (int, int) {
	// leave room for title, axis line, legend, details and help
	w := v.width - 2
	h := v.height - len(v.res.Entries) - 8
	if w < 20 {
		w = 20
	}
	if h < 6 {
		h = 6
	}
	return w, h
}

func (v *Viewer) View() string {
	w, h := v.canvasSize()
	plot, err := RenderSweep(v.res, w, h, v.selected)
	if err != nil {
		return missingStyle.Render(err.Error()) + "\n"
	}

	e := v.res.Entries[v.selected]
	var b strings.Builder
	b.WriteString(mutedStyle.Render(v.name))
	b.WriteString("\n")
	b.WriteString(plot)
	b.WriteString(fmt.Sprintf("%s  range %s  apex %s  flight %s  steps %d\n",
		seriesStyle(v.selected).Render(e.Label),
		valueStyle.Render(fmt.Sprintf("%.3f m", e.Trajectory.Range())),
		valueStyle.Render(fmt.Sprintf("%.3f m", e.Trajectory.Metrics["apex"])),
		valueStyle.Render(fmt.Sprintf("%.3f s", e.Trajectory.Metrics["flight_time"])),
		e.Trajectory.Steps,
	))
	b.WriteString(mutedStyle.Render("←/→ select  q quit"))
	b.WriteString("\n")
	return b.String()
}
