package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/projsim/internal/flight"
)

// DefaultAngles are the launch angles swept when none are given.
var DefaultAngles = []float64{15, 30, 45, 60, 75}

// AngleSweep simulates one trajectory per launch angle at a fixed speed and
// drag coefficient.
type AngleSweep struct {
	drag     float64
	angles   []float64
	settings Settings
}

// NewAngleSweep copies angles; nil or empty selects DefaultAngles. Angles
// may be in any order and may repeat.
func NewAngleSweep(drag float64, angles []float64, opts ...Option) *AngleSweep {
	if len(angles) == 0 {
		angles = DefaultAngles
	}
	return &AngleSweep{
		drag:     drag,
		angles:   append([]float64(nil), angles...),
		settings: newSettings(opts),
	}
}

func (a *AngleSweep) Name() string { return "angles" }

func (a *AngleSweep) Run(ctx context.Context) (*SweepResult, error) {
	sim := flight.New(a.settings.Integrator())
	result := &SweepResult{
		Name:      a.Name(),
		Parameter: "angle",
		Drag:      a.drag,
		Entries:   make([]Entry, 0, len(a.angles)),
	}

	best := &OptimalAngle{Drag: a.drag}
	maxX := 0.0

	for _, angle := range a.angles {
		p := a.settings.params(a.drag)
		p.Angle = angle

		traj, err := sim.Run(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("angle %s: %w", formatValue(angle), err)
		}

		result.Entries = append(result.Entries, Entry{
			Value:      angle,
			Label:      formatValue(angle) + " degrees",
			Trajectory: traj,
		})

		if maxX < traj.Range() {
			maxX = traj.Range()
			best.BestAngle = angle
			best.MaxRange = maxX
			best.Found = true
		}
	}

	result.Optimal = best
	return result, nil
}
