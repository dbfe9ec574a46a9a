package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/projsim/internal/flight"
)

// DefaultSpeeds are the initial speeds in m/s swept when none are given.
var DefaultSpeeds = []float64{10, 20, 30, 40, 50}

// VelocitySweep simulates one trajectory per initial speed at a fixed
// launch angle, 45 degrees unless WithAngle says otherwise.
type VelocitySweep struct {
	drag     float64
	speeds   []float64
	settings Settings
}

func NewVelocitySweep(drag float64, speeds []float64, opts ...Option) *VelocitySweep {
	if len(speeds) == 0 {
		speeds = DefaultSpeeds
	}
	return &VelocitySweep{
		drag:     drag,
		speeds:   append([]float64(nil), speeds...),
		settings: newSettings(opts),
	}
}

func (v *VelocitySweep) Name() string { return "velocities" }

func (v *VelocitySweep) Run(ctx context.Context) (*SweepResult, error) {
	sim := flight.New(v.settings.Integrator())
	result := &SweepResult{
		Name:      v.Name(),
		Parameter: "speed",
		Drag:      v.drag,
		Entries:   make([]Entry, 0, len(v.speeds)),
	}

	for _, speed := range v.speeds {
		p := v.settings.params(v.drag)
		p.Speed = speed

		traj, err := sim.Run(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("speed %s: %w", formatValue(speed), err)
		}

		result.Entries = append(result.Entries, Entry{
			Value:      speed,
			Label:      formatValue(speed) + " m/s",
			Trajectory: traj,
		})
	}

	return result, nil
}
