// Package experiment runs parameter sweeps over the flight integrator.
//
// Two variants implement [Experiment]: [AngleSweep] varies the launch angle
// and tracks the angle with the greatest range, [VelocitySweep] varies the
// initial speed. Both return a [SweepResult] that keeps entries in sweep
// order and exposes plain point sequences and legend labels for renderers.
package experiment

import (
	"context"
	"errors"
	"strconv"

	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/flight"
	"github.com/san-kum/projsim/internal/integrators"
	"github.com/san-kum/projsim/internal/physics"
)

// ErrNotRun is returned when trajectories or labels are requested from a
// sweep that has not produced any.
var ErrNotRun = errors.New("experiment: sweep has not been run")

type Experiment interface {
	Name() string
	Run(ctx context.Context) (*SweepResult, error)
}

var (
	_ Experiment = (*AngleSweep)(nil)
	_ Experiment = (*VelocitySweep)(nil)
)

type Entry struct {
	Value      float64
	Label      string
	Trajectory *flight.Trajectory
}

type SweepResult struct {
	Name      string
	Parameter string
	Drag      float64
	Entries   []Entry
	// Optimal is set by angle sweeps only.
	Optimal *OptimalAngle
}

// OptimalAngle is the best launch angle found for one drag coefficient.
// Found is false when no candidate reached a range strictly greater than
// zero; BestAngle and MaxRange are then zero.
type OptimalAngle struct {
	Drag      float64
	BestAngle float64
	MaxRange  float64
	Found     bool
}

func (r *SweepResult) Check() error {
	if r == nil || len(r.Entries) == 0 {
		return ErrNotRun
	}
	return nil
}

func (r *SweepResult) Legend() ([]string, error) {
	if err := r.Check(); err != nil {
		return nil, err
	}
	labels := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		labels[i] = e.Label
	}
	return labels, nil
}

func (r *SweepResult) Trajectories() ([][]flight.Point, error) {
	if err := r.Check(); err != nil {
		return nil, err
	}
	out := make([][]flight.Point, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.Trajectory.Points
	}
	return out, nil
}

// Settings holds the parameters a sweep keeps fixed.
type Settings struct {
	Speed      float64
	Angle      float64
	Mass       float64
	Gravity    float64
	Dt         float64
	Integrator func() dynamo.Integrator
}

func DefaultSettings() Settings {
	return Settings{
		Speed:      flight.DefaultSpeed,
		Angle:      flight.DefaultAngle,
		Mass:       physics.DefaultMass,
		Gravity:    physics.DefaultGravity,
		Dt:         flight.DefaultDt,
		Integrator: func() dynamo.Integrator { return integrators.NewEuler() },
	}
}

type Option func(*Settings)

func WithSpeed(v float64) Option     { return func(s *Settings) { s.Speed = v } }
func WithAngle(deg float64) Option   { return func(s *Settings) { s.Angle = deg } }
func WithMass(m float64) Option      { return func(s *Settings) { s.Mass = m } }
func WithGravity(g float64) Option   { return func(s *Settings) { s.Gravity = g } }
func WithTimeStep(dt float64) Option { return func(s *Settings) { s.Dt = dt } }

func WithIntegrator(f func() dynamo.Integrator) Option {
	return func(s *Settings) {
		if f != nil {
			s.Integrator = f
		}
	}
}

func newSettings(opts []Option) Settings {
	s := DefaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s Settings) params(drag float64) flight.Params {
	return flight.Params{
		Speed:   s.Speed,
		Angle:   s.Angle,
		Drag:    drag,
		Dt:      s.Dt,
		Mass:    s.Mass,
		Gravity: s.Gravity,
	}
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
