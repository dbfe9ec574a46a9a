package flight

import (
	"math"

	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/physics"
)

const (
	DefaultSpeed = 20.0
	DefaultAngle = 45.0
	DefaultDt    = 0.01
)

// Params fully describes one run. It is passed by value, so a run never
// observes later changes made by the caller.
type Params struct {
	Speed   float64 // m/s
	Angle   float64 // degrees above the horizontal
	Drag    float64 // linear drag coefficient k
	Dt      float64 // seconds
	Mass    float64
	Gravity float64
}

func DefaultParams() Params {
	return Params{
		Speed:   DefaultSpeed,
		Angle:   DefaultAngle,
		Dt:      DefaultDt,
		Mass:    physics.DefaultMass,
		Gravity: physics.DefaultGravity,
	}
}

func (p Params) Validate() error {
	if !(p.Dt > 0) || math.IsInf(p.Dt, 1) {
		return dynamo.Invalid("time step must be positive and finite, got %g", p.Dt)
	}
	if !(p.Speed > 0) || math.IsInf(p.Speed, 1) {
		return dynamo.Invalid("initial speed must be positive and finite, got %g", p.Speed)
	}
	if math.IsNaN(p.Angle) || math.IsInf(p.Angle, 0) {
		return dynamo.Invalid("launch angle must be finite, got %g", p.Angle)
	}
	if math.IsInf(p.Drag, 1) || math.IsInf(p.Mass, 1) || math.IsInf(p.Gravity, 1) {
		return dynamo.Invalid("drag, mass and gravity must be finite")
	}
	return physics.NewLinearDrag(p.Mass, p.Gravity, p.Drag).Validate()
}

// Radians returns the launch angle converted with π/180.
func (p Params) Radians() float64 {
	return p.Angle * math.Pi / 180
}

type Point struct {
	X, Y float64
}

type Trajectory struct {
	Params  Params
	Points  []Point
	Steps   int
	Metrics map[string]float64
}

// Final returns the last recorded sample, the first one below ground.
func (t *Trajectory) Final() Point {
	if t == nil || len(t.Points) == 0 {
		return Point{}
	}
	return t.Points[len(t.Points)-1]
}

// Range is the x coordinate of the first sample with y < 0. It overshoots
// the true ground crossing by at most one step of horizontal travel.
func (t *Trajectory) Range() float64 {
	return t.Final().X
}

func (t *Trajectory) XS() []float64 {
	xs := make([]float64, len(t.Points))
	for i, p := range t.Points {
		xs[i] = p.X
	}
	return xs
}

func (t *Trajectory) YS() []float64 {
	ys := make([]float64, len(t.Points))
	for i, p := range t.Points {
		ys[i] = p.Y
	}
	return ys
}
