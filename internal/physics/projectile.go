package physics

import "github.com/san-kum/projsim/internal/dynamo"

const (
	DefaultMass    = 10.0
	DefaultGravity = 9.8
)

// State indices for the projectile.
const (
	X = iota
	Y
	VX
	VY
)

type LinearDrag struct {
	Mass    float64
	Gravity float64
	Drag    float64
}

func NewLinearDrag(mass, gravity, drag float64) *LinearDrag {
	return &LinearDrag{
		Mass:    mass,
		Gravity: gravity,
		Drag:    drag,
	}
}

func (p *LinearDrag) StateDim() int {
	return 4
}

func (p *LinearDrag) ControlDim() int {
	return 0
}

func (p *LinearDrag) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	vx := x[VX]
	vy := x[VY]

	ax := -((p.Drag * vx) / p.Mass)
	ay := -((p.Drag*vy)/p.Mass + p.Gravity)

	return dynamo.State{vx, vy, ax, ay}
}

func (p *LinearDrag) Energy(x dynamo.State) float64 {
	// KE = 0.5 * m * |v|^2
	// PE = m * g * y
	v2 := x[VX]*x[VX] + x[VY]*x[VY]
	return 0.5*p.Mass*v2 + p.Mass*p.Gravity*x[Y]
}

func (p *LinearDrag) Validate() error {
	if !(p.Mass > 0) {
		return dynamo.Invalid("mass must be positive, got %g", p.Mass)
	}
	if !(p.Gravity > 0) {
		return dynamo.Invalid("gravity must be positive, got %g", p.Gravity)
	}
	if !(p.Drag >= 0) {
		return dynamo.Invalid("drag coefficient must be non-negative, got %g", p.Drag)
	}
	return nil
}
