package integrators

import "github.com/san-kum/projsim/internal/dynamo"

// RK4 is the classic fourth-order Runge-Kutta scheme. It is an optional
// higher-accuracy alternative to Euler; runs made with it do not reproduce
// Euler samples. Buffers are reused between steps, so an instance must not
// be shared across goroutines.
type RK4 struct {
	stage dynamo.State
	sum   dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

// offset writes x + h*k into the stage buffer.
func (r *RK4) offset(x, k dynamo.State, h float64) dynamo.State {
	for i := range x {
		r.stage[i] = x[i] + h*k[i]
	}
	return r.stage
}

// accumulate adds w*k to the weighted slope sum.
func (r *RK4) accumulate(k dynamo.State, w float64) {
	for i := range r.sum {
		r.sum[i] += w * k[i]
	}
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	n := len(x)
	if len(r.stage) != n {
		r.stage = make(dynamo.State, n)
		r.sum = make(dynamo.State, n)
	}
	half := dt * 0.5

	// each slope is folded into sum before the next Derive call, so
	// systems may return a buffer they reuse
	k := dyn.Derive(x, u, t)
	copy(r.sum, k)

	k = dyn.Derive(r.offset(x, k, half), u, t+half)
	r.accumulate(k, 2)

	k = dyn.Derive(r.offset(x, k, half), u, t+half)
	r.accumulate(k, 2)

	k = dyn.Derive(r.offset(x, k, dt), u, t+dt)
	r.accumulate(k, 1)

	result := make(dynamo.State, n)
	dt6 := dt / 6.0
	for i := range x {
		result[i] = x[i] + dt6*r.sum[i]
	}
	return result
}
