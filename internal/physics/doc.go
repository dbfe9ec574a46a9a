// Package physics provides the projectile model for simulation.
//
// [LinearDrag] implements the [dynamo.System] interface over the state
// [x, y, vx, vy]:
//
//	dx/dt  = vx
//	dy/dt  = vy
//	dvx/dt = -k*vx/m
//	dvy/dt = -(k*vy/m + g)
//
// It also implements [dynamo.Hamiltonian] so runs can report how much
// mechanical energy the drag force removed.
package physics
