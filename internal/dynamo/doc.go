// Package dynamo provides the core primitives shared by the projectile
// simulator.
//
// The package defines the interfaces and types used to express an ODE
// system and advance it in time:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [Integrator]: fixed-step numerical integrator interface
//   - [Metric]: scalar observed over a run
//
// # Example
//
//	dyn := physics.NewLinearDrag(10.0, 9.8, 0.2)
//	integ := integrators.NewEuler()
//	x := dynamo.State{0, 0, vx, vy}
//	x = integ.Step(dyn, x, nil, 0, 0.01)
//
// # Thread Safety
//
// Integrators may keep scratch buffers and are NOT safe for concurrent use.
// Construct one per goroutine; [ParallelFor] only partitions work.
package dynamo
