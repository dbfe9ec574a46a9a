// Package flight integrates a single projectile from launch until it
// returns to the ground plane.
//
// A run starts at the origin with velocity (v0*cos(θ), v0*sin(θ)) and steps
// the [physics.LinearDrag] system with a fixed time step. Every step is
// recorded, including the first one that ends below ground, so the last
// point of a [Trajectory] always has y < 0. The crossing is not
// interpolated.
//
//	traj, err := flight.Simulate(flight.Params{
//	    Speed: 20, Angle: 45, Dt: 0.01, Mass: 10, Gravity: 9.8,
//	})
//	fmt.Println(traj.Range())
package flight
