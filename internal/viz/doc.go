// Package viz renders sweep results in the terminal.
//
//   - [Canvas]: Braille-based pixel canvas for high-fidelity line plots
//   - [RenderSweep]: every trajectory of a sweep on shared axes
//   - [OptimalChart]: optimal angle against drag coefficient via asciigraph
//   - [Viewer]: Bubble Tea program stepping through the trajectories
//
// # Key Bindings
//
//	←/h, →/l - Select previous/next trajectory
//	q        - Quit
package viz
