package flight

import (
	"context"
	"math"

	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/integrators"
	"github.com/san-kum/projsim/internal/metrics"
	"github.com/san-kum/projsim/internal/physics"
)

const (
	cancelCheckInterval = 1024
	maxPrealloc         = 1 << 16
)

// MetricFactory builds the metrics observed during a run of dyn.
type MetricFactory func(dyn dynamo.System) []dynamo.Metric

type Simulator struct {
	integrator dynamo.Integrator
	metrics    MetricFactory
	observers  []dynamo.Observer
}

func New(integrator dynamo.Integrator) *Simulator {
	return &Simulator{
		integrator: integrator,
		metrics:    metrics.Default,
		observers:  make([]dynamo.Observer, 0),
	}
}

func (s *Simulator) SetMetrics(f MetricFactory)    { s.metrics = f }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// Simulate runs p with forward Euler and the default metrics.
func Simulate(p Params) (*Trajectory, error) {
	return New(integrators.NewEuler()).Run(context.Background(), p)
}

func (s *Simulator) Run(ctx context.Context, p Params) (*Trajectory, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	dyn := physics.NewLinearDrag(p.Mass, p.Gravity, p.Drag)
	theta := p.Radians()
	x := dynamo.State{0, 0, p.Speed * math.Cos(theta), p.Speed * math.Sin(theta)}

	traj := &Trajectory{
		Params:  p,
		Points:  make([]Point, 0, estimateSamples(p)),
		Metrics: make(map[string]float64),
	}

	var ms []dynamo.Metric
	if s.metrics != nil {
		ms = s.metrics(dyn)
	}
	for _, m := range ms {
		m.Reset()
	}

	t := 0.0
	s.observe(ms, x, t)
	traj.Points = append(traj.Points, Point{X: x[physics.X], Y: x[physics.Y]})

	for x[physics.Y] >= 0 {
		if traj.Steps%cancelCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		x = s.integrator.Step(dyn, x, nil, t, p.Dt)
		t += p.Dt
		traj.Steps++

		if !x.IsValid() {
			return nil, &dynamo.SimulationError{
				Step:    traj.Steps,
				Time:    t,
				State:   x,
				Wrapped: dynamo.ErrInvalidState,
			}
		}

		traj.Points = append(traj.Points, Point{X: x[physics.X], Y: x[physics.Y]})
		s.observe(ms, x, t)
	}

	for _, m := range ms {
		traj.Metrics[m.Name()] = m.Value()
	}

	return traj, nil
}

func (s *Simulator) observe(ms []dynamo.Metric, x dynamo.State, t float64) {
	for _, m := range ms {
		m.Observe(x, nil, t)
	}
	for _, o := range s.observers {
		o.OnStep(x, nil, t)
	}
}

// estimateSamples sizes the point buffer from the drag-free flight time.
func estimateSamples(p Params) int {
	vy := p.Speed * math.Sin(p.Radians())
	if vy <= 0 {
		return 2
	}
	n := 2*vy/p.Gravity/p.Dt + 2
	if n > maxPrealloc {
		return maxPrealloc
	}
	return int(n)
}
