package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/integrators"
)

// Factory builds an experiment for a drag coefficient. values overrides the
// swept values when non-empty.
type Factory func(drag float64, values []float64, opts ...Option) Experiment

type Registry struct {
	experiments map[string]Factory
	integrators map[string]func() dynamo.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		experiments: make(map[string]Factory),
		integrators: make(map[string]func() dynamo.Integrator),
	}

	r.experiments["angles"] = func(drag float64, values []float64, opts ...Option) Experiment {
		return NewAngleSweep(drag, values, opts...)
	}
	r.experiments["velocities"] = func(drag float64, values []float64, opts ...Option) Experiment {
		return NewVelocitySweep(drag, values, opts...)
	}

	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() dynamo.Integrator { return integrators.NewRK4() }

	return r
}

func (r *Registry) GetExperiment(name string) (Factory, error) {
	fn, ok := r.experiments[name]
	if !ok {
		return nil, fmt.Errorf("unknown experiment: %s", name)
	}
	return fn, nil
}

// GetIntegrator returns a constructor, since integrators with scratch
// buffers cannot be shared between concurrent sweeps.
func (r *Registry) GetIntegrator(name string) (func() dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn, nil
}

func (r *Registry) ListExperiments() []string {
	return sortedKeys(r.experiments)
}

func (r *Registry) ListIntegrators() []string {
	return sortedKeys(r.integrators)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
