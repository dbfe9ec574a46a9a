// Package optim finds the range-maximizing launch angle across a range of
// drag coefficients by repeating angle sweeps.
package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/experiment"
)

const (
	DefaultMaxDrag  = 10.0
	DefaultDragStep = 0.2

	// MaxValues caps the length of generated angle and drag sequences.
	MaxValues = 1_000_000
)

type Config struct {
	MaxDrag  float64
	DragStep float64
	Angles   []float64
	// Workers > 1 runs angle sweeps concurrently. Output order is unaffected.
	Workers int
	Options []experiment.Option
}

func DefaultConfig() Config {
	return Config{
		MaxDrag:  DefaultMaxDrag,
		DragStep: DefaultDragStep,
		Angles:   AngleRange(1, 90, 1),
		Workers:  1,
	}
}

// count returns floor(span/step)+1 as a float so oversized sequences can
// be rejected before conversion to int.
func count(span, step float64) float64 {
	return math.Floor(span/step+1e-9) + 1
}

// AngleRange returns from, from+step, ... up to and including to. It
// returns nil for an empty range or one longer than MaxValues.
func AngleRange(from, to, step float64) []float64 {
	if !(step > 0) || !(to >= from) {
		return nil
	}
	fn := count(to-from, step)
	if !(fn <= MaxValues) {
		return nil
	}
	n := int(fn)
	angles := make([]float64, n)
	for i := range angles {
		angles[i] = from + float64(i)*step
	}
	return angles
}

// DragValues returns i*step for i = 0..floor(max/step), so max itself is
// included when it is a multiple of step.
func DragValues(max, step float64) ([]float64, error) {
	if !(step > 0) || math.IsInf(step, 1) {
		return nil, dynamo.Invalid("drag step must be positive, got %g", step)
	}
	if !(max >= 0) || math.IsInf(max, 1) {
		return nil, dynamo.Invalid("max drag must be non-negative, got %g", max)
	}
	fn := count(max, step)
	if !(fn <= MaxValues) {
		return nil, dynamo.Invalid("too many drag values: %g", fn)
	}
	n := int(fn)
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(i) * step
	}
	return values, nil
}

// OptimalAngles runs one angle sweep per drag coefficient and returns one
// record per coefficient in ascending drag order.
func OptimalAngles(ctx context.Context, cfg Config) ([]experiment.OptimalAngle, error) {
	drags, err := DragValues(cfg.MaxDrag, cfg.DragStep)
	if err != nil {
		return nil, err
	}
	angles := cfg.Angles
	if len(angles) == 0 {
		angles = AngleRange(1, 90, 1)
	}

	records := make([]experiment.OptimalAngle, len(drags))
	errs := make([]error, len(drags))

	dynamo.ParallelFor(len(drags), cfg.Workers, 1, func(start, end int) {
		for i := start; i < end; i++ {
			res, err := experiment.NewAngleSweep(drags[i], angles, cfg.Options...).Run(ctx)
			if err != nil {
				errs[i] = fmt.Errorf("drag %g: %w", drags[i], err)
				return
			}
			records[i] = *res.Optimal
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return records, nil
}
