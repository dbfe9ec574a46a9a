package metrics

import (
	"math"

	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/physics"
)

// Apex tracks the highest altitude reached.
type Apex struct {
	name    string
	max     float64
	samples int
}

func NewApex() *Apex {
	return &Apex{name: "apex"}
}

func (a *Apex) Name() string { return a.name }

func (a *Apex) Observe(x dynamo.State, u dynamo.Control, t float64) {
	if len(x) <= physics.Y {
		return
	}
	if a.samples == 0 {
		a.max = x[physics.Y]
	} else {
		a.max = math.Max(a.max, x[physics.Y])
	}
	a.samples++
}

func (a *Apex) Value() float64 { return a.max }

func (a *Apex) Reset() {
	a.max = 0
	a.samples = 0
}

// FlightTime is the time of the last observed state.
type FlightTime struct {
	name string
	last float64
}

func NewFlightTime() *FlightTime {
	return &FlightTime{name: "flight_time"}
}

func (f *FlightTime) Name() string { return f.name }

func (f *FlightTime) Observe(x dynamo.State, u dynamo.Control, t float64) {
	f.last = t
}

func (f *FlightTime) Value() float64 { return f.last }

func (f *FlightTime) Reset() { f.last = 0 }

// Default returns the metrics recorded for every projectile run.
func Default(dyn dynamo.System) []dynamo.Metric {
	return []dynamo.Metric{
		NewApex(),
		NewFlightTime(),
		NewEnergyLoss(dyn),
	}
}
