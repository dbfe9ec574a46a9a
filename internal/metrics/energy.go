package metrics

import "github.com/san-kum/projsim/internal/dynamo"

// EnergyLoss reports the fraction of the initial mechanical energy that is
// gone by the last observed state. Systems without an energy function
// report 0.
type EnergyLoss struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	samples       int
	dyn           dynamo.System
}

func NewEnergyLoss(dyn dynamo.System) *EnergyLoss {
	return &EnergyLoss{
		name: "energy_loss",
		dyn:  dyn,
	}
}

func (e *EnergyLoss) Name() string { return e.name }

func (e *EnergyLoss) Observe(x dynamo.State, u dynamo.Control, t float64) {
	ec, ok := e.dyn.(dynamo.Hamiltonian)
	if !ok {
		return
	}

	energy := ec.Energy(x)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.currentEnergy = energy
	e.samples++
}

func (e *EnergyLoss) Value() float64 {
	if e.samples == 0 || e.initialEnergy == 0 {
		return 0
	}
	return (e.initialEnergy - e.currentEnergy) / e.initialEnergy
}

func (e *EnergyLoss) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.samples = 0
}
