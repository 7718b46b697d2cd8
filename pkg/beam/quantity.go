package beam

import (
	"errors"
	"fmt"
)

// Quantity identifies one of the five interchangeable ways to specify the
// beam energy.
type Quantity string

// The five kinematic quantities.
const (
	Energy   Quantity = "energy"
	Momentum Quantity = "momentum"
	Gamma    Quantity = "gamma"
	Beta     Quantity = "beta"
	Rigidity Quantity = "rigidity"
)

// DefinitionPrecedence is the order in which New scans provided values for
// the one that seeds the canonical energy.
var DefinitionPrecedence = []Quantity{Energy, Momentum, Gamma, Beta, Rigidity}

// Units maps each named value to its display unit.
var Units = map[string]string{
	"mass":     "GeV/c^2",
	"charge":   "e",
	"energy":   "GeV",
	"momentum": "GeV/c",
	"gamma":    "1",
	"beta":     "1",
	"rigidity": "T*m",
}

// ErrUnknownQuantity is returned by Get and Set for a Quantity value outside
// the five defined constants.
var ErrUnknownQuantity = errors.New("unknown quantity")

// accessor pairs the getter and setter for one quantity.
type accessor struct {
	get func(*Beam) float64
	set func(*Beam, float64) error
}

// accessors dispatches Get and Set by quantity kind. Each getter/setter pair
// is an exact mathematical inverse of the other for a fixed mass and charge.
var accessors = map[Quantity]accessor{
	Energy:   {(*Beam).Energy, (*Beam).SetEnergy},
	Momentum: {(*Beam).Momentum, (*Beam).SetMomentum},
	Gamma:    {(*Beam).Gamma, (*Beam).SetGamma},
	Beta:     {(*Beam).Beta, (*Beam).SetBeta},
	Rigidity: {(*Beam).Rigidity, (*Beam).SetRigidity},
}

// Valid reports whether q is one of the five defined quantities.
func (q Quantity) Valid() bool {
	_, ok := accessors[q]
	return ok
}

// Get returns the current value of the named quantity. Reading never mutates
// the beam.
func (b *Beam) Get(q Quantity) (float64, error) {
	a, ok := accessors[q]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownQuantity, string(q))
	}
	return a.get(b), nil
}

// Set writes the named quantity, recomputing the canonical energy. On a
// domain violation the canonical state is left untouched.
func (b *Beam) Set(q Quantity, value float64) error {
	a, ok := accessors[q]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuantity, string(q))
	}
	return a.set(b, value)
}
