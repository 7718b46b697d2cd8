// Package beam models the kinetic state of a relativistic particle beam.
//
// A Beam holds a rest mass, a charge state, and a single canonical total
// energy. The four remaining kinematic quantities (momentum, gamma, beta,
// rigidity) are derived from the canonical energy on read and converted back
// into it on write, so the five quantities stay mutually consistent by
// construction. Natural units are used throughout: mass, energy and momentum
// share the GeV scale, so no explicit speed-of-light factor appears except in
// the rigidity bridge.
package beam

import (
	"errors"
	"fmt"
	"math"
)

// Physical constants.
const (
	// SpeedOfLight is the speed of light in vacuum in m/s.
	SpeedOfLight = 299792458.0

	// rigidityFactor bridges momentum in GeV/c to magnetic rigidity in T*m
	// for a singly charged particle.
	rigidityFactor = SpeedOfLight * 1e-9
)

// Construction errors.
var (
	ErrIncompleteSpecification = errors.New("beam energy must be specified via one of energy, momentum, gamma, beta, rigidity")
	ErrInvalidMass             = errors.New("mass must be a positive finite number")
	ErrInvalidCharge           = errors.New("charge must be non-zero")
)

// ErrDomain is the sentinel all domain violations unwrap to. Use
// errors.Is(err, ErrDomain) to distinguish a physically invalid value from
// other failures.
var ErrDomain = errors.New("value outside physical domain")

// DomainError reports a write attempt with a physically invalid value.
// The beam's canonical state is left untouched when one is returned.
type DomainError struct {
	Quantity Quantity
	Value    float64
	Reason   string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s = %v: %s", e.Quantity, e.Value, e.Reason)
}

func (e *DomainError) Unwrap() error { return ErrDomain }

// Beam is a single particle species' kinetic state. The canonical quantity is
// the total energy; everything else is computed from (mass, charge, energy).
// Beam is not safe for concurrent use; the surrounding application drives it
// from one goroutine.
type Beam struct {
	mass   float64 // rest mass [GeV/c^2]
	charge int     // charge state [e]
	energy float64 // total energy [GeV], the sole canonical quantity
}

// New creates a Beam for a species with the given rest mass (GeV/c^2) and
// charge state (elementary charges). Exactly one of the five kinematic
// quantities must be present in values to seed the canonical energy; when
// more than one is present, the first match in DefinitionPrecedence wins and
// the rest are ignored. Returns ErrIncompleteSpecification if values contains
// none of them.
func New(mass float64, charge int, values map[Quantity]float64) (*Beam, error) {
	if mass <= 0 || math.IsNaN(mass) || math.IsInf(mass, 0) {
		return nil, ErrInvalidMass
	}
	if charge == 0 {
		return nil, ErrInvalidCharge
	}

	b := &Beam{mass: mass, charge: charge}
	for _, q := range DefinitionPrecedence {
		v, ok := values[q]
		if !ok {
			continue
		}
		if err := b.Set(q, v); err != nil {
			return nil, err
		}
		return b, nil
	}
	return nil, ErrIncompleteSpecification
}

// Mass returns the rest mass in GeV/c^2.
func (b *Beam) Mass() float64 { return b.mass }

// Charge returns the charge state in elementary charges.
func (b *Beam) Charge() int { return b.charge }

// Energy returns the total energy in GeV.
func (b *Beam) Energy() float64 { return b.energy }

// SetEnergy sets the total energy in GeV. The total energy of a massive
// particle cannot be below its rest energy.
func (b *Beam) SetEnergy(energy float64) error {
	if energy < b.mass || math.IsNaN(energy) || math.IsInf(energy, 0) {
		return &DomainError{Quantity: Energy, Value: energy, Reason: "energy must be >= rest mass"}
	}
	b.energy = energy
	return nil
}

// Momentum returns the momentum in GeV/c.
func (b *Beam) Momentum() float64 {
	return math.Sqrt(b.energy*b.energy - b.mass*b.mass)
}

// SetMomentum sets the momentum in GeV/c.
func (b *Beam) SetMomentum(momentum float64) error {
	if momentum < 0 || math.IsNaN(momentum) || math.IsInf(momentum, 0) {
		return &DomainError{Quantity: Momentum, Value: momentum, Reason: "momentum must be >= 0"}
	}
	b.energy = math.Sqrt(momentum*momentum + b.mass*b.mass)
	return nil
}

// Gamma returns the relativistic Lorentz factor.
func (b *Beam) Gamma() float64 {
	return b.energy / b.mass
}

// SetGamma sets the Lorentz factor.
func (b *Beam) SetGamma(gamma float64) error {
	if gamma < 1 || math.IsNaN(gamma) || math.IsInf(gamma, 0) {
		return &DomainError{Quantity: Gamma, Value: gamma, Reason: "gamma must be >= 1"}
	}
	b.energy = gamma * b.mass
	return nil
}

// Beta returns the particle velocity as a fraction of the speed of light.
func (b *Beam) Beta() float64 {
	gamma := b.Gamma()
	return math.Sqrt(1 - 1/(gamma*gamma))
}

// SetBeta sets the velocity fraction. Beta must lie in [0, 1); a massive
// particle never reaches the speed of light.
func (b *Beam) SetBeta(beta float64) error {
	if beta < 0 || beta >= 1 || math.IsNaN(beta) {
		return &DomainError{Quantity: Beta, Value: beta, Reason: "beta must be in [0, 1)"}
	}
	b.energy = b.mass / math.Sqrt(1-beta*beta)
	return nil
}

// Rigidity returns the magnetic rigidity in T*m.
func (b *Beam) Rigidity() float64 {
	return b.Momentum() / (math.Abs(float64(b.charge)) * rigidityFactor)
}

// SetRigidity sets the magnetic rigidity in T*m. Only the charge magnitude
// enters the conversion.
func (b *Beam) SetRigidity(rigidity float64) error {
	if rigidity < 0 || math.IsNaN(rigidity) || math.IsInf(rigidity, 0) {
		return &DomainError{Quantity: Rigidity, Value: rigidity, Reason: "rigidity must be >= 0"}
	}
	return b.SetMomentum(rigidity * math.Abs(float64(b.charge)) * rigidityFactor)
}

// Snapshot returns every named value (mass, charge, energy, momentum, gamma,
// beta, rigidity) computed from the canonical energy at the moment of the
// call. The map is freshly allocated; mutating it does not affect the beam.
func (b *Beam) Snapshot() map[string]float64 {
	return map[string]float64{
		"mass":     b.mass,
		"charge":   float64(b.charge),
		"energy":   b.Energy(),
		"momentum": b.Momentum(),
		"gamma":    b.Gamma(),
		"beta":     b.Beta(),
		"rigidity": b.Rigidity(),
	}
}
