// Package linked keeps a set of numeric display fields mutually consistent
// as any one of them is edited. Each field shows one of the five beam
// quantities; an edit writes through to the beam engine and redistributes the
// recomputed values into the sibling fields. A reentrancy guard makes the
// sibling writes inert: when a sibling's own change handler fires back into
// Edit, the nested call is skipped.
//
// Display conventions live here, not in the engine: the energy field shows
// kinetic energy per nucleon and the momentum field momentum per nucleon,
// matching how beam energies are quoted for ion species.
package linked

import (
	"errors"
	"fmt"
	"math"

	"github.com/ionbeam-tools/beamcalc/pkg/beam"
	"github.com/ionbeam-tools/beamcalc/pkg/guard"
)

// ErrInvalidInput rejects raw field values outside the non-negative floats.
var ErrInvalidInput = errors.New("field value must be a non-negative number")

// perNucleon marks the quantities displayed per nucleon.
var perNucleon = map[beam.Quantity]bool{
	beam.Energy:   true,
	beam.Momentum: true,
}

// Fields owns a beam and the display values of its five linked quantity
// fields. Not safe for concurrent use.
type Fields struct {
	beam     *beam.Beam
	nucleons int
	values   map[beam.Quantity]float64
	guard    guard.Guard

	// OnChange, when set, is called for every sibling field write during
	// redistribution, mirroring a display toolkit's change notification.
	// Callbacks that re-enter Edit are skipped by the guard.
	OnChange func(q beam.Quantity, value float64)
}

// New creates the linked field set for an existing beam. nucleons scales the
// per-nucleon display quantities and must be at least 1.
func New(b *beam.Beam, nucleons int) (*Fields, error) {
	if nucleons < 1 {
		return nil, fmt.Errorf("nucleon count must be >= 1, got %d", nucleons)
	}
	f := &Fields{
		beam:     b,
		nucleons: nucleons,
		values:   make(map[beam.Quantity]float64, len(beam.DefinitionPrecedence)),
	}
	f.recompute(nil)
	return f, nil
}

// Beam returns the underlying beam state.
func (f *Fields) Beam() *beam.Beam { return f.beam }

// Nucleons returns the nucleon count used for per-nucleon display scaling.
func (f *Fields) Nucleons() int { return f.nucleons }

// Value returns the displayed value of one field.
func (f *Fields) Value(q beam.Quantity) float64 { return f.values[q] }

// Values returns a copy of all displayed field values.
func (f *Fields) Values() map[beam.Quantity]float64 {
	out := make(map[beam.Quantity]float64, len(f.values))
	for q, v := range f.values {
		out[q] = v
	}
	return out
}

// Edit handles a user edit of one field: validate the raw value, convert it
// to the engine's total quantity, write it through, and redistribute the
// recomputed snapshot into the sibling fields. A nested call made while an
// edit is in flight (a sibling change handler firing) is a no-op. On a
// domain violation nothing changes and the error is returned for the caller
// to surface.
func (f *Fields) Edit(q beam.Quantity, raw float64) error {
	return f.guard.Do(func() error {
		if raw < 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
			return fmt.Errorf("%w: %v", ErrInvalidInput, raw)
		}

		total := raw
		if perNucleon[q] {
			total *= float64(f.nucleons)
		}
		if q == beam.Energy {
			// The energy field holds kinetic energy; the engine works
			// with total energy.
			total += f.beam.Mass()
		}

		if err := f.beam.Set(q, total); err != nil {
			return err
		}

		f.recompute(&q)
		f.values[q] = raw
		return nil
	})
}

// SetSpecies replaces the beam for a newly selected species, preserving the
// displayed kinetic energy per nucleon, and refreshes every field. The
// refresh is unconditional: fields whose value did not change are rewritten
// anyway.
func (f *Fields) SetSpecies(mass float64, charge, nucleons int) error {
	if nucleons < 1 {
		return fmt.Errorf("nucleon count must be >= 1, got %d", nucleons)
	}

	kinetic := f.values[beam.Energy]
	b, err := beam.New(mass, charge, map[beam.Quantity]float64{
		beam.Energy: mass + kinetic*float64(nucleons),
	})
	if err != nil {
		return err
	}

	f.beam = b
	f.nucleons = nucleons
	f.Refresh()
	return nil
}

// Refresh rewrites every field from the current beam state under the guard.
func (f *Fields) Refresh() {
	_ = f.guard.Do(func() error {
		f.recompute(nil)
		return nil
	})
}

// recompute rewrites the displayed values from the beam state, applying the
// per-nucleon and kinetic-energy display conventions. skip, when non-nil,
// names the field being edited; it receives no change notification since its
// value came from the user.
func (f *Fields) recompute(skip *beam.Quantity) {
	snap := f.beam.Snapshot()

	display := map[beam.Quantity]float64{
		beam.Energy:   (snap["energy"] - snap["mass"]) / float64(f.nucleons),
		beam.Momentum: snap["momentum"] / float64(f.nucleons),
		beam.Gamma:    snap["gamma"],
		beam.Beta:     snap["beta"],
		beam.Rigidity: snap["rigidity"],
	}

	for q, v := range display {
		f.values[q] = v
		if skip != nil && q == *skip {
			continue
		}
		if f.OnChange != nil {
			f.OnChange(q, v)
		}
	}
}

// Format renders a field value with the fixed display precision.
func Format(v float64) string {
	return fmt.Sprintf("%.6f", v)
}
