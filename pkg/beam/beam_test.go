package beam

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const protonMass = 0.938272 // [GeV/c^2]

func TestNewSeedsFromSingleQuantity(t *testing.T) {
	tests := []struct {
		name       string
		values     map[Quantity]float64
		wantEnergy float64
	}{
		{
			name:       "from energy",
			values:     map[Quantity]float64{Energy: 2.0},
			wantEnergy: 2.0,
		},
		{
			name:       "from momentum",
			values:     map[Quantity]float64{Momentum: 3.0},
			wantEnergy: math.Sqrt(9.0 + protonMass*protonMass),
		},
		{
			name:       "from gamma",
			values:     map[Quantity]float64{Gamma: 2.0},
			wantEnergy: 2.0 * protonMass,
		},
		{
			name:       "from beta",
			values:     map[Quantity]float64{Beta: 0.5},
			wantEnergy: protonMass / math.Sqrt(1-0.25),
		},
		{
			name:       "from rigidity",
			values:     map[Quantity]float64{Rigidity: 10.0},
			wantEnergy: math.Sqrt(math.Pow(10.0*SpeedOfLight*1e-9, 2) + protonMass*protonMass),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(protonMass, 1, tt.values)
			require.NoError(t, err)
			assert.InEpsilon(t, tt.wantEnergy, b.Energy(), 1e-12)
		})
	}
}

func TestNewPrecedence(t *testing.T) {
	// Energy outranks momentum; the momentum value is ignored entirely,
	// not validated against the energy.
	b, err := New(1.0, 1, map[Quantity]float64{Energy: 2.0, Momentum: 100.0})
	require.NoError(t, err)
	assert.Equal(t, 2.0, b.Energy())

	// Momentum outranks gamma, beta and rigidity.
	b, err = New(1.0, 1, map[Quantity]float64{Momentum: 3.0, Gamma: 50.0, Beta: 0.1, Rigidity: 7.0})
	require.NoError(t, err)
	assert.InEpsilon(t, math.Sqrt(10.0), b.Energy(), 1e-12)
}

func TestNewIncompleteSpecification(t *testing.T) {
	tests := []struct {
		name   string
		values map[Quantity]float64
	}{
		{name: "nil values", values: nil},
		{name: "empty values", values: map[Quantity]float64{}},
		{name: "unknown quantity only", values: map[Quantity]float64{Quantity("speed"): 1.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(1.0, 1, tt.values)
			assert.ErrorIs(t, err, ErrIncompleteSpecification)
			assert.Nil(t, b)
		})
	}
}

func TestNewRejectsInvalidSpecies(t *testing.T) {
	values := map[Quantity]float64{Gamma: 2.0}

	for _, mass := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := New(mass, 1, values)
		assert.ErrorIs(t, err, ErrInvalidMass, "mass=%v", mass)
	}

	_, err := New(1.0, 0, values)
	assert.ErrorIs(t, err, ErrInvalidCharge)
}

func TestNewRejectsDomainViolations(t *testing.T) {
	_, err := New(1.0, 1, map[Quantity]float64{Gamma: 0.5})
	assert.ErrorIs(t, err, ErrDomain)

	// Precedence means an invalid energy fails even when a valid gamma is
	// also present.
	_, err = New(1.0, 1, map[Quantity]float64{Energy: 0.5, Gamma: 2.0})
	assert.ErrorIs(t, err, ErrDomain)
}

func TestRoundTrip(t *testing.T) {
	masses := []float64{0.000511, 0.105658, protonMass, 1.0, 37.2}
	gammas := []float64{1.0001, 1.5, 2.0, 10.0, 250.0}

	for _, q := range DefinitionPrecedence {
		t.Run(string(q), func(t *testing.T) {
			for _, mass := range masses {
				for _, gamma := range gammas {
					energy := gamma * mass

					orig, err := New(mass, 2, map[Quantity]float64{Energy: energy})
					require.NoError(t, err)

					v, err := orig.Get(q)
					require.NoError(t, err)

					back, err := New(mass, 2, map[Quantity]float64{q: v})
					require.NoError(t, err)
					assert.InEpsilon(t, energy, back.Energy(), 1e-9,
						"mass=%v gamma=%v via %s", mass, gamma, q)
				}
			}
		})
	}
}

func TestCrossQuantityConsistency(t *testing.T) {
	b, err := New(protonMass, 1, map[Quantity]float64{Gamma: 3.7})
	require.NoError(t, err)

	assert.InEpsilon(t, b.Momentum()/b.Energy(), b.Beta(), 1e-12)
	assert.InEpsilon(t, 1/math.Sqrt(1-b.Beta()*b.Beta()), b.Gamma(), 1e-12)
	assert.InEpsilon(t, b.Momentum()/(float64(b.Charge())*SpeedOfLight*1e-9), b.Rigidity(), 1e-12)
}

func TestDomainRejectionLeavesStateUntouched(t *testing.T) {
	tests := []struct {
		name     string
		quantity Quantity
		value    float64
	}{
		{name: "gamma below one", quantity: Gamma, value: 0.5},
		{name: "gamma NaN", quantity: Gamma, value: math.NaN()},
		{name: "negative momentum", quantity: Momentum, value: -1.0},
		{name: "negative beta", quantity: Beta, value: -0.1},
		{name: "beta at light speed", quantity: Beta, value: 1.0},
		{name: "negative rigidity", quantity: Rigidity, value: -2.0},
		{name: "energy below rest mass", quantity: Energy, value: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(1.0, 1, map[Quantity]float64{Energy: 2.0})
			require.NoError(t, err)

			err = b.Set(tt.quantity, tt.value)
			assert.ErrorIs(t, err, ErrDomain)

			var domainErr *DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.quantity, domainErr.Quantity)

			assert.Equal(t, 2.0, b.Energy(), "failed write must not mutate the canonical energy")
		})
	}
}

func TestSettersMutateOnlyThroughEnergy(t *testing.T) {
	b, err := New(protonMass, 1, map[Quantity]float64{Energy: 2.0})
	require.NoError(t, err)

	require.NoError(t, b.SetGamma(5.0))
	assert.InEpsilon(t, 5.0*protonMass, b.Energy(), 1e-12)
	assert.Equal(t, protonMass, b.Mass())
	assert.Equal(t, 1, b.Charge())

	// Reading must not mutate.
	before := b.Energy()
	_ = b.Momentum()
	_ = b.Beta()
	_ = b.Rigidity()
	assert.Equal(t, before, b.Energy())
}

// TestProtonScenario pins the conversions to hand-checked numbers for a
// proton at 1 GeV kinetic energy.
func TestProtonScenario(t *testing.T) {
	b, err := New(protonMass, 1, map[Quantity]float64{Energy: 1.938272})
	require.NoError(t, err)

	assert.InDelta(t, 1.696038, b.Momentum(), 1e-4)
	assert.InDelta(t, 2.065789, b.Gamma(), 1e-4)
	assert.InDelta(t, 0.875025, b.Beta(), 1e-4)
	assert.InDelta(t, 5.657373, b.Rigidity(), 1e-4)
}

func TestRigidityUsesChargeMagnitude(t *testing.T) {
	pos, err := New(protonMass, 10, map[Quantity]float64{Energy: 2.0})
	require.NoError(t, err)
	neg, err := New(protonMass, -10, map[Quantity]float64{Energy: 2.0})
	require.NoError(t, err)

	assert.Equal(t, pos.Rigidity(), neg.Rigidity())
	require.NoError(t, neg.SetRigidity(3.0))
	assert.InEpsilon(t, 3.0, neg.Rigidity(), 1e-12)
}

func TestSnapshot(t *testing.T) {
	b, err := New(protonMass, 2, map[Quantity]float64{Gamma: 2.0})
	require.NoError(t, err)

	snap := b.Snapshot()

	assert.Len(t, snap, 7)
	assert.Equal(t, protonMass, snap["mass"])
	assert.Equal(t, 2.0, snap["charge"])
	assert.Equal(t, b.Energy(), snap["energy"])
	assert.Equal(t, b.Momentum(), snap["momentum"])
	assert.Equal(t, b.Gamma(), snap["gamma"])
	assert.Equal(t, b.Beta(), snap["beta"])
	assert.Equal(t, b.Rigidity(), snap["rigidity"])

	// Every snapshot key has a display unit.
	for name := range snap {
		assert.Contains(t, Units, name)
	}

	// The snapshot is a copy; mutating it leaves the beam alone.
	snap["energy"] = 99.0
	assert.NotEqual(t, 99.0, b.Energy())
}
