package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionbeam-tools/beamcalc/internal/linked"
	"github.com/ionbeam-tools/beamcalc/internal/species"
	"github.com/ionbeam-tools/beamcalc/pkg/beam"
)

func newTestFields(t *testing.T) *linked.Fields {
	t.Helper()
	b, err := beam.New(1, 1, map[beam.Quantity]float64{beam.Energy: 1})
	require.NoError(t, err)
	f, err := linked.New(b, 1)
	require.NoError(t, err)
	return f
}

func resolveArgon(id string) (species.Species, error) {
	if id != "40Ar10+" {
		return species.Species{}, species.ErrUnknownSpecies
	}
	return species.Species{Symbol: "Ar", Nucleons: 40, Charge: 10, Mass: 40 * 0.930618}, nil
}

func TestReplDispatchEdit(t *testing.T) {
	f := newTestFields(t)

	require.NoError(t, replDispatch(resolveArgon, f, "gamma 2.5"))
	assert.Equal(t, 2.5, f.Value(beam.Gamma))

	err := replDispatch(resolveArgon, f, "gamma 0.5")
	assert.ErrorIs(t, err, beam.ErrDomain)
	assert.Equal(t, 2.5, f.Value(beam.Gamma), "rejected edit leaves fields alone")
}

func TestReplDispatchSpecies(t *testing.T) {
	f := newTestFields(t)

	require.NoError(t, replDispatch(resolveArgon, f, "species 40Ar10+"))
	assert.Equal(t, 10, f.Beam().Charge())
	assert.Equal(t, 40, f.Nucleons())

	err := replDispatch(resolveArgon, f, "species 40Zz10+")
	assert.ErrorIs(t, err, species.ErrUnknownSpecies)

	assert.Error(t, replDispatch(resolveArgon, f, "species"))
}

func TestReplDispatchRejectsUnknownInput(t *testing.T) {
	f := newTestFields(t)

	assert.Error(t, replDispatch(resolveArgon, f, "speed 2.5"))
	assert.Error(t, replDispatch(resolveArgon, f, "gamma fast"))
	assert.Error(t, replDispatch(resolveArgon, f, "gamma"))
	assert.NoError(t, replDispatch(resolveArgon, f, "show"))
}

func TestPrintFieldsUsesFixedPrecision(t *testing.T) {
	f := newTestFields(t)

	var buf strings.Builder
	printFields(&buf, f)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 5)
	assert.Contains(t, lines[0], "energy")
	assert.Contains(t, lines[0], "0.000000", "placeholder beam is at rest")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitUserError, exitCode(beam.ErrIncompleteSpecification))
	assert.Equal(t, exitUserError, exitCode(species.ErrMalformedIdentifier))
	assert.Equal(t, exitUserError, exitCode(&beam.DomainError{Quantity: beam.Gamma, Value: 0.5, Reason: "gamma must be >= 1"}))
	assert.Equal(t, exitSysError, exitCode(errors.New("database on fire")))
}
