// Package species resolves particle species identifiers such as "40Ar10+"
// into the rest mass and charge state the beam engine consumes. The atomic
// weight data lives in a SQLite-backed catalog seeded from a JSON table of
// per-nucleon masses.
package species

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// identifierPattern matches <nucleons><symbol><charge>[+], e.g. "40Ar10+".
// Case-insensitive; the charge-state suffix "+" is optional.
var identifierPattern = regexp.MustCompile(`^([0-9]+)([A-Za-z]{1,2})([0-9]+)\+?$`)

// ErrMalformedIdentifier is returned by ParseIdentifier for input that does
// not follow the <nucleons><symbol><charge> format.
var ErrMalformedIdentifier = errors.New("species identifier must have the format <nucleons><symbol><charge>")

// Identifier is a parsed species identifier. It carries no mass; Resolve
// combines it with the weight catalog.
type Identifier struct {
	Nucleons int    // number of protons+neutrons in the isotope
	Symbol   string // element symbol, canonicalized (e.g. "Ar")
	Charge   int    // charge state in elementary charges, always positive
}

// ParseIdentifier parses a species identifier like "40Ar10+". The element
// symbol is canonicalized to upper-then-lower case regardless of how it was
// typed.
func ParseIdentifier(s string) (Identifier, error) {
	m := identifierPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Identifier{}, fmt.Errorf("%w: %q", ErrMalformedIdentifier, s)
	}

	nucleons, err := strconv.Atoi(m[1])
	if err != nil || nucleons < 1 {
		return Identifier{}, fmt.Errorf("%w: %q", ErrMalformedIdentifier, s)
	}
	charge, err := strconv.Atoi(m[3])
	if err != nil || charge < 1 {
		return Identifier{}, fmt.Errorf("%w: %q", ErrMalformedIdentifier, s)
	}

	return Identifier{
		Nucleons: nucleons,
		Symbol:   canonicalSymbol(m[2]),
		Charge:   charge,
	}, nil
}

// canonicalSymbol normalizes an element symbol to its conventional casing.
func canonicalSymbol(s string) string {
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
