package species

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Identifier
	}{
		{
			name:  "argon with plus suffix",
			input: "40Ar10+",
			want:  Identifier{Nucleons: 40, Symbol: "Ar", Charge: 10},
		},
		{
			name:  "plus suffix optional",
			input: "40Ar10",
			want:  Identifier{Nucleons: 40, Symbol: "Ar", Charge: 10},
		},
		{
			name:  "single letter symbol",
			input: "1H1+",
			want:  Identifier{Nucleons: 1, Symbol: "H", Charge: 1},
		},
		{
			name:  "lowercase symbol canonicalized",
			input: "208pb82+",
			want:  Identifier{Nucleons: 208, Symbol: "Pb", Charge: 82},
		},
		{
			name:  "uppercase symbol canonicalized",
			input: "238U92+",
			want:  Identifier{Nucleons: 238, Symbol: "U", Charge: 92},
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  12C6+ ",
			want:  Identifier{Nucleons: 12, Symbol: "C", Charge: 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIdentifier(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIdentifierMalformed(t *testing.T) {
	inputs := []string{
		"",
		"Ar10+",      // missing nucleon count
		"40Ar",       // missing charge state
		"40Arg10+",   // symbol too long
		"40Ar10++",   // doubled suffix
		"40 Ar 10+",  // interior whitespace
		"-40Ar10+",   // negative nucleon count
		"40Ar-10",    // negative charge
		"40Ar0",      // zero charge state
		"0Ar10+",     // zero nucleons
		"forty-ar",   // not numeric at all
		"1.5Ar10+",   // fractional nucleons
	}

	for _, input := range inputs {
		_, err := ParseIdentifier(input)
		assert.ErrorIs(t, err, ErrMalformedIdentifier, "input %q", input)
	}
}
