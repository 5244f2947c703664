package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "leading zeros", raw: "007", want: "7"},
		{name: "surrounding whitespace", raw: " 42 ", want: "42"},
		{name: "explicit plus sign", raw: "+5", want: "5"},
		{name: "negative zero", raw: "-0", want: "0"},
		{name: "negative", raw: "-012", want: "-12"},
		{name: "larger than int64", raw: "000123456789012345678901", want: "123456789012345678901"},
		{name: "text code unchanged", raw: "ABC-1", want: "ABC-1"},
		{name: "fractional unchanged", raw: "1.0", want: "1.0"},
		{name: "leading zero text unchanged", raw: "007A", want: "007A"},
		{name: "text keeps whitespace", raw: " AB ", want: " AB "},
		{name: "empty", raw: "", want: ""},
		{name: "blank", raw: "   ", want: "   "},
		{name: "underscore separated", raw: "1_000", want: "1_000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Canonicalize(tt.raw))
		})
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	for _, raw := range []string{"007", " 42 ", "ABC", "-3", "9.5"} {
		once := Canonicalize(raw)
		assert.Equal(t, once, Canonicalize(once), "raw=%q", raw)
	}
}
