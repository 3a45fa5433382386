package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanQuery(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "switch01", "switch01"},
		{"inner spaces", "aa bb cc", "aabbcc"},
		{"tabs and newlines", "\taa\nbb ", "aabb"},
		{"separators preserved", "aa:bb-cc", "aa:bb-cc"},
		{"only whitespace", "   \t", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanQuery(tt.in))
		})
	}
}

func TestCanonicalMAC(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{"colon separated", "aa:bb:cc:dd:ee:ff", "AABBCCDDEEFF", true},
		{"hyphen separated", "AA-BB-CC-DD-EE-FF", "AABBCCDDEEFF", true},
		{"dotted cisco style", "aabb.ccdd.eeff", "AABBCCDDEEFF", true},
		{"bare lowercase", "001a2b3c4d5e", "001A2B3C4D5E", true},
		{"vendor prefix", "SEP001122334455", "001122334455", true},
		{"vendor prefix lowercase", "sep001122334455", "001122334455", true},
		{"vendor prefix with separator", "SEP-001122334455", "001122334455", true},
		{"whitespace around", "  aa:bb:cc:dd:ee:ff ", "AABBCCDDEEFF", true},
		{"empty", "", "", false},
		{"too short", "aa:bb:cc", "", false},
		{"too long", "aabbccddeeff00", "", false},
		{"free text", "rack 12 lab", "", false},
		{"non-hex letters", "gg:hh:ii:jj:kk:ll", "", false},
		{"mixed text and hex", "mac=aabbccddeeff", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CanonicalMAC(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanonicalMACIdempotent(t *testing.T) {
	inputs := []string{"aa:bb:cc:dd:ee:ff", "SEP001122334455", "001a2b3c4d5e"}
	for _, in := range inputs {
		first, ok := CanonicalMAC(in)
		require.True(t, ok, in)

		second, ok := CanonicalMAC(first)
		require.True(t, ok, first)
		assert.Equal(t, first, second)
	}
}
