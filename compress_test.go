package rans

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressRoundTrip(t *testing.T) {
	tests := []struct {
		pattern string
		text    string
	}{
		{"(ab)*", "ababababababababababab"},
		{"a*(b*|c*)", "aaaaaaaaaacccccc"},
		{"[ACGT]+", "ACGTACGTACGTTTTGGGAACCC"},
		{"0|1[01]*", "1011010111010101010101010101110101"},
		{"[a-z ]*", "the quick brown fox jumps over the lazy dog"},
	}

	for _, tt := range tests {
		s := MustCompile(tt.pattern)

		blob, err := s.Compress([]byte(tt.text))
		require.NoError(t, err, "pattern %q", tt.pattern)

		back, err := s.Decompress(blob)
		require.NoError(t, err, "pattern %q", tt.pattern)
		require.Equal(t, tt.text, string(back), "pattern %q", tt.pattern)
	}
}

func TestCompressShrinksRestrictedAlphabets(t *testing.T) {
	// 64 DNA letters occupy two bits each, so the universal spelling
	// must come out well under the input length.
	s := MustCompile("[ACGT]+")
	text := strings.Repeat("ACGT", 16)

	blob, err := s.Compress([]byte(text))
	require.NoError(t, err)
	require.Less(t, len(blob), len(text))
}

func TestCompressRejectsForeignText(t *testing.T) {
	s := MustCompile("[ACGT]+")
	_, err := s.Compress([]byte("not dna"))
	require.ErrorIs(t, err, ErrNotAcceptable)
}

func TestDecompressOutOfRangeOnFiniteLanguage(t *testing.T) {
	s := MustCompile("a{1,2}")

	// Rank of "zzzz" in the universal language far exceeds the two
	// strings of the target language.
	_, err := s.Decompress([]byte("zzzz"))
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestUniversalCompressIsIdentity(t *testing.T) {
	u := universalSystem()
	for _, text := range []string{"", "a", "hello, world", "\x00\xff\x80"} {
		blob, err := u.Compress([]byte(text))
		require.NoError(t, err)
		require.Equal(t, text, string(blob), "text %q", text)
	}
}
