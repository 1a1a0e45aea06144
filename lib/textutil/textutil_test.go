package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollapseWhitespace(t *testing.T) {
	require.Equal(t, "Bonus Miles", CollapseWhitespace("Bonus\n Miles"))
	require.Equal(t, "a b c", CollapseWhitespace("  a\r\n\tb   c \n"))
	require.Equal(t, "", CollapseWhitespace(" \n "))
}

func TestParseCount(t *testing.T) {
	testCases := []struct {
		input    string
		expected int
		fails    bool
	}{
		{input: "1,234", expected: 1234},
		{input: "  56 \n", expected: 56},
		{input: "1,000,000", expected: 1000000},
		{input: "", fails: true},
		{input: "12 miles", fails: true},
		{input: "-5", fails: true},
	}

	for _, test := range testCases {
		n, err := ParseCount(test.input)
		if test.fails {
			require.Error(t, err, test.input)
			continue
		}
		require.NoError(t, err, test.input)
		require.Equal(t, test.expected, n)
	}
}

func TestParseDecimal(t *testing.T) {
	f, err := ParseDecimal("150.5")
	require.NoError(t, err)
	require.Equal(t, 150.5, f)

	f, err = ParseDecimal(" 1,150.25 ")
	require.NoError(t, err)
	require.Equal(t, 1150.25, f)

	_, err = ParseDecimal("n/a")
	require.Error(t, err)
}

func TestParseEmbeddedCount(t *testing.T) {
	n, err := ParseEmbeddedCount("(based on 1,234 standard miles)")
	require.NoError(t, err)
	require.Equal(t, 1234, n)

	_, err = ParseEmbeddedCount("(none)")
	require.Error(t, err)
}

func TestMostSimilar(t *testing.T) {
	candidates := []Candidate{
		{Key: "HND", Labels: []string{"HND", "東京(羽田)"}},
		{Key: "NRT", Labels: []string{"NRT", "東京(成田)"}},
		{Key: "CTS", Labels: []string{"CTS", "札幌(新千歳)"}},
	}

	require.Equal(t, []string{"HND"}, MostSimilar("hnd", candidates, 3, 0.99))
	require.Equal(t, []string{"HND"}, MostSimilar("HDN", candidates, 1, 0.7))
	require.Empty(t, MostSimilar("zzzzzz", candidates, 3, 0.7))
}
