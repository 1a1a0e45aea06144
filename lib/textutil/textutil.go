package textutil

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)
var nonDigitRegex = regexp.MustCompile(`\D+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// CollapseWhitespace replaces every whitespace run (line breaks included)
// with a single space and trims the ends.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

func stripSeparators(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
}

// ParseCount parses a non-negative count like " 1,234 ".
func ParseCount(s string) (int, error) {
	cleaned := stripSeparators(s)
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%q is not a count", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%q is negative", s)
	}
	return n, nil
}

// ParseDecimal parses a non-negative decimal like "1,150.5".
func ParseDecimal(s string) (float64, error) {
	cleaned := stripSeparators(s)
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a decimal", s)
	}
	if f < 0 {
		return 0, fmt.Errorf("%q is negative", s)
	}
	return f, nil
}

// ParseEmbeddedCount drops every non-digit and parses what is left, for
// numbers buried in prose like "(based on 1,234 miles)".
func ParseEmbeddedCount(s string) (int, error) {
	digits := nonDigitRegex.ReplaceAllString(s, "")
	if digits == "" {
		return 0, fmt.Errorf("no digits in %q", s)
	}
	return strconv.Atoi(digits)
}

func Similarity(a, b string) float64 {
	return matchr.JaroWinkler(NormalizeName(a), NormalizeName(b), false)
}

type Candidate struct {
	Key    string
	Labels []string
}

// MostSimilar returns up to `n` candidate keys whose best label similarity
// to `input` reaches `threshold`, most similar first.
func MostSimilar(input string, candidates []Candidate, n int, threshold float64) []string {
	type scored struct {
		key   string
		score float64
	}

	var ranked []scored
	for _, c := range candidates {
		best := 0.0
		for _, label := range c.Labels {
			sim := Similarity(input, label)
			if sim > best {
				best = sim
			}
		}
		if best >= threshold {
			ranked = append(ranked, scored{key: c.Key, score: best})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.key
	}
	return out
}
