package stats

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
)

// ParseWeight reads the leading decimal number of a set weight ("12.5kg" -> 12.5).
// Anything unparseable, negative or non-finite yields 0.
func ParseWeight(v domain.Numeric) float64 {
	s := strings.TrimLeftFunc(string(v), unicode.IsSpace)
	prefix := leadingFloat(s)
	if prefix == "" {
		return 0
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// ParseReps reads the leading integer of a rep count ("8.9" -> 8). Unparseable or negative yields 0.
func ParseReps(v domain.Numeric) int {
	s := strings.TrimLeftFunc(string(v), unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// SetVolume is weight x reps for a single set
func SetVolume(set domain.SetEntry) float64 {
	return ParseWeight(set.Weight) * float64(ParseReps(set.Reps))
}

// Volume sums weight x reps across sets
func Volume(sets []domain.SetEntry) float64 {
	var total float64
	for _, set := range sets {
		total += SetVolume(set)
	}
	return total
}

// leadingFloat returns the longest prefix of s that is a decimal float literal
func leadingFloat(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	mantissa := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		mantissa++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if mantissa+frac > 0 {
			i = j
			mantissa += frac
		}
	}
	if mantissa == 0 {
		return ""
	}
	// exponent only counts when followed by at least one digit
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return s[:i]
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
