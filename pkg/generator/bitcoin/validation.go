package bitcoin

import (
	"fmt"
	"strings"

	"github.com/Amr-9/SegwitHunter/pkg/generator"
)

// Bech32 charset (excludes 1, b, i, o to prevent ambiguity)
const bech32Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// IsValidBech32Char checks if a character is valid in Bech32, in either case.
func IsValidBech32Char(c rune) bool {
	if 'A' <= c && c <= 'Z' {
		c += 'a' - 'A'
	}
	return strings.ContainsRune(bech32Charset, c)
}

// InvalidBech32Chars returns invalid Bech32 characters in the input.
func InvalidBech32Chars(s string) []rune {
	var invalid []rune
	for _, c := range s {
		if !IsValidBech32Char(c) {
			invalid = append(invalid, c)
		}
	}
	return invalid
}

// ValidatePattern checks a single pattern and returns it folded to lowercase.
// name identifies the pattern in error messages ("prefix", "suffix").
func ValidatePattern(name, pattern string) (string, error) {
	for i, c := range pattern {
		if !IsValidBech32Char(c) {
			return "", fmt.Errorf("%w: invalid character '%c' at position %d in %s %q; valid characters are: %s",
				generator.ErrConfig, c, i, name, pattern, bech32Charset)
		}
	}
	if len(pattern) > MaxPatternLength {
		return "", fmt.Errorf("%w: %s %q is %d characters, at most %d fit after %q",
			generator.ErrConfig, name, pattern, len(pattern), MaxPatternLength, AddressPrefix)
	}
	return strings.ToLower(pattern), nil
}

// ValidatePatterns checks the prefix and suffix together and returns them
// folded to lowercase. At least one must be set, and if they overlap the
// overlapping characters must agree.
func ValidatePatterns(prefix, suffix string) (string, string, error) {
	prefix, err := ValidatePattern("prefix", prefix)
	if err != nil {
		return "", "", err
	}
	suffix, err = ValidatePattern("suffix", suffix)
	if err != nil {
		return "", "", err
	}
	if prefix == "" && suffix == "" {
		return "", "", fmt.Errorf("%w: must specify prefix or suffix", generator.ErrConfig)
	}
	if !PatternsCompatible(prefix, suffix) {
		return "", "", fmt.Errorf("%w: prefix %q and suffix %q overlap inconsistently in a %d-character data part",
			generator.ErrConfig, prefix, suffix, MaxPatternLength)
	}
	return prefix, suffix, nil
}

// PatternsCompatible reports whether some address could satisfy both
// lowercase patterns. The prefix is anchored at the start of the data part
// and the suffix at its end.
func PatternsCompatible(prefix, suffix string) bool {
	if len(prefix) > MaxPatternLength || len(suffix) > MaxPatternLength {
		return false
	}
	suffixStart := MaxPatternLength - len(suffix)
	for i := suffixStart; i < len(prefix); i++ {
		if prefix[i] != suffix[i-suffixStart] {
			return false
		}
	}
	return true
}
