package bitcoin

import "strings"

// SegwitMatcher handles pattern matching for bc1q addresses.
// Bech32 is case-insensitive, so patterns are folded to lowercase once and
// addresses are folded byte by byte during comparison.
type SegwitMatcher struct {
	prefix     string
	suffix     string
	impossible bool // no address can ever satisfy the patterns
}

// NewSegwitMatcher creates a matcher for a prefix (after "bc1q") and an
// optional suffix (empty = none).
func NewSegwitMatcher(prefix, suffix string) *SegwitMatcher {
	prefix = strings.ToLower(prefix)
	suffix = strings.ToLower(suffix)

	return &SegwitMatcher{
		prefix:     prefix,
		suffix:     suffix,
		impossible: !PatternsCompatible(prefix, suffix),
	}
}

// Matches checks if a bc1q address carries the prefix right after "bc1q"
// and, when configured, ends with the suffix. It returns false, never an
// error, for configurations that cannot match.
func (m *SegwitMatcher) Matches(address string) bool {
	if m.impossible {
		return false
	}
	if !hasPrefixFold(address, AddressPrefix) {
		return false
	}

	if !hasPrefixFold(address[len(AddressPrefix):], m.prefix) {
		return false
	}
	if m.suffix != "" && !hasSuffixFold(address, m.suffix) {
		return false
	}
	return true
}

// hasPrefixFold reports whether s starts with the lowercase pattern, ignoring
// the ASCII case of s.
func hasPrefixFold(s, pattern string) bool {
	if len(s) < len(pattern) {
		return false
	}
	for i := 0; i < len(pattern); i++ {
		if lowerASCII(s[i]) != pattern[i] {
			return false
		}
	}
	return true
}

func hasSuffixFold(s, pattern string) bool {
	if len(s) < len(pattern) {
		return false
	}
	return hasPrefixFold(s[len(s)-len(pattern):], pattern)
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
