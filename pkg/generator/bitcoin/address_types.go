// Package bitcoin provides native segwit (P2WPKH, bc1q...) vanity address support:
// key generation, address derivation, pattern validation and matching.
package bitcoin

import "math"

// P2WPKH mainnet address layout: "bc" + "1" + "q" + 32 program chars + 6 checksum chars.
const (
	HRP            = "bc"
	AddressPrefix  = "bc1q" // HRP, separator and witness version 0
	WitnessVersion = 0
	PubKeyHashLen  = 20
	ChecksumLen    = 6

	programChars = PubKeyHashLen * 8 / 5

	// AddressLen is the length of every P2WPKH mainnet address.
	AddressLen = len(AddressPrefix) + programChars + ChecksumLen

	// MaxPatternLength is the number of characters following "bc1q".
	MaxPatternLength = AddressLen - len(AddressPrefix)
)

// AddressDescription returns a human-readable description of the address type.
func AddressDescription() string {
	return "Native SegWit (bc1q...)"
}

// Difficulty estimates the expected number of attempts for a pattern pair.
// Every Bech32 character carries 5 bits, so each pattern character costs 32x.
// Overlapping prefix and suffix characters constrain the same position and
// are counted once.
func Difficulty(prefix, suffix string) uint64 {
	totalChars := constrainedChars(prefix, suffix)
	if totalChars == 0 {
		return 1
	}
	if totalChars*5 >= 64 {
		return math.MaxUint64
	}
	return uint64(1) << (5 * totalChars)
}

// constrainedChars counts the data-part positions fixed by the patterns.
func constrainedChars(prefix, suffix string) int {
	return min(len(prefix)+len(suffix), MaxPatternLength)
}
