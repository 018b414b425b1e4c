package bitcoin

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/mr-tron/base58"

	"github.com/Amr-9/SegwitHunter/pkg/generator"
)

// KeyGenerator draws private keys uniformly from [1, n-1].
// It is not safe for concurrent use; each worker owns one.
type KeyGenerator struct {
	rand io.Reader
	buf  [32]byte
}

// NewKeyGenerator returns a generator reading from r.
// A nil reader selects crypto/rand.
func NewKeyGenerator(r io.Reader) *KeyGenerator {
	if r == nil {
		r = rand.Reader
	}
	return &KeyGenerator{rand: r}
}

// Next returns a new random secp256k1 private key.
// Samples equal to zero or not below the curve order are discarded and
// redrawn. A short or failed read is fatal and wraps generator.ErrEntropy.
func (g *KeyGenerator) Next() (*btcec.PrivateKey, error) {
	for {
		if _, err := io.ReadFull(g.rand, g.buf[:]); err != nil {
			return nil, fmt.Errorf("%w: %w", generator.ErrEntropy, err)
		}

		var scalar btcec.ModNScalar
		if overflow := scalar.SetByteSlice(g.buf[:]); overflow || scalar.IsZero() {
			continue
		}
		return secp256k1.NewPrivateKey(&scalar), nil
	}
}

// PrivateKeyHex renders a private key as 64 lowercase hex characters.
func PrivateKeyHex(privKey *btcec.PrivateKey) string {
	return hex.EncodeToString(privKey.Serialize())
}

// PrivateKeyToWIF converts a private key to Wallet Import Format (WIF).
// Uses compressed format (starts with K or L on mainnet), which is what a
// P2WPKH wallet expects.
func PrivateKeyToWIF(privKey *btcec.PrivateKey) string {
	// WIF = Base58Check(0x80 + privKey + 0x01)
	data := make([]byte, 34)
	data[0] = 0x80 // Mainnet prefix
	copy(data[1:33], privKey.Serialize())
	data[33] = 0x01 // Compressed flag

	return base58CheckEncode(data)
}

// base58CheckEncode appends the double-SHA256 checksum and encodes in Base58.
func base58CheckEncode(data []byte) string {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])

	full := make([]byte, 0, len(data)+4)
	full = append(full, data...)
	full = append(full, second[:4]...)
	return base58.Encode(full)
}
