package bitcoin

import (
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/crypto/ripemd160"

	"github.com/Amr-9/SegwitHunter/pkg/generator"
)

// Candidate is one generated key pair and the address derived from it.
type Candidate struct {
	PrivateKey *btcec.PrivateKey
	PublicKey  []byte // 33-byte compressed encoding
	Address    string
}

// NewCandidate derives the public key and P2WPKH address for privKey.
func NewCandidate(privKey *btcec.PrivateKey) Candidate {
	pubKey := privKey.PubKey().SerializeCompressed()
	return Candidate{
		PrivateKey: privKey,
		PublicKey:  pubKey,
		Address:    addressFromPubKey(pubKey),
	}
}

// DeriveAddress derives the native segwit v0 address (bc1q...) of a private key.
// P2WPKH address = Bech32(HRP="bc", version=0, HASH160(compressed_pubkey))
func DeriveAddress(privKey *btcec.PrivateKey) string {
	return addressFromPubKey(privKey.PubKey().SerializeCompressed())
}

func addressFromPubKey(compressed []byte) string {
	addr, err := EncodeP2WPKH(Hash160(compressed))
	if err != nil {
		return ""
	}
	return addr
}

// EncodeP2WPKH encodes a 20-byte public key hash as a version 0 witness
// program. Version 0 uses the BIP-173 bech32 checksum, not Bech32m.
func EncodeP2WPKH(pubKeyHash []byte) (string, error) {
	if len(pubKeyHash) != PubKeyHashLen {
		return "", fmt.Errorf("%w: witness program must be %d bytes, got %d",
			generator.ErrInvalidAddress, PubKeyHashLen, len(pubKeyHash))
	}

	// Convert to 5-bit groups for Bech32
	data, err := bech32.ConvertBits(pubKeyHash, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("failed to convert bits: %w", err)
	}

	// Prepend witness version 0
	data = append([]byte{WitnessVersion}, data...)

	addr, err := bech32.Encode(HRP, data)
	if err != nil {
		return "", fmt.Errorf("failed to encode bech32: %w", err)
	}
	return addr, nil
}

// DecodeP2WPKH recovers the 20-byte public key hash from a mainnet P2WPKH
// address. The address may be all lowercase or all uppercase.
func DecodeP2WPKH(address string) ([]byte, error) {
	hrp, data, version, err := bech32.DecodeGeneric(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", generator.ErrInvalidAddress, err)
	}
	if hrp != HRP {
		return nil, fmt.Errorf("%w: human-readable part %q, want %q", generator.ErrInvalidAddress, hrp, HRP)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty data part", generator.ErrInvalidAddress)
	}
	if data[0] != WitnessVersion {
		return nil, fmt.Errorf("%w: witness version %d, want %d", generator.ErrInvalidAddress, data[0], WitnessVersion)
	}
	if version != bech32.Version0 {
		return nil, fmt.Errorf("%w: version 0 programs require the bech32 checksum", generator.ErrInvalidAddress)
	}

	program, err := bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", generator.ErrInvalidAddress, err)
	}
	if len(program) != PubKeyHashLen {
		return nil, fmt.Errorf("%w: witness program is %d bytes, want %d",
			generator.ErrInvalidAddress, len(program), PubKeyHashLen)
	}
	return program, nil
}

// Hash160 computes RIPEMD160(SHA256(data)).
func Hash160(data []byte) []byte {
	sha := sha256.Sum256(data)
	ripemd := ripemd160.New()
	ripemd.Write(sha[:])
	return ripemd.Sum(nil)
}
