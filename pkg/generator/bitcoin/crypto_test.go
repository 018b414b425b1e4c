package bitcoin

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amr-9/SegwitHunter/pkg/generator"
)

const (
	curveOrderHex     = "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"
	curveOrderLessOne = "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364140"
)

func entropy(t *testing.T, chunks ...string) io.Reader {
	t.Helper()
	var buf bytes.Buffer
	for _, c := range chunks {
		raw, err := hex.DecodeString(c)
		require.NoError(t, err)
		require.Len(t, raw, 32)
		buf.Write(raw)
	}
	return &buf
}

func TestKeyGenerator_RejectsOutOfRangeScalars(t *testing.T) {
	zero := "0000000000000000000000000000000000000000000000000000000000000000"
	allOnes := "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"

	gen := NewKeyGenerator(entropy(t, zero, curveOrderHex, allOnes, keyOneHex))

	privKey, err := gen.Next()
	require.NoError(t, err)
	assert.Equal(t, keyOneHex, PrivateKeyHex(privKey))
	assert.Equal(t, keyOneAddress, DeriveAddress(privKey))
}

func TestKeyGenerator_AcceptsLargestScalar(t *testing.T) {
	gen := NewKeyGenerator(entropy(t, curveOrderHex, curveOrderLessOne))

	privKey, err := gen.Next()
	require.NoError(t, err)
	assert.Equal(t, curveOrderLessOne, PrivateKeyHex(privKey))
}

func TestKeyGenerator_EntropyExhausted(t *testing.T) {
	gen := NewKeyGenerator(entropy(t, keyOneHex))

	_, err := gen.Next()
	require.NoError(t, err)

	_, err = gen.Next()
	require.ErrorIs(t, err, generator.ErrEntropy)
	require.ErrorIs(t, err, io.EOF)
}

func TestKeyGenerator_ShortRead(t *testing.T) {
	gen := NewKeyGenerator(bytes.NewReader(make([]byte, 16)))

	_, err := gen.Next()
	require.ErrorIs(t, err, generator.ErrEntropy)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestKeyGenerator_ReaderFailure(t *testing.T) {
	boom := errors.New("rng unavailable")
	gen := NewKeyGenerator(iotest.ErrReader(boom))

	privKey, err := gen.Next()
	require.Nil(t, privKey)
	require.ErrorIs(t, err, generator.ErrEntropy)
	require.ErrorIs(t, err, boom)
}

func TestKeyGenerator_DefaultSource(t *testing.T) {
	gen := NewKeyGenerator(nil)

	seen := make(map[string]struct{})
	for i := 0; i < 64; i++ {
		privKey, err := gen.Next()
		require.NoError(t, err)

		key := PrivateKeyHex(privKey)
		require.Len(t, key, 64)
		_, dup := seen[key]
		require.False(t, dup, "duplicate key %s", key)
		seen[key] = struct{}{}
	}
}
