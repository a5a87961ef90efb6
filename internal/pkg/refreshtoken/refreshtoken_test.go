package refreshtoken

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_EncodesThirtyTwoBytes(t *testing.T) {
	secret, err := Generate()
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(secret)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
	assert.NotContains(t, secret, "+")
	assert.NotContains(t, secret, "/")
	assert.NotContains(t, secret, "=")
}

func TestGenerate_Distinct(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		secret, err := Generate()
		require.NoError(t, err)
		_, dup := seen[secret]
		require.False(t, dup)
		seen[secret] = struct{}{}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy unavailable") }

func TestGenerate_RandomSourceFailure(t *testing.T) {
	orig := reader
	reader = failingReader{}
	t.Cleanup(func() { reader = orig })

	_, err := Generate()
	assert.Error(t, err)

	_, err = NewPair([]byte("k"))
	assert.Error(t, err)
}

func TestFingerprint_Deterministic(t *testing.T) {
	key := []byte("refresh-key")

	a := Fingerprint("secret-one", key)
	b := Fingerprint("secret-one", key)

	assert.Len(t, a, 32)
	assert.Equal(t, a, b)
}

func TestFingerprint_DependsOnSecretAndKey(t *testing.T) {
	key := []byte("refresh-key")

	base := Fingerprint("secret-one", key)
	assert.False(t, bytes.Equal(base, Fingerprint("secret-two", key)))
	assert.False(t, bytes.Equal(base, Fingerprint("secret-one", []byte("other-key"))))
}

func TestNewPair_FingerprintMatchesSecret(t *testing.T) {
	key := []byte("refresh-key")

	pair, err := NewPair(key)
	require.NoError(t, err)
	assert.Equal(t, Fingerprint(pair.Secret, key), pair.Fingerprint)
}
