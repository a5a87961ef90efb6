// Package refreshtoken generates opaque refresh secrets and derives the keyed
// fingerprints that are stored in their place.
package refreshtoken

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
)

const secretSize = 32

var reader io.Reader = rand.Reader

// Generate returns a URL-safe encoding of 32 random bytes.
func Generate() (string, error) {
	buf := make([]byte, secretSize)
	if _, err := io.ReadFull(reader, buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Fingerprint is HMAC-SHA256 of the secret as handed to the client, keyed with
// the server-side refresh hashing key.
func Fingerprint(secret string, key []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(secret))
	return mac.Sum(nil)
}

// Pair is a fresh secret with its fingerprint.
type Pair struct {
	Secret      string
	Fingerprint []byte
}

func NewPair(key []byte) (Pair, error) {
	secret, err := Generate()
	if err != nil {
		return Pair{}, err
	}
	return Pair{Secret: secret, Fingerprint: Fingerprint(secret, key)}, nil
}
