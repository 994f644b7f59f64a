// Package keypair reads and writes ed25519 keypairs in the Solana CLI's
// JSON byte-array format.
package keypair

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Generate creates a new random keypair.
func Generate() (ed25519.PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate keypair")
	}

	return priv, nil
}

// Load reads a keypair from a Solana CLI keypair file, which contains the
// 64-byte expanded private key as a JSON array of byte values.
func Load(path string) (ed25519.PrivateKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read keypair file %s", path)
	}

	var values []int
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, errors.Wrapf(err, "invalid keypair file %s", path)
	}

	if len(values) != ed25519.PrivateKeySize {
		return nil, errors.Errorf("invalid keypair length: %d (expect %d)", len(values), ed25519.PrivateKeySize)
	}

	key := make(ed25519.PrivateKey, ed25519.PrivateKeySize)
	for i, v := range values {
		if v < 0 || v > 255 {
			return nil, errors.Errorf("invalid byte value at index %d: %d", i, v)
		}
		key[i] = byte(v)
	}

	// The last 32 bytes must be the public key of the first 32.
	derived := ed25519.NewKeyFromSeed(key.Seed())
	if !bytes.Equal(derived, key) {
		return nil, errors.New("keypair public key does not match its seed")
	}

	return key, nil
}

// Save writes a keypair to path in the Solana CLI format. The file is
// created with owner-only permissions.
func Save(path string, key ed25519.PrivateKey) error {
	if len(key) != ed25519.PrivateKeySize {
		return errors.Errorf("invalid keypair length: %d (expect %d)", len(key), ed25519.PrivateKeySize)
	}

	values := make([]int, len(key))
	for i, b := range key {
		values[i] = int(b)
	}

	raw, err := json.Marshal(values)
	if err != nil {
		return errors.Wrap(err, "failed to marshal keypair")
	}

	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return errors.Wrapf(err, "failed to write keypair file %s", path)
	}

	return nil
}
