package dghv

import (
	"fmt"

	"github.com/andronat/libshe/internal/bigint"
)

// Decryptor decrypts ciphertexts under a SecretKey.
type Decryptor struct {
	sk *SecretKey
}

// NewDecryptor validates sk and returns a Decryptor.
func NewDecryptor(sk *SecretKey) (*Decryptor, error) {
	if err := checkSecretKey(sk); err != nil {
		return nil, fmt.Errorf("cannot NewDecryptor: %w", err)
	}
	return &Decryptor{sk: sk}, nil
}

// Decrypt recovers the bit vector encoded by ct: m[i] = (c[i] mod p) mod
// 2 (spec.md §4.3). The Euclidean remainder is always non-negative
// (internal/bigint.Mod's contract), so no bit is ever flipped by a
// negative-remainder bug.
func (d *Decryptor) Decrypt(ct *Ciphertext) ([]bool, error) {
	if ct == nil {
		return nil, fmt.Errorf("cannot Decrypt: ciphertext is nil: %w", ErrParameterInvalid)
	}

	m := make([]bool, len(ct.Elements))
	for i, c := range ct.Elements {
		r := bigint.Mod(c, d.sk.P)
		m[i] = r.Bit(0) == 1
	}
	return m, nil
}
