package dghv

import (
	"fmt"

	"github.com/andronat/libshe/internal/bigint"
)

// SecretKey is the DGHV private key: an odd integer p of exactly
// Etha bits (spec.md §3).
type SecretKey struct {
	P    bigint.Int
	Etha int
	S    int
	L    int
}

// PublicKey is the DGHV public key: the modulus x = q0*p (spec.md §3).
// The bound U = ceil(2^Gamma/p) needed to draw q0 and to encrypt is a
// function of the *secret* p, not of x alone, so it is not a field of
// PublicKey; it is computed once by GenPublicKeyNew and once by
// NewEncryptor (spec.md §4.2 "recompute U once"; SPEC_FULL.md §C.3).
type PublicKey struct {
	X     bigint.Int
	Gamma int
	S     int
	L     int
}

// checkSecretKey validates that sk is present and internally consistent.
func checkSecretKey(sk *SecretKey) error {
	if sk == nil {
		return fmt.Errorf("secret key is nil: %w", ErrParameterInvalid)
	}
	if sk.Etha != (sk.S+3)*sk.L {
		return fmt.Errorf("secret key etha=%d inconsistent with s=%d l=%d: %w", sk.Etha, sk.S, sk.L, ErrParameterInvalid)
	}
	return nil
}

// checkPublicKey validates that pk is present.
func checkPublicKey(pk *PublicKey) error {
	if pk == nil {
		return fmt.Errorf("public key is nil: %w", ErrParameterInvalid)
	}
	return nil
}
