package dghv

import (
	"errors"
	"fmt"

	"github.com/andronat/libshe/internal/bigint"
	"github.com/andronat/libshe/internal/sampling"
)

// KeyGenerator produces private and public keys. It holds the PRNG used
// for every random draw, matching core/rlwe.KeyGenerator's role of
// owning the sampling machinery its Gen* methods need.
type KeyGenerator struct {
	prng sampling.PRNG
}

// NewKeyGenerator creates a KeyGenerator backed by the default
// OS-entropy PRNG.
func NewKeyGenerator() *KeyGenerator {
	return &KeyGenerator{prng: sampling.New()}
}

// NewKeyGeneratorWithPRNG creates a KeyGenerator backed by an explicit
// PRNG, for deterministic/seeded tests.
func NewKeyGeneratorWithPRNG(prng sampling.PRNG) *KeyGenerator {
	return &KeyGenerator{prng: prng}
}

// GenSecretKeyNew generates a new SecretKey for the given security
// parameter s and input bit length l (spec.md §4.1).
func (kgen *KeyGenerator) GenSecretKeyNew(s, l int) (*SecretKey, error) {
	params, err := NewParameters(s, l)
	if err != nil {
		return nil, fmt.Errorf("cannot GenSecretKeyNew: %w", err)
	}

	p, err := sampling.UniformOddBitLength(kgen.prng, params.Etha)
	if err != nil {
		return nil, fmt.Errorf("cannot GenSecretKeyNew: %w", translateEntropyErr(err))
	}

	return &SecretKey{P: p, Etha: params.Etha, S: s, L: l}, nil
}

// GenPublicKeyNew generates the PublicKey matching sk (spec.md §4.1).
func (kgen *KeyGenerator) GenPublicKeyNew(sk *SecretKey) (*PublicKey, error) {
	if err := checkSecretKey(sk); err != nil {
		return nil, fmt.Errorf("cannot GenPublicKeyNew: %w", err)
	}

	params, err := NewParameters(sk.S, sk.L)
	if err != nil {
		return nil, fmt.Errorf("cannot GenPublicKeyNew: %w", err)
	}

	u := computeU(params.Gamma, sk.P)

	one := bigint.FromInt64(1)
	uMinusOne := bigint.Sub(u, one)

	q0, err := sampling.UniformOddBetween(kgen.prng, one, uMinusOne)
	if err != nil {
		return nil, fmt.Errorf("cannot GenPublicKeyNew: %w", translateEntropyErr(err))
	}

	x := bigint.Mul(q0, sk.P)

	return &PublicKey{X: x, Gamma: params.Gamma, S: sk.S, L: sk.L}, nil
}

// GenKeyPairNew generates a matching (SecretKey, PublicKey) pair.
func (kgen *KeyGenerator) GenKeyPairNew(s, l int) (*SecretKey, *PublicKey, error) {
	sk, err := kgen.GenSecretKeyNew(s, l)
	if err != nil {
		return nil, nil, err
	}
	pk, err := kgen.GenPublicKeyNew(sk)
	if err != nil {
		return nil, nil, err
	}
	return sk, pk, nil
}

// computeU returns ceil(2^gamma / p). FromBitLength(n) returns 2^(n-1),
// so FromBitLength(gamma+1) is exactly 2^gamma.
func computeU(gamma int, p bigint.Int) bigint.Int {
	twoGamma := bigint.FromBitLength(gamma + 1)
	return bigint.CeilDiv(twoGamma, p)
}

// translateEntropyErr maps a sampling-package entropy error onto this
// package's sentinel so callers checking errors.Is(err,
// dghv.ErrEntropyUnavailable) see a consistent taxonomy regardless of
// which internal package the failure originated in. Non-entropy
// sampling errors (e.g. an empty range) are passed through unchanged.
func translateEntropyErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sampling.ErrEntropyUnavailable) {
		return fmt.Errorf("%w", ErrEntropyUnavailable)
	}
	return err
}
