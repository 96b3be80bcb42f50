package dghv

import (
	"fmt"

	"github.com/andronat/libshe/internal/bigint"
	"github.com/andronat/libshe/internal/sampling"
)

// Encryptor encrypts bit vectors under a (PublicKey, SecretKey) pair.
// It caches U = ceil(2^Gamma/p) at construction time so Encrypt never
// recomputes it inside the per-bit loop (spec.md §4.2).
type Encryptor struct {
	prng sampling.PRNG
	pk   *PublicKey
	sk   *SecretKey
	u    bigint.Int
}

// NewEncryptor validates pk and sk and returns an Encryptor, matching
// core/rlwe.NewEncryptorSecretKey's validate-then-store pattern.
func NewEncryptor(pk *PublicKey, sk *SecretKey) (*Encryptor, error) {
	return newEncryptor(sampling.New(), pk, sk)
}

// NewEncryptorWithPRNG is NewEncryptor with an explicit PRNG, for
// deterministic/seeded tests.
func NewEncryptorWithPRNG(prng sampling.PRNG, pk *PublicKey, sk *SecretKey) (*Encryptor, error) {
	return newEncryptor(prng, pk, sk)
}

func newEncryptor(prng sampling.PRNG, pk *PublicKey, sk *SecretKey) (*Encryptor, error) {
	if err := checkPublicKey(pk); err != nil {
		return nil, fmt.Errorf("cannot NewEncryptor: %w", err)
	}
	if err := checkSecretKey(sk); err != nil {
		return nil, fmt.Errorf("cannot NewEncryptor: %w", err)
	}
	if pk.L != sk.L || pk.S != sk.S {
		return nil, fmt.Errorf("cannot NewEncryptor: public/secret key parameter mismatch (pk.L=%d sk.L=%d pk.S=%d sk.S=%d): %w",
			pk.L, sk.L, pk.S, sk.S, ErrShapeMismatch)
	}

	u := computeU(pk.Gamma, sk.P)

	return &Encryptor{prng: prng, pk: pk, sk: sk, u: u}, nil
}

// Encrypt encrypts the bit vector m, producing one ciphertext element
// per bit (spec.md §4.2).
func (e *Encryptor) Encrypt(m []bool) (*Ciphertext, error) {
	if m == nil {
		return nil, fmt.Errorf("cannot Encrypt: m is nil: %w", ErrParameterInvalid)
	}

	elements := make([]bigint.Int, len(m))

	one := bigint.FromInt64(1)
	uMinusOne := bigint.Sub(e.u, one)
	twoSMinusOne := bigint.Sub(bigint.FromBitLength(e.sk.S+1), one)

	for i, bit := range m {
		q, err := sampling.UniformBetween(e.prng, one, uMinusOne)
		if err != nil {
			return nil, fmt.Errorf("cannot Encrypt: %w", translateEntropyErr(err))
		}

		r, err := sampling.UniformBetween(e.prng, one, twoSMinusOne)
		if err != nil {
			return nil, fmt.Errorf("cannot Encrypt: %w", translateEntropyErr(err))
		}

		qp := bigint.Mul(q, e.sk.P)
		twoR := bigint.Mul(bigint.FromInt64(2), r)
		sum := bigint.Add(qp, twoR)
		if bit {
			sum = bigint.Add(sum, one)
		}

		elements[i] = bigint.Mod(sum, e.pk.X)
	}

	return &Ciphertext{Elements: elements}, nil
}
