// Package dghv implements the somewhat-homomorphic bit-encryption
// scheme of spec.md: parameterized key generation, encryption,
// decryption, and the three homomorphic operators (XORMany, SumProd,
// Dot) that evaluate a blindstore-style PIR circuit over ciphertexts
// produced by this package.
package dghv

import (
	"fmt"
	"math/big"

	"github.com/ALTree/bigfloat"
	"github.com/google/go-cmp/cmp"

	"github.com/andronat/libshe/internal/bigint"
)

// Parameters holds the two user-chosen integers (S, L) together with
// the bit lengths they derive (Etha, Gamma), per spec.md §3.
type Parameters struct {
	// S is the security parameter governing encryption noise magnitude.
	S int
	// L is the supported input bit length.
	L int
	// Etha is the bit length of the private scalar p: (S+3)*L.
	Etha int
	// Gamma is the bit length of the public modulus x: 5*(S+3)*L/2
	// (integer division).
	Gamma int
}

// NewParameters validates s and l and derives Etha and Gamma.
func NewParameters(s, l int) (Parameters, error) {
	if s <= 0 || l <= 0 {
		return Parameters{}, fmt.Errorf("cannot NewParameters: s=%d l=%d: %w", s, l, ErrParameterInvalid)
	}

	etha := (s + 3) * l
	gamma := 5 * (s + 3) * l / 2

	return Parameters{S: s, L: l, Etha: etha, Gamma: gamma}, nil
}

// Equal reports whether p and other derive the same (Etha, Gamma) from
// the same (S, L), matching bootstrapping.Parameters.Equal's use of
// cmp.Equal to compare configuration structs field by field.
func (p Parameters) Equal(other Parameters) bool {
	return cmp.Equal(p, other)
}

// EstimateNoiseMarginBits reports, in bits, how much headroom the
// configured parameters leave between the maximum possible value of
// 2r+m (spec.md §4.2 correctness requirement: 2r+m < p/2) and p/2
// itself. A positive, large margin means correctness holds with
// overwhelming probability; a margin near zero is a sign the (s, l)
// choice is too aggressive. This is a diagnostic only — it does not
// gate key generation or encryption.
//
// The computation uses arbitrary-precision floating point (rather than
// integer bit-length comparisons) because it reports a fractional bit
// margin, not just a yes/no bound: log2(p/2) - log2(2^(s+1)) gives a
// continuous quality signal that an integer BitLen() comparison cannot.
func (p Parameters) EstimateNoiseMarginBits() float64 {
	// p has exactly Etha bits, so p/2 has at least Etha-1 bits: use the
	// minimum possible p (2^(Etha-1)) for a conservative (worst-case)
	// margin estimate.
	pMin := bigint.FromBitLength(p.Etha)

	pMinFloat := new(big.Float).SetPrec(256).SetInt(pMin.Big())
	half := new(big.Float).SetPrec(256).SetFloat64(0.5)
	pHalf := new(big.Float).SetPrec(256).Mul(pMinFloat, half)

	log2PHalf, _ := bigfloat.Log2(pHalf).Float64()

	// 2r+m is bounded by 2*(2^s - 1) + 1 < 2^(s+1): s+1 bits suffices as
	// the noise-side comparison point.
	noiseBits := float64(p.S + 1)

	return log2PHalf - noiseBits
}
