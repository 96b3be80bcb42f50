// Package sampling provides the cryptographically secure random source
// required by key generation and encryption: uniform integers over
// [a,b], uniform odd integers over [a,b], and uniform integers (odd or
// not) with an exact bit length.
package sampling

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"math/big"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/hkdf"

	"github.com/andronat/libshe/internal/bigint"
)

// PRNG is a reusable source of uniform random bytes. The default
// implementation (New) reseeds itself from the operating system's
// entropy pool on every draw, per spec.md §2; a single PRNG instance may
// be reused across many draws without losing that property because the
// reseed happens inside Read, not at construction time.
type PRNG interface {
	io.Reader
}

// osPRNG reads directly from the operating system's CSPRNG. It carries
// no state of its own: every Read is a fresh call into crypto/rand.
type osPRNG struct{}

// New returns the default, OS-entropy-backed PRNG.
func New() PRNG {
	return osPRNG{}
}

func (osPRNG) Read(p []byte) (int, error) {
	n, err := io.ReadFull(rand.Reader, p)
	if err != nil {
		return n, fmt.Errorf("sampling: cannot read operating system entropy source: %w", ErrEntropyUnavailable)
	}
	return n, nil
}

// ErrEntropyUnavailable is returned (wrapped) when the operating
// system's entropy source cannot be read.
var ErrEntropyUnavailable = fmt.Errorf("entropy source unavailable")

// keyedPRNG is a deterministic, reproducible PRNG used only by tests
// that need golden/seeded vectors. It expands a fixed key into an
// unbounded byte stream using HKDF (to derive the stream's sub-key from
// the caller-supplied master key, per the "one CSPRNG, reseeded from a
// derived context" design note of spec.md §9) followed by a keyed
// BLAKE3 XOF (the actual stream expansion), mirroring lattigo's
// ring.NewCRPGenerator keyed-hash CRS generator.
type keyedPRNG struct {
	stream io.Reader
}

// NewKeyed returns a deterministic PRNG seeded from key. Two keyedPRNG
// instances built from the same key produce identical output streams.
// Not used on the production encrypt/keygen path; exported for test
// reproducibility only.
func NewKeyed(key []byte) (PRNG, error) {
	streamKey := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, key, nil, []byte("libshe-sampling-prng")), streamKey); err != nil {
		return nil, fmt.Errorf("sampling: cannot derive stream key: %w", err)
	}

	h, err := blake3.NewKeyed(streamKey)
	if err != nil {
		return nil, fmt.Errorf("sampling: cannot initialize keyed digest: %w", err)
	}

	// blake3.Digest is itself an unbounded XOF stream: successive Read
	// calls continue the same stream, so no re-seeding is needed between
	// draws.
	return &keyedPRNG{stream: h.Digest()}, nil
}

func (k *keyedPRNG) Read(p []byte) (int, error) {
	n, err := io.ReadFull(k.stream, p)
	if err != nil {
		return n, fmt.Errorf("sampling: keyed PRNG read failed: %w", err)
	}
	return n, nil
}

// UniformBetween draws a uniform random integer in the closed interval
// [a, b] using rejection sampling over the smallest byte range that
// covers b-a.
func UniformBetween(prng PRNG, a, b bigint.Int) (bigint.Int, error) {
	if b.Cmp(a) < 0 {
		return bigint.Int{}, fmt.Errorf("sampling: invalid range [%s, %s]", a.String(), b.String())
	}
	span := new(big.Int).Sub(b.Big(), a.Big())
	span.Add(span, big.NewInt(1))

	v, err := uniformBigInt(prng, span)
	if err != nil {
		return bigint.Int{}, err
	}
	v.Add(v, a.Big())
	return bigint.FromBig(v), nil
}

// UniformOddBetween draws a uniform odd integer in [a, b] by drawing a
// uniform integer over the odd values of that range directly: the odd
// integers in [a,b] are in bijection with [0, (b-a_odd)/2] via
// k -> a_odd + 2k, where a_odd is a rounded up to the next odd value.
func UniformOddBetween(prng PRNG, a, b bigint.Int) (bigint.Int, error) {
	if b.Cmp(a) < 0 {
		return bigint.Int{}, fmt.Errorf("sampling: invalid range [%s, %s]", a.String(), b.String())
	}

	aOdd := new(big.Int).Set(a.Big())
	if aOdd.Bit(0) == 0 {
		aOdd.Add(aOdd, big.NewInt(1))
	}
	if aOdd.Cmp(b.Big()) > 0 {
		return bigint.Int{}, fmt.Errorf("sampling: no odd integer in [%s, %s]", a.String(), b.String())
	}

	span := new(big.Int).Sub(b.Big(), aOdd)
	span.Rsh(span, 1)
	span.Add(span, big.NewInt(1))

	k, err := uniformBigInt(prng, span)
	if err != nil {
		return bigint.Int{}, err
	}

	k.Lsh(k, 1)
	k.Add(k, aOdd)
	return bigint.FromBig(k), nil
}

// UniformBitLength draws a uniform random integer with exactly n bits:
// the top bit is forced to 1 and the remaining n-1 bits are uniform.
func UniformBitLength(prng PRNG, n int) (bigint.Int, error) {
	if n <= 0 {
		return bigint.Int{}, fmt.Errorf("sampling: bit length must be positive, got %d", n)
	}

	buf := make([]byte, (n+7)/8)
	if _, err := prng.Read(buf); err != nil {
		return bigint.Int{}, err
	}

	v := new(big.Int).SetBytes(buf)
	v.SetBit(v, n-1, 1)

	// Clear any bits above position n-1 introduced by byte padding.
	mask := new(big.Int).Lsh(big.NewInt(1), uint(n))
	mask.Sub(mask, big.NewInt(1))
	v.And(v, mask)
	v.SetBit(v, n-1, 1)

	return bigint.FromBig(v), nil
}

// UniformOddBitLength draws a uniform random odd integer with exactly n
// bits: both the top bit and the bottom bit are forced to 1. Forcing two
// fixed bit positions of an otherwise-uniform n-bit string still yields
// a uniform distribution over the 2^(n-2) integers satisfying both
// constraints, so no rejection loop is needed (spec.md §4.1, §9 "parity
// draw-and-reject loop").
func UniformOddBitLength(prng PRNG, n int) (bigint.Int, error) {
	if n <= 1 {
		return bigint.Int{}, fmt.Errorf("sampling: odd bit length must be at least 2, got %d", n)
	}

	v, err := UniformBitLength(prng, n)
	if err != nil {
		return bigint.Int{}, err
	}

	return v.SetBit(0, 1), nil
}

// uniformBigInt draws a uniform integer in [0, span) using
// crypto/rand.Int's rejection sampling, reading its bytes from prng.
func uniformBigInt(prng PRNG, span *big.Int) (*big.Int, error) {
	if span.Sign() <= 0 {
		return nil, fmt.Errorf("sampling: non-positive span")
	}
	v, err := rand.Int(readerFunc(prng.Read), span)
	if err != nil {
		return nil, fmt.Errorf("sampling: %w", ErrEntropyUnavailable)
	}
	return v, nil
}

// readerFunc adapts a Read method to an io.Reader so it can be passed to
// crypto/rand.Int, which only requires an io.Reader.
type readerFunc func(p []byte) (int, error)

func (f readerFunc) Read(p []byte) (int, error) { return f(p) }
