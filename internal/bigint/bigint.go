// Package bigint is a thin facade over math/big's arbitrary-precision
// integers, exposing exactly the operations the DGHV scheme needs:
// construction from small integers and from a bit length, addition,
// multiplication, Euclidean (non-negative) modulo, ceiling division,
// base-62 text encoding, and parity.
package bigint

import (
	"fmt"
	"math/big"
)

// base62Alphabet is the set of characters Parse accepts as base-62
// digits. Only membership is checked against it; the digit values come
// from math/big, which orders digits, then lowercase, then uppercase.
const base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Int wraps a *big.Int to keep callers from reaching for math/big
// directly outside this package.
type Int struct {
	v *big.Int
}

// FromInt64 builds an Int from a small signed integer.
func FromInt64(n int64) Int {
	return Int{v: big.NewInt(n)}
}

// Zero returns the additive identity.
func Zero() Int {
	return Int{v: new(big.Int)}
}

// FromBitLength returns 2^(n-1), the smallest integer whose binary
// representation is exactly n bits long (MSB at position n-1).
func FromBitLength(n int) Int {
	v := new(big.Int).Lsh(big.NewInt(1), uint(n-1))
	return Int{v: v}
}

// Add returns a+b.
func Add(a, b Int) Int {
	return Int{v: new(big.Int).Add(a.v, b.v)}
}

// Mul returns a*b.
func Mul(a, b Int) Int {
	return Int{v: new(big.Int).Mul(a.v, b.v)}
}

// Mod returns the non-negative Euclidean remainder of a divided by m.
// m must be positive. A negative remainder here would flip the
// plaintext bit on decryption (spec requirement).
func Mod(a, m Int) Int {
	r := new(big.Int).Mod(a.v, m.v)
	return Int{v: r}
}

// CeilDiv returns ceil(a/b) for positive a, b.
func CeilDiv(a, b Int) Int {
	q, r := new(big.Int), new(big.Int)
	q.DivMod(a.v, b.v, r)
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return Int{v: q}
}

// Sub returns a-b.
func Sub(a, b Int) Int {
	return Int{v: new(big.Int).Sub(a.v, b.v)}
}

// IsOdd reports whether the integer's least significant bit is set.
func (x Int) IsOdd() bool {
	return x.v.Bit(0) == 1
}

// Sign returns -1, 0 or +1 depending on the sign of x.
func (x Int) Sign() int {
	return x.v.Sign()
}

// Cmp compares x and y, returning -1, 0 or +1.
func (x Int) Cmp(y Int) int {
	return x.v.Cmp(y.v)
}

// BitLen returns the length of the absolute value of x in bits.
func (x Int) BitLen() int {
	return x.v.BitLen()
}

// Bit returns the value of the i-th bit of x, counting from the LSB.
func (x Int) Bit(i int) uint {
	return x.v.Bit(i)
}

// SetBit returns a copy of x with bit i set to value (0 or 1).
func (x Int) SetBit(i int, value uint) Int {
	return Int{v: new(big.Int).SetBit(x.v, i, value)}
}

// Big exposes the underlying *big.Int for callers (internal/sampling)
// that must interoperate with math/big's own random-generation helpers.
func (x Int) Big() *big.Int {
	return x.v
}

// FromBig wraps an existing *big.Int. The caller must not mutate v
// afterwards; Int values are meant to be treated as immutable.
func FromBig(v *big.Int) Int {
	return Int{v: v}
}

// Text encodes x in base 62 with math/big's digit values: '0'-'9' are
// 0-9, 'a'-'z' are 10-35 and 'A'-'Z' are 36-61. It does not use the
// digits < uppercase < lowercase order. x must be non-negative; the
// scheme never serializes a negative value.
func (x Int) Text() string {
	if x.v.Sign() < 0 {
		panic("bigint: Text called on a negative value")
	}
	return x.v.Text(62)
}

// Parse decodes a base-62 string produced by Text back into an Int.
func Parse(s string) (Int, error) {
	if s == "" {
		return Int{}, fmt.Errorf("bigint: cannot parse empty string")
	}
	for _, r := range s {
		if !isBase62Digit(r) {
			return Int{}, fmt.Errorf("bigint: invalid base-62 digit %q", r)
		}
	}
	v, ok := new(big.Int).SetString(s, 62)
	if !ok {
		return Int{}, fmt.Errorf("bigint: cannot parse %q as base-62", s)
	}
	return Int{v: v}, nil
}

func isBase62Digit(r rune) bool {
	for _, c := range base62Alphabet {
		if c == r {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer for debugging; it is not the wire
// format (use Text for that).
func (x Int) String() string {
	return x.v.String()
}
