package dghv

import "github.com/andronat/libshe/internal/bigint"

// Ciphertext is an ordered sequence of big integers, one per encrypted
// plaintext bit (spec.md §3). No bound on its length is imposed by the
// type; XORMany, SumProd and Dot each constrain shapes at call time.
type Ciphertext struct {
	Elements []bigint.Int
}

// Len returns the number of elements in the ciphertext.
func (c *Ciphertext) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Elements)
}
