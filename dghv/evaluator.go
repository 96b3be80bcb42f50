package dghv

import (
	"fmt"

	"github.com/andronat/libshe/internal/bigint"
	"github.com/andronat/libshe/shard"
)

// reduceEvery governs how often XORMany reduces its running sum modulo
// x (spec.md §4.4: "every 5 additions... a performance heuristic, not a
// correctness constraint"). Any schedule that reduces often enough to
// bound per-element size and rarely enough that division cost doesn't
// dominate is acceptable (spec.md §9); 5 matches the number the spec
// names.
const reduceEvery = 5

// Evaluator runs the homomorphic operators XORMany, SumProd and Dot
// against a PublicKey's modulus. It holds no secret material: these
// operators are the server-side circuit evaluation of spec.md §4.4-4.6.
type Evaluator struct {
	pk *PublicKey
}

// NewEvaluator validates pk and returns an Evaluator.
func NewEvaluator(pk *PublicKey) (*Evaluator, error) {
	if err := checkPublicKey(pk); err != nil {
		return nil, fmt.Errorf("cannot NewEvaluator: %w", err)
	}
	return &Evaluator{pk: pk}, nil
}

// XORMany computes the elementwise homomorphic XOR of n ciphertexts,
// each of length m (spec.md §4.4). The additive accumulator is reduced
// modulo x every reduceEvery additions, and once more after the final
// addition, keeping intermediate operands near the size of x.
func (ev *Evaluator) XORMany(cs []*Ciphertext, n, m int) (*Ciphertext, error) {
	if n <= 0 || m <= 0 {
		return nil, fmt.Errorf("cannot XORMany: n=%d m=%d: %w", n, m, ErrParameterInvalid)
	}
	if cs == nil {
		return nil, fmt.Errorf("cannot XORMany: cs is nil: %w", ErrParameterInvalid)
	}
	if len(cs) != n {
		return nil, fmt.Errorf("cannot XORMany: len(cs)=%d != n=%d: %w", len(cs), n, ErrShapeMismatch)
	}
	for i, c := range cs {
		if c == nil || c.Len() != m {
			return nil, fmt.Errorf("cannot XORMany: cs[%d] has length %d, want %d: %w", i, c.Len(), m, ErrShapeMismatch)
		}
	}

	out := make([]bigint.Int, m)

	for j := 0; j < m; j++ {
		acc := bigint.Zero()
		for i := 0; i < n; i++ {
			acc = bigint.Add(acc, cs[i].Elements[j])
			if (i+1)%reduceEvery == 0 {
				acc = bigint.Mod(acc, ev.pk.X)
			}
		}
		out[j] = bigint.Mod(acc, ev.pk.X)
	}

	return &Ciphertext{Elements: out}, nil
}

// SumProd computes, for each row i of B, the homomorphic AND-of-sums
// Π_j (a[j] + B[i][j] + 1), which decrypts to 1 exactly when row i
// equals the bits encrypted in a (spec.md §4.5; row-width indexing and
// "no final +1" per spec.md §9's resolution of the source ambiguity).
func (ev *Evaluator) SumProd(a *Ciphertext, b *shard.Shard) (*Ciphertext, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("cannot SumProd: nil input: %w", ErrParameterInvalid)
	}
	w := b.BitSize()
	if w == 0 {
		return nil, fmt.Errorf("cannot SumProd: shard has zero bits: %w", ErrParameterInvalid)
	}
	rowWidth := b.RowWidth()
	if a.Len() < rowWidth {
		return nil, fmt.Errorf("cannot SumProd: |a|=%d < row width %d: %w", a.Len(), rowWidth, ErrShapeMismatch)
	}

	one := bigint.FromInt64(1)
	rows := b.EntryCount()
	out := make([]bigint.Int, rows)

	for i := 0; i < rows; i++ {
		acc := one
		for j := 0; j < rowWidth; j++ {
			beta, err := b.GetBit(i, j)
			if err != nil {
				return nil, fmt.Errorf("cannot SumProd: %w", err)
			}

			term := a.Elements[j]
			if term.Cmp(ev.pk.X) >= 0 {
				term = bigint.Mod(term, ev.pk.X)
			}
			if beta {
				term = bigint.Add(term, one)
			}
			term = bigint.Add(term, one)

			if acc.Cmp(ev.pk.X) >= 0 {
				acc = bigint.Mod(acc, ev.pk.X)
			}

			acc = bigint.Mod(bigint.Mul(acc, term), ev.pk.X)
		}
		out[i] = bigint.Mod(acc, ev.pk.X)
	}

	return &Ciphertext{Elements: out}, nil
}

// Dot computes the homomorphic server response for a PIR query: for
// each column j of B, the XOR-sum of g[i] over rows i where B[i][j]==1
// (spec.md §4.6).
func (ev *Evaluator) Dot(g *Ciphertext, b *shard.Shard) (*Ciphertext, error) {
	if g == nil || b == nil {
		return nil, fmt.Errorf("cannot Dot: nil input: %w", ErrParameterInvalid)
	}
	if b.BitSize() == 0 {
		return nil, fmt.Errorf("cannot Dot: shard has zero bits: %w", ErrParameterInvalid)
	}
	rows := b.EntryCount()
	if g.Len() < rows {
		return nil, fmt.Errorf("cannot Dot: |g|=%d < entry count %d: %w", g.Len(), rows, ErrShapeMismatch)
	}

	rowWidth := b.RowWidth()
	out := make([]bigint.Int, rowWidth)

	for j := 0; j < rowWidth; j++ {
		acc := bigint.Zero()
		count := 0
		for i := 0; i < rows; i++ {
			bit, err := b.GetBit(i, j)
			if err != nil {
				return nil, fmt.Errorf("cannot Dot: %w", err)
			}
			if !bit {
				continue
			}
			acc = bigint.Add(acc, g.Elements[i])
			count++
			if count%reduceEvery == 0 {
				acc = bigint.Mod(acc, ev.pk.X)
			}
		}
		out[j] = bigint.Mod(acc, ev.pk.X)
	}

	return &Ciphertext{Elements: out}, nil
}
