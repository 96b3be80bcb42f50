// Package shard implements the plaintext shard: the server-owned bit
// matrix that the homomorphic operators read from. Rows are owned by
// copy (spec.md §9 "Plaintext shard API"): once appended, a row is
// independent of the caller's backing slice.
package shard

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Shard is an ordered sequence of equal-width bit vectors stored
// row-major, with O(1) access by (row, column).
type Shard struct {
	rowWidth int
	rows     [][]bool
}

// New creates an empty Shard whose rows must all have width rowWidth.
func New(rowWidth int) (*Shard, error) {
	if rowWidth <= 0 {
		return nil, fmt.Errorf("shard: row width must be positive, got %d", rowWidth)
	}
	return &Shard{rowWidth: rowWidth}, nil
}

// RowWidth returns the fixed width shared by every row.
func (s *Shard) RowWidth() int {
	return s.rowWidth
}

// EntryCount returns the number of rows currently stored.
func (s *Shard) EntryCount() int {
	return len(s.rows)
}

// BitSize returns the total number of bits across all rows.
func (s *Shard) BitSize() int {
	return len(s.rows) * s.rowWidth
}

// AppendRow appends a copy of bits as a new row. bits must have exactly
// RowWidth() entries.
func (s *Shard) AppendRow(bits []bool) error {
	if len(bits) != s.rowWidth {
		return fmt.Errorf("shard: cannot append row of width %d, shard row width is %d", len(bits), s.rowWidth)
	}
	s.rows = append(s.rows, slices.Clone(bits))
	return nil
}

// UpdateRow replaces row i with a copy of bits. bits must have exactly
// RowWidth() entries; shrinking or extending the row width on update is
// a caller error (spec.md §3 invariant).
func (s *Shard) UpdateRow(i int, bits []bool) error {
	if i < 0 || i >= len(s.rows) {
		return fmt.Errorf("shard: row index %d out of range [0, %d)", i, len(s.rows))
	}
	if len(bits) != s.rowWidth {
		return fmt.Errorf("shard: cannot update row to width %d, shard row width is %d", len(bits), s.rowWidth)
	}
	s.rows[i] = slices.Clone(bits)
	return nil
}

// GetBit returns the bit at (row, column).
func (s *Shard) GetBit(row, column int) (bool, error) {
	if row < 0 || row >= len(s.rows) {
		return false, fmt.Errorf("shard: row index %d out of range [0, %d)", row, len(s.rows))
	}
	if column < 0 || column >= s.rowWidth {
		return false, fmt.Errorf("shard: column index %d out of range [0, %d)", column, s.rowWidth)
	}
	return s.rows[row][column], nil
}

// Equal reports whether two shards have the same row width and rows.
func (s *Shard) Equal(other *Shard) bool {
	if s.rowWidth != other.rowWidth || len(s.rows) != len(other.rows) {
		return false
	}
	for i := range s.rows {
		if !slices.Equal(s.rows[i], other.rows[i]) {
			return false
		}
	}
	return true
}
