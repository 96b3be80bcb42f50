package dghv

import "errors"

// Error taxonomy (spec.md §7). Callers distinguish failure kinds with
// errors.Is against these sentinels; every returned error is wrapped
// with fmt.Errorf("cannot <Func>: %w", ...) at the point of failure, so
// the sentinel survives unwrapping.
var (
	// ErrParameterInvalid covers zero s or l, negative sizes, and nil
	// inputs.
	ErrParameterInvalid = errors.New("dghv: invalid parameter")

	// ErrShapeMismatch covers disagreeing ciphertext lengths in
	// XORMany, |a| < row width in SumProd, |g| < entry count in Dot,
	// and pk.L != sk.L or pk.S != sk.S at encryption.
	ErrShapeMismatch = errors.New("dghv: shape mismatch")

	// ErrEntropyUnavailable is returned when the operating system's
	// entropy source cannot be read.
	ErrEntropyUnavailable = errors.New("dghv: entropy source unavailable")
)
