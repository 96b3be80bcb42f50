// Package diagnostics collects statistics over sampled ciphertext noise
// magnitudes. It is test-and-reporting tooling only: nothing on the
// encrypt/decrypt/evaluate call path imports it.
package diagnostics

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// NoiseStats summarizes a batch of noise magnitudes (bit lengths of the
// centered remainder c mod p, typically) sampled across repeated
// encryptions.
type NoiseStats struct {
	Mean   float64
	StdDev float64
	Max    float64
}

// Summarize computes NoiseStats over samples. It returns an error if
// samples is empty.
func Summarize(samples []float64) (NoiseStats, error) {
	if len(samples) == 0 {
		return NoiseStats{}, fmt.Errorf("diagnostics: no samples to summarize")
	}

	data := stats.Float64Data(samples)

	mean, err := data.Mean()
	if err != nil {
		return NoiseStats{}, fmt.Errorf("diagnostics: cannot compute mean: %w", err)
	}

	stddev, err := data.StandardDeviation()
	if err != nil {
		return NoiseStats{}, fmt.Errorf("diagnostics: cannot compute standard deviation: %w", err)
	}

	max, err := data.Max()
	if err != nil {
		return NoiseStats{}, fmt.Errorf("diagnostics: cannot compute max: %w", err)
	}

	return NoiseStats{Mean: mean, StdDev: stddev, Max: max}, nil
}

// WithinBudget reports whether every sample is at most budgetBits,
// the noise-budget ceiling implied by the scheme's security parameter.
func WithinBudget(samples []float64, budgetBits float64) bool {
	for _, s := range samples {
		if s > budgetBits {
			return false
		}
	}
	return true
}
