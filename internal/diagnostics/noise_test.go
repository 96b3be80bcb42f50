package diagnostics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andronat/libshe/internal/diagnostics"
)

func TestSummarize(t *testing.T) {
	s, err := diagnostics.Summarize([]float64{58, 59, 60, 61, 62})
	require.NoError(t, err)
	require.InDelta(t, 60, s.Mean, 0.001)
	require.Equal(t, 62.0, s.Max)
}

func TestSummarizeEmpty(t *testing.T) {
	_, err := diagnostics.Summarize(nil)
	require.Error(t, err)
}

func TestWithinBudget(t *testing.T) {
	require.True(t, diagnostics.WithinBudget([]float64{10, 20, 30}, 30))
	require.False(t, diagnostics.WithinBudget([]float64{10, 20, 31}, 30))
}
