package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRupeesToPaise(t *testing.T) {
	require.EqualValues(t, 10000, RupeesToPaise(100))
	require.EqualValues(t, 9999, RupeesToPaise(99.99))
	require.EqualValues(t, 10, RupeesToPaise(0.10))
	require.EqualValues(t, 0, RupeesToPaise(0))
}

func TestFormatINR(t *testing.T) {
	got := FormatINR(10000)
	require.Contains(t, got, "₹")
	require.Contains(t, got, "100")
	require.Contains(t, got, ".00")

	require.Contains(t, FormatINR(9999), "99.99")
}
