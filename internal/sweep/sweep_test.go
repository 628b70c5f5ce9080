package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSweep(t *testing.T) {
	rows := sweep(5, false)
	require.Len(t, rows, 6)
	for n, r := range rows {
		require.Equal(t, n, r.N)
		require.Equal(t, 1<<n, r.Nominal)
		require.LessOrEqual(t, r.Distinct, r.Nominal)
		require.Equal(t, r.Distinct/2, r.Pairs)
		require.Nil(t, r.Points)
	}
	require.Equal(t, 0, rows[0].Pairs)
	require.Equal(t, 80, rows[5].ClosePairCount)
}

func TestSweepClampsAndKeepsPoints(t *testing.T) {
	rows := sweep(-3, true)
	require.Len(t, rows, 1)
	require.Len(t, rows[0].Points, 1)
	require.Empty(t, rows[0].ClosePairs)
}
