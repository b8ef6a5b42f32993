package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvolve(t *testing.T) {
	got := Convolve([]float64{1, 2, 3}, []float64{1, 0.5})
	assert.InDeltaSlice(t, []float64{1, 2.5, 4, 1.5}, got, 1e-12)
	assert.Nil(t, Convolve(nil, []float64{1}))
}

func TestStreamCyclesBlockSizes(t *testing.T) {
	left := make([]float32, 10)
	right := make([]float32, 10)

	var sizes []int
	err := Stream(func(block [][]float32) error {
		require.Len(t, block[0], len(block[1]))
		sizes = append(sizes, len(block[0]))
		return nil
	}, left, right, []int{3, 1})

	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 3, 1, 2}, sizes)
}
