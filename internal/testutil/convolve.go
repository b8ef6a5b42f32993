package testutil

import (
	vecmath "github.com/cwbudde/algo-vecmath"
)

// Convolve returns the full linear convolution of x and h,
// len(x)+len(h)-1 samples, computed directly in the time domain.
func Convolve(x, h []float64) []float64 {
	if len(x) == 0 || len(h) == 0 {
		return nil
	}

	out := make([]float64, len(x)+len(h)-1)
	scaled := make([]float64, len(h))
	for i, v := range x {
		vecmath.ScaleBlock(scaled, h, v)
		vecmath.AddBlockInPlace(out[i:i+len(h)], scaled)
	}
	return out
}

// Stream feeds left and right to process in consecutive blocks whose sizes
// cycle through sizes, the way a host with a varying buffer size would.
func Stream(process func(block [][]float32) error, left, right []float32, sizes []int) error {
	block := make([][]float32, 2)
	for start, i := 0, 0; start < len(left); i++ {
		n := min(sizes[i%len(sizes)], len(left)-start)
		block[0] = left[start : start+n]
		block[1] = right[start : start+n]
		if err := process(block); err != nil {
			return err
		}
		start += n
	}
	return nil
}
