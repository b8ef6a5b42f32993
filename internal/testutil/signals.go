// Package testutil holds deterministic signals, a reference convolution and
// tolerance checks shared by the package tests.
package testutil

import (
	"math"
	"math/rand"

	"golang.org/x/exp/constraints"
)

// Sine generates a deterministic sine wave.
func Sine[F constraints.Float](freqHz, sampleRate, amplitude float64, length int) []F {
	out := make([]F, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = F(amplitude * math.Sin(step*float64(i)))
	}
	return out
}

// Noise generates white noise with a fixed seed for reproducibility.
func Noise[F constraints.Float](seed int64, amplitude float64, length int) []F {
	out := make([]F, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = F((rng.Float64()*2 - 1) * amplitude)
	}
	return out
}

// Impulse generates a unit impulse at pos.
func Impulse[F constraints.Float](length, pos int) []F {
	out := make([]F, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DecayingNoise generates a noise burst with an exponential envelope, a
// stand-in for a measured HRIR.
func DecayingNoise(seed int64, length int, tau float64) []float64 {
	out := Noise[float64](seed, 1, length)
	for i := range out {
		out[i] *= math.Exp(-float64(i) / tau)
	}
	return out
}

// Convert copies src into a new slice of another float type.
func Convert[T, F constraints.Float](src []F) []T {
	out := make([]T, len(src))
	for i, v := range src {
		out[i] = T(v)
	}
	return out
}

// Delay returns x shifted right by d samples, truncated to len(x).
func Delay[F constraints.Float](x []F, d int) []F {
	out := make([]F, len(x))
	if d < len(x) {
		copy(out[d:], x)
	}
	return out
}
