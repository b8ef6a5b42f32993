package binaural

import "github.com/tphakala/simd/c128"

// spectralConvolver multiplies a window spectrum by the cached HRIR spectrum
// of one ear and compensates the unnormalized transform pair.
type spectralConvolver struct {
	cache *irCache
	gain  complex128 // 1/fftSize
}

func newSpectralConvolver(cache *irCache, fftSize int) *spectralConvolver {
	return &spectralConvolver{
		cache: cache,
		gain:  complex(1/float64(fftSize), 0),
	}
}

// apply writes spectrum * H[channel] / fftSize into dst. dst and spectrum
// must not overlap. Non-finite bins are passed through as they are.
func (c *spectralConvolver) apply(dst, spectrum []complex128, channel int) {
	c128.Mul(dst, spectrum, c.cache.spectrumFor(channel))
	c128.Scale(dst, dst, c.gain)
}
