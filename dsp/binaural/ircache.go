package binaural

import "fmt"

// Channel indices for the two ears.
const (
	Left  = 0
	Right = 1
)

// ImpulseResponse is an HRIR pair for one direction and sample rate.
// The renderer copies it on submission; callers may reuse their slices.
type ImpulseResponse struct {
	Left  []float64
	Right []float64
}

// Len returns the filter length, or -1 if the ears differ in length.
func (ir ImpulseResponse) Len() int {
	if len(ir.Left) != len(ir.Right) {
		return -1
	}
	return len(ir.Left)
}

// Validate checks that both ears hold exactly filterLen taps.
func (ir ImpulseResponse) Validate(filterLen int) error {
	if len(ir.Left) != filterLen || len(ir.Right) != filterLen {
		return fmt.Errorf("%w: want %d taps per ear, got left=%d right=%d",
			ErrFilterLenMismatch, filterLen, len(ir.Left), len(ir.Right))
	}
	return nil
}

// Clone returns a deep copy.
func (ir ImpulseResponse) Clone() ImpulseResponse {
	return ImpulseResponse{
		Left:  append([]float64(nil), ir.Left...),
		Right: append([]float64(nil), ir.Right...),
	}
}

// irCache holds the zero-padded forward transforms of the current HRIR pair.
type irCache struct {
	filterLen int
	padded    []float64
	spectra   [2][]complex128
	valid     bool
}

func newIRCache(filterLen, fftSize int) *irCache {
	bins := fftSize/2 + 1
	return &irCache{
		filterLen: filterLen,
		padded:    make([]float64, fftSize),
		spectra:   [2][]complex128{make([]complex128, bins), make([]complex128, bins)},
	}
}

// update replaces both cached spectra. It runs on the processing side, at a
// window boundary, so readers never observe a half-written pair.
func (c *irCache) update(t Transform, ir *ImpulseResponse) error {
	for ch, taps := range [2][]float64{ir.Left, ir.Right} {
		n := copy(c.padded, taps[:c.filterLen])
		clear(c.padded[n:])
		if err := t.Forward(c.spectra[ch], c.padded); err != nil {
			return err
		}
	}
	c.valid = true
	return nil
}

// spectrumFor returns the cached spectrum of an ear. It must not be called
// before the first update.
func (c *irCache) spectrumFor(channel int) []complex128 {
	return c.spectra[channel]
}
