package binaural

import (
	"fmt"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// TransformKind selects the FFT implementation behind a [Transform].
type TransformKind int

const (
	// TransformAuto uses the radix-2 plan for power-of-two sizes and the
	// mixed-radix transform otherwise.
	TransformAuto TransformKind = iota
	// TransformRadix2 requires a power-of-two size.
	TransformRadix2
	// TransformMixedRadix accepts any positive size.
	TransformMixedRadix
)

// String returns the option name of the kind.
func (k TransformKind) String() string {
	switch k {
	case TransformAuto:
		return "auto"
	case TransformRadix2:
		return "radix2"
	case TransformMixedRadix:
		return "mixed-radix"
	default:
		return fmt.Sprintf("TransformKind(%d)", int(k))
	}
}

func validTransformKind(k TransformKind) bool {
	switch k {
	case TransformAuto, TransformRadix2, TransformMixedRadix:
		return true
	default:
		return false
	}
}

// Transform is a fixed-size real FFT pair working on preallocated buffers.
//
// Forward maps Len() real samples to Len()/2+1 bins, Inverse maps them back.
// The pair is not normalized: Inverse(Forward(x)) equals Len()*x, and the
// caller applies the 1/Len() compensation.
type Transform interface {
	Len() int
	Forward(dst []complex128, src []float64) error
	Inverse(dst []float64, src []complex128) error
}

// NewTransform returns the transform of size n for the requested kind.
// The strategy is resolved here once and never per block.
func NewTransform(n int, kind TransformKind) (Transform, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedTransformSize, n)
	}

	switch kind {
	case TransformRadix2:
		if !isPowerOf2(n) {
			return nil, fmt.Errorf("%w: radix-2 needs a power of two, got %d", ErrUnsupportedTransformSize, n)
		}
		return newRadix2Transform(n)
	case TransformMixedRadix:
		return newFourierTransform(n), nil
	case TransformAuto:
		if isPowerOf2(n) {
			if t, err := newRadix2Transform(n); err == nil {
				return t, nil
			}
		}
		return newFourierTransform(n), nil
	default:
		return nil, fmt.Errorf("binaural: unknown transform kind %d", int(kind))
	}
}

func isPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func checkTransformLens(n, bins, samples int) error {
	if bins != n/2+1 || samples != n {
		return ErrLengthMismatch
	}
	return nil
}

// fourierTransform wraps gonum's real FFT, which is unnormalized already.
type fourierTransform struct {
	n   int
	fft *fourier.FFT
}

func newFourierTransform(n int) *fourierTransform {
	return &fourierTransform{n: n, fft: fourier.NewFFT(n)}
}

func (t *fourierTransform) Len() int { return t.n }

func (t *fourierTransform) Forward(dst []complex128, src []float64) error {
	if err := checkTransformLens(t.n, len(dst), len(src)); err != nil {
		return err
	}
	t.fft.Coefficients(dst, src)
	return nil
}

func (t *fourierTransform) Inverse(dst []float64, src []complex128) error {
	if err := checkTransformLens(t.n, len(src), len(dst)); err != nil {
		return err
	}
	t.fft.Sequence(dst, src)
	return nil
}

// radix2Transform runs a real transform on algo-fft's complex plan. The
// spectrum is mirrored to full length for the inverse and the real part
// rescaled so the pair matches the unnormalized contract.
type radix2Transform struct {
	n     int
	plan  *algofft.Plan[complex128]
	in    []complex128
	out   []complex128
	scale float64
}

func newRadix2Transform(n int) (*radix2Transform, error) {
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("%w: %d: %w", ErrUnsupportedTransformSize, n, err)
	}

	t := &radix2Transform{
		n:    n,
		plan: plan,
		in:   make([]complex128, n),
		out:  make([]complex128, n),
	}

	// Calibrate against the plan's own inverse scaling: an all-ones spectrum
	// is a unit impulse, which the unnormalized inverse returns as n.
	for i := range t.in {
		t.in[i] = 1
	}
	if err := plan.Inverse(t.out, t.in); err != nil {
		return nil, fmt.Errorf("%w: %d: %w", ErrUnsupportedTransformSize, n, err)
	}
	peak := real(t.out[0])
	if peak == 0 {
		return nil, fmt.Errorf("%w: %d: degenerate inverse", ErrUnsupportedTransformSize, n)
	}
	t.scale = float64(n) / peak

	return t, nil
}

func (t *radix2Transform) Len() int { return t.n }

func (t *radix2Transform) Forward(dst []complex128, src []float64) error {
	if err := checkTransformLens(t.n, len(dst), len(src)); err != nil {
		return err
	}

	for i, v := range src {
		t.in[i] = complex(v, 0)
	}
	if err := t.plan.Forward(t.out, t.in); err != nil {
		return err
	}
	copy(dst, t.out[:len(dst)])

	return nil
}

func (t *radix2Transform) Inverse(dst []float64, src []complex128) error {
	if err := checkTransformLens(t.n, len(src), len(dst)); err != nil {
		return err
	}

	half := t.n / 2
	t.in[0] = src[0]
	for k := 1; k < half; k++ {
		t.in[k] = src[k]
		t.in[t.n-k] = cmplx.Conj(src[k])
	}
	if half > 0 {
		t.in[half] = src[half]
	}

	if err := t.plan.Inverse(t.out, t.in); err != nil {
		return err
	}
	for i := range dst {
		dst[i] = real(t.out[i]) * t.scale
	}

	return nil
}
