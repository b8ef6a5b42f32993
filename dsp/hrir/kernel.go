package hrir

import (
	"math"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/window"
)

const (
	// sincHalfWidth is the number of taps on each side of the delay's
	// nearest integer tap.
	sincHalfWidth = 8

	shadowMinAlpha = 0.1
	shadowMinAngle = 150.0
)

// fractionalDelay writes a Blackman-windowed sinc delayed by d samples
// into dst. Taps falling outside dst are dropped.
func fractionalDelay(dst []float64, d float64) {
	clear(dst)

	taper := make([]float64, 2*sincHalfWidth+1)
	for i := range taper {
		taper[i] = 1
	}
	window.Blackman(taper)

	m := int(math.Round(d))
	for j := -sincHalfWidth; j <= sincHalfWidth; j++ {
		n := m + j
		if n < 0 || n >= len(dst) {
			continue
		}
		dst[n] = sinc(float64(n)-d) * taper[j+sincHalfWidth]
	}
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// headShadow filters buf in place with the Brown-Duda one-pole one-zero
// shadow model, discretized with the bilinear transform. w0 is c/a in rad/s
// and theta the incidence angle in degrees (0 faces the ear).
func headShadow(buf []float64, sampleRate, w0, theta float64) {
	alpha := (1 + shadowMinAlpha/2) +
		(1-shadowMinAlpha/2)*math.Cos(theta/shadowMinAngle*math.Pi)

	k := 2 * sampleRate
	norm := 2*w0 + k
	b0 := (2*w0 + alpha*k) / norm
	b1 := (2*w0 - alpha*k) / norm
	a1 := (2*w0 - k) / norm

	var x1, y1 float64
	for i, x := range buf {
		y := b0*x + b1*x1 - a1*y1
		x1, y1 = x, y
		buf[i] = y
	}
}

// normalizeDC scales buf so its taps sum to one.
func normalizeDC(buf []float64) {
	sum := f64.Sum(buf)
	if sum == 0 {
		return
	}
	f64.Scale(buf, buf, 1/sum)
}
