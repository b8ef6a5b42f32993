package hrir

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFractionalDelayIntegerIsImpulse(t *testing.T) {
	buf := make([]float64, 32)
	fractionalDelay(buf, 12)
	for i, v := range buf {
		want := 0.0
		if i == 12 {
			want = 1
		}
		assert.InDelta(t, want, v, 1e-15, "tap %d", i)
	}
}

func TestFractionalDelayCentroid(t *testing.T) {
	for _, d := range []float64{10.25, 10.5, 11.8} {
		buf := make([]float64, 32)
		fractionalDelay(buf, d)

		var num, den float64
		for i, v := range buf {
			num += float64(i) * v
			den += v
		}
		assert.InDelta(t, d, num/den, 0.05, "d=%g", d)
	}
}

func TestFractionalDelayClipsAtEdges(t *testing.T) {
	buf := make([]float64, 6)
	fractionalDelay(buf, 2.5)
	assert.NotZero(t, buf[0])
	assert.NotZero(t, buf[5])
}

func magnitudeAt(h []float64, freq, sampleRate float64) float64 {
	var sum complex128
	for n, v := range h {
		sum += complex(v, 0) * cmplx.Exp(complex(0, -2*math.Pi*freq*float64(n)/sampleRate))
	}
	return cmplx.Abs(sum)
}

func TestHeadShadowGain(t *testing.T) {
	const sampleRate = 48000.0
	w0 := defaultSpeedOfSound / defaultHeadRadius

	ipsi := make([]float64, 256)
	ipsi[0] = 1
	headShadow(ipsi, sampleRate, w0, 0)

	contra := make([]float64, 256)
	contra[0] = 1
	headShadow(contra, sampleRate, w0, 180)

	// Unity at DC, boost toward the ear, cut away from it.
	assert.InDelta(t, 1.0, magnitudeAt(ipsi, 0, sampleRate), 1e-3)
	assert.InDelta(t, 1.0, magnitudeAt(contra, 0, sampleRate), 1e-3)
	assert.Greater(t, magnitudeAt(ipsi, 8000, sampleRate), 1.5)
	assert.Less(t, magnitudeAt(contra, 8000, sampleRate), 0.5)
}

func TestNormalizeDC(t *testing.T) {
	buf := []float64{1, 2, 1}
	normalizeDC(buf)
	assert.InDeltaSlice(t, []float64{0.25, 0.5, 0.25}, buf, 1e-15)

	zero := []float64{1, -1}
	normalizeDC(zero)
	assert.Equal(t, []float64{1, -1}, zero)
}
