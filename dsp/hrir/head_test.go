package hrir

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-binaural/dsp/binaural"
)

func argMaxAbs(x []float64) int {
	best := 0
	for i, v := range x {
		if math.Abs(v) > math.Abs(x[best]) {
			best = i
		}
	}
	return best
}

func energy(x []float64) float64 {
	var e float64
	for _, v := range x {
		e += v * v
	}
	return e
}

func sum(x []float64) float64 {
	var s float64
	for _, v := range x {
		s += v
	}
	return s
}

func renderAt(t *testing.T, d Direction, opts ...Option) binaural.ImpulseResponse {
	t.Helper()
	h, err := NewSphericalHead(append(opts, WithDirection(d))...)
	require.NoError(t, err)
	ir, err := h.ImpulseResponse(48000)
	require.NoError(t, err)
	return ir
}

func TestSphericalHeadFilterLen(t *testing.T) {
	h, err := NewSphericalHead()
	require.NoError(t, err)

	assert.InDelta(t, 6.558e-4, h.MaxITD(), 1e-6)
	assert.Equal(t, 49, h.FilterLen(44100))
	assert.Equal(t, 51, h.FilterLen(48000))
	assert.Equal(t, 83, h.FilterLen(96000))

	ir, err := h.ImpulseResponse(96000)
	require.NoError(t, err)
	assert.Equal(t, 83, ir.Len())
}

func TestSphericalHeadFrontIsSymmetric(t *testing.T) {
	for _, d := range []Direction{{}, {Elevation: 90}, {Elevation: -45}} {
		ir := renderAt(t, d)
		assert.Equal(t, ir.Left, ir.Right, "%+v", d)
		assert.Equal(t, 25, argMaxAbs(ir.Left), "%+v", d)
	}

	back := renderAt(t, Direction{Azimuth: 180})
	for i := range back.Left {
		assert.InDelta(t, back.Left[i], back.Right[i], 1e-12)
	}
}

func TestSphericalHeadLateralSource(t *testing.T) {
	ir := renderAt(t, Direction{Azimuth: 90})

	// The right ear hears the source first and louder.
	assert.Less(t, argMaxAbs(ir.Right), 25)
	assert.Greater(t, argMaxAbs(ir.Left), 25)
	assert.Greater(t, energy(ir.Right), 4*energy(ir.Left))

	left := renderAt(t, Direction{Azimuth: -90})
	assert.Greater(t, energy(left.Left), 4*energy(left.Right))
}

func TestSphericalHeadMirrorSymmetry(t *testing.T) {
	for _, az := range []float64{10, 30, 75, 120} {
		pos := renderAt(t, Direction{Azimuth: az, Elevation: 20})
		neg := renderAt(t, Direction{Azimuth: -az, Elevation: 20})
		for i := range pos.Left {
			assert.InDelta(t, pos.Left[i], neg.Right[i], 1e-12, "az=%g tap %d", az, i)
			assert.InDelta(t, pos.Right[i], neg.Left[i], 1e-12, "az=%g tap %d", az, i)
		}
	}
}

func TestSphericalHeadUnityDCGain(t *testing.T) {
	for _, az := range []float64{0, 30, 90, -135} {
		ir := renderAt(t, Direction{Azimuth: az})
		assert.InDelta(t, 1.0, sum(ir.Left), 1e-9, "az=%g", az)
		assert.InDelta(t, 1.0, sum(ir.Right), 1e-9, "az=%g", az)
	}
}

func TestSphericalHeadWithoutShadowIsPureDelay(t *testing.T) {
	ir := renderAt(t, Direction{}, WithHeadShadow(false))

	// An integer delay reduces the windowed sinc to a single tap.
	want := make([]float64, 51)
	want[25] = 1
	for i := range want {
		assert.InDelta(t, want[i], ir.Left[i], 1e-12, "tap %d", i)
	}
}

func TestSphericalHeadITDGrowsWithRadius(t *testing.T) {
	small, err := NewSphericalHead(WithHeadRadius(0.06))
	require.NoError(t, err)
	large, err := NewSphericalHead(WithHeadRadius(0.12))
	require.NoError(t, err)

	assert.Less(t, small.MaxITD(), large.MaxITD())
	assert.Less(t, small.FilterLen(48000), large.FilterLen(48000))
}

func TestSphericalHeadOptionValidation(t *testing.T) {
	bad := []Option{
		WithHeadRadius(0.01),
		WithHeadRadius(math.NaN()),
		WithSpeedOfSound(100),
		WithSpeedOfSound(math.Inf(1)),
		WithDirection(Direction{Elevation: 91}),
		WithDirection(Direction{Azimuth: math.NaN()}),
	}
	for i, opt := range bad {
		_, err := NewSphericalHead(opt)
		assert.Error(t, err, "option %d", i)
	}

	h, err := NewSphericalHead(nil)
	require.NoError(t, err)
	assert.Equal(t, Direction{}, h.Direction())

	_, err = h.ImpulseResponse(0)
	assert.Error(t, err)
	_, err = h.ImpulseResponse(math.NaN())
	assert.Error(t, err)
}

func TestSphericalHeadSetDirection(t *testing.T) {
	h, err := NewSphericalHead()
	require.NoError(t, err)

	require.NoError(t, h.SetDirection(Direction{Azimuth: 45, Elevation: 10}))
	assert.Equal(t, Direction{Azimuth: 45, Elevation: 10}, h.Direction())

	assert.Error(t, h.SetDirection(Direction{Elevation: -120}))
	assert.Equal(t, Direction{Azimuth: 45, Elevation: 10}, h.Direction())
}

func TestSphericalHeadConcurrentUse(t *testing.T) {
	h, err := NewSphericalHead()
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := range 200 {
			_ = h.SetDirection(Direction{Azimuth: float64(i)})
		}
	}()
	go func() {
		defer wg.Done()
		for range 50 {
			ir, err := h.ImpulseResponse(48000)
			if err != nil || ir.Len() != 51 {
				t.Errorf("unexpected response: len=%d err=%v", ir.Len(), err)
				return
			}
		}
	}()
	wg.Wait()
}

func TestSphericalHeadDrivesRenderer(t *testing.T) {
	h, err := NewSphericalHead(WithDirection(Direction{Azimuth: 60}))
	require.NoError(t, err)

	r, err := binaural.NewRenderer(binaural.WithFilterSource(h), binaural.WithWindowSize(64))
	require.NoError(t, err)
	assert.Equal(t, 51, r.FilterLen())
	assert.Equal(t, 64+25, r.LatencySamples())
	assert.Equal(t, binaural.StateReady, r.State())

	left := make([]float32, 256)
	right := make([]float32, 256)
	left[0], right[0] = 1, 1
	require.NoError(t, r.ProcessStereo(left, right))

	// Right leads left for a source on the right.
	assert.Less(t, argMaxAbs32(right), argMaxAbs32(left))

	require.NoError(t, h.SetDirection(Direction{Azimuth: -60}))
	require.NoError(t, r.Refresh())

	require.NoError(t, r.Reconfigure(binaural.WithSampleRate(96000)))
	assert.Equal(t, 83, r.FilterLen())
}

func argMaxAbs32(x []float32) int {
	best := 0
	for i, v := range x {
		if math.Abs(float64(v)) > math.Abs(float64(x[best])) {
			best = i
		}
	}
	return best
}
