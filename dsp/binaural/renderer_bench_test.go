package binaural

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-binaural/internal/testutil"
)

func BenchmarkRendererProcessStereo(b *testing.B) {
	configs := []struct {
		window, filterLen, block int
	}{
		{64, 33, 64},
		{64, 33, 512},
		{128, 129, 256},
		{256, 256, 1024},
	}

	for _, cfg := range configs {
		name := fmt.Sprintf("w%d_f%d_b%d", cfg.window, cfg.filterLen, cfg.block)
		b.Run(name, func(b *testing.B) {
			r, err := NewRenderer(WithWindowSize(cfg.window), WithFilterLen(cfg.filterLen))
			if err != nil {
				b.Fatal(err)
			}
			if err := r.SetImpulseResponse(testIR(1, cfg.filterLen)); err != nil {
				b.Fatal(err)
			}

			left := testutil.Noise[float32](1, 1, cfg.block)
			right := testutil.Noise[float32](2, 1, cfg.block)

			b.SetBytes(int64(cfg.block * Channels * 4))
			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				if err := r.ProcessStereo(left, right); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkIRCacheUpdate(b *testing.B) {
	for _, filterLen := range []int{33, 128, 512} {
		b.Run(fmt.Sprintf("f%d", filterLen), func(b *testing.B) {
			fftSize := FFTSize(64, filterLen)
			tr, err := NewTransform(fftSize, TransformAuto)
			if err != nil {
				b.Fatal(err)
			}
			c := newIRCache(filterLen, fftSize)
			ir := testIR(1, filterLen)

			b.ReportAllocs()
			b.ResetTimer()
			for range b.N {
				if err := c.update(tr, &ir); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
