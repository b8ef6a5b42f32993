package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/cwbudde/algo-binaural/dsp/binaural"
	"github.com/cwbudde/algo-binaural/dsp/hrir"
)

var errInvalidBlockSize = errors.New("block size must be > 0")

func run(opts options) error {
	if opts.block <= 0 {
		return fmt.Errorf("%w: %d", errInvalidBlockSize, opts.block)
	}

	input, err := readMonoWAV(opts.in)
	if err != nil {
		return err
	}
	if opts.verbose {
		log.Printf("Input: %d Hz, %d channels, %d-bit, %d frames",
			input.rate, input.channels, input.bitDepth, len(input.samples))
	}

	head, err := hrir.NewSphericalHead(hrir.WithDirection(hrir.Direction{
		Azimuth:   opts.azimuth,
		Elevation: opts.elevation,
	}))
	if err != nil {
		return err
	}

	r, err := binaural.NewRenderer(
		binaural.WithFilterSource(head),
		binaural.WithSampleRate(float64(input.rate)),
		binaural.WithWindowSize(opts.window),
		binaural.WithOutputGainDB(opts.gainDB),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	if opts.verbose {
		log.Printf("Renderer: window=%d filter=%d fft=%d latency=%d block=%d",
			r.WindowSize(), r.FilterLen(), r.FFTSize(), r.LatencySamples(), opts.block)
	}

	left, right, err := render(r, input.samples, opts.block)
	if err != nil {
		return fmt.Errorf("rendering failed: %w", err)
	}

	if err := writeStereoWAV(opts.out, left, right, input.rate, input.bitDepth); err != nil {
		return err
	}
	if opts.verbose {
		log.Printf("Wrote %d frames to %s", len(left), opts.out)
	}

	return nil
}

// render streams mono through r in host blocks of the given size, feeding
// silence after the input until the convolution tail is out. The first
// LatencySamples frames are dropped, which aligns the filter's centre tap
// with the input.
func render(r *binaural.Renderer, mono []float32, block int) (left, right []float32, err error) {
	latency := r.LatencySamples()
	filterLen := r.FilterLen()
	frames := len(mono) + filterLen - 1 - filterLen/2
	total := latency + frames

	left = make([]float32, total)
	right = make([]float32, total)
	chunk := make([]float32, block)

	for start := 0; start < total; start += block {
		end := min(start+block, total)
		in := chunk[:end-start]
		clear(in)
		if start < len(mono) {
			copy(in, mono[start:min(end, len(mono))])
		}

		if err := r.ProcessMono(in, left[start:end], right[start:end]); err != nil {
			return nil, nil, err
		}
	}

	return left[latency:], right[latency:], nil
}
