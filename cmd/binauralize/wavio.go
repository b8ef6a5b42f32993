package main

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/simd/f32"
)

const (
	bitsPerSample8  = 8
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	maxInt8  = 127.0
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	// 8-bit PCM is stored unsigned around this midpoint.
	uint8Offset = 128

	pcmFormat      = 1
	stereoChannels = 2
)

var errUnsupportedBitDepth = errors.New("unsupported bit depth")

type monoInput struct {
	samples  []float32
	rate     int
	channels int
	bitDepth int
}

// pcmScale maps integer PCM samples to [-1, 1]: x = (v - offset) / max.
type pcmScale struct {
	max    float64
	offset int
}

func scaleFor(bitDepth int) (pcmScale, error) {
	switch bitDepth {
	case bitsPerSample8:
		return pcmScale{max: maxInt8, offset: uint8Offset}, nil
	case bitsPerSample16:
		return pcmScale{max: maxInt16}, nil
	case bitsPerSample24:
		return pcmScale{max: maxInt24}, nil
	case bitsPerSample32:
		return pcmScale{max: maxInt32}, nil
	default:
		return pcmScale{}, fmt.Errorf("%w: %d", errUnsupportedBitDepth, bitDepth)
	}
}

// readMonoWAV decodes a PCM WAV file and averages its channels.
func readMonoWAV(path string) (*monoInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}

	channels := buf.Format.NumChannels
	bitDepth := int(decoder.BitDepth)
	scale, err := scaleFor(bitDepth)
	if err != nil {
		return nil, err
	}
	if channels <= 0 {
		return nil, fmt.Errorf("invalid channel count: %d", channels)
	}

	return &monoInput{
		samples:  downmix(buf.Data, channels, scale),
		rate:     buf.Format.SampleRate,
		channels: channels,
		bitDepth: bitDepth,
	}, nil
}

// downmix averages interleaved frames into normalized mono samples.
func downmix(data []int, channels int, scale pcmScale) []float32 {
	frames := len(data) / channels
	gain := 1 / (scale.max * float64(channels))
	out := make([]float32, frames)
	for i := range out {
		var sum int
		for _, v := range data[i*channels : (i+1)*channels] {
			sum += v - scale.offset
		}
		out[i] = float32(float64(sum) * gain)
	}
	return out
}

// writeStereoWAV interleaves left and right and writes them as PCM.
func writeStereoWAV(path string, left, right []float32, rate, bitDepth int) error {
	scale, err := scaleFor(bitDepth)
	if err != nil {
		return err
	}

	interleaved := make([]float32, 2*len(left))
	f32.Interleave2(interleaved, left, right)

	data := make([]int, len(interleaved))
	for i, v := range interleaved {
		data[i] = quantize(v, scale)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	enc := wav.NewEncoder(f, rate, bitDepth, stereoChannels, pcmFormat)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: stereoChannels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}

	return f.Close()
}

// quantize clips v to [-1, 1] and scales it to the integer range. NaN
// becomes silence.
func quantize(v float32, scale pcmScale) int {
	x := float64(v)
	if math.IsNaN(x) {
		return scale.offset
	}
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	return int(math.Round(x*scale.max)) + scale.offset
}
