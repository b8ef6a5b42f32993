package binaural

import (
	"fmt"
	"math"
)

const (
	defaultWindowSize = 64
	defaultFilterLen  = 33
	defaultSampleRate = 48000.0
	minGainDB         = -30.0
	maxGainDB         = 30.0
)

// FilterSource supplies the HRIR pair for the current direction at a sample
// rate. How a direction maps to taps is entirely up to the implementation.
type FilterSource interface {
	ImpulseResponse(sampleRate float64) (ImpulseResponse, error)
}

// Option mutates renderer construction parameters.
type Option func(*config) error

type config struct {
	windowSize   int
	filterLen    int
	filterLenSet bool
	sampleRate   float64
	transform    TransformKind
	source       FilterSource
	gainDB       float64
}

func defaultConfig() config {
	return config{
		windowSize: defaultWindowSize,
		filterLen:  defaultFilterLen,
		sampleRate: defaultSampleRate,
		transform:  TransformAuto,
	}
}

func (cfg *config) apply(opts []Option) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return err
		}
	}
	return nil
}

// WithWindowSize sets the analysis window length in samples.
func WithWindowSize(n int) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidWindowSize, n)
		}
		cfg.windowSize = n
		return nil
	}
}

// WithFilterLen sets the HRIR length in taps. With a FilterSource the
// length is taken from the source unless set explicitly.
func WithFilterLen(n int) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidFilterLen, n)
		}
		cfg.filterLen = n
		cfg.filterLenSet = true
		return nil
	}
}

// WithSampleRate sets the sample rate passed to the filter source.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *config) error {
		if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
			return fmt.Errorf("binaural: sample rate must be > 0 and finite: %f", sampleRate)
		}
		cfg.sampleRate = sampleRate
		return nil
	}
}

// WithTransform selects the FFT implementation.
func WithTransform(kind TransformKind) Option {
	return func(cfg *config) error {
		if !validTransformKind(kind) {
			return fmt.Errorf("binaural: transform kind is invalid: %d", int(kind))
		}
		cfg.transform = kind
		return nil
	}
}

// WithFilterSource sets the provider queried at construction, on Refresh
// and on Reconfigure.
func WithFilterSource(src FilterSource) Option {
	return func(cfg *config) error {
		if src == nil {
			return fmt.Errorf("binaural: filter source must not be nil")
		}
		cfg.source = src
		return nil
	}
}

// WithOutputGainDB sets the initial output gain in dB, within [-30, 30].
func WithOutputGainDB(db float64) Option {
	return func(cfg *config) error {
		if err := validateGainDB(db); err != nil {
			return err
		}
		cfg.gainDB = db
		return nil
	}
}

func validateGainDB(db float64) error {
	if db < minGainDB || db > maxGainDB || math.IsNaN(db) {
		return fmt.Errorf("binaural: output gain must be in [%g, %g] dB: %f", minGainDB, maxGainDB, db)
	}
	return nil
}

func dbToGain(db float64) float32 {
	return float32(math.Pow(10, db/20))
}
