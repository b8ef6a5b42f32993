package binaural

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/tphakala/simd/f32"
)

// Channels is the number of output channels: one per ear.
const Channels = 2

// State is the renderer life-cycle stage.
type State int32

const (
	// StateUninitialized means no impulse response has been committed yet.
	StateUninitialized State = iota
	// StateReady means buffers and an impulse response are in place.
	StateReady
	// StateProcessing means at least one window has been convolved.
	StateProcessing
	// StateReset means buffers were cleared by Reset.
	StateReset
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateProcessing:
		return "processing"
	case StateReset:
		return "reset"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Renderer convolves a stereo stream with an HRIR pair using a
// single-partition STFT overlap-add scheme.
type Renderer struct {
	cfg     config
	fftSize int
	latency int

	transform Transform
	cache     *irCache
	conv      *spectralConvolver
	sched     *windowScheduler

	spectrum []complex128
	product  []complex128

	mailbox irMailbox
	current *ImpulseResponse // last committed, owned by the processing side

	stereo [Channels][]float32

	state       atomic.Int32
	gainBits    atomic.Uint32
	appliedGain float32
}

// NewRenderer builds a renderer. If a FilterSource is configured, its
// response for the configured sample rate is committed immediately and the
// renderer starts in StateReady.
func NewRenderer(opts ...Option) (*Renderer, error) {
	cfg := defaultConfig()
	if err := cfg.apply(opts); err != nil {
		return nil, err
	}

	r := &Renderer{}
	if err := r.configure(cfg, nil); err != nil {
		return nil, err
	}

	gain := dbToGain(cfg.gainDB)
	r.gainBits.Store(math.Float32bits(gain))
	r.appliedGain = gain

	return r, nil
}

// configure validates cfg, pulls the initial response and rebuilds all
// buffers. fallback is recommitted when no source is configured and its
// length still fits.
func (r *Renderer) configure(cfg config, fallback *ImpulseResponse) error {
	var initial *ImpulseResponse

	if cfg.source != nil {
		ir, err := cfg.source.ImpulseResponse(cfg.sampleRate)
		if err != nil {
			return fmt.Errorf("binaural: filter source failed: %w", err)
		}
		n := ir.Len()
		if n < 0 {
			return fmt.Errorf("%w: left=%d right=%d", ErrFilterLenMismatch, len(ir.Left), len(ir.Right))
		}
		if !cfg.filterLenSet {
			if n == 0 {
				return fmt.Errorf("%w: source returned an empty response", ErrInvalidFilterLen)
			}
			cfg.filterLen = n
		}
		if err := ir.Validate(cfg.filterLen); err != nil {
			return err
		}
		cp := ir.Clone()
		initial = &cp
	} else if fallback != nil && fallback.Len() == cfg.filterLen {
		initial = fallback
	}

	fftSize := FFTSize(cfg.windowSize, cfg.filterLen)
	t, err := NewTransform(fftSize, cfg.transform)
	if err != nil {
		return err
	}

	bins := fftSize/2 + 1
	cache := newIRCache(cfg.filterLen, fftSize)

	r.cfg = cfg
	r.fftSize = fftSize
	r.latency = LatencySamples(cfg.windowSize, cfg.filterLen)
	r.transform = t
	r.cache = cache
	r.conv = newSpectralConvolver(cache, fftSize)
	r.spectrum = make([]complex128, bins)
	r.product = make([]complex128, bins)
	r.sched = newWindowScheduler(Channels, cfg.windowSize, fftSize, r.convolveWindow, r.commitPending)
	r.mailbox.clear()
	r.current = nil
	r.state.Store(int32(StateUninitialized))

	if initial != nil {
		if err := cache.update(t, initial); err != nil {
			return fmt.Errorf("binaural: impulse response transform failed: %w", err)
		}
		r.current = initial
		r.state.Store(int32(StateReady))
	}

	return nil
}

// Reconfigure applies opts on top of the current configuration and rebuilds
// the transform, the cache and the scheduler; the reported latency follows
// the new window and filter length. It must not run concurrently with
// processing.
func (r *Renderer) Reconfigure(opts ...Option) error {
	cfg := r.cfg
	if err := cfg.apply(opts); err != nil {
		return err
	}
	return r.configure(cfg, r.current)
}

// SetImpulseResponse publishes a new HRIR pair from the control context.
// It is picked up before the next window is convolved.
func (r *Renderer) SetImpulseResponse(ir ImpulseResponse) error {
	if err := ir.Validate(r.cfg.filterLen); err != nil {
		return err
	}
	cp := ir.Clone()
	r.mailbox.post(&cp)
	return nil
}

// Refresh asks the filter source for the response of its current direction
// and publishes it. Call it from the control context after the direction
// changed.
func (r *Renderer) Refresh() error {
	if r.cfg.source == nil {
		return ErrNoFilterSource
	}
	ir, err := r.cfg.source.ImpulseResponse(r.cfg.sampleRate)
	if err != nil {
		return fmt.Errorf("binaural: filter source failed: %w", err)
	}
	return r.SetImpulseResponse(ir)
}

// SetOutputGainDB sets the post-convolution gain from the control context.
// The processing side ramps to it over the next block.
func (r *Renderer) SetOutputGainDB(db float64) error {
	if err := validateGainDB(db); err != nil {
		return err
	}
	r.gainBits.Store(math.Float32bits(dbToGain(db)))
	return nil
}

// Process renders block in place. block holds one slice per ear, all of the
// same length; the length may change from call to call.
func (r *Renderer) Process(block [][]float32) error {
	if len(block) != Channels {
		return ErrChannelMismatch
	}
	if len(block[Left]) != len(block[Right]) {
		return ErrLengthMismatch
	}
	if !r.cache.valid && !r.mailbox.hasPending() {
		return ErrNotReady
	}
	if State(r.state.Load()) == StateReset {
		r.state.Store(int32(StateReady))
	}

	if err := r.sched.process(block); err != nil {
		return err
	}
	r.applyGain(block)

	return nil
}

// ProcessStereo renders left and right in place.
func (r *Renderer) ProcessStereo(left, right []float32) error {
	r.stereo[Left], r.stereo[Right] = left, right
	err := r.Process(r.stereo[:])
	r.stereo[Left], r.stereo[Right] = nil, nil
	return err
}

// ProcessMono feeds mono to both ears and writes the binaural result to
// left and right. All three slices must have the same length.
func (r *Renderer) ProcessMono(mono, left, right []float32) error {
	if len(left) != len(mono) || len(right) != len(mono) {
		return ErrLengthMismatch
	}
	copy(left, mono)
	copy(right, mono)
	return r.ProcessStereo(left, right)
}

// Reset clears windows, overlap tails and the block position after a
// transport discontinuity. The committed impulse response and the latency
// are kept.
func (r *Renderer) Reset() {
	r.sched.reset()
	if r.cache.valid {
		r.state.Store(int32(StateReset))
	}
}

// commitPending runs at every window boundary, before any channel of the
// window is convolved.
func (r *Renderer) commitPending() error {
	if ir := r.mailbox.take(); ir != nil {
		if ir.Len() != r.cfg.filterLen {
			return ErrFilterLenMismatch
		}
		if err := r.cache.update(r.transform, ir); err != nil {
			return err
		}
		r.current = ir
	}
	if !r.cache.valid {
		return ErrNotReady
	}
	r.state.Store(int32(StateProcessing))
	return nil
}

func (r *Renderer) convolveWindow(channel int, dst, src []float64) error {
	if err := r.transform.Forward(r.spectrum, src); err != nil {
		return err
	}
	r.conv.apply(r.product, r.spectrum, channel)
	return r.transform.Inverse(dst, r.product)
}

func (r *Renderer) applyGain(block [][]float32) {
	target := math.Float32frombits(r.gainBits.Load())
	n := len(block[Left])

	if target == r.appliedGain || n == 0 {
		if target != 1 {
			for _, ch := range block {
				f32.Scale(ch, ch, target)
			}
		}
		return
	}

	// Sample i of n gets start + (target-start)*(i+1)/n; the last one is
	// exactly target.
	start := r.appliedGain
	step := (target - start) / float32(n)
	for _, ch := range block {
		for i := range ch[:n-1] {
			ch[i] *= start + step*float32(i+1)
		}
		ch[n-1] *= target
	}
	r.appliedGain = target
}

// LatencySamples returns the delay a host should compensate.
func (r *Renderer) LatencySamples() int { return r.latency }

// WindowSize returns the analysis window length.
func (r *Renderer) WindowSize() int { return r.cfg.windowSize }

// FilterLen returns the HRIR length in taps.
func (r *Renderer) FilterLen() int { return r.cfg.filterLen }

// FFTSize returns the transform size.
func (r *Renderer) FFTSize() int { return r.fftSize }

// SampleRate returns the configured sample rate.
func (r *Renderer) SampleRate() float64 { return r.cfg.sampleRate }

// Transform returns the transform in use.
func (r *Renderer) Transform() Transform { return r.transform }

// State returns the current life-cycle stage.
func (r *Renderer) State() State { return State(r.state.Load()) }
