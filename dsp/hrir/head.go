package hrir

import (
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-binaural/dsp/binaural"
)

const (
	defaultHeadRadius   = 0.0875
	defaultSpeedOfSound = 343.0
	minHeadRadius       = 0.04
	maxHeadRadius       = 0.175
	minSpeedOfSound     = 300.0
	maxSpeedOfSound     = 370.0
	maxElevation        = 90.0
)

// Direction is a source position relative to the listener, in degrees.
// Azimuth 0 is straight ahead and +90 is to the right; elevation +90 is
// straight up.
type Direction struct {
	Azimuth   float64
	Elevation float64
}

// Validate reports whether d can be rendered.
func (d Direction) Validate() error {
	if math.IsNaN(d.Azimuth) || math.IsInf(d.Azimuth, 0) {
		return fmt.Errorf("hrir: azimuth must be finite: %f", d.Azimuth)
	}
	if d.Elevation < -maxElevation || d.Elevation > maxElevation || math.IsNaN(d.Elevation) {
		return fmt.Errorf("hrir: elevation must be in [-90, 90]: %f", d.Elevation)
	}
	return nil
}

// lateral returns the sine of the angle between the source and the
// median plane, positive to the right.
func (d Direction) lateral() float64 {
	az := d.Azimuth * math.Pi / 180
	el := d.Elevation * math.Pi / 180
	return math.Sin(az) * math.Cos(el)
}

// Option mutates SphericalHead construction parameters.
type Option func(*headConfig) error

type headConfig struct {
	radius       float64
	speedOfSound float64
	shadow       bool
	direction    Direction
}

func defaultHeadConfig() headConfig {
	return headConfig{
		radius:       defaultHeadRadius,
		speedOfSound: defaultSpeedOfSound,
		shadow:       true,
	}
}

// WithHeadRadius sets the sphere radius in meters.
func WithHeadRadius(radius float64) Option {
	return func(cfg *headConfig) error {
		if radius < minHeadRadius || radius > maxHeadRadius ||
			math.IsNaN(radius) || math.IsInf(radius, 0) {
			return fmt.Errorf("hrir: head radius must be in [%g, %g]: %f",
				minHeadRadius, maxHeadRadius, radius)
		}
		cfg.radius = radius
		return nil
	}
}

// WithSpeedOfSound sets the speed of sound in m/s.
func WithSpeedOfSound(speed float64) Option {
	return func(cfg *headConfig) error {
		if speed < minSpeedOfSound || speed > maxSpeedOfSound ||
			math.IsNaN(speed) || math.IsInf(speed, 0) {
			return fmt.Errorf("hrir: speed of sound must be in [%g, %g]: %f",
				minSpeedOfSound, maxSpeedOfSound, speed)
		}
		cfg.speedOfSound = speed
		return nil
	}
}

// WithHeadShadow toggles the per-ear head-shadow filter. Without it each
// ear is a pure delay.
func WithHeadShadow(enabled bool) Option {
	return func(cfg *headConfig) error {
		cfg.shadow = enabled
		return nil
	}
}

// WithDirection sets the initial source direction.
func WithDirection(d Direction) Option {
	return func(cfg *headConfig) error {
		if err := d.Validate(); err != nil {
			return err
		}
		cfg.direction = d
		return nil
	}
}

// SphericalHead is a rigid-sphere HRIR model. SetDirection and
// ImpulseResponse may be called from different goroutines.
type SphericalHead struct {
	radius       float64
	speedOfSound float64
	shadow       bool

	mu        sync.Mutex
	direction Direction
}

var _ binaural.FilterSource = (*SphericalHead)(nil)

// NewSphericalHead creates a head model facing Direction{} unless
// WithDirection says otherwise.
func NewSphericalHead(opts ...Option) (*SphericalHead, error) {
	cfg := defaultHeadConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &SphericalHead{
		radius:       cfg.radius,
		speedOfSound: cfg.speedOfSound,
		shadow:       cfg.shadow,
		direction:    cfg.direction,
	}, nil
}

// SetDirection changes the direction used by the next ImpulseResponse call.
func (h *SphericalHead) SetDirection(d Direction) error {
	if err := d.Validate(); err != nil {
		return err
	}
	h.mu.Lock()
	h.direction = d
	h.mu.Unlock()
	return nil
}

// Direction returns the current direction.
func (h *SphericalHead) Direction() Direction {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.direction
}

// MaxITD returns the largest interaural time difference in seconds,
// reached for a source on the interaural axis.
func (h *SphericalHead) MaxITD() float64 {
	return woodworthITD(h.radius, h.speedOfSound, 1)
}

// FilterLen returns the odd number of taps ImpulseResponse produces at
// sampleRate: half the largest ITD plus the sinc support on each side of
// the centre tap.
func (h *SphericalHead) FilterLen(sampleRate float64) int {
	half := int(math.Ceil(h.MaxITD()*sampleRate/2)) + sincHalfWidth + 1
	return 2*half + 1
}

// ImpulseResponse renders the current direction at sampleRate.
func (h *SphericalHead) ImpulseResponse(sampleRate float64) (binaural.ImpulseResponse, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return binaural.ImpulseResponse{}, fmt.Errorf("hrir: sample rate must be > 0 and finite: %f", sampleRate)
	}

	lat := h.Direction().lateral()
	n := h.FilterLen(sampleRate)
	center := float64(n-1) / 2
	// Positive ITD means the source is on the right, so the left ear lags.
	half := woodworthITD(h.radius, h.speedOfSound, lat) * sampleRate / 2

	ir := binaural.ImpulseResponse{
		Left:  make([]float64, n),
		Right: make([]float64, n),
	}
	fractionalDelay(ir.Left, center+half)
	fractionalDelay(ir.Right, center-half)

	if h.shadow {
		w0 := h.speedOfSound / h.radius
		// The ear axis points at azimuth +90 for the right ear.
		headShadow(ir.Left, sampleRate, w0, incidence(-lat))
		headShadow(ir.Right, sampleRate, w0, incidence(lat))
	}

	normalizeDC(ir.Left)
	normalizeDC(ir.Right)

	return ir, nil
}

// woodworthITD returns the arrival time difference in seconds for a source
// whose lateral sine is lat.
func woodworthITD(radius, speed, lat float64) float64 {
	phi := math.Asin(math.Max(-1, math.Min(1, lat)))
	return radius / speed * (phi + math.Sin(phi))
}

// incidence returns the angle in degrees between the source and an ear
// axis whose lateral sine toward the source is lat.
func incidence(lat float64) float64 {
	return math.Acos(math.Max(-1, math.Min(1, lat))) * 180 / math.Pi
}
