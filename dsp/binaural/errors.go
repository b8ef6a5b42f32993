package binaural

import "errors"

// Errors returned by the renderer and its components.
var (
	ErrUnsupportedTransformSize = errors.New("binaural: unsupported transform size")
	ErrInvalidWindowSize        = errors.New("binaural: invalid window size")
	ErrInvalidFilterLen         = errors.New("binaural: invalid filter length")
	ErrFilterLenMismatch        = errors.New("binaural: impulse response length mismatch")
	ErrChannelMismatch          = errors.New("binaural: channel count mismatch")
	ErrLengthMismatch           = errors.New("binaural: channel length mismatch")
	ErrNotReady                 = errors.New("binaural: no impulse response committed")
	ErrNoFilterSource           = errors.New("binaural: no filter source configured")
)
