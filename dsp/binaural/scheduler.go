package binaural

import (
	vecmath "github.com/cwbudde/algo-vecmath"
)

// windowStep filters one zero-padded window of a channel. src holds the
// window followed by zeros; dst receives fftSize time-domain samples.
type windowStep func(channel int, dst, src []float64) error

// windowScheduler turns host blocks of any length into fixed analysis
// windows and rebuilds a continuous output stream by overlap-add.
//
// Input sample t leaves the scheduler at t+window: a window is filtered as
// soon as its last sample arrives, and its first window output samples are
// played back while the next window fills.
type windowScheduler struct {
	channels int
	window   int
	fftSize  int

	pos int // fill position within the current window, shared by all channels

	in   [][]float64 // window being filled
	out  [][]float64 // filtered output being played back
	tail [][]float64 // overlap carried into later windows, fftSize-window long

	frame  []float64 // zero-padded analysis input
	result []float64 // filtered window

	step     windowStep
	boundary func() error
}

func newWindowScheduler(channels, window, fftSize int, step windowStep, boundary func() error) *windowScheduler {
	s := &windowScheduler{
		channels: channels,
		window:   window,
		fftSize:  fftSize,
		in:       make([][]float64, channels),
		out:      make([][]float64, channels),
		tail:     make([][]float64, channels),
		frame:    make([]float64, fftSize),
		result:   make([]float64, fftSize),
		step:     step,
		boundary: boundary,
	}
	for ch := range channels {
		s.in[ch] = make([]float64, window)
		s.out[ch] = make([]float64, window)
		s.tail[ch] = make([]float64, fftSize-window)
	}
	return s
}

// process consumes block in place. All channels must have equal length.
func (s *windowScheduler) process(block [][]float32) error {
	n := len(block[0])

	for done := 0; done < n; {
		chunk := min(n-done, s.window-s.pos)

		for ch, samples := range block {
			seg := samples[done : done+chunk]
			in := s.in[ch][s.pos : s.pos+chunk]
			out := s.out[ch][s.pos : s.pos+chunk]
			for i, v := range seg {
				in[i] = float64(v)
				seg[i] = float32(out[i])
			}
		}

		s.pos += chunk
		done += chunk

		if s.pos == s.window {
			if err := s.completeWindow(); err != nil {
				return err
			}
			s.pos = 0
		}
	}

	return nil
}

func (s *windowScheduler) completeWindow() error {
	if s.boundary != nil {
		if err := s.boundary(); err != nil {
			return err
		}
	}

	for ch := range s.channels {
		copy(s.frame, s.in[ch])
		clear(s.frame[s.window:])

		if err := s.step(ch, s.result, s.frame); err != nil {
			return err
		}
		s.overlapAdd(ch)
	}

	return nil
}

// overlapAdd combines the filtered window with the pending tail: the first
// window samples become the next playback block, the rest is carried.
func (s *windowScheduler) overlapAdd(ch int) {
	out, tail := s.out[ch], s.tail[ch]
	w, t := s.window, len(tail)

	copy(out, s.result[:w])
	k := min(w, t)
	vecmath.AddBlockInPlace(out[:k], tail[:k])

	// Tails longer than a window span several future windows.
	if t > w {
		copy(tail, tail[w:])
		clear(tail[t-w:])
	} else {
		clear(tail)
	}
	vecmath.AddBlockInPlace(tail, s.result[w:w+t])
}

func (s *windowScheduler) reset() {
	for ch := range s.channels {
		clear(s.in[ch])
		clear(s.out[ch])
		clear(s.tail[ch])
	}
	clear(s.frame)
	clear(s.result)
	s.pos = 0
}
