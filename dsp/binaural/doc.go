// Package binaural renders audio to two ears by streaming FFT convolution
// with a head-related impulse response (HRIR) pair.
//
// The [Renderer] buffers host blocks of any length into fixed analysis
// windows, convolves each window with the cached left or right HRIR spectrum
// and reconstructs a continuous output by overlap-add:
//
//	host block -> window scheduler -> forward FFT -> spectral multiply
//	           -> inverse FFT -> overlap-add -> host block (in place)
//
// The transform size is WindowSize + FilterLen - 1, the smallest size that
// avoids circular-convolution aliasing for the configured filter length.
//
// # Usage
//
//	r, err := binaural.NewRenderer(
//		binaural.WithWindowSize(64),
//		binaural.WithFilterLen(33),
//	)
//	err = r.SetImpulseResponse(binaural.ImpulseResponse{Left: hl, Right: hr})
//	err = r.ProcessStereo(left, right) // once per host block
//
// # Threads
//
// Process, ProcessStereo, ProcessMono and Reset belong to the real-time
// context: they do not allocate, block or take locks. SetImpulseResponse,
// Refresh and SetOutputGainDB belong to the control context and hand their
// values over through wait-free atomics. A new impulse response is picked up
// only when a window is about to be convolved, so every window is filtered
// against one consistent response. Reconfigure must not run concurrently
// with processing.
//
// # Latency
//
// Output is delayed by exactly WindowSize samples for every host block size.
// [Renderer.LatencySamples] adds FilterLen/2 to that, the group delay of a
// centred HRIR, which is the figure a host should compensate.
//
// # Numerics
//
// NaN or Inf values in samples or impulse responses propagate through the
// convolution unchanged. Validating filters is the provider's job.
package binaural
