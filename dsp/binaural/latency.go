package binaural

// FFTSize returns the transform size for a window and filter length: the
// smallest size whose circular convolution equals the linear one.
func FFTSize(windowSize, filterLen int) int {
	return windowSize + filterLen - 1
}

// SchedulerLatency is the delay added by windowing alone. Windows do not
// overlap (hop = windowSize) and a window can only be filtered once its last
// sample has arrived, so every input sample waits one full window.
func SchedulerLatency(windowSize int) int {
	return windowSize
}

// LatencySamples is the delay a host should compensate: the scheduler
// latency plus half the filter length, the group delay of a centred HRIR.
// The first HRIR tap therefore lands at LatencySamples - filterLen/2, and
// the centre tap lands exactly on LatencySamples.
func LatencySamples(windowSize, filterLen int) int {
	return SchedulerLatency(windowSize) + filterLen/2
}
