// Package hrir synthesizes head-related impulse responses from a spherical
// head model.
//
// SphericalHead maps a Direction to a left/right FIR pair for a sample rate.
// Each ear gets a windowed-sinc fractional delay derived from Woodworth's
// interaural time difference, followed by a first-order head-shadow filter
// whose high-frequency gain depends on the angle between the source and the
// ear. Every ear is normalized to unity gain at DC.
//
// SphericalHead implements binaural.FilterSource, so it can drive a
// binaural.Renderer directly:
//
//	head, _ := hrir.NewSphericalHead(hrir.WithDirection(hrir.Direction{Azimuth: 45}))
//	r, _ := binaural.NewRenderer(binaural.WithFilterSource(head))
//	...
//	_ = head.SetDirection(hrir.Direction{Azimuth: -30})
//	_ = r.Refresh()
//
// The model is meant for deterministic tests and previews. It has no pinna
// cues, so elevation only changes the lateral angle.
package hrir
