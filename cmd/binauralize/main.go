// Command binauralize places a mono WAV recording at a direction around the
// listener and writes the binaural stereo result.
//
// Usage:
//
//	binauralize -in voice.wav -out voice-bin.wav -azimuth 60
//	binauralize -in music.wav -out out.wav -azimuth -30 -elevation 20 -gain -6
//	binauralize -in x.wav -out y.wav -block 37 -window 128 -v
//
// Input may be 8-, 16-, 24- or 32-bit integer PCM, and the output keeps the
// input bit depth. Multichannel input is downmixed to mono. The renderer's latency is
// compensated, so the output lines up with the input and carries the
// convolution tail.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
)

const (
	defaultBlockSize  = 256
	defaultWindowSize = 64
)

type options struct {
	in        string
	out       string
	azimuth   float64
	elevation float64
	gainDB    float64
	block     int
	window    int
	verbose   bool
}

func main() {
	var opts options
	flag.StringVar(&opts.in, "in", "", "input WAV file")
	flag.StringVar(&opts.out, "out", "", "output WAV file (stereo)")
	flag.Float64Var(&opts.azimuth, "azimuth", 0, "source azimuth in degrees (0 front, +90 right)")
	flag.Float64Var(&opts.elevation, "elevation", 0, "source elevation in degrees [-90, 90]")
	flag.Float64Var(&opts.gainDB, "gain", 0, "output gain in dB [-30, 30]")
	flag.IntVar(&opts.block, "block", defaultBlockSize, "host block size in samples")
	flag.IntVar(&opts.window, "window", defaultWindowSize, "analysis window size in samples")
	flag.BoolVar(&opts.verbose, "v", false, "verbose output")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: binauralize -in input.wav -out output.wav [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Renders a mono source to binaural stereo with a spherical head model.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if opts.in == "" || opts.out == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		log.Fatal(err)
	}
}
