// SPDX-License-Identifier: EPL-2.0

// mfcc reads WAVE bytes or raw little-endian float32 samples on stdin
// and writes MFCC vectors to stdout as little-endian float32. The input
// kind is sniffed from the RIFF magic.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ik5/speechfeat/feature"
	"github.com/ik5/speechfeat/formats/wav"
)

func main() {
	length := flag.Int("length", 256, "samples per frame")
	shift := flag.Int("shift", 100, "samples between frame starts")
	rate := flag.Int("rate", 16000, "sample rate for raw input")
	dither := flag.Float64("dither", 1.0, "dither noise standard deviation")
	melEnergy := flag.Bool("mel-energy", false, "emit log mel energies instead of MFCCs")
	flag.Parse()

	if err := run(*length, *shift, *rate, float32(*dither), *melEnergy); err != nil {
		fmt.Fprintln(os.Stderr, "mfcc:", err)
		os.Exit(1)
	}
}

func run(length, shift, rate int, dither float32, melEnergy bool) error {
	in := bufio.NewReader(os.Stdin)

	opts := feature.DefaultMelOpts()
	opts.FrameLength = length
	opts.SampleRate = rate
	opts.Dither = dither
	opts.OutputC0 = true
	if melEnergy {
		opts.Output = feature.MelEnergy
	}

	// A WAVE stream announces itself; anything else is raw samples.
	var src any = in
	if magic, err := in.Peek(4); err == nil && string(magic) == "RIFF" {
		r := wav.NewReader[float32](in)
		hdr, err := r.Header()
		if err != nil {
			return err
		}
		opts.SampleRate = int(hdr.SampleRate)
		src = r
	}

	framer, err := feature.NewFramer[float32](src, feature.FrameOpts{Length: length, Shift: shift})
	if err != nil {
		return err
	}
	maker, err := feature.NewMfcc(framer, opts)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(os.Stdout)
	buf := make([]byte, maker.FeatLength()*4)
	for {
		n, err := maker.Read(buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if _, err := out.Write(buf[:n]); err != nil {
			return err
		}
	}
	return out.Flush()
}
