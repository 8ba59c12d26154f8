// SPDX-License-Identifier: EPL-2.0

// fftr reads one frame of little-endian float32 samples on stdin, runs
// the real-input FFT and writes the real parts followed by the
// imaginary parts to stdout.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ik5/speechfeat/audio"
	"github.com/ik5/speechfeat/dsp"
)

func main() {
	size := flag.Int("size", 256, "frame length, a power of two")
	flag.Parse()

	if err := run(*size); err != nil {
		fmt.Fprintln(os.Stderr, "fftr:", err)
		os.Exit(1)
	}
}

func run(size int) error {
	fft, err := dsp.NewFFT(size)
	if err != nil {
		return err
	}

	raw := make([]byte, size*4)
	if _, err := io.ReadFull(bufio.NewReader(os.Stdin), raw); err != nil {
		return fmt.Errorf("reading frame: %w", err)
	}

	re := make([]float32, size)
	im := make([]float32, size)
	audio.DecodeSamples(re, raw)

	if err := fft.TransformReal(re, im); err != nil {
		return err
	}

	out := bufio.NewWriter(os.Stdout)
	for _, part := range [][]float32{re, im} {
		if _, err := audio.EncodeSamples(raw, part); err != nil {
			return err
		}
		if _, err := out.Write(raw); err != nil {
			return err
		}
	}
	return out.Flush()
}
