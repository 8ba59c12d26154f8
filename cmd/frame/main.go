// SPDX-License-Identifier: EPL-2.0

// frame reads little-endian float32 samples on stdin and writes
// overlapping frames to stdout as concatenated little-endian float32.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ik5/speechfeat/feature"
)

func main() {
	length := flag.Int("length", 256, "samples per frame")
	shift := flag.Int("shift", 100, "samples between frame starts")
	flag.Parse()

	if err := run(*length, *shift); err != nil {
		fmt.Fprintln(os.Stderr, "frame:", err)
		os.Exit(1)
	}
}

func run(length, shift int) error {
	framer, err := feature.NewFramer[float32](bufio.NewReader(os.Stdin), feature.FrameOpts{
		Length: length,
		Shift:  shift,
	})
	if err != nil {
		return err
	}

	out := bufio.NewWriter(os.Stdout)
	buf := make([]byte, length*4)
	for {
		n, err := framer.Read(buf)
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
