// SPDX-License-Identifier: EPL-2.0

// wav2raw reads a WAVE stream on stdin and writes the decoded samples
// to stdout as little-endian float32.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/ik5/speechfeat/formats/wav"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "wav2raw:", err)
		os.Exit(1)
	}
}

func run() error {
	out := bufio.NewWriter(os.Stdout)
	r := wav.NewReader[float32](bufio.NewReader(os.Stdin))

	if _, err := io.Copy(out, r); err != nil {
		return err
	}
	return out.Flush()
}
