// SPDX-License-Identifier: EPL-2.0

package feature

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/speechfeat/audio"
)

// Framer slices a sample stream into fixed-length overlapping frames.
// The stream is padded with half a frame of leading zeros so that frame
// i starts at sample index i*Shift - Length/2; after the source ends,
// one final frame is zero-padded on the right and the next read reports
// io.EOF.
//
// The source is either an audio.SampleReader[T] or a plain io.Reader
// whose bytes are reinterpreted as little-endian samples of T. The
// choice is made once, at construction.
type Framer[T audio.Sample] struct {
	opts FrameOpts
	src  audio.SampleReader[T]

	ring     []T
	readPos  int
	writePos int
	first    bool
	terminal bool
	err      error

	out []T // scratch for byte-oriented reads
}

// NewFramer builds a frame producer over src.
func NewFramer[T audio.Sample](src any, opts FrameOpts) (*Framer[T], error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	f := &Framer[T]{
		opts:  opts,
		ring:  make([]T, opts.Length),
		first: true,
		// The leading zeros occupy the low half of the ring; new
		// samples land after them.
		writePos: opts.Length / 2,
	}

	switch s := src.(type) {
	case audio.SampleReader[T]:
		f.src = s
	case io.Reader:
		f.src = audio.NewByteSampleReader[T](s)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedSource, src)
	}

	return f, nil
}

// FrameLength returns the configured frame length.
func (f *Framer[T]) FrameLength() int { return f.opts.Length }

// ReadFrame fills dst with the next frame. dst must be exactly Length
// samples long. Returns io.EOF once the stream, including the final
// zero-padded frame, is exhausted.
func (f *Framer[T]) ReadFrame(dst []T) error {
	if f.err != nil {
		if errors.Is(f.err, io.EOF) {
			return io.EOF
		}
		return audio.ErrBadState
	}
	if len(dst) != f.opts.Length {
		return fmt.Errorf("%w: got %d samples, want %d", audio.ErrIncorrectFrameSize, len(dst), f.opts.Length)
	}

	// First frame completes the zero-padded ring; later frames advance
	// by one shift.
	want := f.opts.Shift
	if f.first {
		want = f.opts.Length - f.opts.Length/2
	}

	got := 0
	srcDone := false
	for got < want {
		span := min(want-got, len(f.ring)-f.writePos)
		n, err := f.src.ReadSamples(f.ring[f.writePos : f.writePos+span])
		got += n
		f.writePos = (f.writePos + n) % len(f.ring)
		if err != nil {
			if errors.Is(err, io.EOF) {
				srcDone = true
				break
			}
			f.err = err
			return err
		}
	}

	if srcDone {
		if got == 0 {
			f.err = io.EOF
			return io.EOF
		}
		// Zero-pad the remainder of this shift; the frame after this
		// one does not exist.
		for range want - got {
			var zero T
			f.ring[f.writePos] = zero
			f.writePos = (f.writePos + 1) % len(f.ring)
		}
		f.terminal = true
	}
	f.first = false

	n := copy(dst, f.ring[f.readPos:])
	copy(dst[n:], f.ring[:f.readPos])
	f.readPos = (f.readPos + f.opts.Shift) % len(f.ring)

	if f.terminal {
		f.err = io.EOF
	}
	return nil
}

// Read emits one frame per call as little-endian bytes. p must hold a
// whole frame; returns 0 with io.EOF once the stream is finished.
func (f *Framer[T]) Read(p []byte) (int, error) {
	size := audio.SampleSize[T]()
	if len(p) < f.opts.Length*size {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", audio.ErrBufferTooShort, f.opts.Length*size, len(p))
	}

	if f.out == nil {
		f.out = make([]T, f.opts.Length)
	}
	if err := f.ReadFrame(f.out); err != nil {
		return 0, err
	}

	n, err := audio.EncodeSamples(p, f.out)
	if err != nil {
		return 0, err
	}
	return n, nil
}
