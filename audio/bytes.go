// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// SampleSize returns the encoded size of T in bytes.
func SampleSize[T Sample]() int {
	var z T
	if _, ok := any(z).(int16); ok {
		return 2
	}
	return 4
}

// EncodeSamples writes src into p as little-endian bytes and returns the
// number of bytes written. p must hold every sample.
func EncodeSamples[T Sample](p []byte, src []T) (int, error) {
	size := SampleSize[T]()
	if len(p) < len(src)*size {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", ErrBufferTooShort, len(src)*size, len(p))
	}

	switch s := any(src).(type) {
	case []int16:
		for i, v := range s {
			binary.LittleEndian.PutUint16(p[2*i:], uint16(v))
		}
	case []float32:
		for i, v := range s {
			binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(v))
		}
	}

	return len(src) * size, nil
}

// DecodeSamples reinterprets little-endian bytes as samples of T and
// returns the number of samples written to dst. Trailing bytes that do
// not form a whole sample are ignored.
func DecodeSamples[T Sample](dst []T, p []byte) int {
	switch d := any(dst).(type) {
	case []int16:
		n := min(len(d), len(p)/2)
		for i := range n {
			d[i] = int16(binary.LittleEndian.Uint16(p[2*i:]))
		}
		return n
	case []float32:
		n := min(len(d), len(p)/4)
		for i := range n {
			d[i] = math.Float32frombits(binary.LittleEndian.Uint32(p[4*i:]))
		}
		return n
	}

	return 0
}

// ConvertSamples converts canonical signed 32-bit intermediates (sample
// bits left-shifted into the high bits) into the output sample type.
// int16 output is the top 16 bits clamped to +-32767; float32 output is
// the value divided by 1<<31, landing in [-1, 1).
func ConvertSamples[T Sample](dst []T, src []int32) {
	switch d := any(dst).(type) {
	case []int16:
		for i, v := range src {
			w := v >> 16
			if w > 32767 {
				w = 32767
			} else if w < -32767 {
				w = -32767
			}
			d[i] = int16(w)
		}
	case []float32:
		const scale = float32(1.0 / 2147483648.0)
		// MaxInt32 scaled rounds up to 1 in float32; cap below it.
		below1 := math.Nextafter32(1, 0)
		for i, v := range src {
			d[i] = min(float32(v)*scale, below1)
		}
	}
}

// byteSampleReader reinterprets an arbitrary byte stream as a stream of
// little-endian samples of T. A stream that ends in the middle of a
// sample fails with io.ErrUnexpectedEOF.
type byteSampleReader[T Sample] struct {
	r   io.Reader
	buf []byte
}

// NewByteSampleReader adapts a raw byte stream into a SampleReader.
func NewByteSampleReader[T Sample](r io.Reader) SampleReader[T] {
	return &byteSampleReader[T]{r: r, buf: make([]byte, 4096)}
}

func (b *byteSampleReader[T]) ReadSamples(dst []T) (int, error) {
	size := SampleSize[T]()
	need := len(dst) * size
	if cap(b.buf) < need {
		b.buf = make([]byte, need)
	}
	buf := b.buf[:need]

	n, err := io.ReadFull(b.r, buf)
	whole := n / size
	DecodeSamples(dst[:whole], buf[:whole*size])

	if err != nil {
		if n%size != 0 {
			return whole, fmt.Errorf("byte stream ends mid-sample: %w", io.ErrUnexpectedEOF)
		}
		if whole == 0 {
			return 0, io.EOF
		}
		// Surface EOF on the next call.
		return whole, nil
	}

	return whole, nil
}
