// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	gaudio "github.com/go-audio/audio"
)

// mockAiffReader simulates the aiff.Decoder for testing.
type mockAiffReader struct {
	sampleRate int
	channels   int
	samples    []int
	offset     int
	failWith   error
}

func (m *mockAiffReader) Format() *gaudio.Format {
	return &gaudio.Format{SampleRate: m.sampleRate, NumChannels: m.channels}
}

func (m *mockAiffReader) PCMBuffer(buf *gaudio.IntBuffer) (int, error) {
	if m.failWith != nil {
		return 0, m.failWith
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := min(len(buf.Data), len(m.samples)-m.offset)
	copy(buf.Data, m.samples[m.offset:m.offset+n])
	m.offset += n
	return n, nil
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	samples := []int{0, 8192, -8192, 32767, -32768}
	src := &source{
		dec:        &mockAiffReader{sampleRate: 22050, channels: 1, samples: samples},
		sampleRate: 22050,
		channels:   1,
		scale:      1.0 / 32768,
	}

	if src.SampleRate() != 22050 {
		t.Errorf("SampleRate() = %d, want 22050", src.SampleRate())
	}

	dst := make([]float32, 16)
	n, err := src.ReadSamples(dst)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != len(samples) {
		t.Fatalf("ReadSamples() n = %d, want %d", n, len(samples))
	}
	for i, want := range samples {
		ref := float64(want) / 32768.0
		if math.Abs(float64(dst[i])-ref) > 1e-6 {
			t.Errorf("sample %d = %v, want %v", i, dst[i], ref)
		}
	}

	if _, err := src.ReadSamples(dst); !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() at end error = %v, want io.EOF", err)
	}
}

func TestSource_PropagatesErrors(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:      &mockAiffReader{sampleRate: 8000, channels: 1, failWith: io.ErrUnexpectedEOF},
		channels: 1,
		scale:    1.0 / 32768,
	}

	if _, err := src.ReadSamples(make([]float32, 8)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestDecoder_RejectsGarbage(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader([]byte("not an aiff stream"))); !errors.Is(err, ErrNotAiffFile) {
		t.Errorf("Decode() error = %v, want ErrNotAiffFile", err)
	}
}

func TestReadSeeker(t *testing.T) {
	t.Parallel()

	rs := &readSeeker{data: []byte("abcdef")}

	p := make([]byte, 3)
	if n, err := rs.Read(p); n != 3 || err != nil {
		t.Fatalf("Read() = (%d, %v), want (3, nil)", n, err)
	}

	if pos, err := rs.Seek(1, io.SeekStart); pos != 1 || err != nil {
		t.Fatalf("Seek() = (%d, %v), want (1, nil)", pos, err)
	}
	if n, _ := rs.Read(p); n != 3 || string(p) != "bcd" {
		t.Fatalf("Read() after seek = %q", p[:n])
	}

	if _, err := rs.Seek(-10, io.SeekStart); err == nil {
		t.Error("Seek() to negative position succeeded")
	}
}
