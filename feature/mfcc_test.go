// SPDX-License-Identifier: EPL-2.0

package feature

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/speechfeat/audio"
	"github.com/ik5/speechfeat/internal/audiotest"
)

func melEnergyOpts() MelOpts {
	opts := DefaultMelOpts()
	opts.Output = MelEnergy
	opts.Dither = 0
	opts.RemoveDCOffset = false
	return opts
}

func mfccOpts() MelOpts {
	opts := DefaultMelOpts()
	opts.Dither = 0
	opts.RemoveDCOffset = false
	opts.OutputC0 = true
	return opts
}

func newTestChain(t *testing.T, src any, opts MelOpts) *Mfcc {
	t.Helper()

	framer, err := NewFramer[float32](src, FrameOpts{Length: opts.FrameLength, Shift: 100})
	if err != nil {
		t.Fatalf("NewFramer() error = %v", err)
	}
	m, err := NewMfcc(framer, opts)
	if err != nil {
		t.Fatalf("NewMfcc() error = %v", err)
	}
	return m
}

func collectVectors(t *testing.T, m *Mfcc) [][]float32 {
	t.Helper()

	var out [][]float32
	for {
		vec := make([]float32, m.FeatLength())
		err := m.ReadFrame(vec)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("ReadFrame() error = %v", err)
		}
		out = append(out, vec)
	}
}

func TestMelOpts_FeatLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mod  func(*MelOpts)
		want int
	}{
		{"mfcc with energy", func(o *MelOpts) {}, 13},
		{"mfcc with energy and c0", func(o *MelOpts) { o.OutputC0 = true }, 14},
		{"mfcc bare", func(o *MelOpts) { o.OutputEnergy = false }, 12},
		{"mel energy", func(o *MelOpts) { o.Output = MelEnergy }, 21},
		{
			"mel energy with c0, no energy",
			func(o *MelOpts) { o.Output = MelEnergy; o.OutputC0 = true; o.OutputEnergy = false },
			21,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultMelOpts()
			tt.mod(&opts)
			if got := opts.FeatLength(); got != tt.want {
				t.Errorf("FeatLength() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewMfcc_Validation(t *testing.T) {
	t.Parallel()

	framer, err := NewFramer[float32](&sliceReader{samples: ramp(1000)}, DefaultFrameOpts())
	if err != nil {
		t.Fatalf("NewFramer() error = %v", err)
	}

	bad := DefaultMelOpts()
	bad.MfccOrder = 25 // exceeds the filterbank size
	if _, err := NewMfcc(framer, bad); !errors.Is(err, ErrInvalidMelOpts) {
		t.Errorf("NewMfcc() error = %v, want ErrInvalidMelOpts", err)
	}

	bad = DefaultMelOpts()
	bad.SampleRate = 0
	if _, err := NewMfcc(framer, bad); !errors.Is(err, ErrInvalidMelOpts) {
		t.Errorf("NewMfcc() error = %v, want ErrInvalidMelOpts", err)
	}

	if _, err := NewMfcc("nope", DefaultMelOpts()); !errors.Is(err, ErrUnsupportedSource) {
		t.Errorf("NewMfcc(string) error = %v, want ErrUnsupportedSource", err)
	}

	// A framer whose frames do not match the feature frame length is
	// rejected at composition time.
	shortFramer, err := NewFramer[float32](&sliceReader{samples: ramp(1000)}, FrameOpts{Length: 128, Shift: 50})
	if err != nil {
		t.Fatalf("NewFramer() error = %v", err)
	}
	if _, err := NewMfcc(shortFramer, DefaultMelOpts()); !errors.Is(err, audio.ErrIncorrectFrameSize) {
		t.Errorf("NewMfcc() error = %v, want ErrIncorrectFrameSize", err)
	}
}

func TestMfcc_SilenceMelEnergy(t *testing.T) {
	t.Parallel()

	opts := melEnergyOpts()
	m := newTestChain(t, audiotest.NewSilentSource(16000, 1, 1000), opts)

	vectors := collectVectors(t, m)
	if len(vectors) == 0 {
		t.Fatal("no vectors emitted")
	}

	for _, vec := range vectors {
		// Silence floors every channel at 1.0, whose log is zero.
		for c := range opts.FilterbankNumBins {
			if vec[c] != 0 {
				t.Fatalf("channel %d = %v, want 0", c, vec[c])
			}
		}
		// Zero energy hits the log floor.
		if energy := vec[opts.FeatLength()-1]; energy != -1.0e10 {
			t.Fatalf("log energy = %v, want -1.0e10", energy)
		}
	}
}

func TestMfcc_SilenceMFCCIsZero(t *testing.T) {
	t.Parallel()

	opts := mfccOpts()
	m := newTestChain(t, audiotest.NewSilentSource(16000, 1, 1000), opts)

	vectors := collectVectors(t, m)
	if len(vectors) == 0 {
		t.Fatal("no vectors emitted")
	}

	for _, vec := range vectors {
		// A zero log-filterbank has a zero DCT, zero C0 and floored
		// energy.
		for i := range opts.MfccOrder {
			if math.Abs(float64(vec[i])) > 1e-5 {
				t.Fatalf("coefficient %d = %v, want 0", i, vec[i])
			}
		}
		if c0 := vec[opts.MfccOrder]; math.Abs(float64(c0)) > 1e-5 {
			t.Fatalf("c0 = %v, want 0", c0)
		}
		if energy := vec[opts.MfccOrder+1]; energy != -1.0e10 {
			t.Fatalf("log energy = %v, want -1.0e10", energy)
		}
	}
}

func TestMfcc_ToneLandsInExpectedChannel(t *testing.T) {
	t.Parallel()

	opts := melEnergyOpts()
	opts.PreemphCoeff = 0
	m := newTestChain(t, audiotest.NewSineSource(16000, 1, 4000, 1000), opts)

	vectors := collectVectors(t, m)
	if len(vectors) < 10 {
		t.Fatalf("only %d vectors", len(vectors))
	}

	// Pick a frame well inside the tone and find the loudest channel.
	vec := vectors[len(vectors)/2]
	best := 0
	for c := 1; c < opts.FilterbankNumBins; c++ {
		if vec[c] > vec[best] {
			best = c
		}
	}

	// 1 kHz sits near Mel position 7.4 of 21 at 16 kHz.
	if best < 5 || best > 9 {
		t.Errorf("loudest channel = %d, want near 7", best)
	}

	// A real tone must also report finite positive energy.
	if energy := vec[opts.FeatLength()-1]; energy <= 0 || math.IsInf(float64(energy), 0) {
		t.Errorf("log energy = %v, want positive finite", energy)
	}
}

func TestMfcc_DeterministicWithDither(t *testing.T) {
	t.Parallel()

	opts := DefaultMelOpts()
	opts.OutputC0 = true

	run := func() [][]float32 {
		m := newTestChain(t, audiotest.NewSineSource(16000, 1, 2000, 440), opts)
		return collectVectors(t, m)
	}

	a := run()
	b := run()
	if len(a) != len(b) {
		t.Fatalf("runs emitted %d vs %d vectors", len(a), len(b))
	}
	for i := range a {
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				t.Fatalf("vector %d value %d: %v vs %v (dither not deterministic)",
					i, j, a[i][j], b[i][j])
			}
		}
	}
}

func TestMfcc_ByteFrameSourceMatchesFramer(t *testing.T) {
	t.Parallel()

	opts := mfccOpts()

	framerChain := newTestChain(t, audiotest.NewSineSource(16000, 1, 2000, 440), opts)
	want := collectVectors(t, framerChain)

	// Serialize the same frames, then feed them back as a byte stream.
	framer, err := NewFramer[float32](audiotest.NewSineSource(16000, 1, 2000, 440),
		FrameOpts{Length: opts.FrameLength, Shift: 100})
	if err != nil {
		t.Fatalf("NewFramer() error = %v", err)
	}
	// Framer.Read needs room for a whole frame on every call.
	var raw bytes.Buffer
	p := make([]byte, opts.FrameLength*4)
	for {
		n, err := framer.Read(p)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("framer.Read() error = %v", err)
		}
		raw.Write(p[:n])
	}

	m, err := NewMfcc(bytes.NewReader(raw.Bytes()), opts)
	if err != nil {
		t.Fatalf("NewMfcc() error = %v", err)
	}
	got := collectVectors(t, m)

	if len(got) != len(want) {
		t.Fatalf("byte mode emitted %d vectors, framer mode %d", len(got), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Fatalf("vector %d value %d: byte %v, framer %v", i, j, got[i][j], want[i][j])
			}
		}
	}
}

func TestMfcc_ByteReadMatchesReadFrame(t *testing.T) {
	t.Parallel()

	opts := mfccOpts()

	structured := newTestChain(t, audiotest.NewSineSource(16000, 1, 1500, 523), opts)
	want := collectVectors(t, structured)

	m := newTestChain(t, audiotest.NewSineSource(16000, 1, 1500, 523), opts)

	if _, err := m.Read(make([]byte, opts.FeatLength()*4-1)); !errors.Is(err, audio.ErrBufferTooShort) {
		t.Fatalf("short Read() error = %v, want ErrBufferTooShort", err)
	}

	p := make([]byte, opts.FeatLength()*4)
	for i := range want {
		n, err := m.Read(p)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if n != len(p) {
			t.Fatalf("Read() n = %d, want %d", n, len(p))
		}
		vec := make([]float32, opts.FeatLength())
		audio.DecodeSamples(vec, p)
		for j := range vec {
			if vec[j] != want[i][j] {
				t.Fatalf("vector %d value %d: byte %v, structured %v", i, j, vec[j], want[i][j])
			}
		}
	}
	if _, err := m.Read(p); !errors.Is(err, io.EOF) {
		t.Errorf("Read() after last vector error = %v, want io.EOF", err)
	}
}

func TestMfcc_IncorrectDestination(t *testing.T) {
	t.Parallel()

	m := newTestChain(t, audiotest.NewSilentSource(16000, 1, 500), mfccOpts())

	if err := m.ReadFrame(make([]float32, 3)); !errors.Is(err, audio.ErrIncorrectFrameSize) {
		t.Errorf("ReadFrame() error = %v, want ErrIncorrectFrameSize", err)
	}
}

func TestMfcc_PartialTrailingByteFrame(t *testing.T) {
	t.Parallel()

	opts := mfccOpts()
	raw := make([]byte, opts.FrameLength*4+10) // one frame and a stub

	m, err := NewMfcc(bytes.NewReader(raw), opts)
	if err != nil {
		t.Fatalf("NewMfcc() error = %v", err)
	}

	vec := make([]float32, opts.FeatLength())
	if err := m.ReadFrame(vec); err != nil {
		t.Fatalf("first ReadFrame() error = %v", err)
	}
	if err := m.ReadFrame(vec); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("second ReadFrame() error = %v, want io.ErrUnexpectedEOF", err)
	}
	if err := m.ReadFrame(vec); !errors.Is(err, audio.ErrBadState) {
		t.Errorf("third ReadFrame() error = %v, want ErrBadState", err)
	}
}

func TestMfcc_MelEnergyAndMFCCShareFilterbank(t *testing.T) {
	t.Parallel()

	// The MFCC path's C0 tail is computed from the same log filterbank
	// channels that the MelEnergy path emits, so the two must agree.
	melOpts := melEnergyOpts()
	melOpts.OutputEnergy = false
	melOpts.PreemphCoeff = 0

	cepOpts := melOpts
	cepOpts.Output = MFCC
	cepOpts.OutputC0 = true
	cepOpts.LifteringCoeff = 0

	mel := newTestChain(t, audiotest.NewSineSource(16000, 1, 1200, 700), melOpts)
	cep := newTestChain(t, audiotest.NewSineSource(16000, 1, 1200, 700), cepOpts)

	melVecs := collectVectors(t, mel)
	cepVecs := collectVectors(t, cep)
	if len(melVecs) != len(cepVecs) {
		t.Fatalf("%d mel vectors vs %d cepstral vectors", len(melVecs), len(cepVecs))
	}

	nb := melOpts.FilterbankNumBins
	for i := range melVecs {
		var sum float64
		for _, v := range melVecs[i][:nb] {
			sum += float64(v)
		}
		// C0 of an orthonormal DCT-II is sum/sqrt(nb); the pipeline
		// reports sqrt(2/nb)*sum instead, by convention.
		wantC0 := math.Sqrt(2/float64(nb)) * sum
		c0 := float64(cepVecs[i][cepOpts.MfccOrder])
		if math.Abs(c0-wantC0) > 1e-2*math.Max(1, math.Abs(wantC0)) {
			t.Fatalf("vector %d: c0 = %v, want %v", i, c0, wantC0)
		}
	}
}

func BenchmarkMfcc_ReadFrame(b *testing.B) {
	opts := DefaultMelOpts()
	opts.OutputC0 = true

	src := audiotest.NewSineSource(16000, 1, 1<<30, 440)
	framer, err := NewFramer[float32](src, DefaultFrameOpts())
	if err != nil {
		b.Fatal(err)
	}
	m, err := NewMfcc(framer, opts)
	if err != nil {
		b.Fatal(err)
	}
	vec := make([]float32, m.FeatLength())

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		if err := m.ReadFrame(vec); err != nil {
			b.Fatal(err)
		}
	}
}
