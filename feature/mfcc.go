// SPDX-License-Identifier: EPL-2.0

package feature

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"

	"github.com/ik5/speechfeat/audio"
	"github.com/ik5/speechfeat/dsp"
)

// Mfcc turns fixed-length sample frames into feature vectors: log
// Mel-filterbank energies or Mel-frequency cepstral coefficients,
// optionally with C0 and log-energy tails.
//
// The source is either an audio.FrameReader[float32] (typically a
// *Framer) or a plain io.Reader delivering whole frames of little-endian
// float32 samples; the choice is made once, at construction.
//
// Dither noise comes from a PRNG seeded deterministically at
// construction, so two fresh instances produce bit-identical output for
// the same input.
type Mfcc struct {
	opts MelOpts
	src  audio.FrameReader[float32]

	fft    *dsp.FFT
	dct    *dsp.DCT
	bank   *FilterBank
	window []float32
	rng    *rand.Rand

	frame    []float32 // fftFrameLength samples, zero-padded past FrameLength
	imag     []float32
	spectrum []float32
	channels []float32
	dctBuf   []float32
	out      []float32 // scratch for byte-oriented reads
	err      error
}

// NewMfcc builds a feature maker over src with the given options.
func NewMfcc(src any, opts MelOpts) (*Mfcc, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	n := opts.fftFrameLength()
	fft, err := dsp.NewFFT(n)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	m := &Mfcc{
		opts:     opts,
		fft:      fft,
		bank:     NewFilterBank(n, opts.SampleRate, opts.FilterbankNumBins),
		window:   makeWindow(opts.Window, opts.FrameLength, opts.BlackmanCoeff),
		rng:      rand.New(rand.NewPCG(0, 0)),
		frame:    make([]float32, n),
		imag:     make([]float32, n),
		spectrum: make([]float32, n/2+1),
		channels: make([]float32, opts.FilterbankNumBins),
	}

	if opts.Output == MFCC {
		dct, err := dsp.NewDCT(opts.FilterbankNumBins)
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		m.dct = dct
		m.dctBuf = make([]float32, 2*opts.FilterbankNumBins)
	}

	switch s := src.(type) {
	case audio.FrameReader[float32]:
		if s.FrameLength() != opts.FrameLength {
			return nil, fmt.Errorf("%w: source frames hold %d samples, want %d",
				audio.ErrIncorrectFrameSize, s.FrameLength(), opts.FrameLength)
		}
		m.src = s
	case io.Reader:
		m.src = &byteFrameReader{r: s, length: opts.FrameLength}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedSource, src)
	}

	return m, nil
}

// FeatLength returns the number of values in one feature vector.
func (m *Mfcc) FeatLength() int { return m.opts.FeatLength() }

// ReadFrame fills dst with the next feature vector. dst must be exactly
// FeatLength values long. Returns io.EOF on clean end of stream.
func (m *Mfcc) ReadFrame(dst []float32) error {
	if m.err != nil {
		if errors.Is(m.err, io.EOF) {
			return io.EOF
		}
		return audio.ErrBadState
	}
	if len(dst) != m.opts.FeatLength() {
		return fmt.Errorf("%w: got %d values, want %d", audio.ErrIncorrectFrameSize, len(dst), m.opts.FeatLength())
	}

	l := m.opts.FrameLength
	if err := m.src.ReadFrame(m.frame[:l]); err != nil {
		if errors.Is(err, io.EOF) {
			m.err = io.EOF
			return io.EOF
		}
		m.err = err
		return err
	}
	for i := l; i < len(m.frame); i++ {
		m.frame[i] = 0
	}

	if m.opts.Dither != 0 {
		for i := range l {
			m.frame[i] += float32(m.rng.NormFloat64()) * m.opts.Dither
		}
	}

	if m.opts.RemoveDCOffset {
		var sum float64
		for _, v := range m.frame[:l] {
			sum += float64(v)
		}
		mean := float32(sum / float64(l))
		for i := range l {
			m.frame[i] -= mean
		}
	}

	var logEnergy float32
	if m.opts.OutputEnergy {
		var energy float64
		for _, v := range m.frame[:l] {
			energy += float64(v) * float64(v)
		}
		if energy > 0 {
			logEnergy = float32(math.Log(energy))
		} else {
			logEnergy = -1.0e10
		}
	}

	if c := m.opts.PreemphCoeff; c != 0 {
		for i := l - 1; i > 0; i-- {
			m.frame[i] -= c * m.frame[i-1]
		}
		m.frame[0] -= c * m.frame[0]
	}

	for i := range l {
		m.frame[i] *= m.window[i]
	}

	for i := range m.imag {
		m.imag[i] = 0
	}
	if err := m.fft.TransformReal(m.frame, m.imag); err != nil {
		m.err = err
		return err
	}
	half := len(m.frame) / 2
	for k := 1; k <= half; k++ {
		re := float64(m.frame[k])
		im := float64(m.imag[k])
		m.spectrum[k] = float32(math.Sqrt(re*re + im*im))
	}

	m.bank.Apply(m.spectrum, m.channels)
	floor := m.opts.FilterbankFloor
	for i, v := range m.channels {
		if v < floor {
			v = floor
		}
		m.channels[i] = float32(math.Log(float64(v)))
	}

	var c0 float32
	if m.opts.OutputC0 {
		var sum float64
		for _, v := range m.channels {
			sum += float64(v)
		}
		c0 = float32(math.Sqrt(2/float64(m.opts.FilterbankNumBins)) * sum)
	}

	var idx int
	switch m.opts.Output {
	case MFCC:
		nb := m.opts.FilterbankNumBins
		copy(m.dctBuf[:nb], m.channels)
		for i := nb; i < len(m.dctBuf); i++ {
			m.dctBuf[i] = 0
		}
		if err := m.dct.Apply(m.dctBuf); err != nil {
			m.err = err
			return err
		}
		if lift := m.opts.LifteringCoeff; lift != 0 {
			for i := 0; i <= m.opts.MfccOrder; i++ {
				m.dctBuf[i] *= 1 + lift/2*float32(math.Sin(math.Pi*float64(i)/float64(lift)))
			}
		}
		// C0 is carried separately; the vector starts at the first
		// cepstral coefficient.
		idx = copy(dst[:m.opts.MfccOrder], m.dctBuf[1:m.opts.MfccOrder+1])
	default:
		idx = copy(dst[:m.opts.FilterbankNumBins], m.channels)
	}

	if m.opts.OutputC0 {
		dst[idx] = c0
		idx++
	}
	if m.opts.OutputEnergy {
		dst[idx] = logEnergy
	}

	return nil
}

// Read emits one feature vector per call as little-endian float32
// bytes. p must hold a whole vector; returns 0 with io.EOF on clean end
// of stream.
func (m *Mfcc) Read(p []byte) (int, error) {
	feat := m.opts.FeatLength()
	if len(p) < feat*4 {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", audio.ErrBufferTooShort, feat*4, len(p))
	}

	if m.out == nil {
		m.out = make([]float32, feat)
	}
	if err := m.ReadFrame(m.out); err != nil {
		return 0, err
	}

	n, err := audio.EncodeSamples(p, m.out)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// byteFrameReader treats a byte stream as a sequence of whole frames of
// little-endian float32 samples. A stream that ends inside a frame
// fails with io.ErrUnexpectedEOF.
type byteFrameReader struct {
	r      io.Reader
	length int
	buf    []byte
}

func (b *byteFrameReader) FrameLength() int { return b.length }

func (b *byteFrameReader) ReadFrame(dst []float32) error {
	if len(dst) != b.length {
		return fmt.Errorf("%w: got %d samples, want %d", audio.ErrIncorrectFrameSize, len(dst), b.length)
	}
	if b.buf == nil {
		b.buf = make([]byte, b.length*4)
	}

	n, err := io.ReadFull(b.r, b.buf)
	if err != nil {
		if n == 0 && errors.Is(err, io.EOF) {
			return io.EOF
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("frame stream ends mid-frame: %w", io.ErrUnexpectedEOF)
		}
		return err
	}

	audio.DecodeSamples(dst, b.buf)
	return nil
}
