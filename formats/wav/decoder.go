// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/riff"

	"github.com/ik5/speechfeat/audio"
)

var waveFormatID = [4]byte{'W', 'A', 'V', 'E'}

// Reader decodes a RIFF/WAVE byte stream into samples of T.
//
// The header is parsed lazily, on the first read. Any header or decode
// failure is fatal: the reader sticks in its failed state and every
// later read returns audio.ErrBadState. A byte Read with a buffer too
// short for one sample returns audio.ErrBufferTooShort and leaves the
// state unchanged. A clean drain of the data chunk ends with io.EOF.
type Reader[T audio.Sample] struct {
	r      io.Reader
	parser *riff.Parser

	hdr    Header
	parsed bool

	data      io.Reader // data chunk body, limited to its declared size
	remaining int       // undecoded bytes left in the data chunk
	bytesPer  int       // encoded bytes per sample
	decode    func([]byte) int32

	buf  []byte
	ints []int32
	out  []T
	err  error
}

// NewReader wraps a WAVE byte stream. Nothing is read until the first
// call that needs the header.
func NewReader[T audio.Sample](r io.Reader) *Reader[T] {
	return &Reader[T]{
		r:      r,
		parser: riff.New(r),
		buf:    make([]byte, 4096),
	}
}

// Header forces the header parse and returns a copy.
func (r *Reader[T]) Header() (Header, error) {
	if r.err != nil && !errors.Is(r.err, io.EOF) {
		return Header{}, audio.ErrBadState
	}
	if !r.parsed {
		if err := r.parseHeader(); err != nil {
			return Header{}, err
		}
	}
	return r.hdr, nil
}

// SampleRate of the decoded stream in Hz; zero before the header is
// available.
func (r *Reader[T]) SampleRate() int { return int(r.hdr.SampleRate) }

// Channels count of the decoded stream; zero before the header is
// available.
func (r *Reader[T]) Channels() int { return int(r.hdr.NumChannels) }

func (r *Reader[T]) Close() error { return nil }

// ReadSamples fills dst with decoded samples and returns the number
// written. Returns 0 with io.EOF only on a clean end of the data chunk.
func (r *Reader[T]) ReadSamples(dst []T) (int, error) {
	if r.err != nil {
		if errors.Is(r.err, io.EOF) {
			return 0, io.EOF
		}
		return 0, audio.ErrBadState
	}
	if !r.parsed {
		if err := r.parseHeader(); err != nil {
			return 0, err
		}
	}
	if len(dst) == 0 {
		return 0, nil
	}
	if r.remaining == 0 {
		r.err = io.EOF
		return 0, io.EOF
	}

	want := min(len(dst), r.remaining/r.bytesPer)
	if want == 0 {
		// The declared chunk size leaves a fraction of a sample.
		r.err = fmt.Errorf("data chunk ends mid-sample: %w", io.ErrUnexpectedEOF)
		return 0, r.err
	}

	need := want * r.bytesPer
	if cap(r.buf) < need {
		r.buf = make([]byte, need)
	}
	buf := r.buf[:need]

	n, rdErr := io.ReadFull(r.data, buf)
	whole := n / r.bytesPer
	if cap(r.ints) < whole {
		r.ints = make([]int32, whole)
	}
	ints := r.ints[:whole]
	for i := range whole {
		ints[i] = r.decode(buf[i*r.bytesPer:])
	}
	audio.ConvertSamples(dst[:whole], ints)
	r.remaining -= n

	if rdErr != nil {
		r.err = fmt.Errorf("data chunk: %w", io.ErrUnexpectedEOF)
		return whole, r.err
	}

	return whole, nil
}

// Read emits decoded samples as little-endian bytes. p must hold at
// least one sample.
func (r *Reader[T]) Read(p []byte) (int, error) {
	size := audio.SampleSize[T]()
	if len(p) < size {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", audio.ErrBufferTooShort, size, len(p))
	}

	count := len(p) / size
	if cap(r.out) < count {
		r.out = make([]T, count)
	}
	n, err := r.ReadSamples(r.out[:count])
	if n == 0 {
		return 0, err
	}

	written, encErr := audio.EncodeSamples(p, r.out[:n])
	if encErr != nil {
		return 0, encErr
	}
	return written, err
}

func (r *Reader[T]) fail(err error) error {
	r.err = err
	return err
}

// truncOrBad classifies a riff parser failure: short reads are
// truncation, everything else is a structural problem.
func truncOrBad(err error, where string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%s: %w", where, io.ErrUnexpectedEOF)
	}
	return fmt.Errorf("%w: %s: %v", ErrBadHeader, where, err)
}

// parseHeader walks the RIFF chunks up to and including the "data"
// chunk header. Chunks other than "fmt " and "data" are skipped by
// their declared size.
func (r *Reader[T]) parseHeader() error {
	id, _, err := r.parser.IDnSize()
	if err != nil {
		return r.fail(truncOrBad(err, "riff header"))
	}
	if id != riff.RiffID {
		return r.fail(fmt.Errorf("%w: %q is not a RIFF stream", ErrBadHeader, id[:]))
	}

	var form [4]byte
	if _, err := io.ReadFull(r.r, form[:]); err != nil {
		return r.fail(fmt.Errorf("riff form type: %w", io.ErrUnexpectedEOF))
	}
	if form != waveFormatID {
		return r.fail(fmt.Errorf("%w: RIFF form type %q", ErrBadHeader, form[:]))
	}

	fmtSeen := false
	for {
		id, size, err := r.parser.IDnSize()
		if err != nil {
			return r.fail(truncOrBad(err, "chunk header"))
		}

		switch id {
		case riff.FmtID:
			if err := r.parseFmt(int(size)); err != nil {
				return r.fail(err)
			}
			fmtSeen = true
		case riff.DataFormatID:
			if !fmtSeen {
				return r.fail(fmt.Errorf("%w: data chunk before fmt", ErrBadHeader))
			}
			r.remaining = int(size)
			r.data = io.LimitReader(r.r, int64(size))
			r.parsed = true
			return nil
		default:
			if _, err := io.CopyN(io.Discard, r.r, int64(size)); err != nil {
				return r.fail(fmt.Errorf("skipping %q chunk: %w", id[:], io.ErrUnexpectedEOF))
			}
		}
	}
}

func (r *Reader[T]) parseFmt(size int) error {
	if size < 16 || size > 40 {
		return fmt.Errorf("%w: fmt chunk size %d", ErrBadHeader, size)
	}

	var raw [40]byte
	if _, err := io.ReadFull(r.r, raw[:size]); err != nil {
		return fmt.Errorf("fmt chunk: %w", io.ErrUnexpectedEOF)
	}

	h := Header{
		Format:        binary.LittleEndian.Uint16(raw[0:2]),
		NumChannels:   binary.LittleEndian.Uint16(raw[2:4]),
		SampleRate:    binary.LittleEndian.Uint32(raw[4:8]),
		ByteRate:      binary.LittleEndian.Uint32(raw[8:12]),
		BlockAlign:    binary.LittleEndian.Uint16(raw[12:14]),
		BitsPerSample: binary.LittleEndian.Uint16(raw[14:16]),
	}
	if size >= 18 {
		h.ExtensionSize = binary.LittleEndian.Uint16(raw[16:18])
	}
	if h.Format == FormatExtensible {
		if size < 40 {
			return fmt.Errorf("%w: extensible fmt chunk size %d", ErrBadHeader, size)
		}
		h.ValidBitsPerSample = binary.LittleEndian.Uint16(raw[18:20])
		h.ChannelMask = binary.LittleEndian.Uint32(raw[20:24])
		h.SubFormat.Format = binary.LittleEndian.Uint16(raw[24:26])
		copy(h.SubFormat.GUID[:], raw[26:40])
	}
	r.hdr = h

	return r.prepareDecode()
}

// prepareDecode binds the per-sample decoder for the effective format.
// Every decoder yields the canonical signed 32-bit intermediate with
// the sample bits in the high bits.
func (r *Reader[T]) prepareDecode() error {
	bits := int(r.hdr.BitsPerSample)

	switch format := r.hdr.EffectiveFormat(); format {
	case FormatPCM:
		switch bits {
		case 8:
			r.bytesPer = 1
			// 8-bit PCM is unsigned; the XOR recenters it at zero.
			r.decode = func(b []byte) int32 {
				return int32(uint32(b[0])<<24 ^ 0x80000000)
			}
		case 16:
			r.bytesPer = 2
			r.decode = func(b []byte) int32 {
				return int32(int16(binary.LittleEndian.Uint16(b))) << 16
			}
		case 24:
			r.bytesPer = 3
			r.decode = func(b []byte) int32 {
				return gaudio.Int24LETo32(b[:3]) << 8
			}
		case 32:
			r.bytesPer = 4
			r.decode = func(b []byte) int32 {
				return int32(binary.LittleEndian.Uint32(b))
			}
		default:
			return fmt.Errorf("%w: PCM with %d bits per sample", ErrUnsupportedSampleType, bits)
		}
	case FormatIEEEFloat:
		if bits != 32 {
			return fmt.Errorf("%w: IEEE float with %d bits per sample", ErrUnsupportedSampleType, bits)
		}
		r.bytesPer = 4
		r.decode = decodeFloat32
	case FormatALaw:
		if bits != 8 {
			return fmt.Errorf("%w: A-law with %d bits per sample", ErrUnsupportedSampleType, bits)
		}
		r.bytesPer = 1
		r.decode = func(b []byte) int32 { return int32(alawTable[b[0]]) << 16 }
	case FormatULaw:
		if bits != 8 {
			return fmt.Errorf("%w: mu-law with %d bits per sample", ErrUnsupportedSampleType, bits)
		}
		r.bytesPer = 1
		r.decode = func(b []byte) int32 { return int32(ulawTable[b[0]]) << 16 }
	default:
		return fmt.Errorf("%w: format code %#04x", ErrUnsupportedFormat, format)
	}

	return nil
}

// decodeFloat32 scales a normalized float into the canonical int32
// range, rounding half away from zero and clamping at the extremes.
func decodeFloat32(b []byte) int32 {
	f := math.Float32frombits(binary.LittleEndian.Uint32(b))
	v := float64(f) * (1 << 31)
	if v >= 0 {
		v += 0.5
	} else {
		v -= 0.5
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int32(v)
}

// Decoder constructs an audio.Source from a WAVE stream, forcing the
// header parse so that stream metadata is available immediately.
type Decoder struct{}

func (Decoder) Decode(rd io.Reader) (audio.Source, error) {
	r := NewReader[float32](rd)
	if _, err := r.Header(); err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return r, nil
}
