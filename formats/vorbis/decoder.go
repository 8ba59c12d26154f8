package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/speechfeat/audio"
)

// oggReader is the slice of oggvorbis.Reader the source needs; an
// interface so tests can stub it.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

// source adapts an ogg/vorbis reader, which already emits float32
// frames, into the pipeline's sample stream.
type source struct {
	dec      oggReader
	channels int
	frameBuf []float32
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	// oggvorbis counts in frames, not samples.
	frames := len(dst) / s.channels
	if frames == 0 {
		frames = 1
	}
	need := frames * s.channels
	if cap(s.frameBuf) < need {
		s.frameBuf = make([]float32, need)
	}

	framesRead, err := s.dec.Read(s.frameBuf[:need])
	if framesRead == 0 {
		if err != nil {
			return 0, err
		}
		return 0, nil
	}

	n := copy(dst, s.frameBuf[:framesRead*s.channels])
	return n, err
}

// Decoder constructs an audio.Source from an Ogg Vorbis stream.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec:      dec,
		channels: dec.Channels(),
		frameBuf: make([]float32, 4096),
	}, nil
}
