// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sync"
)

// Sample is the set of sample types the pipeline stages can produce:
// signed 16-bit PCM or normalized float32.
type Sample interface {
	~int16 | ~float32
}

// Source is a pull-based stream of normalized float32 samples.
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1).
	// Returns number of float32 values written. When n == 0 with
	// err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	// Close releases any resources.
	Close() error
}

// SampleReader is the structured-read capability of a sample producer.
// A stage that can also expose its samples as raw little-endian bytes
// additionally implements io.Reader.
type SampleReader[T Sample] interface {
	ReadSamples(dst []T) (n int, err error)
}

// FrameReader is the structured-read capability of a frame producer.
// ReadFrame fills dst with exactly one frame and returns io.EOF once
// the stream is finished.
type FrameReader[T Sample] interface {
	ReadFrame(dst []T) error
	FrameLength() int
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg vorbis").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}
