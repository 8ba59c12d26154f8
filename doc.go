// SPDX-License-Identifier: EPL-2.0

// Package speechfeat turns audio byte streams into acoustic feature
// vectors for speech processing.
//
// The pipeline is a chain of pull-driven stages:
//
//	WAVE decode -> overlapping frames -> window/FFT/Mel/DCT -> features
//
// Each stage reads from the stage above it on demand; nothing runs in
// the background and nothing is buffered beyond one frame.
//
// # Packages
//
//   - audio: core interfaces (Source, SampleReader, FrameReader), the
//     decoder registry, and little-endian byte adapters
//   - formats/wav: the RIFF/WAVE decoder with PCM, IEEE float and
//     G.711 sub-format support
//   - formats/mp3, formats/vorbis, formats/aiff: additional decoders
//     feeding the same pipeline
//   - feature: the frame producer and the Mel-filterbank/MFCC maker
//   - dsp: the shared FFT and DCT kernels
//
// # Quick Start
//
//	file, _ := os.Open("speech.wav")
//	src, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	opts := feature.DefaultMelOpts()
//	opts.OutputC0 = true
//	vectors, err := speechfeat.ExtractFeatures(src, feature.DefaultFrameOpts(), opts)
//
// # Streaming
//
// For incremental processing, compose the stages directly and pull one
// vector at a time:
//
//	framer, _ := feature.NewFramer[float32](src, feature.DefaultFrameOpts())
//	maker, _ := feature.NewMfcc(framer, opts)
//	vec := make([]float32, maker.FeatLength())
//	for {
//	    if err := maker.ReadFrame(vec); err == io.EOF {
//	        break
//	    } else if err != nil {
//	        return err
//	    }
//	    // consume vec
//	}
//
// Every stage also implements io.Reader, emitting its structured output
// as little-endian bytes, so stages can be piped across process
// boundaries as easily as composed in memory.
//
// # Error Handling
//
// A clean end of stream is io.EOF. A stream error (malformed or
// truncated input, a failing source) is fatal to the stage that raised
// it: the stage sticks in a failed state and later reads return
// audio.ErrBadState. A destination or buffer of the wrong size is
// rejected with audio.ErrIncorrectFrameSize or audio.ErrBufferTooShort
// and leaves the stage's state unchanged. Callers should tear the
// pipeline down on any non-EOF error.
package speechfeat
