// SPDX-License-Identifier: EPL-2.0

// Package audio provides the core interfaces and byte adapters of the
// feature-extraction pipeline.
//
// This package contains the building blocks every stage composes over:
//   - Source interface for decoded float32 audio input
//   - SampleReader and FrameReader capabilities for typed pull streams
//   - Format registry for decoder registration
//   - Little-endian byte adapters between structured and raw streams
//
// # Source Interface
//
// The Source interface is the foundation of the pipeline:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// All audio decoders implement this interface, allowing them to feed the
// frame producer and the feature maker interchangeably.
//
// # Typed Capabilities
//
// Stages are polymorphic over their upstream source. A stage checks at
// construction time whether its source offers the structured capability
// (SampleReader or FrameReader of T) or is a plain byte stream
// (io.Reader); in the latter case the bytes are reinterpreted as
// little-endian samples. Dispatch happens once, at construction, never
// per read.
//
// # Sample Format
//
// Samples flow through the pipeline either as float32 in [-1.0, 1.0) or
// as signed 16-bit PCM. Decoders produce both through a canonical signed
// 32-bit intermediate; see ConvertSamples.
//
// # Error Handling
//
// Reads return io.EOF when no more data is available. Any other error
// from a pipeline stage's stream (decoder, framer, feature maker) is
// fatal to that stage: it sticks in a failed state and every later read
// fails with ErrBadState. A destination slice or byte buffer of the
// wrong size is rejected with ErrIncorrectFrameSize or ErrBufferTooShort
// and does not change the stage's state.
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    if err == io.EOF {
//	        break // Normal end of stream
//	    }
//	    if err != nil {
//	        return err // Processing error
//	    }
//	    // Process n samples from buf
//	}
package audio
