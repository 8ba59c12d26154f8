// SPDX-License-Identifier: EPL-2.0

// Package feature produces acoustic feature vectors from sample streams.
//
// The package implements the downstream half of the pipeline: the
// Framer slices a sample stream into overlapping, zero-padded frames,
// and Mfcc drives the per-frame chain of dither, DC removal,
// pre-emphasis, windowing, FFT magnitude spectrum, Mel filterbank, DCT
// and liftering to yield log Mel energies or MFCC vectors.
//
// # Framing
//
//	framer, err := feature.NewFramer[float32](source, feature.DefaultFrameOpts())
//	frame := make([]float32, 256)
//	err = framer.ReadFrame(frame)
//
// Frames overlap by Length-Shift samples. The first half frame is
// zero-padded so that frame i is centered on sample i*Shift, and one
// final frame is zero-padded on the right after the source ends.
//
// # Feature Extraction
//
//	mfcc, err := feature.NewMfcc(framer, feature.DefaultMelOpts())
//	vec := make([]float32, mfcc.FeatLength())
//	for {
//	    err := mfcc.ReadFrame(vec)
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // consume vec
//	}
//
// Every stage also implements io.Reader, emitting its structured output
// as little-endian bytes, one frame or vector per call.
//
// # Determinism
//
// The dither generator is seeded at construction, so runs over the same
// input from fresh instances are bit-identical. Set Dither to 0 to make
// output independent of the generator entirely.
package feature
