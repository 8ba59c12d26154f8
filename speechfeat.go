// SPDX-License-Identifier: EPL-2.0

package speechfeat

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/speechfeat/audio"
	"github.com/ik5/speechfeat/feature"
	"github.com/ik5/speechfeat/formats/aiff"
	"github.com/ik5/speechfeat/formats/mp3"
	"github.com/ik5/speechfeat/formats/vorbis"
	"github.com/ik5/speechfeat/formats/wav"
)

// DefaultRegistry returns a registry with every built-in decoder
// registered under its conventional key.
func DefaultRegistry() *audio.Registry {
	registry := audio.NewRegistry()
	registry.Register("wav", wav.Decoder{})
	registry.Register("mp3", mp3.Decoder{})
	registry.Register("ogg vorbis", vorbis.Decoder{})
	registry.Register("aiff", aiff.Decoder{})
	return registry
}

// ExtractFeatures is a high-level convenience function that runs the
// whole chain over a decoded source and collects every feature vector:
//
//  1. The Framer slices the sample stream into overlapping,
//     zero-padded frames
//  2. The Mfcc maker turns each frame into a feature vector
//  3. Vectors are read until the stream, including the final padded
//     frame, is exhausted
//
// frameOpts.Length and melOpts.FrameLength must agree; the composition
// is rejected otherwise.
//
// Example:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	vectors, err := speechfeat.ExtractFeatures(src, feature.DefaultFrameOpts(), opts)
//	if err != nil {
//	    return err
//	}
//	// vectors[i] holds frame i's features
//
// For streaming consumption, compose feature.NewFramer and
// feature.NewMfcc directly.
func ExtractFeatures(src audio.Source, frameOpts feature.FrameOpts, melOpts feature.MelOpts) ([][]float32, error) {
	framer, err := feature.NewFramer[float32](src, frameOpts)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	maker, err := feature.NewMfcc(framer, melOpts)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	var out [][]float32
	for {
		vec := make([]float32, maker.FeatLength())
		err := maker.ReadFrame(vec)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		out = append(out, vec)
	}
}
