// SPDX-License-Identifier: EPL-2.0

// Package wav decodes RIFF/WAVE byte streams into sample streams.
//
// The reader walks the chunk list with the github.com/go-audio/riff
// parser, skipping unknown chunks by their declared size, and decodes
// the data chunk incrementally as samples are pulled.
//
// # Supported Formats
//
//   - PCM 8, 16, 24 and 32 bit
//   - IEEE float 32 bit
//   - ITU-T G.711 mu-law and A-law
//   - WAVE_FORMAT_EXTENSIBLE wrapping any of the above
//
// # Decoding
//
// The reader is generic over the output sample type:
//
//	r := wav.NewReader[float32](file)
//	buf := make([]float32, 4096)
//	n, err := r.ReadSamples(buf)
//
// All formats decode through a canonical signed 32-bit intermediate, so
// a given input produces consistent int16 and float32 renditions.
//
// The zero-argument Decoder type plugs the reader into the format
// registry, producing an audio.Source of float32 samples.
package wav
