// SPDX-License-Identifier: EPL-2.0

// Package mp3 adapts github.com/hajimehoshi/go-mp3 into an audio.Source
// so MP3 streams can feed the feature-extraction pipeline. Output is
// stereo float32 at the stream's native sample rate.
package mp3
