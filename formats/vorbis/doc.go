// SPDX-License-Identifier: EPL-2.0

// Package vorbis adapts github.com/jfreymuth/oggvorbis into an
// audio.Source so Ogg Vorbis streams can feed the feature-extraction
// pipeline.
package vorbis
