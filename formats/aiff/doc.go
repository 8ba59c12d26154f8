// SPDX-License-Identifier: EPL-2.0

// Package aiff adapts github.com/go-audio/aiff into an audio.Source so
// AIFF files can feed the feature-extraction pipeline.
package aiff
