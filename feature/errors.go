// SPDX-License-Identifier: EPL-2.0

package feature

import "errors"

var (
	// ErrInvalidFrameOpts is returned for frame lengths below two or
	// shifts outside (0, length].
	ErrInvalidFrameOpts = errors.New("invalid frame options")
	// ErrInvalidMelOpts is returned when the feature configuration is
	// not internally consistent.
	ErrInvalidMelOpts = errors.New("invalid mel options")
	// ErrUnsupportedSource is returned at construction when the given
	// source offers neither the structured capability nor a byte stream.
	ErrUnsupportedSource = errors.New("source is neither a structured reader nor a byte stream")
)
