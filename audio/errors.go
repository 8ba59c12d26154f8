// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	// ErrBufferTooShort is returned by byte-oriented reads when the
	// caller's buffer cannot hold one complete frame or sample.
	ErrBufferTooShort = errors.New("buffer too short")
	// ErrIncorrectFrameSize is returned when a destination slice does not
	// match the producer's frame length.
	ErrIncorrectFrameSize = errors.New("incorrect frame size")
	// ErrBadState is returned by every operation on an object that has
	// already failed. The first error wins; nothing is retried.
	ErrBadState = errors.New("use after a previous failure")
)
