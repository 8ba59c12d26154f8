// SPDX-License-Identifier: EPL-2.0

package dsp

import "errors"

var (
	// ErrDataSizeMismatch is returned when the real and imaginary slices
	// passed to a transform differ in length.
	ErrDataSizeMismatch = errors.New("real and imaginary lengths differ")
	// ErrInvalidSize is returned for transform sizes that are not a
	// power of two or exceed the precomputed table range.
	ErrInvalidSize = errors.New("invalid transform size")
)
