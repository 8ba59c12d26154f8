// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	// ErrBadHeader marks a structurally invalid RIFF/WAVE stream.
	ErrBadHeader = errors.New("malformed wave header")
	// ErrUnsupportedFormat marks a format code the decoder does not
	// understand.
	ErrUnsupportedFormat = errors.New("unsupported wave format")
	// ErrUnsupportedSampleType marks a bits-per-sample value that is
	// invalid for the stream's format code.
	ErrUnsupportedSampleType = errors.New("unsupported sample type")
)
