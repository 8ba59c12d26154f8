// SPDX-License-Identifier: EPL-2.0

package feature

import (
	"fmt"

	"github.com/ik5/speechfeat/utils"
)

// WindowKind selects the analysis window applied before the FFT.
type WindowKind int

const (
	Hanning WindowKind = iota
	Hamming
	Rectangular
	Blackman
	Povey
)

// OutputKind selects what Mfcc emits per frame.
type OutputKind int

const (
	// MelEnergy emits the log Mel-filterbank channel energies.
	MelEnergy OutputKind = iota
	// MFCC emits Mel-frequency cepstral coefficients.
	MFCC
)

// FrameOpts configures the sliding frame producer.
type FrameOpts struct {
	// Length is the number of samples per frame.
	Length int
	// Shift is the number of samples between successive frame starts.
	// Must be in (0, Length].
	Shift int
}

// DefaultFrameOpts returns the standard 256/100 framing.
func DefaultFrameOpts() FrameOpts {
	return FrameOpts{Length: 256, Shift: 100}
}

func (o FrameOpts) validate() error {
	if o.Length < 2 || o.Shift < 1 || o.Shift > o.Length {
		return fmt.Errorf("%w: length %d, shift %d", ErrInvalidFrameOpts, o.Length, o.Shift)
	}
	return nil
}

// MelOpts configures feature extraction.
type MelOpts struct {
	FrameLength       int
	SampleRate        int
	RemoveDCOffset    bool
	Dither            float32
	PreemphCoeff      float32
	LifteringCoeff    float32
	BlackmanCoeff     float32
	Window            WindowKind
	FilterbankFloor   float32
	FilterbankNumBins int
	MfccOrder         int
	Output            OutputKind
	OutputEnergy      bool
	OutputC0          bool
}

// DefaultMelOpts returns the standard MFCC configuration.
func DefaultMelOpts() MelOpts {
	return MelOpts{
		FrameLength:       256,
		SampleRate:        16000,
		RemoveDCOffset:    true,
		Dither:            1.0,
		PreemphCoeff:      0.97,
		LifteringCoeff:    22.0,
		BlackmanCoeff:     0.42,
		Window:            Povey,
		FilterbankFloor:   1.0,
		FilterbankNumBins: 20,
		MfccOrder:         12,
		Output:            MFCC,
		OutputEnergy:      true,
		OutputC0:          false,
	}
}

// FeatLength returns the number of values in one emitted feature vector.
func (o MelOpts) FeatLength() int {
	n := o.FilterbankNumBins
	if o.Output == MFCC {
		n = o.MfccOrder
	}
	if o.OutputC0 {
		n++
	}
	if o.OutputEnergy {
		n++
	}
	return n
}

// fftFrameLength is the padded FFT size: the next power of two above
// FrameLength. A frame length that is already a power of two is doubled.
func (o MelOpts) fftFrameLength() int {
	return utils.NextPowerOfTwo(o.FrameLength)
}

func (o MelOpts) validate() error {
	switch {
	case o.FrameLength < 2:
		return fmt.Errorf("%w: frame length %d", ErrInvalidMelOpts, o.FrameLength)
	case o.SampleRate < 1:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidMelOpts, o.SampleRate)
	case o.FilterbankNumBins < 1:
		return fmt.Errorf("%w: %d filterbank bins", ErrInvalidMelOpts, o.FilterbankNumBins)
	case o.Output == MFCC && (o.MfccOrder < 1 || o.MfccOrder >= o.FilterbankNumBins):
		return fmt.Errorf("%w: mfcc order %d with %d filterbank bins", ErrInvalidMelOpts, o.MfccOrder, o.FilterbankNumBins)
	}
	return nil
}
