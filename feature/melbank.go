// SPDX-License-Identifier: EPL-2.0

package feature

import "math"

// FilterBank assigns FFT bins to Mel channels. Two parallel tables of
// length fftLength/2 drive the accumulation: bin[k] is the channel index
// below FFT bin k, in [0, numBins]; weight[k] is the share of the bin
// that belongs to that lower channel, the remainder going to the channel
// above. Channels are spaced uniformly on the Mel axis from 0 Hz to the
// Nyquist frequency.
type FilterBank struct {
	numBins int
	bin     []int
	weight  []float32
}

func melScale(freq float64) float64 {
	return 1127.0 * math.Log(1.0+freq/700.0)
}

// NewFilterBank builds the tables for an fftLength-point spectrum at the
// given sample rate.
func NewFilterBank(fftLength, sampleRate, numBins int) *FilterBank {
	half := fftLength / 2
	fb := &FilterBank{
		numBins: numBins,
		bin:     make([]int, half),
		weight:  make([]float32, half),
	}

	melStep := melScale(float64(sampleRate)/2) / float64(numBins+1)
	for k := 1; k < half; k++ {
		freq := float64(k) * float64(sampleRate) / float64(fftLength)
		// Fractional channel position of this FFT bin on the Mel axis.
		pos := melScale(freq) / melStep
		c := int(pos)
		if c > numBins {
			c = numBins
		}
		fb.bin[k] = c
		fb.weight[k] = float32(float64(c+1) - pos)
	}

	return fb
}

// NumBins returns the number of Mel channels.
func (fb *FilterBank) NumBins() int { return fb.numBins }

// Apply accumulates the magnitude spectrum into per-channel totals.
// Each FFT bin splits between the channels on either side of it: its
// weight share goes to the lower channel, the rest to the upper one.
// Channel 0 and channel numBins+1 are the dummy edges and are dropped,
// which is what the two guards encode.
func (fb *FilterBank) Apply(spectrum []float32, dst []float32) {
	for i := range dst {
		dst[i] = 0
	}
	for k := 1; k < len(fb.bin); k++ {
		c := fb.bin[k]
		w := fb.weight[k]
		e := spectrum[k]
		if c > 0 {
			dst[c-1] += w * e
		}
		if c < fb.numBins {
			dst[c] += (1 - w) * e
		}
	}
}
