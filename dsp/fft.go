// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"fmt"
	"math"

	"github.com/ik5/speechfeat/utils"
)

// FFT performs in-place radix-2 transforms on power-of-two lengths up to
// a fixed maximum. A single sine table covers every sub-size: the angle
// 2*pi*i/m for an m-point transform is looked up with table step max/m.
// The table is immutable after NewFFT and may be shared by reference
// across transform objects.
type FFT struct {
	max int
	sin []float32
}

// NewFFT precomputes the sine table for transforms up to maxSize points.
// The table holds sin(2*pi*i/maxSize) for i in [0, maxSize*3/4]; the
// cosine at index i is read as sin[i + maxSize/4].
func NewFFT(maxSize int) (*FFT, error) {
	if maxSize < 4 || !utils.IsPowerOfTwo(maxSize) {
		return nil, fmt.Errorf("%w: max size %d", ErrInvalidSize, maxSize)
	}

	t := &FFT{
		max: maxSize,
		sin: make([]float32, maxSize-maxSize/4+1),
	}
	for i := range t.sin {
		t.sin[i] = float32(math.Sin(2 * math.Pi * float64(i) / float64(maxSize)))
	}
	t.sin[0] = 0

	return t, nil
}

// MaxSize returns the largest transform length the table supports.
func (t *FFT) MaxSize() int { return t.max }

func (t *FFT) cos(i int) float32 { return t.sin[i+t.max/4] }

func (t *FFT) checkSize(n int) error {
	if n > t.max || !utils.IsPowerOfTwo(n) {
		return fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	return nil
}

// Transform runs the complex in-place FFT over re and im.
func (t *FFT) Transform(re, im []float32) error {
	if len(re) != len(im) {
		return fmt.Errorf("%w: %d real, %d imaginary", ErrDataSizeMismatch, len(re), len(im))
	}
	if err := t.checkSize(len(re)); err != nil {
		return err
	}

	t.transform(re, im)
	return nil
}

// TransformReal runs the real-input FFT over re; the imaginary input is
// treated as zero regardless of contents. On return re and im hold the
// full conjugate-symmetric spectrum.
func (t *FFT) TransformReal(re, im []float32) error {
	if len(re) != len(im) {
		return fmt.Errorf("%w: %d real, %d imaginary", ErrDataSizeMismatch, len(re), len(im))
	}
	m := len(re)
	if err := t.checkSize(m); err != nil {
		return err
	}
	if m == 1 {
		im[0] = 0
		return nil
	}

	// Even samples into the low half of re, odd samples into the low
	// half of im: one m/2-point complex transform computes both.
	for i := 0; i < m; i += 2 {
		even, odd := re[i], re[i+1]
		re[i/2] = even
		im[i/2] = odd
	}
	half := m / 2
	t.transform(re[:half], im[:half])

	// Recombine the half-size spectrum into the m-point real-input DFT.
	step := t.max / m
	for i := 1; i < half; i++ {
		s := t.sin[i*step]
		c := t.cos(i * step)
		ti := im[half-i] + im[i]
		tr := re[half-i] - re[i]
		re[half+i] = 0.5 * (re[half-i] + re[i] - c*ti - s*tr)
		im[half+i] = 0.5 * (im[i] - im[half-i] + s*ti - c*tr)
	}
	re[half] = re[0] - im[0]
	im[half] = 0
	re[0] = re[0] + im[0]
	im[0] = 0

	// The low half follows from conjugate symmetry of a real sequence.
	for i := 1; i < half; i++ {
		re[i] = re[m-i]
		im[i] = -im[m-i]
	}

	return nil
}

// transform is the iterative radix-2 decimation-in-frequency butterfly
// loop, followed by the twiddle-free pair pass and the bit-reversal
// permutation. Sizes are assumed validated.
func (t *FFT) transform(re, im []float32) {
	n := len(re)
	if n < 2 {
		return
	}

	for m := n; m > 2; m >>= 1 {
		half := m >> 1
		step := t.max / m
		for base := 0; base < n; base += m {
			k := 0
			for j := base; j < base+half; j++ {
				l := j + half
				tr := re[j] - re[l]
				ti := im[j] - im[l]
				re[j] += re[l]
				im[j] += im[l]
				c := t.cos(k)
				s := t.sin[k]
				re[l] = tr*c + ti*s
				im[l] = ti*c - tr*s
				k += step
			}
		}
	}

	// The final stage pairs need no twiddle.
	for j := 0; j < n; j += 2 {
		tr := re[j] - re[j+1]
		ti := im[j] - im[j+1]
		re[j] += re[j+1]
		im[j] += im[j+1]
		re[j+1] = tr
		im[j+1] = ti
	}

	bits := 0
	for 1<<bits < n {
		bits++
	}
	for i := range n {
		j := reverseBits(i, bits)
		if i < j {
			re[i], re[j] = re[j], re[i]
			im[i], im[j] = im[j], im[i]
		}
	}
}

func reverseBits(x, bits int) int {
	r := 0
	for range bits {
		r = r<<1 | x&1
		x >>= 1
	}
	return r
}
