// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"fmt"
	"math"
)

// DCT computes an orthonormal type-II DCT of n points, realized as a
// 2n-point DFT over the even-symmetric extension of the input with a
// complex twiddle normalization. Not safe for concurrent use: the
// workspace is owned mutable state.
type DCT struct {
	n    int
	wRe  []float32
	wIm  []float32
	cosM [][]float32
	sinM [][]float32

	locRe []float32
	locIm []float32
	tmpRe []float32
	tmpIm []float32
}

// NewDCT precomputes the twiddle vector and the 2n-point DFT matrices.
func NewDCT(n int) (*DCT, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}

	d := &DCT{
		n:     n,
		wRe:   make([]float32, n),
		wIm:   make([]float32, n),
		cosM:  make([][]float32, 2*n),
		sinM:  make([][]float32, 2*n),
		locRe: make([]float32, 2*n),
		locIm: make([]float32, 2*n),
		tmpRe: make([]float32, 2*n),
		tmpIm: make([]float32, 2*n),
	}

	norm := 1 / math.Sqrt(float64(2*n))
	for k := range n {
		ang := float64(k) * math.Pi / float64(2*n)
		d.wRe[k] = float32(math.Cos(ang) * norm)
		d.wIm[k] = float32(-math.Sin(ang) * norm)
	}
	// DC normalization.
	d.wRe[0] *= float32(1 / math.Sqrt2)
	d.wIm[0] *= float32(1 / math.Sqrt2)

	m := 2 * n
	for k := range m {
		d.cosM[k] = make([]float32, m)
		d.sinM[k] = make([]float32, m)
		for j := range m {
			ang := 2 * math.Pi * float64(k) * float64(j) / float64(m)
			d.cosM[k][j] = float32(math.Cos(ang))
			d.sinM[k][j] = float32(math.Sin(ang))
		}
	}

	return d, nil
}

// Size returns the DCT input length n.
func (d *DCT) Size() int { return d.n }

// Apply transforms data in place. data carries a complex sequence of
// length n: the first n values are real parts, the next n imaginary
// parts. For a real input, fill the upper half with zeros; on return the
// first n values hold the DCT-II coefficients.
func (d *DCT) Apply(data []float32) error {
	n := d.n
	if len(data) != 2*n {
		return fmt.Errorf("%w: data length %d, want %d", ErrInvalidSize, len(data), 2*n)
	}

	// Even-symmetric extension: x0..x(n-1) followed by x(n-1)..x0.
	for i := range n {
		d.locRe[i] = data[i]
		d.locIm[i] = data[i+n]
		d.locRe[i+n] = data[n-1-i]
		d.locIm[i+n] = data[2*n-1-i]
	}

	m := 2 * n
	for k := range m {
		var accRe, accIm float64
		cosRow := d.cosM[k]
		sinRow := d.sinM[k]
		for j := range m {
			re := float64(d.locRe[j])
			im := float64(d.locIm[j])
			c := float64(cosRow[j])
			s := float64(sinRow[j])
			accRe += re*c + im*s
			accIm += im*c - re*s
		}
		d.tmpRe[k] = float32(accRe)
		d.tmpIm[k] = float32(accIm)
	}

	for k := range n {
		data[k] = d.tmpRe[k]*d.wRe[k] - d.tmpIm[k]*d.wIm[k]
		data[k+n] = d.tmpRe[k]*d.wIm[k] + d.tmpIm[k]*d.wRe[k]
	}

	return nil
}
