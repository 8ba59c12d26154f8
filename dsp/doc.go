// SPDX-License-Identifier: EPL-2.0

// Package dsp holds the shared numeric kernels of the pipeline: the
// radix-2 FFT with its precomputed sine table and the type-II DCT used
// for cepstral coefficients.
package dsp
