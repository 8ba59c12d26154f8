package feature

import "math"

// makeWindow precomputes the analysis window of the given length.
func makeWindow(kind WindowKind, length int, blackmanCoeff float32) []float32 {
	w := make([]float32, length)
	a := 2 * math.Pi / float64(length-1)
	for i := range w {
		x := a * float64(i)
		switch kind {
		case Hanning:
			w[i] = float32(0.5 - 0.5*math.Cos(x))
		case Hamming:
			w[i] = float32(0.54 - 0.46*math.Cos(x))
		case Povey:
			w[i] = float32(math.Pow(0.5-0.5*math.Cos(x), 0.85))
		case Blackman:
			b := float64(blackmanCoeff)
			w[i] = float32(b - 0.5*math.Cos(x) + (0.5-b)*math.Cos(2*x))
		default:
			w[i] = 1
		}
	}
	return w
}
