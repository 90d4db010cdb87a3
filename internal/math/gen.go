package math

import (
	"math/rand"
)

// Linspace returns n equally spaced values from start to end, both included.
func Linspace(start, end float64, n int) []float64 {
	xx := make([]float64, n)
	if n == 1 {
		xx[0] = start
		return xx
	}
	step := (end - start) / float64(n-1)
	for i := 0; i < n; i++ {
		xx[i] = start + step*float64(i)
	}
	return xx
}

// Sample evaluates f at each x.
func Sample(f func(x float64) (float64, error), xx []float64) ([]float64, error) {
	yy := make([]float64, len(xx))
	for i, x := range xx {
		y, err := f(x)
		if err != nil {
			return nil, err
		}
		yy[i] = y
	}
	return yy, nil
}

// Noise adds gaussian noise of the given deviation to the values, in place.
// The same seed always produces the same noise.
func Noise(yy []float64, deviation float64, seed int64) []float64 {
	if deviation == 0 {
		return yy
	}
	r := rand.New(rand.NewSource(seed))
	for i := range yy {
		yy[i] += deviation * r.NormFloat64()
	}
	return yy
}
