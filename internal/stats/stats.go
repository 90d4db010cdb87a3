package stats

import (
	"fmt"
	"math"
)

// Stats is a set of statistical properties of the residuals of a fit.
type Stats struct {
	count          int
	min, max       float64
	mean, dSquared float64
	squares        float64
	chiSquare      float64
}

// NewStats creates a new Stats.
func NewStats() *Stats {
	return &Stats{
		min: math.MaxFloat64,
		max: -math.MaxFloat64,
	}
}

// Push adds another residual with its weight to the set.
func (s *Stats) Push(residual, weight float64) {
	s.count++
	diff := (residual - s.mean) / float64(s.count)
	mean := s.mean + diff
	s.dSquared += (residual - mean) * (residual - s.mean)
	s.mean = mean

	s.squares += residual * residual
	s.chiSquare += weight * residual * residual

	if s.min > residual {
		s.min = residual
	}
	if s.max < residual {
		s.max = residual
	}
}

// Count returns the number of residuals.
func (s Stats) Count() int {
	return s.count
}

// Avg returns the average residual, which is close to zero for an unbiased fit.
func (s Stats) Avg() float64 {
	return s.mean
}

func (s Stats) Min() float64 {
	return s.min
}

func (s Stats) Max() float64 {
	return s.max
}

// Variance is the mathematical variance of the residuals.
func (s Stats) Variance() float64 {
	if s.count == 0 {
		return 0
	}
	return s.dSquared / float64(s.count)
}

// StDev is the standard deviation of the residuals.
func (s Stats) StDev() float64 {
	return math.Sqrt(s.Variance())
}

// RMS is the root mean square of the unweighted residuals.
func (s Stats) RMS() float64 {
	if s.count == 0 {
		return 0
	}
	return math.Sqrt(s.squares / float64(s.count))
}

// ChiSquare is the weighted sum of the squared residuals.
func (s Stats) ChiSquare() float64 {
	return s.chiSquare
}

// ReducedChiSquare divides the chi-square by the degrees of freedom left by the given number of parameters.
func (s Stats) ReducedChiSquare(parameters int) float64 {
	dof := s.count - parameters
	if dof <= 0 {
		return math.Inf(1)
	}
	return s.chiSquare / float64(dof)
}

// Residuals computes the statistics of y - f(x) over the observations.
func Residuals(x, y, w []float64, f func(x float64) (float64, error)) (*Stats, error) {
	if len(x) != len(y) || len(x) != len(w) {
		return nil, fmt.Errorf("inconsistent dimensions x:%d y:%d w:%d", len(x), len(y), len(w))
	}
	s := NewStats()
	for i := range x {
		v, err := f(x[i])
		if err != nil {
			return nil, fmt.Errorf("could not evaluate at %f: %w", x[i], err)
		}
		s.Push(y[i]-v, w[i])
	}
	return s, nil
}
