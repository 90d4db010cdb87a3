package fitting

import (
	"github.com/drakos74/curvefit/leastsquares"
)

// GaussianFitter fits a gaussian to the observations it collects.
type GaussianFitter struct {
	*CurveFitter
}

// NewGaussianFitter creates a gaussian fitter driving the given optimizer.
func NewGaussianFitter(optimizer leastsquares.Optimizer) *GaussianFitter {
	return &GaussianFitter{
		CurveFitter: NewCurveFitter(optimizer),
	}
}

// Fit guesses the start point from the observations and returns {norm, mean, σ}.
func (g *GaussianFitter) Fit() ([]float64, error) {
	guesser, err := NewGaussianGuesser(g.Observations())
	if err != nil {
		return nil, err
	}
	return g.FitFrom(guesser.Guess())
}

// FitFrom fits starting from the given {norm, mean, σ}.
func (g *GaussianFitter) FitFrom(start []float64) ([]float64, error) {
	return g.FitFunction(defaultMaxEvaluations, boundedGaussian{}, start)
}
