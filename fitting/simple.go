package fitting

import (
	"fmt"

	"github.com/drakos74/curvefit/leastsquares"
)

// SimpleCurveFitter fits any parametric function from an explicit start point.
type SimpleCurveFitter struct {
	f             ParametricFunction
	initialGuess  []float64
	maxIterations int
	optimizer     leastsquares.Optimizer
}

// NewSimpleCurveFitter creates a fitter for f starting from the given parameters.
func NewSimpleCurveFitter(f ParametricFunction, start []float64) *SimpleCurveFitter {
	return &SimpleCurveFitter{
		f:             f,
		initialGuess:  copyOf(start),
		maxIterations: defaultMaxIterations,
	}
}

func (f SimpleCurveFitter) WithStartPoint(start []float64) *SimpleCurveFitter {
	f.initialGuess = copyOf(start)
	return &f
}

func (f SimpleCurveFitter) WithMaxIterations(maxIterations int) *SimpleCurveFitter {
	f.maxIterations = maxIterations
	return &f
}

func (f SimpleCurveFitter) WithOptimizer(optimizer leastsquares.Optimizer) *SimpleCurveFitter {
	f.optimizer = optimizer
	return &f
}

func (f *SimpleCurveFitter) Name() string {
	return "simple"
}

// Problem implements ProblemBuilder.
func (f *SimpleCurveFitter) Problem(points []WeightedObservedPoint) (leastsquares.Problem, error) {
	if f.f == nil {
		return nil, fmt.Errorf("parametric function: %w", leastsquares.NullArgumentErr)
	}
	if len(f.initialGuess) == 0 {
		return nil, fmt.Errorf("simple fitter: %w", MissingStartErr)
	}
	return problem(f.f, points, f.initialGuess, f.maxIterations)
}

func (f *SimpleCurveFitter) Fit(points []WeightedObservedPoint) ([]float64, error) {
	return Fit(f, f.optimizer, points)
}
