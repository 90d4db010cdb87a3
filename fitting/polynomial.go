package fitting

import (
	"fmt"

	"github.com/drakos74/curvefit/leastsquares"
)

// PolynomialCurveFitter fits a polynomial of a fixed degree.
// The degree is implied by the length of the start point.
type PolynomialCurveFitter struct {
	initialGuess  []float64
	maxIterations int
	optimizer     leastsquares.Optimizer
}

// NewPolynomialCurveFitter creates a fitter for the given degree, starting from all-zero coefficients.
func NewPolynomialCurveFitter(degree int) *PolynomialCurveFitter {
	var guess []float64
	if degree >= 0 {
		guess = make([]float64, degree+1)
	}
	return &PolynomialCurveFitter{
		initialGuess:  guess,
		maxIterations: defaultMaxIterations,
	}
}

// WithStartPoint returns a copy of the fitter starting from the given coefficients.
func (f PolynomialCurveFitter) WithStartPoint(coefficients []float64) *PolynomialCurveFitter {
	f.initialGuess = copyOf(coefficients)
	return &f
}

// WithMaxIterations returns a copy of the fitter with the given iteration budget.
func (f PolynomialCurveFitter) WithMaxIterations(maxIterations int) *PolynomialCurveFitter {
	f.maxIterations = maxIterations
	return &f
}

// WithOptimizer returns a copy of the fitter using the given optimizer.
func (f PolynomialCurveFitter) WithOptimizer(optimizer leastsquares.Optimizer) *PolynomialCurveFitter {
	f.optimizer = optimizer
	return &f
}

func (f *PolynomialCurveFitter) Name() string {
	return "polynomial"
}

// Problem implements ProblemBuilder.
func (f *PolynomialCurveFitter) Problem(points []WeightedObservedPoint) (leastsquares.Problem, error) {
	if len(f.initialGuess) == 0 {
		return nil, fmt.Errorf("polynomial fitter without coefficients: %w", MissingStartErr)
	}
	return problem(Polynomial{}, points, f.initialGuess, f.maxIterations)
}

// Fit returns the coefficients c[0], c[1], ... of the best fitting polynomial.
func (f *PolynomialCurveFitter) Fit(points []WeightedObservedPoint) ([]float64, error) {
	return Fit(f, f.optimizer, points)
}
