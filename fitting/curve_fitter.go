package fitting

import (
	"fmt"

	"github.com/drakos74/curvefit/internal/metrics"
	"github.com/drakos74/curvefit/leastsquares"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
)

// CurveFitter collects observations and fits parametric functions to them with its own optimizer.
// It is not safe for concurrent use.
type CurveFitter struct {
	optimizer    leastsquares.Optimizer
	observations *WeightedObservedPoints
}

// NewCurveFitter creates a fitter driving the given optimizer.
// A nil optimizer falls back to Levenberg-Marquardt.
func NewCurveFitter(optimizer leastsquares.Optimizer) *CurveFitter {
	if optimizer == nil {
		optimizer = leastsquares.NewLevenbergMarquardt()
	}
	return &CurveFitter{
		optimizer:    optimizer,
		observations: NewWeightedObservedPoints(),
	}
}

// AddObservedPoint adds an observation with unit weight.
func (c *CurveFitter) AddObservedPoint(x, y float64) {
	c.observations.Add(x, y)
}

// AddWeightedObservedPoint adds a weighted observation.
func (c *CurveFitter) AddWeightedObservedPoint(weight, x, y float64) {
	c.observations.AddWeighted(weight, x, y)
}

func (c *CurveFitter) AddPoint(p WeightedObservedPoint) {
	c.observations.AddPoint(p)
}

// Observations returns a copy of the current observations.
func (c *CurveFitter) Observations() []WeightedObservedPoint {
	return c.observations.ToList()
}

func (c *CurveFitter) ClearObservations() {
	c.observations.Clear()
}

// FitFunction fits f to the observations, using at most maxEvaluations model evaluations.
// The fit stops once the residuals are stable.
func (c *CurveFitter) FitFunction(maxEvaluations int, f ParametricFunction, start []float64) ([]float64, error) {
	if f == nil {
		return nil, fmt.Errorf("parametric function: %w", leastsquares.NullArgumentErr)
	}
	points := c.observations.ToList()
	target, weights, err := observations(points)
	if err != nil {
		return nil, err
	}
	model := NewTheoreticalValues(f, points)
	problem, err := leastsquares.CreateFromFuncs(
		model.ValueFunc(), model.JacobianFunc(),
		target, copyOf(start),
		mat.NewDiagDense(len(weights), weights),
		leastsquares.NewVectorValueChecker(convergenceTolerance, convergenceTolerance),
		maxEvaluations, defaultMaxIterations)
	if err != nil {
		metrics.Observer.Fit("curve", 0, 0, err)
		return nil, fmt.Errorf("could not build curve problem: %w", err)
	}

	optimum, err := c.optimizer.Optimize(problem)
	if err != nil {
		metrics.Observer.Fit("curve", 0, 0, err)
		return nil, fmt.Errorf("could not fit curve: %w", err)
	}
	metrics.Observer.Fit("curve", optimum.Iterations(), optimum.Evaluations(), nil)

	log.Debug().
		Int("points", len(points)).
		Int("evaluations", optimum.Evaluations()).
		Float64("rms", optimum.RMS()).
		Msg("curve fit done")

	return leastsquares.Values(optimum.Point()), nil
}
