package fitting

import (
	"fmt"
	"math"

	"github.com/drakos74/curvefit/internal/metrics"
	"github.com/drakos74/curvefit/leastsquares"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
)

const (
	defaultMaxIterations  = math.MaxInt32
	defaultMaxEvaluations = math.MaxInt32
	convergenceTolerance  = 1e-10
)

// ProblemBuilder creates the least-squares problem for a set of observations.
type ProblemBuilder interface {
	Problem(points []WeightedObservedPoint) (leastsquares.Problem, error)
}

type named interface {
	Name() string
}

// Fit builds the problem for the points and optimizes it, returning the fitted parameters.
// A nil optimizer falls back to Levenberg-Marquardt.
func Fit(builder ProblemBuilder, optimizer leastsquares.Optimizer, points []WeightedObservedPoint) ([]float64, error) {
	name := "custom"
	if n, ok := builder.(named); ok {
		name = n.Name()
	}

	problem, err := builder.Problem(points)
	if err != nil {
		metrics.Observer.Fit(name, 0, 0, err)
		return nil, fmt.Errorf("could not build %s problem: %w", name, err)
	}

	if optimizer == nil {
		optimizer = leastsquares.NewLevenbergMarquardt()
	}

	optimum, err := optimizer.Optimize(problem)
	if err != nil {
		metrics.Observer.Fit(name, 0, 0, err)
		return nil, fmt.Errorf("could not fit %s: %w", name, err)
	}
	metrics.Observer.Fit(name, optimum.Iterations(), optimum.Evaluations(), nil)

	log.Debug().
		Str("fitter", name).
		Int("points", len(points)).
		Int("iterations", optimum.Iterations()).
		Int("evaluations", optimum.Evaluations()).
		Float64("rms", optimum.RMS()).
		Msg("fit done")

	return leastsquares.Values(optimum.Point()), nil
}

// observations splits the points into target values and weights, keeping their order.
func observations(points []WeightedObservedPoint) (target, weights []float64, err error) {
	if len(points) == 0 {
		return nil, nil, fmt.Errorf("no observations: %w", leastsquares.NoDataErr)
	}
	target = make([]float64, len(points))
	weights = make([]float64, len(points))
	for i, p := range points {
		target[i] = p.Y()
		weights[i] = p.Weight()
	}
	return target, weights, nil
}

// problem creates the diagonally weighted problem of fitting f to the points.
func problem(f ParametricFunction, points []WeightedObservedPoint, start []float64, maxIterations int) (leastsquares.Problem, error) {
	target, weights, err := observations(points)
	if err != nil {
		return nil, err
	}
	model := NewTheoreticalValues(f, points)
	return leastsquares.NewBuilder().
		WithMaxEvaluations(defaultMaxEvaluations).
		WithMaxIterations(maxIterations).
		WithStartValues(start...).
		WithTargetValues(target...).
		WithWeight(mat.NewDiagDense(len(weights), weights)).
		WithModel(model).
		WithChecker(leastsquares.NewRMSChecker(convergenceTolerance, convergenceTolerance)).
		Build()
}

func copyOf(values []float64) []float64 {
	if values == nil {
		return nil
	}
	return append([]float64(nil), values...)
}
