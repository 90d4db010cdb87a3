package fitting

import (
	"errors"
	"math"
	"testing"

	"github.com/drakos74/curvefit/leastsquares"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type problemFunc func(points []WeightedObservedPoint) (leastsquares.Problem, error)

func (f problemFunc) Problem(points []WeightedObservedPoint) (leastsquares.Problem, error) {
	return f(points)
}

// exponential is a·exp(b·x).
type exponential struct{}

func (exponential) Value(x float64, parameters ...float64) (float64, error) {
	if err := checkParameters(parameters, 2); err != nil {
		return 0, err
	}
	return parameters[0] * math.Exp(parameters[1]*x), nil
}

func (exponential) Gradient(x float64, parameters ...float64) ([]float64, error) {
	if err := checkParameters(parameters, 2); err != nil {
		return nil, err
	}
	e := math.Exp(parameters[1] * x)
	return []float64{e, parameters[0] * x * e}, nil
}

func TestFit_ProblemBuilder(t *testing.T) {
	points := sample(t, Polynomial{}, []float64{1, 2}, 0, 1, 2, 3)

	builder := problemFunc(func(points []WeightedObservedPoint) (leastsquares.Problem, error) {
		return problem(Polynomial{}, points, []float64{0, 0}, 100)
	})
	fitted, err := Fit(builder, nil, points)
	require.NoError(t, err)
	assert.InDelta(t, 1, fitted[0], 1e-8)
	assert.InDelta(t, 2, fitted[1], 1e-8)

	failing := errors.New("failing builder")
	_, err = Fit(problemFunc(func([]WeightedObservedPoint) (leastsquares.Problem, error) {
		return nil, failing
	}), nil, points)
	assert.ErrorIs(t, err, failing)
}

func TestSimpleCurveFitter(t *testing.T) {

	type test struct {
		fitter     *SimpleCurveFitter
		parameters []float64
		err        error
	}

	tests := map[string]test{
		"exponential": {
			fitter:     NewSimpleCurveFitter(exponential{}, []float64{1, 0.1}),
			parameters: []float64{3, -0.7},
		},
		"gauss-newton": {
			fitter:     NewSimpleCurveFitter(exponential{}, []float64{2, -0.5}).WithOptimizer(leastsquares.NewGaussNewton()),
			parameters: []float64{3, -0.7},
		},
		"missing-start": {
			fitter: NewSimpleCurveFitter(exponential{}, nil),
			err:    MissingStartErr,
		},
		"missing-function": {
			fitter: NewSimpleCurveFitter(nil, []float64{1, 1}),
			err:    leastsquares.NullArgumentErr,
		},
		"wrong-start": {
			fitter: NewSimpleCurveFitter(exponential{}, []float64{1, 1, 1}),
			err:    leastsquares.DimensionMismatchErr,
		},
		"budget": {
			fitter: NewSimpleCurveFitter(exponential{}, []float64{1, 0.1}).WithMaxIterations(2),
			err:    leastsquares.TooManyIterationsErr,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			points := sample(t, exponential{}, []float64{3, -0.7}, linspace(0, 0.25, 20)...)
			fitted, err := tt.fitter.Fit(points)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			for i, p := range tt.parameters {
				assert.InDelta(t, p, fitted[i], 1e-6, "parameter %d", i)
			}
		})
	}
}
