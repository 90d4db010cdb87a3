package fitting

import (
	"testing"

	"github.com/drakos74/curvefit/leastsquares"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sample evaluates f with unit weights at the given abscissas.
func sample(t *testing.T, f ParametricFunction, parameters []float64, xs ...float64) []WeightedObservedPoint {
	points := make([]WeightedObservedPoint, len(xs))
	for i, x := range xs {
		y, err := f.Value(x, parameters...)
		require.NoError(t, err)
		points[i] = NewWeightedObservedPoint(1, x, y)
	}
	return points
}

func linspace(from, step float64, n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = from + step*float64(i)
	}
	return xs
}

func TestPolynomialCurveFitter_Fit(t *testing.T) {

	type test struct {
		fitter       *PolynomialCurveFitter
		coefficients []float64
		xs           []float64
		weights      []float64
	}

	tests := map[string]test{
		"line": {
			fitter:       NewPolynomialCurveFitter(1),
			coefficients: []float64{-3, 2},
			xs:           []float64{0, 1, 2, 3},
		},
		"cubic": {
			fitter:       NewPolynomialCurveFitter(3),
			coefficients: []float64{1, -2, 0.5, 0.25},
			xs:           linspace(-2, 0.25, 17),
		},
		"weighted-quadratic": {
			fitter:       NewPolynomialCurveFitter(2),
			coefficients: []float64{2, -1, 0.5},
			xs:           []float64{0, 1, 2, 3, 4},
			weights:      []float64{1, 2, 3, 4, 5},
		},
		"start-point": {
			fitter:       NewPolynomialCurveFitter(0).WithStartPoint([]float64{1, 1, 1}),
			coefficients: []float64{2, -1, 0.5},
			xs:           []float64{-1, 0, 1, 2, 3},
		},
		"gauss-newton": {
			fitter:       NewPolynomialCurveFitter(3).WithOptimizer(leastsquares.NewGaussNewton()),
			coefficients: []float64{1, -2, 0.5, 0.25},
			xs:           linspace(-2, 0.25, 17),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			points := sample(t, Polynomial{}, tt.coefficients, tt.xs...)
			for i, w := range tt.weights {
				points[i] = NewWeightedObservedPoint(w, points[i].X(), points[i].Y())
			}
			fitted, err := tt.fitter.Fit(points)
			require.NoError(t, err)
			require.Len(t, fitted, len(tt.coefficients))
			for i, c := range tt.coefficients {
				assert.InDelta(t, c, fitted[i], 1e-8, "coefficient %d", i)
			}
		})
	}
}

func TestPolynomialCurveFitter_Errors(t *testing.T) {
	points := sample(t, Polynomial{}, []float64{1, -2, 0.5, 0.25}, linspace(-2, 0.25, 17)...)

	_, err := NewPolynomialCurveFitter(-1).Fit(points)
	assert.ErrorIs(t, err, MissingStartErr)

	_, err = NewPolynomialCurveFitter(2).Fit(nil)
	assert.ErrorIs(t, err, leastsquares.NoDataErr)

	_, err = NewPolynomialCurveFitter(3).WithMaxIterations(1).Fit(points)
	assert.ErrorIs(t, err, leastsquares.TooManyIterationsErr)
}

func TestPolynomialCurveFitter_Copies(t *testing.T) {
	start := []float64{1, 2}
	fitter := NewPolynomialCurveFitter(2)
	other := fitter.WithStartPoint(start).WithMaxIterations(10)
	start[0] = 100

	assert.Equal(t, []float64{0, 0, 0}, fitter.initialGuess)
	assert.Equal(t, defaultMaxIterations, fitter.maxIterations)
	assert.Equal(t, []float64{1, 2}, other.initialGuess)
	assert.Equal(t, 10, other.maxIterations)
}
