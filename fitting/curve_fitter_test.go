package fitting

import (
	"testing"

	"github.com/drakos74/curvefit/leastsquares"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurveFitter_FitFunction(t *testing.T) {
	fitter := NewCurveFitter(nil)
	for _, x := range linspace(-2, 0.5, 9) {
		y, err := Polynomial{}.Value(x, 1, -2, 0.5)
		require.NoError(t, err)
		fitter.AddObservedPoint(x, y)
	}
	fitter.AddWeightedObservedPoint(2, 3, -0.5)

	observations := fitter.Observations()
	require.Len(t, observations, 10)
	assert.Equal(t, 2.0, observations[9].Weight())

	fitted, err := fitter.FitFunction(100, Polynomial{}, []float64{0, 0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 1, fitted[0], 1e-8)
	assert.InDelta(t, -2, fitted[1], 1e-8)
	assert.InDelta(t, 0.5, fitted[2], 1e-8)

	fitter.ClearObservations()
	assert.Len(t, observations, 10)
	_, err = fitter.FitFunction(100, Polynomial{}, []float64{0, 0, 0})
	assert.ErrorIs(t, err, leastsquares.NoDataErr)
}

func TestCurveFitter_Errors(t *testing.T) {
	fitter := NewCurveFitter(leastsquares.NewLevenbergMarquardt())
	for _, p := range sample(t, Harmonic{}, []float64{2, 1.3, 0.4}, linspace(0, 0.1, 100)...) {
		fitter.AddPoint(p)
	}

	_, err := fitter.FitFunction(100, nil, []float64{1, 1, 1})
	assert.ErrorIs(t, err, leastsquares.NullArgumentErr)

	_, err = fitter.FitFunction(100, Harmonic{}, nil)
	assert.ErrorIs(t, err, leastsquares.NoDataErr)

	_, err = fitter.FitFunction(2, Harmonic{}, []float64{1.8, 1.25, 0.3})
	assert.ErrorIs(t, err, leastsquares.TooManyEvaluationsErr)

	fitted, err := fitter.FitFunction(100, Harmonic{}, []float64{1.8, 1.25, 0.3})
	require.NoError(t, err)
	assert.InDelta(t, 2, fitted[0], 1e-6)
	assert.InDelta(t, 1.3, fitted[1], 1e-6)
}
