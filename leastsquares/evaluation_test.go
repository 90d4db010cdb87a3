package leastsquares

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestEvaluation_Derived(t *testing.T) {
	problem, err := Create(line(0, 1, 2, 3), vec(1, 2, 2, 4), vec(0, 0), never, 10, 10)
	require.NoError(t, err)

	e, err := problem.Evaluate(vec(1, 1))
	require.NoError(t, err)

	// residuals are 0, 0, -1, 0
	assert.Equal(t, 1.0, e.ChiSquare())
	assert.Equal(t, 1.0, e.Cost())
	assert.Equal(t, 0.5, e.RMS())
	assert.Equal(t, 0.5, e.ReducedChiSquare(2))
}

func TestEvaluation_Covariances(t *testing.T) {
	problem, err := Create(line(-1, 0, 1), vec(0, 0, 0), vec(0, 0), never, 10, 10)
	require.NoError(t, err)

	e, err := problem.Evaluate(vec(0, 0))
	require.NoError(t, err)

	// JᵀJ = diag(3, 2)
	cov, err := e.Covariances(1e-14)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3.0, cov.At(0, 0), 1e-12)
	assert.InDelta(t, 0.5, cov.At(1, 1), 1e-12)
	assert.InDelta(t, 0, cov.At(0, 1), 1e-12)

	sigma, err := e.Sigma(1e-14)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(1.0/3.0), sigma.AtVec(0), 1e-12)
	assert.InDelta(t, math.Sqrt(0.5), sigma.AtVec(1), 1e-12)
}

func TestEvaluation_SingularCovariances(t *testing.T) {
	// a single abscissa cannot separate offset and slope
	problem, err := Create(line(1, 1, 1), vec(0, 0, 0), vec(0, 0), never, 10, 10)
	require.NoError(t, err)

	e, err := problem.Evaluate(vec(0, 0))
	require.NoError(t, err)

	_, err = e.Covariances(1e-10)
	assert.ErrorIs(t, err, SingularMatrixErr)
	_, err = e.Sigma(1e-10)
	assert.ErrorIs(t, err, SingularMatrixErr)
}

func TestEvaluation_Weighted(t *testing.T) {
	problem, err := Create(line(0, 1), vec(1, 1), vec(0, 0), never, 10, 10)
	require.NoError(t, err)
	weighted, err := WeightMatrix(problem, mat.NewDense(2, 2, []float64{2, 1, 1, 2}))
	require.NoError(t, err)

	e, err := weighted.Evaluate(vec(0, 0))
	require.NoError(t, err)

	// χ² of the weighted evaluation is rᵀWr
	assert.InDelta(t, 6, e.ChiSquare(), 1e-12)
	assert.InDelta(t, math.Sqrt(3), e.RMS(), 1e-12)
}
