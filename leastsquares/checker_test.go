package leastsquares

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorValueChecker(t *testing.T) {

	type test struct {
		previous  []float64
		current   []float64
		iteration int
		converged bool
	}

	checker, err := NewVectorValueCheckerWithMaxIterations(1e-3, 1e-6, 10)
	require.NoError(t, err)

	tests := map[string]test{
		"same": {
			previous:  []float64{1, 2},
			current:   []float64{1, 2},
			converged: true,
		},
		"relative": {
			previous:  []float64{1000, 2},
			current:   []float64{1000.5, 2},
			converged: true,
		},
		"absolute": {
			previous:  []float64{1e-9, 0},
			current:   []float64{-1e-9, 0},
			converged: true,
		},
		"moving": {
			previous:  []float64{1, 2},
			current:   []float64{1.1, 2},
			converged: false,
		},
		"max-iterations": {
			previous:  []float64{1, 2},
			current:   []float64{5, 2},
			iteration: 10,
			converged: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			converged := checker.Converged(tt.iteration,
				PointVectorValuePair{Value: tt.previous},
				PointVectorValuePair{Value: tt.current})
			assert.Equal(t, tt.converged, converged)
		})
	}

	_, err = NewVectorValueCheckerWithMaxIterations(1e-3, 1e-6, 0)
	assert.ErrorIs(t, err, NotStrictlyPositiveErr)
}

func TestRMSChecker(t *testing.T) {
	problem, err := Create(line(0, 1), vec(1, 1), vec(0, 0), never, 10, 10)
	require.NoError(t, err)

	far, err := problem.Evaluate(vec(0, 0))
	require.NoError(t, err)
	near, err := problem.Evaluate(vec(1, 0))
	require.NoError(t, err)
	nearer, err := problem.Evaluate(vec(1, 1e-12))
	require.NoError(t, err)

	checker := NewRMSChecker(1e-6, 1e-9)
	assert.False(t, checker.Converged(1, far, near))
	assert.True(t, checker.Converged(1, near, nearer))
	assert.True(t, checker.Converged(1, far, far))
}
