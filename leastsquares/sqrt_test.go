package leastsquares

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSquareRoot(t *testing.T) {

	type test struct {
		m   mat.Matrix
		err error
	}

	tests := map[string]test{
		"diagonal": {
			m: mat.NewDiagDense(3, []float64{1, 4, 9}),
		},
		"symmetric": {
			m: mat.NewDense(3, 3, []float64{
				4, 1, 0,
				1, 3, 1,
				0, 1, 2,
			}),
		},
		"sym-dense": {
			m: mat.NewSymDense(2, []float64{2, -1, -1, 2}),
		},
		"non-square": {
			m:   mat.NewDense(2, 3, nil),
			err: DimensionMismatchErr,
		},
		"non-symmetric": {
			m:   mat.NewDense(2, 2, []float64{1, 0.5, 0, 1}),
			err: NonSymmetricErr,
		},
		"negative-eigenvalue": {
			m:   mat.NewDense(2, 2, []float64{0, 1, 1, 0}),
			err: NotPositiveErr,
		},
		"negative-diagonal": {
			m:   mat.NewDiagDense(2, []float64{1, -4}),
			err: NotPositiveErr,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			root, err := SquareRoot(tt.m)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)

			var square mat.Dense
			square.Mul(root, root)
			assert.True(t, mat.EqualApprox(tt.m, &square, 1e-12))
			assert.True(t, mat.EqualApprox(root, root.T(), 1e-12))
		})
	}
}
