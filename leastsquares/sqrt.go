package leastsquares

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const symmetryTolerance = 1e-12

// SquareRoot computes the symmetric square root S of m, such that S·S = m.
// Diagonal matrices are handled element by element, anything else goes through an
// eigen-decomposition and must be symmetric with non-negative eigenvalues.
func SquareRoot(m mat.Matrix) (mat.Matrix, error) {
	if m == nil {
		return nil, nullArgument("matrix")
	}

	if d, ok := m.(mat.Diagonal); ok {
		n := d.Diag()
		root := make([]float64, n)
		for i := range root {
			v := d.At(i, i)
			if v < 0 {
				return nil, fmt.Errorf("diagonal entry %d is %f: %w", i, v, NotPositiveErr)
			}
			root[i] = math.Sqrt(v)
		}
		return mat.NewDiagDense(n, root), nil
	}

	r, c := m.Dims()
	if r != c {
		return nil, dimensionMismatch("matrix columns", c, r)
	}

	sym := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			a, b := m.At(i, j), m.At(j, i)
			if math.Abs(a-b) > symmetryTolerance*math.Max(1, math.Max(math.Abs(a), math.Abs(b))) {
				return nil, fmt.Errorf("entries (%d,%d) and (%d,%d) differ: %w", i, j, j, i, NonSymmetricErr)
			}
			sym.SetSym(i, j, a)
		}
	}

	var eigen mat.EigenSym
	if ok := eigen.Factorize(sym, true); !ok {
		return nil, fmt.Errorf("could not decompose matrix: %w", ConvergenceErr)
	}
	values := eigen.Values(nil)
	var vectors mat.Dense
	eigen.VectorsTo(&vectors)

	roots := make([]float64, len(values))
	for i, v := range values {
		if v < 0 {
			return nil, fmt.Errorf("eigenvalue %d is %f: %w", i, v, NotPositiveErr)
		}
		roots[i] = math.Sqrt(v)
	}

	var scaled, root mat.Dense
	scaled.Mul(&vectors, mat.NewDiagDense(len(roots), roots))
	root.Mul(&scaled, vectors.T())
	return &root, nil
}
