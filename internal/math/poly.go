package math

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Fit fits the given series of x and y into a polynomial function of the given degree
// out put is a vector with the coefficients of the corresponding powers of x
// c[0] + c[1]x + c[2]x^2 + c[3]x^3 + ...
// The least squares solution is computed in closed form through the QR decomposition of the vandermonde matrix.
func Fit(x, y []float64, degree int) ([]float64, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("got %d abscissas for %d values", len(x), len(y))
	}
	if degree < 0 || len(x) < degree+1 {
		return nil, fmt.Errorf("cannot fit degree %d with %d points", degree, len(x))
	}

	a := vandermonde(x, degree)
	b := mat.NewDense(len(y), 1, append([]float64(nil), y...))
	c := mat.NewDense(degree+1, 1, nil)

	qr := new(mat.QR)
	qr.Factorize(a)

	if err := qr.SolveTo(c, false, b); err != nil {
		return nil, fmt.Errorf("could not solve for coefficients: %w", err)
	}

	v := c.ColView(0)
	cc := make([]float64, v.Len())
	for i := 0; i < v.Len(); i++ {
		cc[i] = v.AtVec(i)
	}
	return cc, nil
}

func vandermonde(a []float64, degree int) *mat.Dense {
	x := mat.NewDense(len(a), degree+1, nil)
	for i := range a {
		for j, p := 0, 1.; j <= degree; j, p = j+1, p*a[i] {
			x.Set(i, j, p)
		}
	}
	return x
}
