package fitting

import (
	"fmt"

	"github.com/drakos74/curvefit/leastsquares"
	"gonum.org/v1/gonum/mat"
)

// TheoreticalValues evaluates a parametric function at the abscissas of the observations.
type TheoreticalValues struct {
	f  ParametricFunction
	xs []float64
}

// NewTheoreticalValues binds the function to the x values of the points.
func NewTheoreticalValues(f ParametricFunction, points []WeightedObservedPoint) *TheoreticalValues {
	xs := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X()
	}
	return &TheoreticalValues{
		f:  f,
		xs: xs,
	}
}

// Values returns f(x) for every observation.
func (t *TheoreticalValues) Values(parameters []float64) ([]float64, error) {
	values := make([]float64, len(t.xs))
	for i, x := range t.xs {
		v, err := t.f.Value(x, parameters...)
		if err != nil {
			return nil, fmt.Errorf("could not evaluate model at x = %f: %w", x, err)
		}
		values[i] = v
	}
	return values, nil
}

// Jacobian returns the gradient of f for every observation, one row each.
func (t *TheoreticalValues) Jacobian(parameters []float64) ([][]float64, error) {
	jacobian := make([][]float64, len(t.xs))
	for i, x := range t.xs {
		g, err := t.f.Gradient(x, parameters...)
		if err != nil {
			return nil, fmt.Errorf("could not evaluate gradient at x = %f: %w", x, err)
		}
		jacobian[i] = g
	}
	return jacobian, nil
}

// ValueFunc exposes Values as a least-squares value function.
func (t *TheoreticalValues) ValueFunc() leastsquares.MultivariateVectorFunction {
	return t.Values
}

// JacobianFunc exposes Jacobian as a least-squares Jacobian function.
func (t *TheoreticalValues) JacobianFunc() leastsquares.MultivariateMatrixFunction {
	return t.Jacobian
}

// Value implements leastsquares.MultivariateJacobianFunction with a single pass over the observations.
func (t *TheoreticalValues) Value(point *mat.VecDense) (*mat.VecDense, *mat.Dense, error) {
	if len(t.xs) == 0 {
		return nil, nil, fmt.Errorf("no observations: %w", leastsquares.NoDataErr)
	}
	parameters := leastsquares.Values(point)
	values := mat.NewVecDense(len(t.xs), nil)
	jacobian := mat.NewDense(len(t.xs), len(parameters), nil)
	for i, x := range t.xs {
		v, err := t.f.Value(x, parameters...)
		if err != nil {
			return nil, nil, fmt.Errorf("could not evaluate model at x = %f: %w", x, err)
		}
		g, err := t.f.Gradient(x, parameters...)
		if err != nil {
			return nil, nil, fmt.Errorf("could not evaluate gradient at x = %f: %w", x, err)
		}
		if len(g) != len(parameters) {
			return nil, nil, fmt.Errorf("gradient has %d entries for %d parameters: %w", len(g), len(parameters), leastsquares.DimensionMismatchErr)
		}
		values.SetVec(i, v)
		jacobian.SetRow(i, g)
	}
	return values, jacobian, nil
}
