package leastsquares

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Evaluation is the result of evaluating a Problem at a given point.
// Derived values are computed on demand from the residuals and the Jacobian.
type Evaluation interface {
	// Point is the parameter vector the evaluation was computed at.
	Point() mat.Vector
	// Residuals are the (possibly weighted) differences between target and model value.
	Residuals() mat.Vector
	// Jacobian is the (possibly weighted) Jacobian of the model at Point.
	Jacobian() mat.Matrix
	// Cost is the norm of the residuals.
	Cost() float64
	// RMS is the root mean square of the residuals.
	RMS() float64
	// ChiSquare is the sum of the squared residuals.
	ChiSquare() float64
	// ReducedChiSquare is the chi-square divided by the degrees of freedom.
	ReducedChiSquare(numberOfFittedParameters int) float64
	// Covariances returns the parameter covariance matrix (JᵀJ)⁻¹.
	// Pivots with absolute value at or below threshold mark the matrix as singular.
	Covariances(threshold float64) (*mat.Dense, error)
	// Sigma returns the square root of the covariance diagonal.
	Sigma(threshold float64) (*mat.VecDense, error)
}

type rawEvaluation interface {
	Residuals() mat.Vector
	Jacobian() mat.Matrix
}

// evaluationStats implements the derived part of an Evaluation on top of its raw values.
type evaluationStats struct {
	raw rawEvaluation
}

func (s evaluationStats) ChiSquare() float64 {
	r := s.raw.Residuals()
	return mat.Dot(r, r)
}

func (s evaluationStats) Cost() float64 {
	return math.Sqrt(s.ChiSquare())
}

func (s evaluationStats) RMS() float64 {
	return math.Sqrt(s.ChiSquare() / float64(s.raw.Residuals().Len()))
}

func (s evaluationStats) ReducedChiSquare(numberOfFittedParameters int) float64 {
	return s.ChiSquare() / float64(s.raw.Residuals().Len()-numberOfFittedParameters)
}

func (s evaluationStats) Covariances(threshold float64) (*mat.Dense, error) {
	j := s.raw.Jacobian()
	_, n := j.Dims()

	var jtj mat.Dense
	jtj.Mul(j.T(), j)

	var qr mat.QR
	qr.Factorize(&jtj)

	var r mat.Dense
	qr.RTo(&r)
	for i := 0; i < n; i++ {
		if math.Abs(r.At(i, i)) <= threshold {
			return nil, fmt.Errorf("could not invert normal matrix at column %d: %w", i, SingularMatrixErr)
		}
	}

	var cov mat.Dense
	err := qr.SolveTo(&cov, false, identity(n))
	var condition mat.Condition
	if err != nil && !errors.As(err, &condition) {
		return nil, fmt.Errorf("could not invert normal matrix: %w", err)
	}
	return &cov, nil
}

func (s evaluationStats) Sigma(threshold float64) (*mat.VecDense, error) {
	cov, err := s.Covariances(threshold)
	if err != nil {
		return nil, err
	}
	n, _ := cov.Dims()
	sigma := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		sigma.SetVec(i, math.Sqrt(cov.At(i, i)))
	}
	return sigma, nil
}

// unweightedEvaluation holds the raw residuals and Jacobian of a model.
type unweightedEvaluation struct {
	evaluationStats
	point     *mat.VecDense
	residuals *mat.VecDense
	jacobian  *mat.Dense
}

func newUnweightedEvaluation(point, residuals *mat.VecDense, jacobian *mat.Dense) *unweightedEvaluation {
	e := &unweightedEvaluation{
		point:     point,
		residuals: residuals,
		jacobian:  jacobian,
	}
	e.evaluationStats = evaluationStats{raw: e}
	return e
}

func (e *unweightedEvaluation) Point() mat.Vector {
	return e.point
}

func (e *unweightedEvaluation) Residuals() mat.Vector {
	return e.residuals
}

func (e *unweightedEvaluation) Jacobian() mat.Matrix {
	return e.jacobian
}

// weightedEvaluation reports S·r and S·J for the square root S of the weight matrix.
type weightedEvaluation struct {
	evaluationStats
	unweighted Evaluation
	residuals  *mat.VecDense
	jacobian   *mat.Dense
}

func newWeightedEvaluation(unweighted Evaluation, sqrtWeight mat.Matrix) *weightedEvaluation {
	var residuals mat.VecDense
	residuals.MulVec(sqrtWeight, unweighted.Residuals())
	var jacobian mat.Dense
	jacobian.Mul(sqrtWeight, unweighted.Jacobian())

	e := &weightedEvaluation{
		unweighted: unweighted,
		residuals:  &residuals,
		jacobian:   &jacobian,
	}
	e.evaluationStats = evaluationStats{raw: e}
	return e
}

func (e *weightedEvaluation) Point() mat.Vector {
	return e.unweighted.Point()
}

func (e *weightedEvaluation) Residuals() mat.Vector {
	return e.residuals
}

func (e *weightedEvaluation) Jacobian() mat.Matrix {
	return e.jacobian
}

func identity(n int) *mat.DiagDense {
	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}
	return mat.NewDiagDense(n, ones)
}

// Values copies the vector into a new slice.
func Values(v mat.Vector) []float64 {
	values := make([]float64, v.Len())
	for i := range values {
		values[i] = v.AtVec(i)
	}
	return values
}
