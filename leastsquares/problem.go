package leastsquares

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Problem is a least-squares problem ready to be handed to an Optimizer.
// Implementations are immutable once built.
type Problem interface {
	// Start returns a copy of the initial guess.
	Start() *mat.VecDense
	// ObservationSize is the number of observations (residuals).
	ObservationSize() int
	// ParameterSize is the number of parameters.
	ParameterSize() int
	// Evaluate computes the residuals and the Jacobian at the given point.
	Evaluate(point mat.Vector) (Evaluation, error)
	// MaxEvaluations is the evaluation budget of an optimization run.
	MaxEvaluations() int
	// MaxIterations is the iteration budget of an optimization run.
	MaxIterations() int
	// ConvergenceChecker decides when the optimizer can stop.
	ConvergenceChecker() ConvergenceChecker
}

// MultivariateJacobianFunction computes both the value and the Jacobian of a model at a point.
type MultivariateJacobianFunction interface {
	Value(point *mat.VecDense) (*mat.VecDense, *mat.Dense, error)
}

// MultivariateJacobianFunc adapts a plain function to MultivariateJacobianFunction.
type MultivariateJacobianFunc func(point *mat.VecDense) (*mat.VecDense, *mat.Dense, error)

// Value calls f.
func (f MultivariateJacobianFunc) Value(point *mat.VecDense) (*mat.VecDense, *mat.Dense, error) {
	return f(point)
}

// MultivariateVectorFunction computes the model value on raw arrays.
type MultivariateVectorFunction func(point []float64) ([]float64, error)

// MultivariateMatrixFunction computes the model Jacobian on raw arrays, one row per observation.
type MultivariateMatrixFunction func(point []float64) ([][]float64, error)

// ParameterValidator maps a point onto the valid parameter domain before the model is evaluated.
type ParameterValidator interface {
	Validate(point *mat.VecDense) *mat.VecDense
}

// ParameterValidatorFunc adapts a plain function to ParameterValidator.
type ParameterValidatorFunc func(point *mat.VecDense) *mat.VecDense

// Validate calls f.
func (f ParameterValidatorFunc) Validate(point *mat.VecDense) *mat.VecDense {
	return f(point)
}

// localProblem is the unweighted problem built by the factory.
type localProblem struct {
	target         *mat.VecDense
	model          MultivariateJacobianFunction
	start          *mat.VecDense
	checker        ConvergenceChecker
	maxEvaluations int
	maxIterations  int
	validator      ParameterValidator
}

func (p *localProblem) Start() *mat.VecDense {
	return mat.VecDenseCopyOf(p.start)
}

func (p *localProblem) ObservationSize() int {
	return p.target.Len()
}

func (p *localProblem) ParameterSize() int {
	return p.start.Len()
}

func (p *localProblem) MaxEvaluations() int {
	return p.maxEvaluations
}

func (p *localProblem) MaxIterations() int {
	return p.maxIterations
}

func (p *localProblem) ConvergenceChecker() ConvergenceChecker {
	return p.checker
}

func (p *localProblem) Evaluate(point mat.Vector) (Evaluation, error) {
	if point == nil {
		return nil, nullArgument("point")
	}
	if point.Len() != p.ParameterSize() {
		return nil, dimensionMismatch("point", point.Len(), p.ParameterSize())
	}

	pt := mat.VecDenseCopyOf(point)
	if p.validator != nil {
		pt = p.validator.Validate(pt)
		if pt == nil || pt.Len() != p.ParameterSize() {
			return nil, dimensionMismatch("validated point", lenOf(pt), p.ParameterSize())
		}
	}

	value, jacobian, err := p.model.Value(pt)
	if err != nil {
		return nil, err
	}
	if value == nil || value.Len() != p.ObservationSize() {
		return nil, dimensionMismatch("model value", lenOf(value), p.ObservationSize())
	}
	if jacobian == nil {
		return nil, nullArgument("model jacobian")
	}
	if r, c := jacobian.Dims(); r != p.ObservationSize() || c != p.ParameterSize() {
		return nil, fmt.Errorf("model jacobian is %dx%d instead of %dx%d: %w",
			r, c, p.ObservationSize(), p.ParameterSize(), DimensionMismatchErr)
	}

	residuals := mat.NewVecDense(p.ObservationSize(), nil)
	residuals.SubVec(p.target, value)

	return newUnweightedEvaluation(pt, residuals, jacobian), nil
}

func lenOf(v *mat.VecDense) int {
	if v == nil {
		return 0
	}
	return v.Len()
}
