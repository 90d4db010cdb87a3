package leastsquares

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Builder collects the parts of a least-squares problem.
// Unset budgets default to math.MaxInt32, everything else must be given explicitly.
type Builder struct {
	maxEvaluations int
	maxIterations  int
	checker        ConvergenceChecker
	pairChecker    PairChecker
	model          MultivariateJacobianFunction
	value          MultivariateVectorFunction
	jacobian       MultivariateMatrixFunction
	target         mat.Vector
	start          mat.Vector
	weight         mat.Matrix
	validator      ParameterValidator
}

// NewBuilder creates a new problem builder.
func NewBuilder() *Builder {
	return &Builder{
		maxEvaluations: math.MaxInt32,
		maxIterations:  math.MaxInt32,
	}
}

func (b *Builder) WithMaxEvaluations(n int) *Builder {
	b.maxEvaluations = n
	return b
}

func (b *Builder) WithMaxIterations(n int) *Builder {
	b.maxIterations = n
	return b
}

// WithChecker sets the convergence checker, replacing any pair checker.
func (b *Builder) WithChecker(checker ConvergenceChecker) *Builder {
	b.checker = checker
	b.pairChecker = nil
	return b
}

// WithCheckerPair sets a point/value pair checker, adapted at build time.
func (b *Builder) WithCheckerPair(checker PairChecker) *Builder {
	b.pairChecker = checker
	b.checker = nil
	return b
}

// WithModel sets the combined value and Jacobian model.
func (b *Builder) WithModel(model MultivariateJacobianFunction) *Builder {
	b.model = model
	b.value = nil
	b.jacobian = nil
	return b
}

// WithModelFuncs sets the model from separate value and Jacobian functions.
func (b *Builder) WithModelFuncs(value MultivariateVectorFunction, jacobian MultivariateMatrixFunction) *Builder {
	b.model = nil
	b.value = value
	b.jacobian = jacobian
	return b
}

func (b *Builder) WithTarget(target mat.Vector) *Builder {
	b.target = target
	return b
}

func (b *Builder) WithTargetValues(target ...float64) *Builder {
	b.target = vectorOf(target)
	return b
}

func (b *Builder) WithStart(start mat.Vector) *Builder {
	b.start = start
	return b
}

func (b *Builder) WithStartValues(start ...float64) *Builder {
	b.start = vectorOf(start)
	return b
}

// WithWeight sets the weight matrix. Without one the problem stays unweighted.
func (b *Builder) WithWeight(weight mat.Matrix) *Builder {
	b.weight = weight
	return b
}

func (b *Builder) WithParameterValidator(validator ParameterValidator) *Builder {
	b.validator = validator
	return b
}

// Build creates the problem.
func (b *Builder) Build() (Problem, error) {
	model := b.model
	if model == nil && (b.value != nil || b.jacobian != nil) {
		m, err := Model(b.value, b.jacobian)
		if err != nil {
			return nil, err
		}
		model = m
	}

	checker := b.checker
	if b.pairChecker != nil {
		c, err := EvaluationChecker(b.pairChecker)
		if err != nil {
			return nil, err
		}
		checker = c
	}

	problem, err := CreateWithValidator(model, b.target, b.start, checker, b.maxEvaluations, b.maxIterations, b.validator)
	if err != nil {
		return nil, err
	}
	if b.weight == nil {
		return problem, nil
	}
	return WeightMatrix(problem, b.weight)
}

// vectorOf keeps a nil vector for empty input, so that a missing value is reported as such.
func vectorOf(values []float64) mat.Vector {
	if len(values) == 0 {
		return nil
	}
	return mat.NewVecDense(len(values), append([]float64(nil), values...))
}
