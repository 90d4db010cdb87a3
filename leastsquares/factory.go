package leastsquares

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Create builds an unweighted least-squares problem.
// The model is called once per evaluation for both its value and its Jacobian.
func Create(model MultivariateJacobianFunction, observed, start mat.Vector, checker ConvergenceChecker, maxEvaluations, maxIterations int) (Problem, error) {
	return CreateWithValidator(model, observed, start, checker, maxEvaluations, maxIterations, nil)
}

// CreateWithValidator builds an unweighted problem that passes every point through the validator
// before evaluating the model. A nil validator leaves points untouched.
func CreateWithValidator(model MultivariateJacobianFunction, observed, start mat.Vector, checker ConvergenceChecker, maxEvaluations, maxIterations int, validator ParameterValidator) (Problem, error) {
	switch {
	case model == nil:
		return nil, nullArgument("model")
	case observed == nil:
		return nil, nullArgument("observed values")
	case start == nil:
		return nil, nullArgument("start point")
	case checker == nil:
		return nil, nullArgument("convergence checker")
	}
	if observed.Len() == 0 {
		return nil, fmt.Errorf("observed values: %w", NoDataErr)
	}
	if start.Len() == 0 {
		return nil, fmt.Errorf("start point: %w", NoDataErr)
	}
	if maxEvaluations <= 0 {
		return nil, fmt.Errorf("max evaluations %d: %w", maxEvaluations, NotStrictlyPositiveErr)
	}
	if maxIterations <= 0 {
		return nil, fmt.Errorf("max iterations %d: %w", maxIterations, NotStrictlyPositiveErr)
	}
	return &localProblem{
		target:         mat.VecDenseCopyOf(observed),
		model:          model,
		start:          mat.VecDenseCopyOf(start),
		checker:        checker,
		maxEvaluations: maxEvaluations,
		maxIterations:  maxIterations,
		validator:      validator,
	}, nil
}

// CreateWeighted builds a problem whose residuals and Jacobian are weighted by the given matrix.
func CreateWeighted(model MultivariateJacobianFunction, observed, start mat.Vector, weight mat.Matrix, checker ConvergenceChecker, maxEvaluations, maxIterations int) (Problem, error) {
	problem, err := Create(model, observed, start, checker, maxEvaluations, maxIterations)
	if err != nil {
		return nil, err
	}
	return WeightMatrix(problem, weight)
}

// CreateFromFuncs builds a weighted problem from separate value and Jacobian functions working on raw arrays,
// with a checker expressed over point/value pairs.
func CreateFromFuncs(value MultivariateVectorFunction, jacobian MultivariateMatrixFunction, observed, start []float64, weight mat.Matrix, checker PairChecker, maxEvaluations, maxIterations int) (Problem, error) {
	model, err := Model(value, jacobian)
	if err != nil {
		return nil, err
	}
	evaluationChecker, err := EvaluationChecker(checker)
	if err != nil {
		return nil, err
	}
	if len(observed) == 0 {
		return nil, fmt.Errorf("observed values: %w", NoDataErr)
	}
	if len(start) == 0 {
		return nil, fmt.Errorf("start point: %w", NoDataErr)
	}
	return CreateWeighted(model,
		mat.NewVecDense(len(observed), observed),
		mat.NewVecDense(len(start), start),
		weight, evaluationChecker, maxEvaluations, maxIterations)
}

// Model combines a value function and a Jacobian function into a single model.
// The value slice returned by the function backs the resulting vector directly.
func Model(value MultivariateVectorFunction, jacobian MultivariateMatrixFunction) (MultivariateJacobianFunction, error) {
	if value == nil {
		return nil, nullArgument("value function")
	}
	if jacobian == nil {
		return nil, nullArgument("jacobian function")
	}
	return MultivariateJacobianFunc(func(point *mat.VecDense) (*mat.VecDense, *mat.Dense, error) {
		p := Values(point)
		v, err := value(p)
		if err != nil {
			return nil, nil, err
		}
		j, err := jacobian(p)
		if err != nil {
			return nil, nil, err
		}
		if len(v) == 0 {
			return nil, nil, fmt.Errorf("model value: %w", NoDataErr)
		}
		if len(j) != len(v) {
			return nil, nil, dimensionMismatch("jacobian rows", len(j), len(v))
		}
		cols := len(p)
		data := make([]float64, 0, len(j)*cols)
		for _, row := range j {
			if len(row) != cols {
				return nil, nil, dimensionMismatch("jacobian row", len(row), cols)
			}
			data = append(data, row...)
		}
		return mat.NewVecDense(len(v), v), mat.NewDense(len(j), cols, data), nil
	}), nil
}

// weightedProblem reports the residuals and the Jacobian multiplied by the square root of the weights.
type weightedProblem struct {
	Problem
	sqrtWeight mat.Matrix
}

func (w *weightedProblem) Evaluate(point mat.Vector) (Evaluation, error) {
	e, err := w.Problem.Evaluate(point)
	if err != nil {
		return nil, err
	}
	return newWeightedEvaluation(e, w.sqrtWeight), nil
}

// WeightMatrix wraps the problem so that its evaluations are weighted by weights.
// The square root of weights is computed once here.
func WeightMatrix(problem Problem, weights mat.Matrix) (Problem, error) {
	if problem == nil {
		return nil, nullArgument("problem")
	}
	if weights == nil {
		return nil, nullArgument("weights")
	}
	if r, c := weights.Dims(); r != problem.ObservationSize() || c != problem.ObservationSize() {
		return nil, fmt.Errorf("weights are %dx%d for %d observations: %w", r, c, problem.ObservationSize(), DimensionMismatchErr)
	}
	sqrtWeight, err := SquareRoot(weights)
	if err != nil {
		return nil, fmt.Errorf("could not compute weight square root: %w", err)
	}
	return &weightedProblem{
		Problem:    problem,
		sqrtWeight: sqrtWeight,
	}, nil
}

// WeightDiagonal wraps the problem with a diagonal weight matrix built from the given weights.
func WeightDiagonal(problem Problem, weights mat.Vector) (Problem, error) {
	if weights == nil {
		return nil, nullArgument("weights")
	}
	if weights.Len() == 0 {
		return nil, fmt.Errorf("weights: %w", NoDataErr)
	}
	return WeightMatrix(problem, mat.NewDiagDense(weights.Len(), Values(weights)))
}

// countingProblem increments the counter before every evaluation.
type countingProblem struct {
	Problem
	counter *Incrementor
}

func (c *countingProblem) Evaluate(point mat.Vector) (Evaluation, error) {
	if err := c.counter.Increment(); err != nil {
		return nil, fmt.Errorf("%w: %w", TooManyEvaluationsErr, err)
	}
	return c.Problem.Evaluate(point)
}

// CountEvaluations wraps the problem so that every evaluation is counted by the counter.
// The counter is not synchronised, concurrent evaluations must be serialised by the caller.
func CountEvaluations(problem Problem, counter *Incrementor) (Problem, error) {
	if problem == nil {
		return nil, nullArgument("problem")
	}
	if counter == nil {
		return nil, nullArgument("counter")
	}
	return &countingProblem{
		Problem: problem,
		counter: counter,
	}, nil
}

// EvaluationChecker converts a checker over point/value pairs into one over evaluations.
// The value handed to the checker is the residual vector.
func EvaluationChecker(checker PairChecker) (ConvergenceChecker, error) {
	if checker == nil {
		return nil, nullArgument("pair checker")
	}
	return pairAdapter{checker: checker}, nil
}
