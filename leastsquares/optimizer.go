package leastsquares

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Optimizer solves least-squares problems.
type Optimizer interface {
	Optimize(problem Problem) (*Optimum, error)
}

// Optimum is the final evaluation of an optimization run, with the effort it took.
type Optimum struct {
	Evaluation
	iterations  int
	evaluations int
}

// NewOptimum wraps an evaluation with the run counters.
func NewOptimum(evaluation Evaluation, iterations, evaluations int) *Optimum {
	return &Optimum{
		Evaluation:  evaluation,
		iterations:  iterations,
		evaluations: evaluations,
	}
}

// Iterations is the number of iterations performed.
func (o *Optimum) Iterations() int {
	return o.iterations
}

// Evaluations is the number of model evaluations performed.
func (o *Optimum) Evaluations() int {
	return o.evaluations
}

// run holds the budget counters of a single optimization.
type run struct {
	problem     Problem
	iterations  *Incrementor
	evaluations *Incrementor
}

func newRun(problem Problem) (*run, error) {
	if problem == nil {
		return nil, nullArgument("problem")
	}
	evaluations := NewIncrementor(problem.MaxEvaluations())
	counted, err := CountEvaluations(problem, evaluations)
	if err != nil {
		return nil, err
	}
	return &run{
		problem:     counted,
		iterations:  NewIncrementor(problem.MaxIterations()),
		evaluations: evaluations,
	}, nil
}

func (r *run) iterate() error {
	if err := r.iterations.Increment(); err != nil {
		return fmt.Errorf("%w: %w", TooManyIterationsErr, err)
	}
	return nil
}

func (r *run) evaluate(point mat.Vector) (Evaluation, error) {
	return r.problem.Evaluate(point)
}

func (r *run) optimum(e Evaluation) *Optimum {
	return NewOptimum(e, r.iterations.Count(), r.evaluations.Count())
}
