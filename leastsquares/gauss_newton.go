package leastsquares

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
)

// GaussNewton solves the linearised problem J·δ = r at every step through a QR decomposition.
// It has no damping, so it relies on the problem's checker to stop.
type GaussNewton struct{}

// NewGaussNewton creates a new Gauss-Newton optimizer.
func NewGaussNewton() *GaussNewton {
	return &GaussNewton{}
}

// Optimize implements Optimizer.
func (o GaussNewton) Optimize(problem Problem) (*Optimum, error) {
	r, err := newRun(problem)
	if err != nil {
		return nil, err
	}
	checker := problem.ConvergenceChecker()
	if checker == nil {
		return nil, nullArgument("convergence checker")
	}

	point := problem.Start()
	var previous Evaluation
	for {
		if err := r.iterate(); err != nil {
			return nil, err
		}

		current, err := r.evaluate(point)
		if err != nil {
			return nil, err
		}
		// without damping there is no way back from a non-finite cost
		if err := finiteCost(current); err != nil {
			return nil, err
		}

		if previous != nil && checker.Converged(r.iterations.Count(), previous, current) {
			return r.optimum(current), nil
		}

		delta := mat.NewVecDense(point.Len(), nil)
		if err := delta.SolveVec(current.Jacobian(), current.Residuals()); err != nil {
			var condition mat.Condition
			if !errors.As(err, &condition) || math.IsInf(float64(condition), 1) {
				return nil, fmt.Errorf("could not solve normal equations: %w: %v", ConvergenceErr, err)
			}
		}

		log.Debug().
			Int("iteration", r.iterations.Count()).
			Float64("cost", current.Cost()).
			Msg("gauss-newton step")

		point.AddVec(point, delta)
		previous = current
	}
}
