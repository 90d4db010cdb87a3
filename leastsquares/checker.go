package leastsquares

import (
	"fmt"
	"math"
)

// ConvergenceChecker decides whether two successive evaluations are close enough to stop.
type ConvergenceChecker interface {
	Converged(iteration int, previous, current Evaluation) bool
}

// ConvergenceCheckerFunc adapts a plain function to ConvergenceChecker.
type ConvergenceCheckerFunc func(iteration int, previous, current Evaluation) bool

// Converged calls f.
func (f ConvergenceCheckerFunc) Converged(iteration int, previous, current Evaluation) bool {
	return f(iteration, previous, current)
}

// PointVectorValuePair is a point together with the vector value at that point.
type PointVectorValuePair struct {
	Point []float64
	Value []float64
}

// PairChecker is a convergence checker working on plain point/value pairs.
type PairChecker interface {
	Converged(iteration int, previous, current PointVectorValuePair) bool
}

// PairCheckerFunc adapts a plain function to PairChecker.
type PairCheckerFunc func(iteration int, previous, current PointVectorValuePair) bool

// Converged calls f.
func (f PairCheckerFunc) Converged(iteration int, previous, current PointVectorValuePair) bool {
	return f(iteration, previous, current)
}

type pairAdapter struct {
	checker PairChecker
}

func (a pairAdapter) Converged(iteration int, previous, current Evaluation) bool {
	return a.checker.Converged(iteration, toPair(previous), toPair(current))
}

func toPair(e Evaluation) PointVectorValuePair {
	return PointVectorValuePair{
		Point: Values(e.Point()),
		Value: Values(e.Residuals()),
	}
}

// VectorValueChecker stops when every component of the value vector is stable,
// either relatively or absolutely. With a positive max iterations it also stops once that many
// iterations have been performed.
type VectorValueChecker struct {
	relativeThreshold float64
	absoluteThreshold float64
	maxIterations     int
}

// NewVectorValueChecker creates a checker without an iteration limit.
func NewVectorValueChecker(relativeThreshold, absoluteThreshold float64) *VectorValueChecker {
	return &VectorValueChecker{
		relativeThreshold: relativeThreshold,
		absoluteThreshold: absoluteThreshold,
	}
}

// NewVectorValueCheckerWithMaxIterations creates a checker that also stops after maxIterations.
func NewVectorValueCheckerWithMaxIterations(relativeThreshold, absoluteThreshold float64, maxIterations int) (*VectorValueChecker, error) {
	if maxIterations <= 0 {
		return nil, fmt.Errorf("max iterations %d: %w", maxIterations, NotStrictlyPositiveErr)
	}
	return &VectorValueChecker{
		relativeThreshold: relativeThreshold,
		absoluteThreshold: absoluteThreshold,
		maxIterations:     maxIterations,
	}, nil
}

// Converged implements PairChecker.
func (c *VectorValueChecker) Converged(iteration int, previous, current PointVectorValuePair) bool {
	if c.maxIterations > 0 && iteration >= c.maxIterations {
		return true
	}
	if len(previous.Value) != len(current.Value) {
		return false
	}
	for i, p := range previous.Value {
		v := current.Value[i]
		difference := math.Abs(p - v)
		size := math.Max(math.Abs(p), math.Abs(v))
		if difference > size*c.relativeThreshold && difference > c.absoluteThreshold {
			return false
		}
	}
	return true
}

// RMSChecker stops when the RMS of the residuals is stable.
type RMSChecker struct {
	relativeTolerance float64
	absoluteTolerance float64
}

// NewRMSChecker creates a new RMS based checker.
func NewRMSChecker(relativeTolerance, absoluteTolerance float64) *RMSChecker {
	return &RMSChecker{
		relativeTolerance: relativeTolerance,
		absoluteTolerance: absoluteTolerance,
	}
}

// Converged implements ConvergenceChecker.
func (c *RMSChecker) Converged(_ int, previous, current Evaluation) bool {
	p := previous.RMS()
	v := current.RMS()
	if p == v || math.Abs(p-v) <= c.absoluteTolerance {
		return true
	}
	return math.Abs(p-v)/math.Max(math.Abs(p), math.Abs(v)) <= c.relativeTolerance
}
