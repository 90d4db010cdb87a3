package leastsquares

import (
	"errors"
	"fmt"
)

var (
	NullArgumentErr        = errors.New("null argument")
	NoDataErr              = errors.New("no data")
	DimensionMismatchErr   = errors.New("dimension mismatch")
	NotPositiveErr         = errors.New("not positive")
	NotStrictlyPositiveErr = errors.New("not strictly positive")
	NonSymmetricErr        = errors.New("non symmetric matrix")
	SingularMatrixErr      = errors.New("singular matrix")
	MaxCountExceededErr    = errors.New("max count exceeded")
	TooManyEvaluationsErr  = errors.New("too many evaluations")
	TooManyIterationsErr   = errors.New("too many iterations")
	ConvergenceErr         = errors.New("convergence failure")
)

func dimensionMismatch(what string, got, expected int) error {
	return fmt.Errorf("%s has dimension %d instead of %d: %w", what, got, expected, DimensionMismatchErr)
}

func nullArgument(what string) error {
	return fmt.Errorf("%s is missing: %w", what, NullArgumentErr)
}
