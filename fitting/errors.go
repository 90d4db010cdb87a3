package fitting

import "errors"

var (
	InsufficientDataErr = errors.New("insufficient observed points in sample")
	IllConditionedErr   = errors.New("ill-conditioned sample")
	MissingStartErr     = errors.New("missing start point")
)
