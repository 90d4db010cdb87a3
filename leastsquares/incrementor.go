package leastsquares

import "fmt"

// MaxCountExceededCallback is triggered when an Incrementor goes past its maximal count.
// Returning nil lets the count proceed.
type MaxCountExceededCallback func(max int) error

func failOnMax(max int) error {
	return fmt.Errorf("limit of %d reached: %w", max, MaxCountExceededErr)
}

// Incrementor is a counter with a ceiling.
// It is not safe for concurrent use.
type Incrementor struct {
	count    int
	max      int
	callback MaxCountExceededCallback
}

// NewIncrementor creates a new counter that fails once max is exceeded.
func NewIncrementor(max int) *Incrementor {
	return &Incrementor{
		max:      max,
		callback: failOnMax,
	}
}

// NewIncrementorWithCallback creates a new counter that delegates to the given callback once max is exceeded.
func NewIncrementorWithCallback(max int, callback MaxCountExceededCallback) (*Incrementor, error) {
	if callback == nil {
		return nil, nullArgument("max count callback")
	}
	return &Incrementor{
		max:      max,
		callback: callback,
	}, nil
}

// Count returns the current count.
func (i *Incrementor) Count() int {
	return i.count
}

// Max returns the ceiling.
func (i *Incrementor) Max() int {
	return i.max
}

// CanIncrement checks if the next increment stays within the ceiling.
func (i *Incrementor) CanIncrement() bool {
	return i.count < i.max
}

// Increment adds one to the count.
// The count is moved even when the ceiling is exceeded, so Count always reflects the number of calls.
func (i *Incrementor) Increment() error {
	i.count++
	if i.count > i.max {
		return i.callback(i.max)
	}
	return nil
}

// Reset sets the count back to zero.
func (i *Incrementor) Reset() {
	i.count = 0
}
