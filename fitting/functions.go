package fitting

import (
	"errors"
	"fmt"
	"math"

	"github.com/drakos74/curvefit/leastsquares"
)

// ParametricFunction is a univariate function of x with free parameters.
type ParametricFunction interface {
	// Value computes f(x) for the given parameters.
	Value(x float64, parameters ...float64) (float64, error)
	// Gradient computes the partial derivatives of f(x) with respect to each parameter.
	Gradient(x float64, parameters ...float64) ([]float64, error)
}

func checkParameters(parameters []float64, expected int) error {
	if len(parameters) != expected {
		return fmt.Errorf("got %d parameters instead of %d: %w", len(parameters), expected, leastsquares.DimensionMismatchErr)
	}
	return nil
}

// Polynomial is c[0] + c[1]x + c[2]x^2 + ...
type Polynomial struct{}

// Value evaluates the polynomial with Horner's scheme.
func (Polynomial) Value(x float64, coefficients ...float64) (float64, error) {
	if len(coefficients) == 0 {
		return 0, fmt.Errorf("polynomial without coefficients: %w", leastsquares.NoDataErr)
	}
	n := len(coefficients)
	result := coefficients[n-1]
	for j := n - 2; j >= 0; j-- {
		result = x*result + coefficients[j]
	}
	return result, nil
}

func (Polynomial) Gradient(x float64, coefficients ...float64) ([]float64, error) {
	if len(coefficients) == 0 {
		return nil, fmt.Errorf("polynomial without coefficients: %w", leastsquares.NoDataErr)
	}
	gradient := make([]float64, len(coefficients))
	gradient[0] = 1
	for i := 1; i < len(gradient); i++ {
		gradient[i] = gradient[i-1] * x
	}
	return gradient, nil
}

// Harmonic is a·cos(ω·x + φ), with parameters {a, ω, φ}.
type Harmonic struct{}

func (Harmonic) Value(x float64, parameters ...float64) (float64, error) {
	if err := checkParameters(parameters, 3); err != nil {
		return 0, err
	}
	return parameters[0] * math.Cos(parameters[1]*x+parameters[2]), nil
}

func (Harmonic) Gradient(x float64, parameters ...float64) ([]float64, error) {
	if err := checkParameters(parameters, 3); err != nil {
		return nil, err
	}
	amplitude := parameters[0]
	alpha := parameters[1]*x + parameters[2]
	a := math.Cos(alpha)
	p := -amplitude * math.Sin(alpha)
	w := p * x
	return []float64{a, w, p}, nil
}

// Gaussian is norm·exp(-(x-mean)²/(2σ²)), with parameters {norm, mean, σ}.
// σ must be strictly positive.
type Gaussian struct{}

func checkGaussian(parameters []float64) error {
	if err := checkParameters(parameters, 3); err != nil {
		return err
	}
	if parameters[2] <= 0 {
		return fmt.Errorf("gaussian sigma %f: %w", parameters[2], leastsquares.NotStrictlyPositiveErr)
	}
	return nil
}

func (Gaussian) Value(x float64, parameters ...float64) (float64, error) {
	if err := checkGaussian(parameters); err != nil {
		return 0, err
	}
	diff := x - parameters[1]
	sigma := parameters[2]
	return parameters[0] * math.Exp(-diff*diff/(2*sigma*sigma)), nil
}

func (Gaussian) Gradient(x float64, parameters ...float64) ([]float64, error) {
	if err := checkGaussian(parameters); err != nil {
		return nil, err
	}
	norm := parameters[0]
	diff := x - parameters[1]
	sigma := parameters[2]
	i2s2 := 1 / (2 * sigma * sigma)

	n := math.Exp(-diff * diff * i2s2)
	m := norm * n * 2 * i2s2 * diff
	s := m * diff / sigma
	return []float64{n, m, s}, nil
}

// boundedGaussian turns a non-positive σ into +∞ values,
// so that an optimizer rejects the trial step instead of aborting the fit.
type boundedGaussian struct {
	Gaussian
}

func (g boundedGaussian) Value(x float64, parameters ...float64) (float64, error) {
	v, err := g.Gaussian.Value(x, parameters...)
	if errors.Is(err, leastsquares.NotStrictlyPositiveErr) {
		return math.Inf(1), nil
	}
	return v, err
}

func (g boundedGaussian) Gradient(x float64, parameters ...float64) ([]float64, error) {
	v, err := g.Gaussian.Gradient(x, parameters...)
	if errors.Is(err, leastsquares.NotStrictlyPositiveErr) {
		return []float64{math.Inf(1), math.Inf(1), math.Inf(1)}, nil
	}
	return v, err
}
