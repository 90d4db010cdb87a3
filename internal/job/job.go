package job

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/drakos74/curvefit/fitting"
	cfmath "github.com/drakos74/curvefit/internal/math"
	"github.com/drakos74/curvefit/internal/stats"
	"github.com/drakos74/curvefit/leastsquares"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	Polynomial = "polynomial"
	Harmonic   = "harmonic"
	Gaussian   = "gaussian"

	LevenbergMarquardt = "levenberg-marquardt"
	GaussNewton        = "gauss-newton"
)

var (
	UnknownFitterErr    = errors.New("unknown fitter")
	UnknownOptimizerErr = errors.New("unknown optimizer")
)

// Point is a single observation of a job.
// A missing weight counts as 1.
type Point struct {
	X      float64  `yaml:"x" json:"x"`
	Y      float64  `yaml:"y" json:"y"`
	Weight *float64 `yaml:"weight,omitempty" json:"weight,omitempty"`
}

// Job describes a curve fit.
type Job struct {
	ID            string    `yaml:"id,omitempty" json:"id,omitempty"`
	Fitter        string    `yaml:"fitter" json:"fitter"`
	Optimizer     string    `yaml:"optimizer,omitempty" json:"optimizer,omitempty"`
	Degree        int       `yaml:"degree,omitempty" json:"degree,omitempty"`
	Start         []float64 `yaml:"start,omitempty" json:"start,omitempty"`
	MaxIterations int       `yaml:"max_iterations,omitempty" json:"max_iterations,omitempty"`
	Points        []Point   `yaml:"points" json:"points"`
}

// Result is the outcome of a job.
type Result struct {
	ID               string    `yaml:"id" json:"id"`
	Fitter           string    `yaml:"fitter" json:"fitter"`
	Parameters       []float64 `yaml:"parameters" json:"parameters"`
	Points           int       `yaml:"points" json:"points"`
	RMS              float64   `yaml:"rms" json:"rms"`
	ChiSquare        float64   `yaml:"chi_square" json:"chi_square"`
	ReducedChiSquare float64   `yaml:"reduced_chi_square,omitempty" json:"reduced_chi_square,omitempty"`
	MaxResidual      float64   `yaml:"max_residual" json:"max_residual"`
	ResidualMean     float64   `yaml:"residual_mean" json:"residual_mean"`
	ResidualStDev    float64   `yaml:"residual_stdev" json:"residual_stdev"`
	// ClosedForm holds the direct unweighted least squares solution, for polynomial jobs only.
	ClosedForm []float64 `yaml:"closed_form,omitempty" json:"closed_form,omitempty"`
}

// Load decodes a yaml job.
func Load(r io.Reader) (Job, error) {
	var j Job
	if err := yaml.NewDecoder(r).Decode(&j); err != nil {
		return Job{}, fmt.Errorf("could not decode job: %w", err)
	}
	return j, nil
}

// Write encodes the value as yaml.
func Write(w io.Writer, v interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("could not encode: %w", err)
	}
	return encoder.Close()
}

// Observations converts the job points.
func (j Job) Observations() []fitting.WeightedObservedPoint {
	obs := fitting.NewWeightedObservedPoints()
	for _, p := range j.Points {
		w := 1.0
		if p.Weight != nil {
			w = *p.Weight
		}
		obs.AddWeighted(w, p.X, p.Y)
	}
	return obs.ToList()
}

// Function returns the parametric function fitted by the job.
func (j Job) Function() (fitting.ParametricFunction, error) {
	return Function(j.Fitter)
}

// Function returns the parametric function for the fitter name.
func Function(fitter string) (fitting.ParametricFunction, error) {
	switch strings.ToLower(fitter) {
	case Polynomial:
		return fitting.Polynomial{}, nil
	case Harmonic:
		return fitting.Harmonic{}, nil
	case Gaussian:
		return fitting.Gaussian{}, nil
	}
	return nil, fmt.Errorf("'%s': %w", fitter, UnknownFitterErr)
}

func (j Job) optimizer() (leastsquares.Optimizer, error) {
	switch strings.ToLower(j.Optimizer) {
	case "", LevenbergMarquardt:
		return leastsquares.NewLevenbergMarquardt(), nil
	case GaussNewton:
		return leastsquares.NewGaussNewton(), nil
	}
	return nil, fmt.Errorf("'%s': %w", j.Optimizer, UnknownOptimizerErr)
}

// fitter creates the fitter for the job.
func (j Job) fitter() (func(points []fitting.WeightedObservedPoint) ([]float64, error), error) {
	optimizer, err := j.optimizer()
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(j.Fitter) {
	case Polynomial:
		f := fitting.NewPolynomialCurveFitter(j.Degree).WithOptimizer(optimizer)
		if len(j.Start) > 0 {
			f = f.WithStartPoint(j.Start)
		}
		if j.MaxIterations > 0 {
			f = f.WithMaxIterations(j.MaxIterations)
		}
		return f.Fit, nil
	case Harmonic:
		f := fitting.NewHarmonicCurveFitter().WithOptimizer(optimizer)
		if len(j.Start) > 0 {
			f = f.WithStartPoint(j.Start)
		}
		if j.MaxIterations > 0 {
			f = f.WithMaxIterations(j.MaxIterations)
		}
		return f.Fit, nil
	case Gaussian:
		f := fitting.NewGaussianCurveFitter().WithOptimizer(optimizer)
		if len(j.Start) > 0 {
			f = f.WithStartPoint(j.Start)
		}
		if j.MaxIterations > 0 {
			f = f.WithMaxIterations(j.MaxIterations)
		}
		return f.Fit, nil
	}
	return nil, fmt.Errorf("'%s': %w", j.Fitter, UnknownFitterErr)
}

// Run fits the job and summarises the residuals of the fitted curve.
func Run(j Job) (Result, error) {
	if j.ID == "" {
		j.ID = uuid.New().String()
	}
	fit, err := j.fitter()
	if err != nil {
		return Result{}, err
	}
	f, err := j.Function()
	if err != nil {
		return Result{}, err
	}

	points := j.Observations()
	parameters, err := fit(points)
	if err != nil {
		return Result{}, fmt.Errorf("job '%s': %w", j.ID, err)
	}

	x := make([]float64, len(points))
	y := make([]float64, len(points))
	w := make([]float64, len(points))
	for i, p := range points {
		x[i] = p.X()
		y[i] = p.Y()
		w[i] = p.Weight()
	}
	s, err := stats.Residuals(x, y, w, func(x float64) (float64, error) {
		return f.Value(x, parameters...)
	})
	if err != nil {
		return Result{}, fmt.Errorf("job '%s': %w", j.ID, err)
	}

	result := Result{
		ID:            j.ID,
		Fitter:        strings.ToLower(j.Fitter),
		Parameters:    parameters,
		Points:        len(points),
		RMS:           s.RMS(),
		ChiSquare:     s.ChiSquare(),
		MaxResidual:   math.Max(math.Abs(s.Min()), math.Abs(s.Max())),
		ResidualMean:  s.Avg(),
		ResidualStDev: s.StDev(),
	}
	// zero when no degrees of freedom are left
	if reduced := s.ReducedChiSquare(len(parameters)); !math.IsInf(reduced, 0) {
		result.ReducedChiSquare = reduced
	}

	if result.Fitter == Polynomial {
		closed, err := cfmath.Fit(x, y, len(parameters)-1)
		if err != nil {
			log.Warn().Err(err).Str("job", j.ID).Msg("could not compute closed form solution")
		} else {
			result.ClosedForm = closed
		}
	}

	log.Info().
		Str("job", j.ID).
		Str("fitter", result.Fitter).
		Int("points", result.Points).
		Floats64("parameters", parameters).
		Float64("rms", result.RMS).
		Msg("job done")

	return result, nil
}

// Generate samples the fitter function with the given parameters at the abscissas,
// adding gaussian noise of the given deviation.
func Generate(fitter string, parameters, xs []float64, noise float64, seed int64) (Job, error) {
	f, err := Function(fitter)
	if err != nil {
		return Job{}, err
	}
	ys, err := cfmath.Sample(func(x float64) (float64, error) {
		return f.Value(x, parameters...)
	}, xs)
	if err != nil {
		return Job{}, fmt.Errorf("could not sample %s: %w", fitter, err)
	}
	ys = cfmath.Noise(ys, noise, seed)

	j := Job{
		ID:     uuid.New().String(),
		Fitter: strings.ToLower(fitter),
		Points: make([]Point, len(xs)),
	}
	if j.Fitter == Polynomial {
		j.Degree = len(parameters) - 1
	}
	for i, x := range xs {
		j.Points[i] = Point{X: x, Y: ys[i]}
	}
	return j, nil
}
