package fitting

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/drakos74/curvefit/leastsquares"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
)

// GaussianCurveFitter fits norm·exp(-(x-mean)²/(2σ²)).
// Trial points with a non-positive σ evaluate to +∞ so that the optimizer rejects them.
type GaussianCurveFitter struct {
	initialGuess  []float64
	maxIterations int
	optimizer     leastsquares.Optimizer
}

// NewGaussianCurveFitter creates a fitter that guesses its start point.
func NewGaussianCurveFitter() *GaussianCurveFitter {
	return &GaussianCurveFitter{
		maxIterations: defaultMaxIterations,
	}
}

// WithStartPoint returns a copy of the fitter starting from {norm, mean, σ}.
func (f GaussianCurveFitter) WithStartPoint(start []float64) *GaussianCurveFitter {
	f.initialGuess = copyOf(start)
	return &f
}

func (f GaussianCurveFitter) WithMaxIterations(maxIterations int) *GaussianCurveFitter {
	f.maxIterations = maxIterations
	return &f
}

func (f GaussianCurveFitter) WithOptimizer(optimizer leastsquares.Optimizer) *GaussianCurveFitter {
	f.optimizer = optimizer
	return &f
}

func (f *GaussianCurveFitter) Name() string {
	return "gaussian"
}

// Problem implements ProblemBuilder.
func (f *GaussianCurveFitter) Problem(points []WeightedObservedPoint) (leastsquares.Problem, error) {
	start := f.initialGuess
	if start == nil {
		guesser, err := NewGaussianGuesser(points)
		if err != nil {
			return nil, err
		}
		start = guesser.Guess()
	}
	return problem(boundedGaussian{}, points, start, f.maxIterations)
}

// Fit returns {norm, mean, σ}.
func (f *GaussianCurveFitter) Fit(points []WeightedObservedPoint) ([]float64, error) {
	return Fit(f, f.optimizer, points)
}

// fwhmToSigma converts a full width at half maximum into a standard deviation.
var fwhmToSigma = 1 / (2 * math.Sqrt(2*math.Ln2))

var outOfRangeErr = errors.New("half maximum is not bracketed by the sample")

// GaussianGuesser estimates {norm, mean, σ} from the peak of a sample and its width at half height.
type GaussianGuesser struct {
	norm  float64
	mean  float64
	sigma float64
}

// NewGaussianGuesser computes the guess. At least 3 points are required.
func NewGaussianGuesser(points []WeightedObservedPoint) (*GaussianGuesser, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("got %d points but need at least 3: %w", len(points), InsufficientDataErr)
	}

	sorted := make([]WeightedObservedPoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		p, q := sorted[i], sorted[j]
		if p.X() != q.X() {
			return p.X() < q.X()
		}
		if p.Y() != q.Y() {
			return p.Y() < q.Y()
		}
		return p.Weight() < q.Weight()
	})

	ys := make([]float64, len(sorted))
	for i, p := range sorted {
		ys[i] = p.Y()
	}
	xRange := sorted[len(sorted)-1].X() - sorted[0].X()
	if xRange == 0 {
		return nil, fmt.Errorf("observations share a single abscissa: %w", IllConditionedErr)
	}

	peak := floats.MaxIdx(ys)
	norm := sorted[peak].Y()
	mean := sorted[peak].X()

	halfY := norm / 2
	var fwhm float64
	x1, err1 := interpolateXAtY(sorted, peak, -1, halfY)
	x2, err2 := interpolateXAtY(sorted, peak, 1, halfY)
	if err1 != nil || err2 != nil {
		fwhm = xRange
	} else {
		fwhm = x2 - x1
	}
	sigma := fwhm * fwhmToSigma
	if !(sigma > 0) {
		return nil, fmt.Errorf("zero width at half maximum %f: %w", halfY, IllConditionedErr)
	}

	log.Debug().
		Float64("norm", norm).
		Float64("mean", mean).
		Float64("sigma", sigma).
		Msg("gaussian guess")

	return &GaussianGuesser{
		norm:  norm,
		mean:  mean,
		sigma: sigma,
	}, nil
}

// Guess returns {norm, mean, σ}.
func (g *GaussianGuesser) Guess() []float64 {
	return []float64{g.norm, g.mean, g.sigma}
}

// interpolateXAtY walks from start in the direction of step
// and interpolates linearly the abscissa where the sample crosses y.
func interpolateXAtY(points []WeightedObservedPoint, start, step int, y float64) (float64, error) {
	for i := start; i+step >= 0 && i+step < len(points); i += step {
		p1, p2 := points[i], points[i+step]
		if !isBetween(y, p1.Y(), p2.Y()) {
			continue
		}
		if step < 0 {
			p1, p2 = p2, p1
		}
		switch {
		case p1.Y() == y:
			return p1.X(), nil
		case p2.Y() == y:
			return p2.X(), nil
		}
		return p1.X() + (y-p1.Y())*(p2.X()-p1.X())/(p2.Y()-p1.Y()), nil
	}
	return 0, outOfRangeErr
}

func isBetween(value, boundary1, boundary2 float64) bool {
	return (value >= boundary1 && value <= boundary2) ||
		(value >= boundary2 && value <= boundary1)
}
