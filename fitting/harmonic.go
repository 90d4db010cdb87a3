package fitting

import (
	"fmt"
	"math"

	"github.com/drakos74/curvefit/leastsquares"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
)

// HarmonicCurveFitter fits a·cos(ω·x + φ).
// Without a start point the parameters are guessed from the observations.
type HarmonicCurveFitter struct {
	initialGuess  []float64
	maxIterations int
	optimizer     leastsquares.Optimizer
}

// NewHarmonicCurveFitter creates a fitter that guesses its start point.
func NewHarmonicCurveFitter() *HarmonicCurveFitter {
	return &HarmonicCurveFitter{
		maxIterations: defaultMaxIterations,
	}
}

// WithStartPoint returns a copy of the fitter starting from {a, ω, φ}.
func (f HarmonicCurveFitter) WithStartPoint(start []float64) *HarmonicCurveFitter {
	f.initialGuess = copyOf(start)
	return &f
}

func (f HarmonicCurveFitter) WithMaxIterations(maxIterations int) *HarmonicCurveFitter {
	f.maxIterations = maxIterations
	return &f
}

func (f HarmonicCurveFitter) WithOptimizer(optimizer leastsquares.Optimizer) *HarmonicCurveFitter {
	f.optimizer = optimizer
	return &f
}

func (f *HarmonicCurveFitter) Name() string {
	return "harmonic"
}

// Problem implements ProblemBuilder.
func (f *HarmonicCurveFitter) Problem(points []WeightedObservedPoint) (leastsquares.Problem, error) {
	start := f.initialGuess
	if start == nil {
		guesser, err := NewHarmonicGuesser(points)
		if err != nil {
			return nil, err
		}
		start = guesser.Guess()
	}
	return problem(Harmonic{}, points, start, f.maxIterations)
}

// Fit returns {a, ω, φ}.
func (f *HarmonicCurveFitter) Fit(points []WeightedObservedPoint) ([]float64, error) {
	return Fit(f, f.optimizer, points)
}

// HarmonicGuesser estimates {a, ω, φ} from a sample.
//
// The amplitude and pulsation come from a linear regression between the running integrals
// ∫f² and ∫f'² of the sample, since for f = a·cos(ω·x + φ) we have
// ∫f'² = a²ω²(x - x₀) - ω²∫f². The phase is then read from the average of
// ω·f·cos(ωx) - f'·sin(ωx) and ω·f·sin(ωx) + f'·cos(ωx).
type HarmonicGuesser struct {
	a     float64
	omega float64
	phi   float64
}

// NewHarmonicGuesser computes the guess. At least 4 points are required.
func NewHarmonicGuesser(points []WeightedObservedPoint) (*HarmonicGuesser, error) {
	if len(points) < 4 {
		return nil, fmt.Errorf("got %d points but need at least 4: %w", len(points), InsufficientDataErr)
	}

	sorted := sortByX(points)
	a, omega, err := guessAOmega(sorted)
	if err != nil {
		return nil, err
	}
	phi := guessPhi(sorted, omega)

	log.Debug().
		Float64("amplitude", a).
		Float64("omega", omega).
		Float64("phase", phi).
		Msg("harmonic guess")

	return &HarmonicGuesser{
		a:     a,
		omega: omega,
		phi:   phi,
	}, nil
}

// Guess returns {a, ω, φ}.
func (g *HarmonicGuesser) Guess() []float64 {
	return []float64{g.a, g.omega, g.phi}
}

// sortByX sorts a copy of the points by abscissa.
// Samples usually come sorted already, where insertion sort runs in linear time.
func sortByX(points []WeightedObservedPoint) []WeightedObservedPoint {
	sorted := make([]WeightedObservedPoint, len(points))
	copy(sorted, points)
	for j := 1; j < len(sorted); j++ {
		current := sorted[j]
		i := j - 1
		for i >= 0 && current.X() < sorted[i].X() {
			sorted[i+1] = sorted[i]
			i--
		}
		sorted[i+1] = current
	}
	return sorted
}

func guessAOmega(points []WeightedObservedPoint) (float64, float64, error) {
	last := len(points) - 1
	xRange := points[last].X() - points[0].X()
	if xRange == 0 {
		return 0, 0, fmt.Errorf("observations share a single abscissa: %w", IllConditionedErr)
	}

	var sx2, sy2, sxy, sxz, syz float64

	currentX := points[0].X()
	currentY := points[0].Y()
	var f2Integral, fPrime2Integral float64
	startX := currentX
	for i := 1; i < len(points); i++ {
		previousX := currentX
		previousY := currentY
		currentX = points[i].X()
		currentY = points[i].Y()

		// f is linear between two samples, so f' is constant
		dx := currentX - previousX
		dy := currentY - previousY
		f2StepIntegral := dx * (previousY*previousY + previousY*currentY + currentY*currentY) / 3
		fPrime2StepIntegral := dy * dy / dx

		x := currentX - startX
		f2Integral += f2StepIntegral
		fPrime2Integral += fPrime2StepIntegral

		sx2 += x * x
		sy2 += f2Integral * f2Integral
		sxy += x * f2Integral
		sxz += x * fPrime2Integral
		syz += f2Integral * fPrime2Integral
	}

	c1 := sy2*sxz - sxy*syz
	c2 := sxy*sxz - sx2*syz
	c3 := sx2*sy2 - sxy*sxy

	if c1/c2 < 0 || c2/c3 < 0 {
		omega := 2 * math.Pi / xRange

		ys := make([]float64, 0, last)
		for i := 1; i < len(points); i++ {
			ys = append(ys, points[i].Y())
		}
		yMin, yMax := floats.Min(ys), floats.Max(ys)
		return 0.5 * (yMax - yMin), omega, nil
	}

	if c2 == 0 {
		return 0, 0, fmt.Errorf("zero denominator in amplitude estimate: %w", IllConditionedErr)
	}
	a := math.Sqrt(c1 / c2)
	omega := math.Sqrt(c2 / c3)
	if math.IsNaN(a) || math.IsNaN(omega) || math.IsInf(omega, 0) {
		return 0, 0, fmt.Errorf("degenerate amplitude or pulsation estimate: %w", IllConditionedErr)
	}
	return a, omega, nil
}

func guessPhi(points []WeightedObservedPoint, omega float64) float64 {
	var fcMean, fsMean float64

	currentX := points[0].X()
	currentY := points[0].Y()
	for i := 1; i < len(points); i++ {
		previousX := currentX
		previousY := currentY
		currentX = points[i].X()
		currentY = points[i].Y()
		currentYPrime := (currentY - previousY) / (currentX - previousX)

		omegaX := omega * currentX
		cosine := math.Cos(omegaX)
		sine := math.Sin(omegaX)
		fcMean += omega*currentY*cosine - currentYPrime*sine
		fsMean += omega*currentY*sine + currentYPrime*cosine
	}

	return math.Atan2(-fsMean, fcMean)
}
