package leastsquares

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
)

// LevenbergMarquardt is a damped Gauss-Newton optimizer.
// Every step solves (JᵀJ + μI)·h = Jᵀr and the damping μ follows the gain ratio of the step.
type LevenbergMarquardt struct {
	initialDampingFactor  float64
	costRelativeTolerance float64
	parRelativeTolerance  float64
	orthoTolerance        float64
}

// NewLevenbergMarquardt creates an optimizer with the default tolerances.
func NewLevenbergMarquardt() *LevenbergMarquardt {
	return &LevenbergMarquardt{
		initialDampingFactor:  1e-3,
		costRelativeTolerance: 1e-10,
		parRelativeTolerance:  1e-10,
		orthoTolerance:        1e-10,
	}
}

// WithInitialDampingFactor scales the initial damping against the largest diagonal entry of JᵀJ.
func (o LevenbergMarquardt) WithInitialDampingFactor(factor float64) *LevenbergMarquardt {
	o.initialDampingFactor = factor
	return &o
}

// WithCostRelativeTolerance sets the relative cost reduction below which the run stops.
func (o LevenbergMarquardt) WithCostRelativeTolerance(tolerance float64) *LevenbergMarquardt {
	o.costRelativeTolerance = tolerance
	return &o
}

// WithParameterRelativeTolerance sets the relative step size below which the run stops.
func (o LevenbergMarquardt) WithParameterRelativeTolerance(tolerance float64) *LevenbergMarquardt {
	o.parRelativeTolerance = tolerance
	return &o
}

// WithOrthoTolerance sets the gradient norm below which the run stops.
func (o LevenbergMarquardt) WithOrthoTolerance(tolerance float64) *LevenbergMarquardt {
	o.orthoTolerance = tolerance
	return &o
}

// Optimize implements Optimizer.
func (o LevenbergMarquardt) Optimize(problem Problem) (*Optimum, error) {
	r, err := newRun(problem)
	if err != nil {
		return nil, err
	}
	checker := problem.ConvergenceChecker()

	current, err := r.evaluate(problem.Start())
	if err != nil {
		return nil, err
	}
	if err := finiteCost(current); err != nil {
		return nil, err
	}
	point := mat.VecDenseCopyOf(current.Point())
	a, g := normalEquations(current)

	mu := o.initialDampingFactor * maxDiagonal(a)
	if !isFinite(mu) {
		return nil, fmt.Errorf("damping %f at start point: %w", mu, ConvergenceErr)
	}
	if mu <= 0 {
		mu = o.initialDampingFactor
	}
	nu := 2.0

	for {
		if err := r.iterate(); err != nil {
			return nil, err
		}

		if mat.Norm(g, math.Inf(1)) <= o.orthoTolerance {
			return r.optimum(current), nil
		}

		h, ok := dampedStep(a, g, mu)
		if !ok {
			if mu, nu, err = increaseDamping(mu, nu); err != nil {
				return nil, err
			}
			continue
		}

		if mat.Norm(h, 2) <= o.parRelativeTolerance*(mat.Norm(point, 2)+o.parRelativeTolerance) {
			return r.optimum(current), nil
		}

		trial := mat.NewVecDense(point.Len(), nil)
		trial.AddVec(point, h)
		next, err := r.evaluate(trial)
		if err != nil {
			return nil, err
		}

		cost := 0.5 * current.ChiSquare()
		nextCost := 0.5 * next.ChiSquare()
		predicted := 0.5 * (mu*mat.Dot(h, h) + mat.Dot(h, g))

		rho := -1.0
		if predicted > 0 {
			rho = (cost - nextCost) / predicted
		}

		if !(rho > 0) {
			if mu, nu, err = increaseDamping(mu, nu); err != nil {
				return nil, err
			}
			continue
		}

		previous := current
		current = next
		point = trial
		a, g = normalEquations(current)
		mu *= math.Max(1.0/3.0, 1-math.Pow(2*rho-1, 3))
		nu = 2

		log.Debug().
			Int("iteration", r.iterations.Count()).
			Int("evaluations", r.evaluations.Count()).
			Float64("cost", current.Cost()).
			Float64("damping", mu).
			Msg("levenberg-marquardt step")

		if checker != nil && checker.Converged(r.iterations.Count(), previous, current) {
			return r.optimum(current), nil
		}
		if nextCost == 0 {
			return r.optimum(current), nil
		}
		if cost-nextCost <= o.costRelativeTolerance*cost && predicted <= o.costRelativeTolerance*cost {
			return r.optimum(current), nil
		}
	}
}

func increaseDamping(mu, nu float64) (float64, float64, error) {
	mu *= nu
	if !isFinite(mu) {
		return mu, nu, fmt.Errorf("damping diverged: %w", ConvergenceErr)
	}
	return mu, 2 * nu, nil
}

// finiteCost fails for an evaluation no step can improve on.
func finiteCost(e Evaluation) error {
	if c := e.Cost(); !isFinite(c) {
		return fmt.Errorf("cost %f at %v: %w", c, Values(e.Point()), ConvergenceErr)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// normalEquations returns JᵀJ and Jᵀr of the evaluation.
func normalEquations(e Evaluation) (*mat.SymDense, *mat.VecDense) {
	j := e.Jacobian()
	_, n := j.Dims()

	a := mat.NewSymDense(n, nil)
	a.SymOuterK(1, j.T())

	g := mat.NewVecDense(n, nil)
	g.MulVec(j.T(), e.Residuals())
	return a, g
}

// dampedStep solves (a + μI)·h = g, reporting false when the damped matrix is not positive definite.
func dampedStep(a *mat.SymDense, g *mat.VecDense, mu float64) (*mat.VecDense, bool) {
	n := a.SymmetricDim()
	damped := mat.NewSymDense(n, nil)
	damped.CopySym(a)
	for i := 0; i < n; i++ {
		damped.SetSym(i, i, damped.At(i, i)+mu)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(damped); !ok {
		return nil, false
	}
	h := mat.NewVecDense(n, nil)
	if err := chol.SolveVecTo(h, g); err != nil {
		return nil, false
	}
	for i := 0; i < n; i++ {
		if v := h.AtVec(i); math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false
		}
	}
	return h, true
}

func maxDiagonal(a *mat.SymDense) float64 {
	m := 0.0
	for i := 0; i < a.SymmetricDim(); i++ {
		m = math.Max(m, a.At(i, i))
	}
	return m
}
