package metrics

import (
	"errors"
	"sync"

	"github.com/drakos74/curvefit/leastsquares"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	StatusOK     = "ok"
	StatusBudget = "budget"
	StatusData   = "data"
	StatusError  = "error"
)

var Observer = NewMetrics()

func init() {
	if err := Observer.Register(prometheus.DefaultRegisterer); err != nil {
		panic(err.Error())
	}
}

type Metrics struct {
	mutex      *sync.RWMutex
	prometheus Prometheus
}

func NewMetrics() *Metrics {
	return &Metrics{
		mutex:      new(sync.RWMutex),
		prometheus: NewPrometheusMetrics(),
	}
}

// Register adds the collectors to the registerer, ignoring the ones already registered.
func (m *Metrics) Register(registerer prometheus.Registerer) error {
	for _, c := range m.prometheus.collectors() {
		if err := registerer.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}

// Fit records the outcome of a fit.
func (m *Metrics) Fit(fitter string, iterations, evaluations int, err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	status := Status(err)
	m.prometheus.Fits.WithLabelValues(fitter, status).Inc()
	if status != StatusOK {
		return
	}
	m.prometheus.Iterations.WithLabelValues(fitter).Add(float64(iterations))
	m.prometheus.Evaluations.WithLabelValues(fitter).Add(float64(evaluations))
}

// Status maps a fit error to the status label.
func Status(err error) string {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, leastsquares.TooManyEvaluationsErr),
		errors.Is(err, leastsquares.TooManyIterationsErr),
		errors.Is(err, leastsquares.MaxCountExceededErr):
		return StatusBudget
	case errors.Is(err, leastsquares.NoDataErr),
		errors.Is(err, leastsquares.DimensionMismatchErr):
		return StatusData
	}
	return StatusError
}
