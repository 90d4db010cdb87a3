package metrics

import "github.com/prometheus/client_golang/prometheus"

type Prometheus struct {
	Fits        *prometheus.CounterVec
	Evaluations *prometheus.CounterVec
	Iterations  *prometheus.CounterVec
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Fits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "curvefit",
				Name:      "fits_total",
				Help:      "Number of curve fits by fitter and outcome.",
			}, []string{"fitter", "status"}),
		Evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "curvefit",
				Name:      "evaluations_total",
				Help:      "Model evaluations spent by successful fits.",
			}, []string{"fitter"}),
		Iterations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "curvefit",
				Name:      "iterations_total",
				Help:      "Optimizer iterations spent by successful fits.",
			}, []string{"fitter"}),
	}
}

func (p Prometheus) collectors() []prometheus.Collector {
	return []prometheus.Collector{p.Fits, p.Evaluations, p.Iterations}
}
