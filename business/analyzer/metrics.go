package analyzer

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cognilearn_analyses_total",
			Help: "Count of behavior analyses by learning pattern and risk flag.",
		},
		[]string{"pattern", "at_risk"},
	)

	modelsAvailable = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cognilearn_analyzer_models_available",
		Help: "1 when the behavior models are loaded, 0 when serving fallback results.",
	})
)

func init() {
	prometheus.MustRegister(analysesTotal, modelsAvailable)
}

func recordAvailability(ok bool) {
	if ok {
		modelsAvailable.Set(1)
		return
	}
	modelsAvailable.Set(0)
}
