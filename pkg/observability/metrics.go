// Package observability exposes Prometheus metrics for the advisor. Hosts
// register a Recorder with the engine and mount promhttp wherever they serve
// HTTP.
package observability

import (
	"github.com/cnckit/cutmode/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder counts the interesting events of the conversation flow.
// All methods are nil-safe so the engine can call them unconditionally.
type Recorder struct {
	sessionsStarted prometheus.Counter
	recommendations prometheus.Counter
	catalogMisses   prometheus.Counter
	parseRetries    prometheus.Counter
	stepVisits      *prometheus.CounterVec
}

// NewRecorder creates and registers the advisor metrics.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cutmode",
			Name:      "sessions_started_total",
			Help:      "Conversations started or restarted.",
		}),
		recommendations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cutmode",
			Name:      "recommendations_total",
			Help:      "Conversations that ended with a computed recommendation.",
		}),
		catalogMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cutmode",
			Name:      "catalog_misses_total",
			Help:      "Conversations that ended because the selection had no catalog data.",
		}),
		parseRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cutmode",
			Name:      "parse_retries_total",
			Help:      "Inputs rejected and re-prompted at the same step.",
		}),
		stepVisits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cutmode",
			Name:      "step_visits_total",
			Help:      "Prompts issued, by step.",
		}, []string{"step"}),
	}
	reg.MustRegister(r.sessionsStarted, r.recommendations, r.catalogMisses, r.parseRetries, r.stepVisits)
	return r
}

// SessionStarted records a new or restarted conversation.
func (r *Recorder) SessionStarted() {
	if r == nil {
		return
	}
	r.sessionsStarted.Inc()
}

// ObserveReply records the outcome of one turn.
func (r *Recorder) ObserveReply(reply *domain.Reply) {
	if r == nil || reply == nil {
		return
	}
	switch reply.Outcome {
	case domain.OutcomePrompt:
		r.stepVisits.WithLabelValues(string(reply.Step)).Inc()
	case domain.OutcomeRetry:
		r.parseRetries.Inc()
	case domain.OutcomeResult:
		r.recommendations.Inc()
	case domain.OutcomeNoData:
		r.catalogMisses.Inc()
	}
}
