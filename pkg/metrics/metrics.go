package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/templekit/templekit/pkg/temple"
)

var (
	AccessDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "temple_access_decisions_total",
			Help: "Total access decisions by outcome, matching rule and denial reason",
		},
		[]string{"granted", "matched_by", "reason"},
	)

	OverrideGrants = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "temple_override_grants_total",
			Help: "Total cross-temple override grants crossing the isolation boundary",
		},
	)

	BindFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "temple_store_bind_failures_total",
			Help: "Total store binding failures per connection alias",
		},
		[]string{"alias"},
	)

	DirectoryLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "temple_directory_lookups_total",
			Help: "Total temple directory lookups by cache outcome",
		},
		[]string{"result"},
	)
)

// Init registers the pipeline metrics with the default Prometheus registry.
func Init() {
	prometheus.MustRegister(AccessDecisions)
	prometheus.MustRegister(OverrideGrants)
	prometheus.MustRegister(BindFailures)
	prometheus.MustRegister(DirectoryLookups)
}

// DirectoryObserver returns a callback counting directory cache outcomes.
// Pass it to temple.WithDirectoryObserver.
func DirectoryObserver() func(hit bool) {
	return func(hit bool) {
		result := "miss"
		if hit {
			result = "hit"
		}
		DirectoryLookups.WithLabelValues(result).Inc()
	}
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// PipelineRecorder implements temple.Recorder over the package counters.
type PipelineRecorder struct{}

// Decision records an access decision.
func (PipelineRecorder) Decision(d temple.AccessDecision) {
	AccessDecisions.WithLabelValues(
		strconv.FormatBool(d.Granted),
		string(d.MatchedBy),
		string(d.Reason),
	).Inc()

	if d.Granted && d.MatchedBy == temple.MatchedByOverride {
		OverrideGrants.Inc()
	}
}

// BindFailure records a failed store binding.
func (PipelineRecorder) BindFailure(alias string) {
	BindFailures.WithLabelValues(alias).Inc()
}
