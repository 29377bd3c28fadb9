package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var RoundsSubmittedCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "coffeegolf_rounds_submitted_total",
	Help: "Number of rounds successfully submitted",
})

var ParseFailureCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "coffeegolf_score_parse_failures_total",
	Help: "Number of score submissions rejected by the parser",
}, []string{"reason"})

var RoundsDeletedCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "coffeegolf_rounds_deleted_total",
	Help: "Number of rounds deleted by their owner",
})

var StandingsDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name: "coffeegolf_standings_duration_seconds",
	Help: "Duration of standings computation by tournament format",
	Buckets: []float64{
		0.001, 0.002, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1,
	},
}, []string{"format"})

var ScorecardDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name: "coffeegolf_scorecard_duration_seconds",
	Help: "Duration of scorecard aggregation",
	Buckets: []float64{
		0.001, 0.002, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1,
	},
})

var DigestPostCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "coffeegolf_digest_posts_total",
	Help: "Daily digest messages posted to Discord, by outcome",
}, []string{"outcome"})
