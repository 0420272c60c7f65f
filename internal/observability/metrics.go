package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	registerOnce sync.Once

	messagesCheckedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wordguard_messages_checked_total",
			Help: "Total number of group messages run through the banned words filter",
		},
	)

	matchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wordguard_matches_total",
			Help: "Total number of messages matching a banned word",
		},
	)

	bansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordguard_bans_total",
			Help: "Ban attempts by result",
		},
		[]string{"result"},
	)

	wordsAddedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wordguard_words_added_total",
			Help: "Words added by administrators at runtime",
		},
	)

	patternsLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "wordguard_patterns_loaded",
			Help: "Number of patterns in the published set",
		},
	)

	matchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wordguard_match_duration_seconds",
			Help:    "Time spent matching one message against the pattern set",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Registry holds the wordguard collectors next to the Go runtime ones.
var Registry = prometheus.NewRegistry()

// Register adds the collectors to Registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		Registry.MustRegister(
			collectors.NewGoCollector(),
			messagesCheckedTotal,
			matchesTotal,
			bansTotal,
			wordsAddedTotal,
			patternsLoaded,
			matchDuration,
		)
	})
}

func RecordMessageChecked() {
	messagesCheckedTotal.Inc()
}

func RecordMatch() {
	matchesTotal.Inc()
}

// RecordBan counts a ban attempt, result is "ok" or "failed".
func RecordBan(result string) {
	bansTotal.WithLabelValues(result).Inc()
}

func RecordWordAdded() {
	wordsAddedTotal.Inc()
}

func SetPatternsLoaded(n int) {
	patternsLoaded.Set(float64(n))
}

// StartMatch returns a function recording the match duration when called.
func StartMatch() func() {
	timer := prometheus.NewTimer(matchDuration)
	return func() {
		timer.ObserveDuration()
	}
}
