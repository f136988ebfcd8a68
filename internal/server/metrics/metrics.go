// Package metrics exposes spellcheckd's prometheus collectors. A nil
// *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Login outcomes.
const (
	LoginOK              = "ok"
	LoginBadCredentials  = "bad_credentials"
	LoginBadSecondFactor = "bad_second_factor"
	LoginAlreadyLoggedIn = "already_logged_in"
)

// Registration outcomes.
const (
	RegistrationCreated = "created"
	RegistrationExists  = "exists"
	RegistrationInvalid = "invalid"
)

type Metrics struct {
	logins        *prometheus.CounterVec
	registrations *prometheus.CounterVec
	queries       prometheus.Counter
	checkFailures prometheus.Counter
	checkDuration prometheus.Histogram
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		logins: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spellcheckd",
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
		registrations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spellcheckd",
			Name:      "registrations_total",
			Help:      "Registration attempts by outcome.",
		}, []string{"outcome"}),
		queries: f.NewCounter(prometheus.CounterOpts{
			Namespace: "spellcheckd",
			Name:      "queries_stored_total",
			Help:      "Spell-check submissions stored in the history.",
		}),
		checkFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: "spellcheckd",
			Name:      "check_failures_total",
			Help:      "Spell-check engine failures.",
		}),
		checkDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "spellcheckd",
			Name:      "check_duration_seconds",
			Help:      "Time spent in the spell-check engine.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) Login(outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Registration(outcome string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) QueryStored() {
	if m == nil {
		return
	}
	m.queries.Inc()
}

func (m *Metrics) CheckFailed() {
	if m == nil {
		return
	}
	m.checkFailures.Inc()
}

func (m *Metrics) ObserveCheck(d time.Duration) {
	if m == nil {
		return
	}
	m.checkDuration.Observe(d.Seconds())
}
