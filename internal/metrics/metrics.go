// Package metrics exposes Prometheus counters for the credential lifecycle.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dtroode/authkeeper/internal/model"
)

var _ model.AuthMetrics = (*Prometheus)(nil)

// Prometheus records auth events as Prometheus counters.
type Prometheus struct {
	logins        *prometheus.CounterVec
	registrations prometheus.Counter
	refreshes     *prometheus.CounterVec
	lockouts      prometheus.Counter
	apiKeyChecks  *prometheus.CounterVec
}

// NewPrometheus registers the counters with reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	factory := promauto.With(reg)

	return &Prometheus{
		logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "authkeeper_login_attempts_total",
			Help: "The total number of login attempts by outcome",
		}, []string{"outcome"}),
		registrations: factory.NewCounter(prometheus.CounterOpts{
			Name: "authkeeper_registrations_total",
			Help: "The total number of successful registrations",
		}),
		refreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "authkeeper_token_refresh_total",
			Help: "The total number of refresh token exchanges by outcome",
		}, []string{"outcome"}),
		lockouts: factory.NewCounter(prometheus.CounterOpts{
			Name: "authkeeper_account_lockouts_total",
			Help: "The total number of accounts locked after repeated failures",
		}),
		apiKeyChecks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "authkeeper_api_key_validations_total",
			Help: "The total number of API key validations by outcome",
		}, []string{"outcome"}),
	}
}

func (p *Prometheus) ObserveLogin(outcome string) {
	p.logins.WithLabelValues(outcome).Inc()
}

func (p *Prometheus) ObserveRegistration() {
	p.registrations.Inc()
}

func (p *Prometheus) ObserveRefresh(outcome string) {
	p.refreshes.WithLabelValues(outcome).Inc()
}

func (p *Prometheus) ObserveLockout() {
	p.lockouts.Inc()
}

func (p *Prometheus) ObserveAPIKeyValidation(outcome string) {
	p.apiKeyChecks.WithLabelValues(outcome).Inc()
}

// Noop discards every observation.
type Noop struct{}

func (Noop) ObserveLogin(string)            {}
func (Noop) ObserveRegistration()           {}
func (Noop) ObserveRefresh(string)          {}
func (Noop) ObserveLockout()                {}
func (Noop) ObserveAPIKeyValidation(string) {}
