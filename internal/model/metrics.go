package model

// Outcome labels used by AuthMetrics.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeLocked  = "locked"
)

// AuthMetrics records credential lifecycle events.
type AuthMetrics interface {
	ObserveLogin(outcome string)
	ObserveRegistration()
	ObserveRefresh(outcome string)
	ObserveLockout()
	ObserveAPIKeyValidation(outcome string)
}
