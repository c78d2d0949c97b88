package service

import "errors"

var (
	// ErrInvalidConfiguration is returned for unknown strategy names and
	// empty or malformed account sets. It fails fast and is never retried.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrNonConvergence is returned when the payoff loop exceeds its safety
	// iteration cap instead of reaching zero balance.
	ErrNonConvergence = errors.New("payoff plan did not converge")
)
