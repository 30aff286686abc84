package domain

import "time"

// AccessDecision is the outcome of the access decision engine for one
// request.
type AccessDecision string

const (
	DecisionAllowed AccessDecision = "allowed"
	DecisionDenied  AccessDecision = "denied"
)

// AccessEvent records a single authorization decision for auditing.
type AccessEvent struct {
	UserID    string
	Email     string
	Roles     []Role
	Method    string
	Route     string
	Decision  AccessDecision
	Reason    string
	Timestamp time.Time
}
