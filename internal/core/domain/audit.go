package domain

import "time"

// Audit event kinds emitted by the auth service.
const (
	AuditRegistered       = "registered"
	AuditLoginSucceeded   = "login_succeeded"
	AuditLoginFailed      = "login_failed"
	AuditLoginDeactivated = "login_deactivated"
	AuditLoginThrottled   = "login_throttled"
)

// AuthEvent is the operator-facing audit record of an authentication
// attempt. Events are persisted asynchronously; they are never part of a
// client-visible response.
type AuthEvent struct {
	Kind   string    `json:"kind"`
	Email  string    `json:"email"`
	UserID string    `json:"user_id,omitempty"`
	Reason string    `json:"reason,omitempty"`
	At     time.Time `json:"at"`
}
