package domain

import "time"

// AuthAction identifies the operation an audit event was recorded for.
type AuthAction string

const (
	ActionRegister      AuthAction = "register"
	ActionLogin         AuthAction = "login"
	ActionProfileUpdate AuthAction = "profile_update"
)

// AuthEvent is an audit trail entry for an authentication-flow operation.
// Outcome is "ok" on success or a short failure reason.
type AuthEvent struct {
	Action  AuthAction `bson:"action"`
	Email   string     `bson:"email"`
	Outcome string     `bson:"outcome"`
	At      time.Time  `bson:"at"`
}
