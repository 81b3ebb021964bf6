// Package policy decides whether a caller may perform an action given the
// role it requires and the owner of the target resource.
package policy

import (
	"errors"

	"edusync/backend/pkg/metrics"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
)

// Identity is the authenticated caller as established by the access token.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// Authenticated reports whether the identity carries a subject.
func (i Identity) Authenticated() bool {
	return i.UserID != ""
}

// HasRole reports whether the caller holds role.
func (i Identity) HasRole(role string) bool {
	return i.Authenticated() && i.Role == role
}

// Request describes one authorization question. Empty RequiredRole or
// OwnerID means that dimension is not checked.
type Request struct {
	Caller       Identity
	RequiredRole string
	OwnerID      string
}

// Decision is the outcome of Decide.
type Decision int

const (
	Allow Decision = iota
	DenyUnauthenticated
	DenyForbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyUnauthenticated:
		return "deny_unauthenticated"
	default:
		return "deny_forbidden"
	}
}

// Err maps the decision onto ErrUnauthenticated, ErrForbidden or nil.
func (d Decision) Err() error {
	switch d {
	case Allow:
		return nil
	case DenyUnauthenticated:
		return ErrUnauthenticated
	default:
		return ErrForbidden
	}
}

// Decide evaluates req. It has no side effects.
func Decide(req Request) Decision {
	if !req.Caller.Authenticated() {
		return DenyUnauthenticated
	}
	if req.RequiredRole != "" && req.Caller.Role != req.RequiredRole {
		return DenyForbidden
	}
	if req.OwnerID != "" && req.Caller.UserID != req.OwnerID {
		return DenyForbidden
	}
	return Allow
}

// Authorize evaluates req, records the outcome and returns Decision.Err.
func Authorize(req Request) error {
	d := Decide(req)
	metrics.RecordAuthzDecision(req.Caller.Role, d.String())
	return d.Err()
}
