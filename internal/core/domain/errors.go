package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the transport layer can map it to a stable
// outward signal.
type Kind string

const (
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindInvalidInput    Kind = "invalid_input"
	KindUpstream        Kind = "upstream"
)

// Error is the typed failure returned by every use case.
//
// Two *Error values match under errors.Is when their kinds are equal and the
// target either has no reason or the same reason. A target with an empty
// reason therefore matches the whole kind.
type Error struct {
	Kind    Kind
	Reason  string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
		if e.Reason != "" {
			msg += ": " + e.Reason
		}
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Reason == "" || t.Reason == e.Reason
}

// Wrap returns a copy of e carrying cause. The copy still matches e.
func (e *Error) Wrap(cause error) *Error {
	return &Error{Kind: e.Kind, Reason: e.Reason, Message: e.Message, Err: cause}
}

// Kind-level sentinels.
var (
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated}
	ErrForbidden       = &Error{Kind: KindForbidden}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrConflict        = &Error{Kind: KindConflict}
	ErrInvalidInput    = &Error{Kind: KindInvalidInput}
	ErrUpstream        = &Error{Kind: KindUpstream}
)

// Session.
var (
	ErrNoToken            = &Error{Kind: KindUnauthenticated, Reason: "no_token", Message: "no authorization token provided"}
	ErrInvalidToken       = &Error{Kind: KindUnauthenticated, Reason: "invalid_token", Message: "no valid token provided, please login again"}
	ErrStaleSession       = &Error{Kind: KindUnauthenticated, Reason: "stale_session", Message: "password was updated recently, please login again"}
	ErrSubjectGone        = &Error{Kind: KindNotFound, Reason: "subject_gone", Message: "user no longer exists"}
	ErrInvalidCredentials = &Error{Kind: KindUnauthenticated, Reason: "invalid_credentials", Message: "invalid email or password"}
)

// Access.
var (
	ErrRoleNotPermitted = &Error{Kind: KindForbidden, Reason: "role_not_permitted", Message: "role not permitted for this action"}
	ErrNotOwner         = &Error{Kind: KindForbidden, Reason: "not_owner", Message: "forbidden: access denied"}
)

// Resources.
var (
	ErrUserNotFound     = &Error{Kind: KindNotFound, Reason: "user", Message: "user not found"}
	ErrJobNotFound      = &Error{Kind: KindNotFound, Reason: "job", Message: "job not found"}
	ErrProposalNotFound = &Error{Kind: KindNotFound, Reason: "proposal", Message: "proposal not found"}
	ErrUserExists       = &Error{Kind: KindConflict, Reason: "email_taken", Message: "email already in use"}
)

// Workflow.
var (
	ErrDuplicateProposal = &Error{Kind: KindConflict, Reason: "duplicate_proposal", Message: "a proposal for this job already exists"}
	ErrAlreadyAccepted   = &Error{Kind: KindConflict, Reason: "already_accepted", Message: "cannot change proposal status when it's already accepted"}
	ErrSelfApply         = &Error{Kind: KindInvalidInput, Reason: "self_apply", Message: "you can not apply to your own job"}
	ErrBadStatus         = &Error{Kind: KindInvalidInput, Reason: "bad_status", Message: "invalid status provided"}
	ErrBadPage           = &Error{Kind: KindInvalidInput, Reason: "bad_page", Message: "page is out of range"}
	ErrBadBudgetRange    = &Error{Kind: KindInvalidInput, Reason: "bad_budget_range", Message: "min_budget must not exceed max_budget"}
	ErrBadRole           = &Error{Kind: KindInvalidInput, Reason: "bad_role", Message: "role must be one of admin, client, freelancer"}
	ErrMissingFields     = &Error{Kind: KindInvalidInput, Reason: "missing_fields", Message: "email and password are required"}
)

// Upstream marks a collaborator failure (store unavailable, driver error).
func Upstream(op string, err error) error {
	return &Error{Kind: KindUpstream, Reason: op, Err: err}
}

// KindOf reports the Kind of err, or "" when err is not a *Error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// ReasonOf reports the reason carried by err, or "" when err is not a *Error.
func ReasonOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Reason
	}
	return ""
}
