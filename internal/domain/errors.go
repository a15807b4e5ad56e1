package domain

import (
	"errors"
	"fmt"
)

// Error is the single error type for business-rule outcomes.
//
// Every failure a caller can act on carries a Code. Infrastructure failures
// are wrapped in Err so errors.Is still reaches the root cause.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Message is a human-readable description.
	Message string

	// GroupID identifies the affected group, when known.
	GroupID string

	// Details contains additional context.
	Details map[string]string

	// Err is the underlying cause, if any.
	Err error
}

// Code categorizes errors.
type Code string

const (
	// CodeUnauthorized: requester may not perform the operation.
	CodeUnauthorized Code = "UNAUTHORIZED"

	// CodeNotFound: group, participant, exclusion or receiver does not exist.
	CodeNotFound Code = "NOT_FOUND"

	// CodeWrongState: the group is not in the state the operation requires.
	CodeWrongState Code = "WRONG_STATE"

	// CodeTooFewParticipants: fewer participants than a draw needs.
	CodeTooFewParticipants Code = "TOO_FEW_PARTICIPANTS"

	// CodeDuplicate: the exclusion already exists.
	CodeDuplicate Code = "DUPLICATE"

	// CodeSelfExclusion: an exclusion where who and whom are the same participant.
	CodeSelfExclusion Code = "SELF_EXCLUSION"

	// CodeInfeasible: the sampler found no conforming cycle within its bound.
	CodeInfeasible Code = "INFEASIBLE"

	// CodeCommitFailed: the atomic write did not happen. State is unchanged.
	CodeCommitFailed Code = "COMMIT_FAILED"

	// CodeInvalidArgument: malformed input.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
)

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.GroupID != "" {
		msg = fmt.Sprintf("%s (group=%s)", msg, e.GroupID)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf returns the Code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

func NewUnauthorized(groupID, message string) *Error {
	return &Error{Code: CodeUnauthorized, Message: message, GroupID: groupID}
}

func NewNotFound(groupID, message string) *Error {
	return &Error{Code: CodeNotFound, Message: message, GroupID: groupID}
}

func NewWrongState(groupID string, status Status, message string) *Error {
	return &Error{
		Code:    CodeWrongState,
		Message: message,
		GroupID: groupID,
		Details: map[string]string{"status": string(status)},
	}
}

func NewTooFewParticipants(groupID string, have, need int) *Error {
	return &Error{
		Code:    CodeTooFewParticipants,
		Message: fmt.Sprintf("need at least %d participants, have %d", need, have),
		GroupID: groupID,
		Details: map[string]string{
			"have": fmt.Sprintf("%d", have),
			"need": fmt.Sprintf("%d", need),
		},
	}
}

func NewDuplicate(groupID, who, whom string) *Error {
	return &Error{
		Code:    CodeDuplicate,
		Message: "exclusion already exists",
		GroupID: groupID,
		Details: map[string]string{"who": who, "whom": whom},
	}
}

func NewSelfExclusion(groupID, participantID string) *Error {
	return &Error{
		Code:    CodeSelfExclusion,
		Message: "a participant cannot exclude themselves",
		GroupID: groupID,
		Details: map[string]string{"participant": participantID},
	}
}

// NewInfeasible reports an exhausted search. exhaustive is true when the
// search space was fully explored, so no conforming cycle exists at all.
func NewInfeasible(groupID string, attempts int, exhaustive bool) *Error {
	msg := "could not find an assignment matching all exclusions, try removing some restrictions"
	return &Error{
		Code:    CodeInfeasible,
		Message: msg,
		GroupID: groupID,
		Details: map[string]string{
			"attempts":   fmt.Sprintf("%d", attempts),
			"exhaustive": fmt.Sprintf("%t", exhaustive),
		},
	}
}

func NewCommitFailed(groupID, message string, err error) *Error {
	return &Error{Code: CodeCommitFailed, Message: message, GroupID: groupID, Err: err}
}

func NewInvalidArgument(message string) *Error {
	return &Error{Code: CodeInvalidArgument, Message: message}
}

// WithGroup returns a copy of err scoped to groupID if err is an *Error
// without a group. Other errors are returned unchanged.
func WithGroup(err error, groupID string) error {
	var de *Error
	if !errors.As(err, &de) || de.GroupID != "" {
		return err
	}
	cp := *de
	cp.GroupID = groupID
	return &cp
}
