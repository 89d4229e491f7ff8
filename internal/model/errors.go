package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind is the machine-readable classification of an engine error.
type ErrorKind string

const (
	// KindValidation marks malformed or missing deal facts. Caller-fixable.
	KindValidation ErrorKind = "validation_error"
	// KindScoringIncomplete marks a scoring pass that failed to produce all
	// six dimensions. Always a bug: never downgraded to a default score.
	KindScoringIncomplete ErrorKind = "scoring_incomplete"
	// KindIllegalTransition marks a state-machine precondition violation.
	KindIllegalTransition ErrorKind = "illegal_transition"
	// KindScoreTooLow marks a submission blocked at red status.
	KindScoreTooLow ErrorKind = "score_too_low"
	// KindStaleState marks an optimistic-concurrency conflict. The caller
	// must refetch the deal and retry.
	KindStaleState ErrorKind = "stale_state"
)

// Error is a typed engine error carrying a machine-readable kind and enough
// detail to correct and retry. Errors are returned, never swallowed into a
// default value.
type Error struct {
	Kind    ErrorKind
	Detail  string
	// CurrentState carries the deal's legal state for illegal-transition and
	// stale-state errors.
	CurrentState SubmissionState
	// FailingDimensions lists the dimensions that blocked a submission for
	// score-too-low errors, and the missing ones for scoring-incomplete.
	FailingDimensions []DimensionKey
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteString(": ")
	b.WriteString(e.Detail)
	if e.CurrentState != "" {
		fmt.Fprintf(&b, " (current state: %s)", e.CurrentState)
	}
	if len(e.FailingDimensions) > 0 {
		parts := make([]string, len(e.FailingDimensions))
		for i, d := range e.FailingDimensions {
			parts[i] = string(d)
		}
		fmt.Fprintf(&b, " (dimensions: %s)", strings.Join(parts, ", "))
	}
	return b.String()
}

// NewValidation builds a validation error with a formatted detail message.
func NewValidation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Detail: fmt.Sprintf(format, args...)}
}

// NewScoringIncomplete builds the error for a scoring pass that left
// dimensions unfilled.
func NewScoringIncomplete(missing []DimensionKey) *Error {
	return &Error{
		Kind:              KindScoringIncomplete,
		Detail:            fmt.Sprintf("%d of 6 dimensions missing", len(missing)),
		FailingDimensions: missing,
	}
}

// NewIllegalTransition builds the error for an invalid state-machine step,
// carrying the deal's current legal state.
func NewIllegalTransition(current SubmissionState, detail string) *Error {
	return &Error{Kind: KindIllegalTransition, Detail: detail, CurrentState: current}
}

// NewScoreTooLow builds the error for a submission blocked at red status,
// listing the dimensions that dragged the score down.
func NewScoreTooLow(score int, failing []DimensionKey) *Error {
	return &Error{
		Kind:              KindScoreTooLow,
		Detail:            fmt.Sprintf("overall score %d is below the submission threshold", score),
		FailingDimensions: failing,
	}
}

// NewStaleState builds the optimistic-concurrency conflict error.
func NewStaleState(current SubmissionState, detail string) *Error {
	return &Error{Kind: KindStaleState, Detail: detail, CurrentState: current}
}

// KindOf extracts the error kind from anywhere in err's chain, or "" when
// err carries no engine error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err's chain contains an engine error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
