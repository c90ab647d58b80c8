package services

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the review engine. Handlers map these to
// HTTP statuses; none of them is retried automatically.
var (
	// ErrUpstreamUnavailable wraps any database connectivity or query failure.
	ErrUpstreamUnavailable = errors.New("persistence service unavailable")

	// ErrInvalidConfiguration is returned when a requested review type has no
	// configured window for the section.
	ErrInvalidConfiguration = errors.New("invalid review configuration")

	// ErrInvalidTeamNumber is returned when the session's team number does not
	// parse to a positive integer. No roster query is issued in that case.
	ErrInvalidTeamNumber = errors.New("invalid team number")
)

// IncompleteSubmissionError reports the first missing or empty form field in a
// score matrix. Validation is fail-fast: remaining fields are not inspected.
type IncompleteSubmissionError struct {
	FieldKey string
}

func (e *IncompleteSubmissionError) Error() string {
	return fmt.Sprintf("incomplete submission: missing score for %s", e.FieldKey)
}

// InvalidScoreFormatError reports the first non-integer score value.
type InvalidScoreFormatError struct {
	MemberName   string
	CriteriaName string
}

func (e *InvalidScoreFormatError) Error() string {
	return fmt.Sprintf("invalid score entered for %s in %s", e.MemberName, e.CriteriaName)
}

// CommitFailureError carries the first write failure of a score batch. When it
// is returned, the whole transaction has been rolled back and nothing from the
// batch is visible.
type CommitFailureError struct {
	Reason string
}

func (e *CommitFailureError) Error() string {
	return fmt.Sprintf("failed to submit scores: %s", e.Reason)
}

func upstream(err error) error {
	return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
}
