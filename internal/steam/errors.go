package steam

import (
	"errors"
	"fmt"
)

// FailureKind classifies a fetch failure for retry and abort decisions.
type FailureKind string

const (
	// FailureTransient covers network errors, 5xx responses, and rate
	// limiting. Safe to retry with backoff.
	FailureTransient FailureKind = "transient"
	// FailureNotFound means the app has no stats or does not exist. Never
	// retried.
	FailureNotFound FailureKind = "not_found"
	// FailurePrivate means the profile does not expose stats. Never retried.
	FailurePrivate FailureKind = "private"
	// FailureAuth means the API key was rejected. Systemic: aborts the run.
	FailureAuth FailureKind = "auth_failed"
)

// FetchError is the typed failure returned by the Steam client.
type FetchError struct {
	Kind       FailureKind
	StatusCode int
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("steam fetch %s (HTTP %d): %s", e.Kind, e.StatusCode, msg)
	}
	return fmt.Sprintf("steam fetch %s: %s", e.Kind, msg)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure may succeed on a later attempt.
func (e *FetchError) Retryable() bool {
	return e.Kind == FailureTransient
}

// Systemic reports whether the failure invalidates the whole run.
func (e *FetchError) Systemic() bool {
	return e.Kind == FailureAuth
}

// Reason returns a short human-readable reason for run reports.
func (e *FetchError) Reason() string {
	return string(e.Kind)
}

// AsFetchError unwraps err into a *FetchError if it carries one.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

func transientErr(err error) *FetchError {
	return &FetchError{Kind: FailureTransient, Err: err}
}
