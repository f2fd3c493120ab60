package db

import (
	"errors"
	"fmt"
)

// ErrRunFinalized is returned when mutating a scrape run that has already
// reached a terminal status.
var ErrRunFinalized = errors.New("scrape run already finalized")

// PersistenceError indicates the store itself failed during a write.
// It is distinct from logical no-ops (which succeed with zero changes)
// and from validation failures (which never reach the store).
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsPersistenceError reports whether err carries a *PersistenceError.
func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

func persistErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}
