package database

import (
	"errors"
	"fmt"
)

// ErrDatabaseNotFound is returned when no database matches the requested UUID
var ErrDatabaseNotFound = errors.New("database not found")

// ErrDatabaseBusy is returned when another operation holds the database lock
var ErrDatabaseBusy = errors.New("another operation on this database is in progress")

// PreconditionError is a local check that failed before any external call was made.
// The attempted flag has already been forced back to its safe default.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}

// IsPrecondition reports whether err is a precondition failure
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}

// OperationError is a failed call to the proxy or the datastore. Its message is
// redacted; Unwrap returns the original cause.
type OperationError struct {
	Action  string
	Message string
	Err     error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("failed to %s: %s", e.Action, e.Message)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// protect runs fn and turns a panic into an error
func protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
