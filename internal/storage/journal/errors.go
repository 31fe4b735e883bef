package journal

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownDriver = errors.New("unknown journal driver")
	ErrMissingDSN    = errors.New("journal dsn is required")
	ErrClosed        = errors.New("journal is closed")
)

// QueryError reports a failed statement together with the operation that ran it.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("journal %s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

func queryError(op string, err error) error {
	return &QueryError{Op: op, Err: err}
}
