package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies repository failures for callers above the storage layer.
type ErrorKind int

const (
	ErrorKindUnavailable ErrorKind = iota
	ErrorKindNotFound
	ErrorKindConflict
)

func (kind ErrorKind) String() string {
	switch kind {
	case ErrorKindNotFound:
		return "not_found"
	case ErrorKindConflict:
		return "conflict"
	default:
		return "unavailable"
	}
}

var (
	ErrNotFound    = errors.New("record not found")
	ErrConflict    = errors.New("record conflict")
	ErrUnavailable = errors.New("data unavailable")
)

type RepositoryError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (err *RepositoryError) Error() string {
	if err.Err == nil {
		return fmt.Sprintf("%s: %s", err.Op, err.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", err.Op, err.Kind, err.Err)
}

func (err *RepositoryError) Unwrap() error {
	return err.Err
}

// Is matches the kind sentinels so callers can use errors.Is(err, models.ErrNotFound).
func (err *RepositoryError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return err.Kind == ErrorKindNotFound
	case ErrConflict:
		return err.Kind == ErrorKindConflict
	case ErrUnavailable:
		return err.Kind == ErrorKindUnavailable
	}
	return false
}

func NewRepositoryError(kind ErrorKind, op string, err error) error {
	return &RepositoryError{Kind: kind, Op: op, Err: err}
}

// RepositoryErrorKind reports the kind of err, treating unclassified errors as unavailable.
func RepositoryErrorKind(err error) ErrorKind {
	var repoErr *RepositoryError
	if errors.As(err, &repoErr) {
		return repoErr.Kind
	}
	return ErrorKindUnavailable
}
