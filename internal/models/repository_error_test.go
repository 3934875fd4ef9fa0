package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepositoryErrorMatchesKindSentinel(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := fmt.Errorf("load cycles: %w", NewRepositoryError(ErrorKindUnavailable, "list cycles", cause))

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, ErrorKindUnavailable, RepositoryErrorKind(err))
	assert.Equal(t, "load cycles: list cycles: unavailable: disk I/O error", err.Error())

	notFound := NewRepositoryError(ErrorKindNotFound, "find cycle", nil)
	assert.ErrorIs(t, notFound, ErrNotFound)
	assert.NotErrorIs(t, notFound, ErrConflict)
	assert.Equal(t, "find cycle: not_found", notFound.Error())
}

func TestRepositoryErrorKindTreatsForeignErrorsAsUnavailable(t *testing.T) {
	assert.Equal(t, ErrorKindUnavailable, RepositoryErrorKind(errors.New("boom")))
	assert.Equal(t, ErrorKindConflict, RepositoryErrorKind(NewRepositoryError(ErrorKindConflict, "insert cycle", nil)))
}
