package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/apperr"
)

func TestValidID(t *testing.T) {
	require.True(t, validID("6f1c2a9e-3b7d-4c55-9a0e-2f4b8d1c7e90"))
	require.False(t, validID("nope"))
	require.False(t, validID(""))
}

func TestLookupKeepsOtherFailures(t *testing.T) {
	cause := errors.New("connection reset by peer")
	err := lookup(cause, "plan", "p1")
	require.ErrorIs(t, err, apperr.ErrPersistence)
	require.ErrorIs(t, err, cause)
	require.Empty(t, pgCode(err))

	var pgErr pgdriver.Error
	require.False(t, errors.As(err, &pgErr))
}
