package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapDBError_Nil(t *testing.T) {
	t.Parallel()
	assert.NoError(t, MapDBError(nil))
}

func TestMapDBError_ContextErrors(t *testing.T) {
	t.Parallel()

	err := MapDBError(context.DeadlineExceeded)
	assert.True(t, IsTimeout(err))

	err = MapDBError(context.Canceled)
	assert.True(t, IsCanceled(err))
}

func TestMapDBError_NoRows(t *testing.T) {
	t.Parallel()
	err := MapDBError(fmt.Errorf("collect row: %w", pgx.ErrNoRows))
	assert.True(t, IsNotFound(err))
}

func TestMapDBError_PgErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		code string
		pred func(error) bool
	}{
		{"check violation", pgerrcode.CheckViolation, IsValidation},
		{"not null violation", pgerrcode.NotNullViolation, IsValidation},
		{"unclassified pg error", pgerrcode.ConnectionFailure, IsInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pgErr := &pgconn.PgError{Code: tt.code, ColumnName: "username"}
			err := MapDBError(pgErr)
			assert.True(t, tt.pred(err))
			assert.ErrorIs(t, err, pgErr)
		})
	}
}

func TestMapDBError_PassthroughUnknown(t *testing.T) {
	t.Parallel()
	plain := errors.New("some driver hiccup")
	assert.Equal(t, plain, MapDBError(plain))
}
