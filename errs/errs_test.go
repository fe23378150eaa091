package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNewDatabaseError(t *testing.T) {
	tests := []struct {
		name   string
		cause  error
		status int
		check  func(error) bool
		field  string
	}{
		{
			name:   "record not found",
			cause:  gorm.ErrRecordNotFound,
			status: http.StatusNotFound,
			check:  IsNotFound,
		},
		{
			name:   "postgres unique violation names the column",
			cause:  &pgconn.PgError{Code: "23505", ConstraintName: "idx_articles_slug"},
			status: http.StatusConflict,
			check:  IsUniqueConstraintViolationError,
			field:  "slug",
		},
		{
			name:   "sqlite unique violation",
			cause:  errors.New("UNIQUE constraint failed: team_members.anchor_id"),
			status: http.StatusConflict,
			check:  IsUniqueConstraintViolationError,
			field:  "anchor_id",
		},
		{
			name:   "gorm duplicated key",
			cause:  fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey),
			status: http.StatusConflict,
			check:  IsUniqueConstraintViolationError,
		},
		{
			name:   "connection failure",
			cause:  errors.New("dial tcp: connection refused"),
			status: http.StatusServiceUnavailable,
			check:  func(err error) bool { return errors.Is(err, ErrDatabaseConnection) },
		},
		{
			name:   "anything else",
			cause:  errors.New("syntax error"),
			status: http.StatusInternalServerError,
			check:  func(err error) bool { return errors.Is(err, ErrDatabaseQuery) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("create", "article", tt.cause)
			assert.Equal(t, tt.status, err.StatusCode)
			assert.True(t, tt.check(err))
			assert.Equal(t, tt.field, err.Field)
		})
	}

	t.Run("already classified errors pass through", func(t *testing.T) {
		stale := NewStaleWriteError("article")
		assert.Same(t, stale, NewDatabaseError("update", "article", fmt.Errorf("wrapped: %w", stale)))
	})
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError(map[string]string{
		"title":  "Title is required",
		"rating": "Rating must be at most 5",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, err.StatusCode)
	assert.Equal(t, "rating", err.Field)
	assert.Equal(t, "Invalid fields: rating, title", err.Details)
	assert.True(t, IsValidationError(err))

	wrapped := fmt.Errorf("create: %w", err)
	assert.Equal(t, "Title is required", FieldErrors(wrapped)["title"])
	assert.Nil(t, FieldErrors(errors.New("plain")))
}

func TestConcurrencyErrors(t *testing.T) {
	stale := NewStaleWriteError("project")
	assert.Equal(t, http.StatusConflict, stale.StatusCode)
	assert.True(t, IsStaleWriteError(stale))
	assert.False(t, IsPreconditionRequiredError(stale))

	missing := NewPreconditionRequiredError("project")
	assert.Equal(t, http.StatusPreconditionRequired, missing.StatusCode)
	assert.True(t, IsPreconditionRequiredError(missing))
}

func TestTransactionFailedError(t *testing.T) {
	err := NewTransactionFailedError("delete project", errors.New("database is locked"))
	assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
	assert.True(t, IsTransactionFailedError(err))
	assert.Contains(t, err.GetFullError(), "database is locked")

	unique := NewDatabaseError("delete", "project", &pgconn.PgError{Code: "23505", ConstraintName: "idx_projects_slug"})
	kept := NewTransactionFailedError("delete project", unique)
	assert.Same(t, unique, kept)
	assert.False(t, IsTransactionFailedError(kept))
}

func TestGetFullError(t *testing.T) {
	inner := NewStorageError("put", errors.New("timeout"))
	outer := NewInternalErrorWithCause("upload", inner)
	full := outer.GetFullError()
	require.Contains(t, full, "upload")
	assert.Contains(t, full, "timeout")
	assert.Contains(t, full, " -> ")
}

func TestAuthErrors(t *testing.T) {
	assert.True(t, IsAccessDeniedError(NewAccessDeniedError()))
	assert.True(t, IsAccessDeniedError(NewInsufficientRoleError("admin")))
	assert.True(t, IsInvalidCredentialsError(NewInvalidCredentialsError()))
	assert.True(t, IsInvalidTokenError(NewTokenExpiredError()))
	assert.True(t, IsInvalidTokenError(NewMissingTokenError()))
	assert.Equal(t, http.StatusForbidden, NewAccessDeniedError().StatusCode)
}
