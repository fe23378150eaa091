package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
)

// Database & Storage Specific Errors
var (
	ErrUniqueConstraintViolation = errors.New("unique constraint violation")
	ErrForeignKeyConstraint      = errors.New("foreign key constraint violation")
	ErrStaleWrite                = errors.New("record was modified by another session")
	ErrPreconditionRequired      = errors.New("precondition required")
	ErrTransactionFailed         = errors.New("transaction failed")
)

// postgres SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

// NewDatabaseError creates a new database error with details about the operation
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	if cause == nil {
		return &ApiErr{StatusCode: http.StatusInternalServerError, err: ErrDatabaseQuery, Details: details}
	}

	// already classified further down the stack
	var apiErr *ApiErr
	if errors.As(cause, &apiErr) {
		return apiErr
	}

	var pgErr *pgconn.PgError
	switch {
	case errors.Is(cause, gorm.ErrRecordNotFound):
		return &ApiErr{
			StatusCode: http.StatusNotFound,
			err:        fmt.Errorf("%s %w", entity, ErrNotFound),
			Details:    details,
			Cause:      cause,
		}
	case errors.Is(cause, gorm.ErrDuplicatedKey):
		return NewUniqueConstraintViolationError(entity, "", cause)
	case errors.Is(cause, gorm.ErrForeignKeyViolated):
		return NewForeignKeyConstraintError(entity, "", cause)
	case errors.As(cause, &pgErr) && pgErr.Code == pgUniqueViolation:
		return NewUniqueConstraintViolationError(entity, columnFromConstraint(pgErr.ConstraintName), cause)
	case errors.As(cause, &pgErr) && pgErr.Code == pgForeignKeyViolation:
		return NewForeignKeyConstraintError(entity, pgErr.TableName, cause)
	}

	errStr := cause.Error()
	switch {
	case strings.Contains(errStr, "duplicate key"), strings.Contains(errStr, "UNIQUE constraint failed"):
		return NewUniqueConstraintViolationError(entity, columnFromSQLiteMessage(errStr), cause)
	case strings.Contains(errStr, "connection"):
		return &ApiErr{
			StatusCode: http.StatusServiceUnavailable,
			err:        ErrDatabaseConnection,
			Details:    "Unable to connect to database",
			Cause:      cause,
		}
	}

	// Generic database error
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrDatabaseQuery,
		Details:    details,
		Cause:      cause,
	}
}

func NewUniqueConstraintViolationError(entity, field string, cause error) *ApiErr {
	details := fmt.Sprintf("A %s with the same value already exists", entity)
	if field != "" {
		details = fmt.Sprintf("A %s with the same %s already exists", entity, field)
	}
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrUniqueConstraintViolation,
		Details:    details,
		Cause:      cause,
		Field:      field,
	}
}

func NewForeignKeyConstraintError(entity, referencedEntity string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrForeignKeyConstraint,
		Details:    fmt.Sprintf("Foreign key constraint violation: %s references %s", entity, referencedEntity),
		Cause:      cause,
		Field:      "foreign_key",
	}
}

// NewStaleWriteError is returned when an update's updated_at precondition no
// longer matches the stored row.
func NewStaleWriteError(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrStaleWrite,
		Details:    fmt.Sprintf("The %s was changed since it was loaded; reload and try again", entity),
		Field:      "updated_at",
	}
}

func NewPreconditionRequiredError(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusPreconditionRequired,
		err:        ErrPreconditionRequired,
		Details:    fmt.Sprintf("Updating a %s requires the updated_at value it was loaded with", entity),
		Field:      "updated_at",
	}
}

// NewTransactionFailedError keeps a cause that is already an *ApiErr as is.
func NewTransactionFailedError(operation string, cause error) *ApiErr {
	var apiErr *ApiErr
	if errors.As(cause, &apiErr) {
		return apiErr
	}
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrTransactionFailed,
		Details:    fmt.Sprintf("Transaction failed during %s", operation),
		Cause:      cause,
		Field:      "transaction",
	}
}

func IsUniqueConstraintViolationError(err error) bool {
	return errors.Is(err, ErrUniqueConstraintViolation)
}

func IsTransactionFailedError(err error) bool {
	return errors.Is(err, ErrTransactionFailed)
}

func IsStaleWriteError(err error) bool {
	return errors.Is(err, ErrStaleWrite)
}

func IsPreconditionRequiredError(err error) bool {
	return errors.Is(err, ErrPreconditionRequired)
}

// constraint names follow gorm's idx_<table>_<column> convention
func columnFromConstraint(name string) string {
	for _, suffix := range []string{"slug", "anchor_id", "email"} {
		if strings.HasSuffix(name, suffix) {
			return suffix
		}
	}
	return ""
}

// "UNIQUE constraint failed: team_members.anchor_id"
func columnFromSQLiteMessage(msg string) string {
	idx := strings.LastIndex(msg, ".")
	if idx < 0 || idx == len(msg)-1 {
		return ""
	}
	return strings.TrimSpace(msg[idx+1:])
}
