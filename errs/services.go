package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Object storage & third-party collaborator errors
var (
	ErrObjectExists       = errors.New("object already exists")
	ErrStorageUnavailable = errors.New("object storage unavailable")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrConfigMissing      = errors.New("configuration missing")
	ErrConfirmRequired    = errors.New("confirmation required")
)

func NewObjectExistsError(key string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrObjectExists,
		Details:    fmt.Sprintf("An object already exists at %s", key),
		Field:      "file",
	}
}

func NewStorageError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrStorageUnavailable,
		Details:    fmt.Sprintf("Object storage failed during %s", operation),
		Cause:      cause,
		Field:      "file",
	}
}

func NewServiceUnavailableError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrServiceUnavailable,
		Details:    fmt.Sprintf("%s is unavailable", service),
		Cause:      cause,
	}
}

func NewConfigMissingError(key string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		Details:    fmt.Sprintf("%s is not configured", key),
		Field:      key,
	}
}

func NewConfirmRequiredError(operation string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrConfirmRequired,
		Details:    fmt.Sprintf("%s deletes data; pass confirm=true or use dry_run=true", operation),
		Field:      "confirm",
	}
}

func IsObjectExistsError(err error) bool {
	return errors.Is(err, ErrObjectExists)
}

func IsConfirmRequiredError(err error) bool {
	return errors.Is(err, ErrConfirmRequired)
}
