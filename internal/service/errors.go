package service

import (
	"errors"
	"fmt"
	"strings"

	"bakery-backoffice/pkg/validator"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrImmutable          = errors.New("audit log entries cannot be modified")
)

// ValidationError carries every failed field of one request.
type ValidationError struct {
	Errors []*validator.ErrorResponse
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		fields = append(fields, fe.FailedField)
	}
	return "validation failed: " + strings.Join(fields, ", ")
}

// Add appends a field error.
func (e *ValidationError) Add(field, tag, message string) {
	e.Errors = append(e.Errors, &validator.ErrorResponse{FailedField: field, Tag: tag, Message: message})
}

// Err returns e when it holds at least one failure, otherwise nil.
func (e *ValidationError) Err() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}

// ConflictError reports a uniqueness or integrity conflict.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// validate runs the struct rules of in and returns a *ValidationError collecting all of them.
func validate(in interface{}) *ValidationError {
	verr := &ValidationError{}
	verr.Errors = append(verr.Errors, validator.ValidateStruct(in)...)
	return verr
}

// notFound wraps ErrNotFound with the resource name.
func notFound(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

// storeError maps gorm failures onto the service error taxonomy.
// Unexpected failures are logged with the operation that hit them.
func storeError(resource, op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound(resource)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &ConflictError{Message: resource + " already exists"}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &ConflictError{Message: resource + " references a missing or protected record"}
	}
	var verr *ValidationError
	var cerr *ConflictError
	if errors.As(err, &verr) || errors.As(err, &cerr) || errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrImmutable) {
		return err
	}
	log.Error().Err(err).Str("resource", resource).Str("op", op).Msg("store operation failed")
	return fmt.Errorf("%s %s: %w", op, resource, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
