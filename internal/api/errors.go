package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dmcphee/tasktrack/internal/api/shared"
	"github.com/dmcphee/tasktrack/internal/domain"
	"github.com/dmcphee/tasktrack/internal/store"
	"github.com/go-playground/validator/v10"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type.
func MapErrorToStatusCode(err error) int {
	switch {
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// ValidationFieldErrors converts a validator.ValidationErrors value into the
// structured per-field error list the API returns on 400. Unknown error
// types yield a single generic entry so the response shape stays stable.
func ValidationFieldErrors(err error) []shared.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []shared.FieldError{{Field: "", Message: "invalid request payload"}}
	}

	fields := make([]shared.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, shared.FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: validationTagMessage(fe),
		})
	}
	return fields
}

// DomainFieldErrors maps domain validation sentinels to per-field entries.
// This covers validation failures detected by the store when re-validating
// a merged update.
func DomainFieldErrors(err error) []shared.FieldError {
	switch {
	case errors.Is(err, domain.ErrTaskTitleEmpty):
		return []shared.FieldError{{Field: "title", Message: "title must not be empty"}}
	case errors.Is(err, domain.ErrTaskDescriptionEmpty):
		return []shared.FieldError{{Field: "description", Message: "description must not be empty"}}
	default:
		return []shared.FieldError{{Field: "", Message: "invalid task data"}}
	}
}

// TypeFieldError maps a JSON type mismatch (e.g. a non-boolean status) to a
// per-field entry. Returns false if the error is not a type mismatch.
func TypeFieldError(err error) ([]shared.FieldError, bool) {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return nil, false
	}

	field := typeErr.Field
	if field == "" {
		field = "body"
	}

	return []shared.FieldError{{
		Field:   field,
		Message: field + " must be of type " + typeErr.Type.String(),
	}}, true
}

// validationTagMessage maps validation tags to user-friendly error messages.
func validationTagMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " is too short"
	case "max":
		return field + " is too long"
	default:
		return field + " is invalid"
	}
}
