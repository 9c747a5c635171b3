package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
)

// AppError carries the HTTP status a failure should surface with. Handlers
// return these and the response layer maps them onto the envelope.
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(status int, message string) *AppError {
	return &AppError{Status: status, Message: message}
}

func Wrap(status int, message string, err error) *AppError {
	return &AppError{Status: status, Message: message, Err: err}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message)
}

// Conflict is a uniqueness violation. It reports 400 so duplicate writes
// land in the same class as other bad input.
func Conflict(message string) *AppError {
	return New(http.StatusBadRequest, message)
}

func Internal(err error) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Message: "Server Error", Err: err}
}

// FromMongo translates driver failures into the taxonomy: missing documents
// become 404, duplicate key violations become 400, anything else is a 500
// whose detail is never shown to the caller.
func FromMongo(err error, notFoundMsg string) *AppError {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return NotFound(notFoundMsg)
	}
	if mongo.IsDuplicateKeyError(err) {
		return Conflict("Value already exist in database")
	}
	return Internal(err)
}
