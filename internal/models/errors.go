package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
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

// Error codes used across the service layer.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeNotUnique         = "NOT_UNIQUE"
	CodeNotOwner          = "NOT_OWNER"
	CodeSelfReference     = "SELF_REFERENCE"
	CodeIncorrectPassword = "INCORRECT_PASSWORD"
	CodePasswordReused    = "PASSWORD_REUSED"
	CodeLikeExists        = "LIKE_EXISTS"
	CodeLikeNotExist      = "LIKE_NOT_EXIST"
	CodeValidation        = "VALIDATION_ERROR"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeInternal          = "INTERNAL_ERROR"
)

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewNotUniqueError(message string) *AppError {
	return &AppError{
		Code:    CodeNotUnique,
		Message: message,
	}
}

func NewNotOwnerError(message string) *AppError {
	return &AppError{
		Code:    CodeNotOwner,
		Message: message,
	}
}

func NewSelfReferenceError(message string) *AppError {
	return &AppError{
		Code:    CodeSelfReference,
		Message: message,
	}
}

func NewIncorrectPasswordError() *AppError {
	return &AppError{
		Code:    CodeIncorrectPassword,
		Message: "Current password does not match",
	}
}

func NewPasswordReusedError() *AppError {
	return &AppError{
		Code:    CodePasswordReused,
		Message: "New password matches a recently used password",
	}
}

func NewLikeExistsError(resource string) *AppError {
	return &AppError{
		Code:    CodeLikeExists,
		Message: fmt.Sprintf("%s is already liked", resource),
	}
}

func NewLikeNotExistError(resource string) *AppError {
	return &AppError{
		Code:    CodeLikeNotExist,
		Message: fmt.Sprintf("%s is not liked", resource),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// statusByCode maps service error codes to HTTP statuses.
var statusByCode = map[string]int{
	CodeNotFound:          fiber.StatusNotFound,
	CodeNotUnique:         fiber.StatusConflict,
	CodeNotOwner:          fiber.StatusForbidden,
	CodeSelfReference:     fiber.StatusBadRequest,
	CodeIncorrectPassword: fiber.StatusBadRequest,
	CodePasswordReused:    fiber.StatusBadRequest,
	CodeLikeExists:        fiber.StatusConflict,
	CodeLikeNotExist:      fiber.StatusBadRequest,
	CodeValidation:        fiber.StatusBadRequest,
	CodeUnauthorized:      fiber.StatusUnauthorized,
	CodeForbidden:         fiber.StatusForbidden,
	CodeInternal:          fiber.StatusInternalServerError,
}

// StatusForError returns the HTTP status for a service error.
func StatusForError(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if status, ok := statusByCode[appErr.Code]; ok {
			return status
		}
	}
	return fiber.StatusInternalServerError
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	var appErr *AppError
	if errors.As(err, &appErr) {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}

// RespondWithServiceError maps the error's code to an HTTP status and writes it.
func RespondWithServiceError(c *fiber.Ctx, err error) error {
	return RespondWithError(c, StatusForError(err), err)
}
