package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried by AppError and mapped to HTTP statuses by the server.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeValidation   = "VALIDATION_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
)

// Entity-specific failure kinds. Match them with errors.Is.
var (
	ErrPostNotFound         = errors.New("post not found")
	ErrPostNotAuthorized    = errors.New("post not authorized")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrCommentNotAuthorized = errors.New("comment not authorized")
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
	// Kind identifies the entity-specific failure, if any.
	Kind error
	Err  error
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

// Is matches the error against its Kind.
func (e *AppError) Is(target error) bool {
	return e.Kind != nil && e.Kind == target
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewPostNotFoundError(id uint) *AppError {
	err := NewNotFoundError("Post", id)
	err.Kind = ErrPostNotFound
	return err
}

func NewCommentNotFoundError(id uint) *AppError {
	err := NewNotFoundError("Comment", id)
	err.Kind = ErrCommentNotFound
	return err
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

func NewPostNotAuthorizedError(message string) *AppError {
	err := NewUnauthorizedError(message)
	err.Kind = ErrPostNotAuthorized
	return err
}

func NewCommentNotAuthorizedError(message string) *AppError {
	err := NewUnauthorizedError(message)
	err.Kind = ErrCommentNotAuthorized
	return err
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
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
