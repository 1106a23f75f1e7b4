package errors

import (
	"errors"
	"fmt"
)

// Code represents an error code for categorizing errors
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates client specified an invalid argument
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound indicates a requested resource was not found
	CodeNotFound Code = "not_found"

	// CodeAlreadyExists indicates an attempt to create a resource that already exists
	CodeAlreadyExists Code = "already_exists"

	// CodeInternal indicates internal system error
	CodeInternal Code = "internal"

	// CodeValidation indicates a validation error
	CodeValidation Code = "validation"

	// CodeOutOfBounds indicates a coordinate outside the map grid
	CodeOutOfBounds Code = "out_of_bounds"

	// CodeTileBlocked indicates a placement onto a wall, water or crate
	CodeTileBlocked Code = "tile_blocked"

	// CodeTileOccupied indicates a placement onto a tile another occupant holds
	CodeTileOccupied Code = "tile_occupied"

	// CodeAlreadyPlaced indicates a character that already has a position
	CodeAlreadyPlaced Code = "already_placed"

	// CodeUnknownParticipant indicates a resolver named a participant not in the turn order
	CodeUnknownParticipant Code = "unknown_participant"

	// CodeTransportFailure indicates the resolver could not be reached or answered badly
	CodeTransportFailure Code = "transport_failure"

	// CodeTimeout indicates the resolver did not answer in time
	CodeTimeout Code = "timeout"

	// CodeBusy indicates a resolution is already in flight elsewhere
	CodeBusy Code = "busy"

	// CodeCancelled indicates the session was torn down mid-resolution
	CodeCancelled Code = "cancelled"
)

// Error represents an application error with code and metadata
type Error struct {
	// Code is the error code
	Code Code

	// Message is the error message
	Message string

	// Cause is the wrapped error
	Cause error

	// Meta contains additional context
	Meta map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context.
// The code of a wrapped *Error is preserved.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return &Error{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(appErr.Meta),
		}
	}

	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates a formatted invalid argument error
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// AlreadyExistsf creates a formatted already exists error
func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// Internalf creates a formatted internal error
func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// Validationf creates a formatted validation error
func Validationf(format string, args ...any) *Error {
	return Newf(CodeValidation, format, args...)
}

// OutOfBounds reports a coordinate outside a width x height grid
func OutOfBounds(x, y, width, height int) *Error {
	return Newf(CodeOutOfBounds, "position (%d,%d) is outside the %dx%d map", x, y, width, height).
		WithMeta("x", x).
		WithMeta("y", y)
}

// TileBlocked reports a placement onto a blocking tile
func TileBlocked(x, y int, tileType string) *Error {
	return Newf(CodeTileBlocked, "tile (%d,%d) is blocked by %s", x, y, tileType).
		WithMeta("x", x).
		WithMeta("y", y)
}

// TileOccupied reports a placement onto a tile already held by occupantID
func TileOccupied(x, y int, occupantID string) *Error {
	return Newf(CodeTileOccupied, "tile (%d,%d) is occupied by '%s'", x, y, occupantID).
		WithMeta("x", x).
		WithMeta("y", y).
		WithMeta("occupant_id", occupantID)
}

// UnknownParticipantf creates a formatted unknown participant error
func UnknownParticipantf(format string, args ...any) *Error {
	return Newf(CodeUnknownParticipant, format, args...)
}

// Error checking functions

// Is checks if the error is of a specific code
func Is(err error, code Code) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return Is(err, CodeInvalidArgument)
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	return Is(err, CodeValidation)
}

// IsOutOfBounds checks if the error is an out of bounds error
func IsOutOfBounds(err error) bool {
	return Is(err, CodeOutOfBounds)
}

// IsTileBlocked checks if the error is a tile blocked error
func IsTileBlocked(err error) bool {
	return Is(err, CodeTileBlocked)
}

// IsTileOccupied checks if the error is a tile occupied error
func IsTileOccupied(err error) bool {
	return Is(err, CodeTileOccupied)
}

// IsUnknownParticipant checks if the error is an unknown participant error
func IsUnknownParticipant(err error) bool {
	return Is(err, CodeUnknownParticipant)
}

// IsTimeout checks if the error is a timeout error
func IsTimeout(err error) bool {
	return Is(err, CodeTimeout)
}

// IsTransportFailure checks if the error is a transport failure
func IsTransportFailure(err error) bool {
	return Is(err, CodeTransportFailure)
}

// GetCode returns the error code
func GetCode(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the error metadata
func GetMeta(err error) map[string]any {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Meta
	}
	return nil
}

// copyMeta creates a copy of the metadata map
func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
