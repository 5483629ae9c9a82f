package pictionary

import (
	"errors"
	"fmt"
)

// ErrorCode represents a categorized error type.
type ErrorCode int

const (
	ErrorUnknown ErrorCode = iota

	// ErrorServerRejected is raised for an explicit error frame from the
	// authority (room full, drawer seat taken, and so on). The authority
	// sends only a human-readable message, no machine code.
	ErrorServerRejected

	// Client-side errors.
	ErrorConnection
	ErrorDisconnected
	ErrorTimeout
	ErrorNotConnected
	ErrorSerialization
	ErrorInvalidConfig
	ErrorRoleViolation
)

// String returns the string representation of an ErrorCode.
func (e ErrorCode) String() string {
	switch e {
	case ErrorUnknown:
		return "unknown"
	case ErrorServerRejected:
		return "server_rejected"
	case ErrorConnection:
		return "connection_error"
	case ErrorDisconnected:
		return "disconnected"
	case ErrorTimeout:
		return "timeout"
	case ErrorNotConnected:
		return "not_connected"
	case ErrorSerialization:
		return "serialization_error"
	case ErrorInvalidConfig:
		return "invalid_config"
	case ErrorRoleViolation:
		return "role_violation"
	default:
		return fmt.Sprintf("unknown_code_%d", e)
	}
}

// GameError is a structured error with code and context.
type GameError struct {
	Code    ErrorCode
	Message string
	Wrapped error
}

// Error implements the error interface.
func (e *GameError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s (wrapped: %v)", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Unwrap support.
func (e *GameError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is support; two GameErrors match on code.
func (e *GameError) Is(target error) bool {
	t, ok := target.(*GameError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError creates a new GameError with the given code and message.
func NewError(code ErrorCode, message string) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with a GameError.
func WrapError(code ErrorCode, message string, err error) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
		Wrapped: err,
	}
}

// FromServerError converts an authority error frame into a GameError.
func FromServerError(message string) *GameError {
	return &GameError{
		Code:    ErrorServerRejected,
		Message: message,
	}
}

// IsServerError checks if an error originated in an authority error frame.
func IsServerError(err error) bool {
	if err == nil {
		return false
	}
	var ge *GameError
	if !errors.As(err, &ge) {
		return false
	}
	return ge.Code == ErrorServerRejected
}

// IsConnectionError checks if an error is a connection-related error.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var ge *GameError
	if !errors.As(err, &ge) {
		return false
	}
	return ge.Code == ErrorConnection || ge.Code == ErrorDisconnected || ge.Code == ErrorTimeout
}
