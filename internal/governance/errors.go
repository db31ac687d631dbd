package governance

import "errors"

var (
	ErrNotOperational    = errors.New("governance is not operational")
	ErrUnauthorized      = errors.New("caller is not authorized")
	ErrCallerNotEligible = errors.New("caller is not a registered and funded airline")
	ErrAlreadyRegistered = errors.New("airline is already registered")

	ErrInvalidAddress     = errors.New("invalid address")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrNotInitialized     = errors.New("consortium is not initialized")
	ErrAlreadyInitialized = errors.New("consortium is already initialized")
)

// ErrorCode maps an error to the stable code surfaced to remote callers.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return "OK"
	case errors.Is(err, ErrNotOperational):
		return "NOT_OPERATIONAL"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrCallerNotEligible):
		return "CALLER_NOT_ELIGIBLE"
	case errors.Is(err, ErrAlreadyRegistered):
		return "ALREADY_REGISTERED"
	case errors.Is(err, ErrInvalidAddress):
		return "INVALID_ADDRESS"
	case errors.Is(err, ErrInvalidAmount):
		return "INVALID_AMOUNT"
	case errors.Is(err, ErrNotInitialized):
		return "NOT_INITIALIZED"
	case errors.Is(err, ErrAlreadyInitialized):
		return "ALREADY_INITIALIZED"
	default:
		return "INTERNAL"
	}
}
