package findable

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	ECONFLICT = "conflict"
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"

	// ETRANSPORT is returned when a website could not be fetched.
	ETRANSPORT = "transport"
	// EEXTRACT is returned when too little readable text was found.
	EEXTRACT = "extract"
	// ECREDENTIALS is returned when the generation endpoint is not configured.
	ECREDENTIALS = "credentials"
	// EREMOTE is returned when a generation call fails.
	EREMOTE = "remote"
	// EMALFORMED is returned when generated text is not valid JSON.
	EMALFORMED = "malformed"
	// EFORMAT is returned when generated JSON has the wrong shape.
	EFORMAT = "format"
)

// Error represents an application-specific error. Messages are safe to show
// to end users.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("findable error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	var m *MalformedJSONError
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	} else if errors.As(err, &m) {
		return EMALFORMED
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	var m *MalformedJSONError
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	} else if errors.As(err, &m) {
		return m.Error()
	}
	return "Internal error."
}
