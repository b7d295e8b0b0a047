// Package apperrors holds the client-facing errors raised by the user
// directory. Each one carries the HTTP status the request adapter answers with.
package apperrors

import (
	"errors"
	"net/http"
)

type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrDuplicateEmail = &Error{Status: http.StatusBadRequest, Message: "Email already exists"}
	ErrNotFound       = &Error{Status: http.StatusNotFound, Message: "User not found"}
)

// As reports whether err is (or wraps) an *Error and returns it.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
