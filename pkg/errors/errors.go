// Package errors carries a failure kind alongside the message so the export
// pipeline and the CLI can react to what went wrong rather than parse text.
//
// Three kinds end an export job: [ErrCodeNoContent] (the slide has nothing to
// render), [ErrCodeRenderingExhausted] (no rasterization strategy produced a
// raster) and [ErrCodeDeliveryFailure] (neither the download nor the manual
// fallback worked). The CLI maps input kinds to a usage exit status.
//
//	if errors.Is(err, errors.ErrCodeNoContent) {
//		return nil // nothing to export; already reported
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code names a failure kind. It doubles as the message prefix.
type Code string

const (
	// export job outcomes
	ErrCodeNoContent          Code = "NO_CONTENT"
	ErrCodeRenderingExhausted Code = "RENDERING_EXHAUSTED"
	ErrCodeDeliveryFailure    Code = "DELIVERY_FAILURE"
	ErrCodeBusy               Code = "BUSY"

	// bad deck or command line input
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidDeck  Code = "INVALID_DECK"

	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeNetwork      Code = "NETWORK_ERROR"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a coded failure with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause == nil {
		return msg
	}
	return msg + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error of kind code with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap is New with a cause attached.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// first finds the outermost *Error in err's chain.
func first(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost coded error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := first(err)
	return ok && e.Code == code
}

// GetCode is the code of the outermost coded error, or "" if there is none.
func GetCode(err error) Code {
	if e, ok := first(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage is the text shown to the user: the message without its code
// prefix for coded errors, err.Error() otherwise.
func UserMessage(err error) string {
	if e, ok := first(err); ok {
		return e.Message
	}
	return err.Error()
}

// Recovered turns a recover() value into an internal error, or nil for nil.
func Recovered(v any) error {
	if v == nil {
		return nil
	}
	if err, ok := v.(error); ok {
		return Wrap(ErrCodeInternal, err, "unexpected panic")
	}
	return New(ErrCodeInternal, "unexpected panic: %v", v)
}
