package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNoContent, "slide %s has nothing to export", "look-1")

	if err.Code != ErrCodeNoContent {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNoContent)
	}

	if err.Message != "slide look-1 has nothing to export" {
		t.Errorf("Message = %v, want %v", err.Message, "slide look-1 has nothing to export")
	}

	expected := "NO_CONTENT: slide look-1 has nothing to export"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrCodeDeliveryFailure, cause, "write fallback view")

	if err.Code != ErrCodeDeliveryFailure {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeDeliveryFailure)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeRenderingExhausted, "test"),
			code:     ErrCodeRenderingExhausted,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeNoContent, "test"),
			code:     ErrCodeDeliveryFailure,
			expected: false,
		},
		{
			name:     "outer code wins",
			err:      Wrap(ErrCodeDeliveryFailure, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeDeliveryFailure,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInternal,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInternal,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeBusy, "busy")); got != ErrCodeBusy {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeBusy)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := Wrap(ErrCodeRenderingExhausted, errors.New("boom"), "could not render %q", "Look 1")
	if got := UserMessage(err); got != `could not render "Look 1"` {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestRecovered(t *testing.T) {
	if Recovered(nil) != nil {
		t.Error("Recovered(nil) should be nil")
	}

	err := Recovered("nil map write")
	if !Is(err, ErrCodeInternal) {
		t.Errorf("Recovered(string) code = %q, want %q", GetCode(err), ErrCodeInternal)
	}

	cause := errors.New("index out of range")
	err = Recovered(cause)
	if !errors.Is(err, cause) {
		t.Error("Recovered(error) should wrap the panic value")
	}
}
