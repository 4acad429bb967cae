package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeNoParent, cause, "failed to mount")

	if err.Code != ErrCodeNoParent {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNoParent)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "NO_PARENT: failed to mount: underlying error"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
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
			err:      New(ErrCodeInvalidEasing, "test"),
			code:     ErrCodeInvalidEasing,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeDetached,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeNoElement, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeNoElement,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
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
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeIndexOutOfRange, "test"),
			expected: ErrCodeIndexOutOfRange,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
		{
			name:     "cause is kept",
			err:      Wrap(ErrCodeInvalidInput, New(ErrCodeInvalidEasing, "unknown easing"), "decode board.toml"),
			expected: "decode board.toml: unknown easing",
		},
		{
			name:     "wrapped by fmt",
			err:      fmt.Errorf("load: %w", New(ErrCodeNoParent, "sentinel has no parent")),
			expected: "sentinel has no parent",
		},
		{
			name:     "joined errors one per line",
			err:      Join(New(ErrCodeInvalidInput, "first"), errors.New("second")),
			expected: "first\nsecond",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	if Join(nil, nil) != nil {
		t.Error("Join(nil, nil) should be nil")
	}
	err := Join(nil, New(ErrCodeNoElement, "a"), New(ErrCodeDetached, "b"))
	if !Is(err, ErrCodeNoElement) || !Is(err, ErrCodeDetached) {
		t.Errorf("Join() lost a code: %v", err)
	}
	if !Is(Wrap(ErrCodeInternal, New(ErrCodeDetached, "inner"), "outer"), ErrCodeDetached) {
		t.Error("Is() did not reach the cause")
	}
}

func TestIsInput(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"invalid layout", New(ErrCodeInvalidLayout, "bad kind"), true},
		{"wrapped duplicate", fmt.Errorf("board: %w", New(ErrCodeDuplicateItem, "twice")), true},
		{"joined", Join(New(ErrCodeInvalidEasing, "bad curve")), true},
		{"internal", Wrap(ErrCodeInternal, errors.New("tty"), "run board"), false},
		{"plain", errors.New("plain"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInput(tt.err); got != tt.want {
				t.Errorf("IsInput() = %v, want %v", got, tt.want)
			}
		})
	}
}
