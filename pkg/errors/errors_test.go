package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidDocument, "document %s has no title", "doc-1")

	if err.Code != ErrCodeInvalidDocument {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidDocument)
	}
	if err.Message != "document doc-1 has no title" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}
	if got := err.Error(); got != "INVALID_DOCUMENT: document doc-1 has no title" {
		t.Errorf("Error() = %q", got)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeStore, cause, "load document %s", "doc-1")

	if err.Code != ErrCodeStore {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeStore)
	}
	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() = %q, should include the cause", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause with errors.Is")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodePageNotFound, "page 9"), ErrCodePageNotFound, true},
		{"different code", New(ErrCodePageNotFound, "page 9"), ErrCodeRender, false},
		{"wrapped in fmt chain", fmt.Errorf("render: %w", New(ErrCodeRender, "bad scale")), ErrCodeRender, true},
		{"plain error", stderrors.New("boom"), ErrCodeInternal, false},
		{"nil error", nil, ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is(%v, %q) = %v, want %v", tt.err, tt.code, got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"structured error", New(ErrCodeDocumentNotFound, "missing"), ErrCodeDocumentNotFound},
		{"wrapped structured error", fmt.Errorf("get: %w", New(ErrCodeStore, "down")), ErrCodeStore},
		{"plain error", stderrors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	t.Run("strips code prefix", func(t *testing.T) {
		err := New(ErrCodeInvalidPage, "page must be a positive integer")
		if got := UserMessage(err); got != "page must be a positive integer" {
			t.Errorf("UserMessage() = %q", got)
		}
	})

	t.Run("plain error passes through", func(t *testing.T) {
		err := stderrors.New("boom")
		if got := UserMessage(err); got != "boom" {
			t.Errorf("UserMessage() = %q", got)
		}
	})
}
