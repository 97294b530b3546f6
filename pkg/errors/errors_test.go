package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "bad node id: %s", "n1")

	if got := err.Error(); got != "INVALID_INPUT: bad node id: n1" {
		t.Errorf("Error() = %q", got)
	}
	if err.Cause != nil {
		t.Error("New should not set a cause")
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "reach %s", "example.com")

	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() = %q, should include cause", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match the cause via errors.Is")
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeRateLimited, "slow down")

	if !Is(err, ErrCodeRateLimited) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeNetwork) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeNetwork) {
		t.Error("Is should not match plain errors")
	}

	// Code survives wrapping with fmt.Errorf.
	wrapped := fmt.Errorf("outer: %w", err)
	if !Is(wrapped, ErrCodeRateLimited) {
		t.Error("Is should unwrap to find the code")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeUnavailable, "no key")); got != ErrCodeUnavailable {
		t.Errorf("GetCode = %q", got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := Wrap(ErrCodeBadResponse, stderrors.New("unexpected EOF"), "AI response unusable")
	if got := UserMessage(err); got != "AI response unusable" {
		t.Errorf("UserMessage = %q, should drop code and cause", got)
	}

	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"Valid", "node_react", false},
		{"Empty", "", true},
		{"TooLong", strings.Repeat("a", 300), true},
		{"ControlCharacters", "node\x01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.id)
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr && GetCode(err) != ErrCodeInvalidGraph {
				t.Errorf("code = %q, want INVALID_GRAPH", GetCode(err))
			}
		})
	}
}

func TestValidateDescription(t *testing.T) {
	tests := []struct {
		name    string
		desc    string
		wantErr bool
	}{
		{"Valid", "a todo app with react and postgres", false},
		{"ValidMultiline", "line one\nline two", false},
		{"Empty", "", true},
		{"OnlyWhitespace", "   \n\t", true},
		{"TooLong", strings.Repeat("x", 9000), true},
		{"ControlCharacters", "hello\x00world", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDescription(tt.desc)
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr && GetCode(err) != ErrCodeInvalidInput {
				t.Errorf("code = %q, want INVALID_INPUT", GetCode(err))
			}
		})
	}
}
