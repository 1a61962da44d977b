package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "malformed input keeps its own message",
			err:         newError(KindMalformedInput, "CSV must include headers: county,name,phone,email", nil),
			wantCode:    "VAL004",
			wantMessage: "CSV must include headers: county,name,phone,email",
		},
		{
			name:        "unknown key keeps its own message",
			err:         unknownKey("Atlantis"),
			wantCode:    "REG001",
			wantMessage: `unknown county "Atlantis"`,
		},
		{
			name:        "wrapped invalid contact",
			err:         fmt.Errorf("put: %w", newError(KindInvalidContact, "invalid email address \"x\"", nil)),
			wantCode:    "VAL007",
			wantMessage: `invalid email address "x"`,
		},
		{
			name:        "storage errors hide details",
			err:         storageUnavailable("save", errors.New("open /var/lib/contacts.json: permission denied")),
			wantCode:    "STO001",
			wantMessage: "Contacts could not be saved or loaded",
		},
		{
			name:        "file too large maps correctly",
			err:         fmt.Errorf("%w: limit is 10 bytes", ErrImportTooLarge),
			wantCode:    "FILE001",
			wantMessage: "File exceeds the maximum import size",
		},
		{
			name:        "too many imports",
			err:         ErrTooManyImports,
			wantCode:    "IMP001",
			wantMessage: "System is busy processing other imports",
		},
		{
			name:        "deadline",
			err:         context.DeadlineExceeded,
			wantCode:    "REQ002",
			wantMessage: "Request timed out",
		},
		{
			name:        "rate limit maps correctly",
			err:         errors.New("rate limit exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("Upload a CSV file"),
			wantCode:    "FILE006",
			wantMessage: "Upload a CSV file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(ErrTooManyImports)

	expected := "System is busy processing other imports (Code: IMP001). Please wait a moment and try again"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error is not user facing", err: nil, want: false},
		{name: "classified error is user facing", err: unknownKey("Nowhere"), want: true},
		{name: "unknown error is not user facing", err: errors.New("random internal error xyz"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorKindMatching(t *testing.T) {
	err := fmt.Errorf("import: %w", newError(KindMalformedInput, "bad header", nil))

	if !errors.Is(err, ErrMalformedInput) {
		t.Error("errors.Is should match the malformed input sentinel")
	}
	if errors.Is(err, ErrUnknownKey) {
		t.Error("errors.Is should not match a different kind")
	}
	if got := KindOf(err); got != KindMalformedInput {
		t.Errorf("KindOf() = %q, want %q", got, KindMalformedInput)
	}
	if got := KindOf(errors.New("plain")); got != "" {
		t.Errorf("KindOf(plain) = %q, want empty", got)
	}

	cause := errors.New("disk full")
	if !errors.Is(storageUnavailable("save", cause), cause) {
		t.Error("storage error should unwrap to its cause")
	}
}
