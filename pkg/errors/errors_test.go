package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeNodeNotFound, "no node %s", "0xabc"),
			want: "NODE_NOT_FOUND: no node 0xabc",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeNetwork, errors.New("connection refused"), "fetch categories"),
			want: "NETWORK_ERROR: fetch categories: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
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
			err:      New(ErrCodeInvalidStep, "test"),
			code:     ErrCodeInvalidStep,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeNetwork,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeNetwork, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeNetwork,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      errorsJoin(New(ErrCodeViewNotFound, "gone")),
			code:     ErrCodeViewNotFound,
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

func errorsJoin(err error) error {
	return errors.Join(errors.New("context"), err)
}

func TestGetCodeAndUserMessage(t *testing.T) {
	err := Wrap(ErrCodeTimeout, errors.New("deadline"), "categories request")
	if got := GetCode(err); got != ErrCodeTimeout {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeTimeout)
	}
	if got := UserMessage(err); got != "categories request" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestClassifiers(t *testing.T) {
	if !IsNotFound(New(ErrCodeViewNotFound, "x")) {
		t.Error("view not found should classify as not found")
	}
	if IsNotFound(New(ErrCodeInvalidInput, "x")) {
		t.Error("invalid input is not a not-found error")
	}
	if !IsInvalid(New(ErrCodeInvalidConfig, "x")) {
		t.Error("invalid config should classify as invalid")
	}
	if IsInvalid(errors.New("plain")) {
		t.Error("plain errors are not validation errors")
	}
}

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		wantErr bool
	}{
		{"hex address", "0x75e89d5979e4f6fba9f97c104c2f0afb3f1dcb88", false},
		{"empty", "", true},
		{"label with spaces", "wallet A", false},
		{"control", "0x75\x00e8", true},
		{"too long", string(make([]byte, 300)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAddress(tt.address)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAddress() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidAddress) {
				t.Errorf("expected INVALID_ADDRESS, got %v", err)
			}
		})
	}
}

func TestValidateStep(t *testing.T) {
	for step, wantErr := range map[int]bool{1: true, 2: false, 3: false, 4: true} {
		if err := ValidateStep(step); (err != nil) != wantErr {
			t.Errorf("ValidateStep(%d) error = %v, wantErr %v", step, err, wantErr)
		}
	}
}

func TestValidateFormat(t *testing.T) {
	allowed := []string{"json", "svg", "dot"}
	if err := ValidateFormat("SVG", allowed); err != nil {
		t.Errorf("SVG should be accepted: %v", err)
	}
	if err := ValidateFormat("png", allowed); !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("png should be rejected with INVALID_FORMAT, got %v", err)
	}
}

func TestValidateStruct(t *testing.T) {
	type inner struct {
		Backend string `validate:"oneof=file redis none"`
	}
	type sample struct {
		Name  string `validate:"required"`
		Limit int    `validate:"gt=0,lte=250"`
		Inner inner
	}

	tests := []struct {
		name    string
		in      sample
		wantErr string
	}{
		{"valid", sample{Name: "a", Limit: 50, Inner: inner{Backend: "file"}}, ""},
		{"missing name", sample{Limit: 1, Inner: inner{Backend: "none"}}, "Name: field is required"},
		{"limit too high", sample{Name: "a", Limit: 300, Inner: inner{Backend: "none"}}, "Limit: must not exceed 250"},
		{"limit zero", sample{Name: "a", Inner: inner{Backend: "none"}}, "Limit: must be greater than 0"},
		{"bad backend", sample{Name: "a", Limit: 1, Inner: inner{Backend: "s3"}}, "Inner.Backend: must be one of [file redis none], got s3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.in, ErrCodeInvalidConfig)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", err)
				}
				return
			}
			if !Is(err, ErrCodeInvalidConfig) {
				t.Fatalf("ValidateStruct() code = %v, want INVALID_CONFIG", GetCode(err))
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateStruct() = %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}
