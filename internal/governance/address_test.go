package governance

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseAddress(t *testing.T) {
	got, err := ParseAddress("  0xF17F52151EBEF6C7334FAD080C5704D77216B732 ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != "0xf17f52151ebef6c7334fad080c5704d77216b732" {
		t.Errorf("Expected normalized address, got %s", got)
	}

	for _, bad := range []string{"", "0x123", "f17f52151ebef6c7334fad080c5704d77216b732", "0xZZ7f52151ebef6c7334fad080c5704d77216b732"} {
		if _, err := ParseAddress(bad); !errors.Is(err, ErrInvalidAddress) {
			t.Errorf("Expected ErrInvalidAddress for %q, got %v", bad, err)
		}
	}
}

func TestErrorCode(t *testing.T) {
	wrapped := fmt.Errorf("register: %w", ErrCallerNotEligible)
	if code := ErrorCode(wrapped); code != "CALLER_NOT_ELIGIBLE" {
		t.Errorf("Expected CALLER_NOT_ELIGIBLE, got %s", code)
	}
	if code := ErrorCode(errors.New("boom")); code != "INTERNAL" {
		t.Errorf("Expected INTERNAL, got %s", code)
	}
	if code := ErrorCode(nil); code != "OK" {
		t.Errorf("Expected OK, got %s", code)
	}
}
