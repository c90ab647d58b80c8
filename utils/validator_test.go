package utils

import "testing"

func TestValidateNetID(t *testing.T) {
	for _, id := range []string{"axa111111", "kmv200000", "dx200020"} {
		if !ValidateNetID(id) {
			t.Errorf("expected %q to be valid", id)
		}
	}

	for _, id := range []string{"", "abc", "123456789", "axa11111", "AXA111111", "axa1111119"} {
		if ValidateNetID(id) {
			t.Errorf("expected %q to be invalid", id)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if ok, _ := ValidatePassword("short"); ok {
		t.Error("expected short password to be rejected")
	}
	if ok, msg := ValidatePassword("longenough"); !ok {
		t.Errorf("expected password to be accepted, got %q", msg)
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  axa111111\x00 "); got != "axa111111" {
		t.Errorf("unexpected sanitized value: %q", got)
	}
}
