package utils

import (
	"strings"
	"testing"
)

func TestGenerateBookingCode(t *testing.T) {
	t.Run("length and charset", func(t *testing.T) {
		code, err := GenerateBookingCode(8)
		if err != nil {
			t.Fatalf("GenerateBookingCode: %v", err)
		}
		if len(code) != 8 {
			t.Errorf("length = %d, want 8", len(code))
		}
		for _, r := range code {
			if !strings.ContainsRune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", r) {
				t.Errorf("unexpected character %q in %q", r, code)
			}
		}
	})

	t.Run("invalid length", func(t *testing.T) {
		if _, err := GenerateBookingCode(0); err == nil {
			t.Error("expected error for zero length")
		}
	})

	t.Run("codes vary", func(t *testing.T) {
		seen := map[string]bool{}
		for i := 0; i < 20; i++ {
			code, err := GenerateBookingCode(8)
			if err != nil {
				t.Fatalf("GenerateBookingCode: %v", err)
			}
			seen[code] = true
		}
		if len(seen) < 2 {
			t.Error("20 generated codes were all identical")
		}
	})
}

func TestGenerateSecureToken(t *testing.T) {
	token, err := GenerateSecureToken(32)
	if err != nil {
		t.Fatalf("GenerateSecureToken: %v", err)
	}
	if len(token) != 64 {
		t.Errorf("hex length = %d, want 64", len(token))
	}
	if _, err := GenerateSecureToken(0); err == nil {
		t.Error("expected error for zero length")
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Deluxe King ":      "deluxe-king",
		"Standard":          "standard",
		"  Sea View (2nd) ": "sea-view-2nd",
		"already-a-slug":    "already-a-slug",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeRoomType(t *testing.T) {
	if got := NormalizeRoomType("  Deluxe King "); got != "deluxe king" {
		t.Errorf("NormalizeRoomType = %q", got)
	}
}
