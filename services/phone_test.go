package services

import "testing"

func TestNormalizePhone(t *testing.T) {
	test := func(in, want string) {
		t.Run(in, func(t *testing.T) {
			if got := NormalizePhone(in); got != want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", in, got, want)
			}
		})
	}

	test("5551234567", "+15551234567")
	test("(555) 123-4567", "+15551234567")
	test("15551234567", "+15551234567")
	test("+1 555 123 4567", "+15551234567")
	test("25551234567", "+25551234567")
	test("12345", "+12345")
	test("44 20 7946 0958 1", "+4420794609581")
	test("", "+")
}

func TestHasPhoneDigits(t *testing.T) {
	if HasPhoneDigits(" - () ") {
		t.Fatalf("punctuation only should have no digits")
	}
	if !HasPhoneDigits("x1") {
		t.Fatalf("expected digits")
	}
}
