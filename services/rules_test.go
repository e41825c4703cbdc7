package services

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"testing"

	"github.com/shopspring/decimal"

	"squares-pool/models"
)

func TestCanClaim(t *testing.T) {
	test := func(held, available int, want bool) {
		t.Run(fmt.Sprintf("held=%d,available=%d", held, available), func(t *testing.T) {
			if got := canClaim(held, available); got != want {
				t.Errorf("canClaim(%d, %d) = %v, want %v", held, available, got, want)
			}
		})
	}

	test(0, 100, true)
	test(0, 1, true)
	test(0, 0, false)
	test(3, 4, true)
	test(4, 4, false)
	test(10, 2, false)
}

func TestTargetAfterClaim(t *testing.T) {
	if got := targetAfterClaim(3, 2); got != 3 {
		t.Errorf("targetAfterClaim(3, 2) = %d, want 3", got)
	}
	if got := targetAfterClaim(2, 5); got != 5 {
		t.Errorf("targetAfterClaim(2, 5) = %d, want 5", got)
	}
	if got := targetAfterClaim(1, 0); got != 1 {
		t.Errorf("targetAfterClaim(1, 0) = %d, want 1", got)
	}
}

func TestTargetAfterRelease(t *testing.T) {
	test := func(count, target, want int) {
		t.Run(fmt.Sprintf("count=%d,target=%d", count, target), func(t *testing.T) {
			if got := targetAfterRelease(count, target); got != want {
				t.Errorf("targetAfterRelease(%d, %d) = %d, want %d", count, target, got, want)
			}
		})
	}

	test(2, 3, 2)
	test(0, 1, 1)
	test(0, 4, 4)
	test(3, 3, 3)
	test(4, 6, 4)
}

func TestFilterQuarters(t *testing.T) {
	test := func(name string, in, want []string) {
		t.Run(name, func(t *testing.T) {
			got := FilterQuarters(in)
			if got == nil {
				t.Fatalf("FilterQuarters(%v) returned nil", in)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("FilterQuarters(%v) = %v, want %v", in, got, want)
			}
		})
	}

	test("valid", []string{"Q1", "Final"}, []string{"Q1", "Final"})
	test("junk dropped", []string{"Q5", "Q2", "q3", ""}, []string{"Q2"})
	test("repeats dropped", []string{"Q3", "Q3", "Q1", "Q3"}, []string{"Q3", "Q1"})
	test("empty", []string{}, []string{})
	test("nil", nil, []string{})
}

func TestCanTransition(t *testing.T) {
	test := func(from, to string, want bool) {
		t.Run(from+"->"+to, func(t *testing.T) {
			if got := canTransition(from, to); got != want {
				t.Errorf("canTransition(%q, %q) = %v, want %v", from, to, got, want)
			}
		})
	}

	test(models.GameStatusPending, models.GameStatusStarted, true)
	test(models.GameStatusStarted, models.GameStatusCompleted, true)
	test(models.GameStatusPending, models.GameStatusCompleted, false)
	test(models.GameStatusStarted, models.GameStatusPending, false)
	test(models.GameStatusCompleted, models.GameStatusStarted, false)
	test(models.GameStatusCompleted, models.GameStatusPending, false)
}

func TestDigitPermutation(t *testing.T) {
	for i := 0; i < 20; i++ {
		digits := digitPermutation(randomPerm)
		if len(digits) != models.GridSize {
			t.Fatalf("len = %d, want %d", len(digits), models.GridSize)
		}
		sorted := append([]int(nil), digits...)
		sort.Ints(sorted)
		for d, v := range sorted {
			if d != v {
				t.Fatalf("%v is not a permutation of 0-9", digits)
			}
		}
	}

	fixed := func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = n - 1 - i
		}
		return out
	}
	want := []int{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}
	if got := digitPermutation(fixed); !reflect.DeepEqual(got, want) {
		t.Errorf("digitPermutation = %v, want %v", got, want)
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(ErrSquareTaken); got != KindConflict {
		t.Errorf("KindOf(ErrSquareTaken) = %v, want %v", got, KindConflict)
	}
	if got := KindOf(fmt.Errorf("claim: %w", ErrPoolExhausted)); got != KindCapacityExceeded {
		t.Errorf("KindOf(wrapped) = %v, want %v", got, KindCapacityExceeded)
	}
	if got := KindOf(errors.New("boom")); got != KindInternal {
		t.Errorf("KindOf(plain) = %v, want %v", got, KindInternal)
	}
	if got := KindOf(internal("op", errors.New("boom"))); got != KindInternal {
		t.Errorf("KindOf(internal) = %v, want %v", got, KindInternal)
	}
	if !errors.Is(ErrNotSquareOwner, ErrNotSquareOwner) {
		t.Errorf("errors.Is should match the same sentinel")
	}
	if ErrNotSquareOwner.HTTP != 400 || ErrNotAdmin.HTTP != 403 || ErrPhoneTaken.HTTP != 409 {
		t.Errorf("unexpected HTTP mapping")
	}
}

func TestCanonicalCode(t *testing.T) {
	if got := CanonicalCode(" abc123 "); got != "ABC123" {
		t.Errorf("CanonicalCode = %q, want %q", got, "ABC123")
	}
}

func TestValidCell(t *testing.T) {
	for _, c := range [][2]int{{0, 0}, {9, 9}, {0, 9}} {
		if !validCell(c[0], c[1]) {
			t.Errorf("validCell(%d, %d) = false", c[0], c[1])
		}
	}
	for _, c := range [][2]int{{-1, 0}, {10, 0}, {0, 10}, {0, -1}} {
		if validCell(c[0], c[1]) {
			t.Errorf("validCell(%d, %d) = true", c[0], c[1])
		}
	}
}

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := generateCode()
		if err != nil {
			t.Fatal(err)
		}
		if len(code) != codeLength {
			t.Fatalf("len(%q) = %d, want %d", code, len(code), codeLength)
		}
		for _, r := range code {
			if !containsRune(codeAlphabet, r) {
				t.Fatalf("code %q has %q outside the alphabet", code, r)
			}
		}
		if CanonicalCode(code) != code {
			t.Fatalf("code %q is not canonical", code)
		}
	}
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}

func TestCreateGameInputValidate(t *testing.T) {
	ok := CreateGameInput{Name: "Big Game", AdminName: "Ann", AdminPhone: "5551234567", PricePerSquare: decimal.NewFromInt(10)}
	if err := ok.validate(); err != nil {
		t.Fatalf("validate() = %v, want nil", err)
	}

	bad := ok
	bad.AdminPhone = "--"
	if KindOf(bad.validate()) != KindInvalidArgument {
		t.Errorf("missing phone should be InvalidArgument")
	}

	bad = ok
	bad.PayoutFinal = decimal.NewFromInt(-1)
	if KindOf(bad.validate()) != KindInvalidArgument {
		t.Errorf("negative payout should be InvalidArgument")
	}
}

func TestPotTotal(t *testing.T) {
	got := potTotal(decimal.RequireFromString("2.50"), 40)
	if !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("potTotal = %s, want 100", got)
	}
}

func TestCellKey(t *testing.T) {
	if got := CellKey(3, 7); got != "3-7" {
		t.Errorf("CellKey(3, 7) = %q, want %q", got, "3-7")
	}
}
