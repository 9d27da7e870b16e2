package core

import "testing"

func TestParseAmountOrZero(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"12.34", 12.34},
		{"12,34", 12.34},
		{" 250 ", 250},
		{"0", 0},
		{"1.234,56", 1234.56},
		{"", 0},
		{"n/a", 0},
		{"12abc", 0},
		{"-3.5", -3.5}, // negatives pass through; callers clamp where required
	}
	for _, c := range cases {
		if got := ParseAmountOrZero(c.in); got != c.want {
			t.Errorf("ParseAmountOrZero(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	if v, err := ParseAmount("10,50"); err != nil || v != 10.5 {
		t.Fatalf("ParseAmount(10,50) = %v, %v", v, err)
	}
	if _, err := ParseAmount("-1"); err != ErrNegativeInput {
		t.Fatalf("expected ErrNegativeInput, got %v", err)
	}
	if _, err := ParseAmount(""); err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := ParseAmount("abc"); err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}
