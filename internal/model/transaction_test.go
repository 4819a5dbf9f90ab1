package model

import (
	"errors"
	"testing"
	"time"
)

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"income", KindIncome, true},
		{"Expense", KindExpense, true},
		{"  INCOME ", KindIncome, true},
		{"transfer", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseKind(tc.in)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Fatalf("ParseKind(%q) = %q, %v, want %q", tc.in, got, err, tc.want)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidKind) {
			t.Fatalf("ParseKind(%q) err = %v, want ErrInvalidKind", tc.in, err)
		}
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1000", "1000", true},
		{"12.34", "12.34", true},
		{"12,34", "12.34", true},
		{" 0 ", "0", true},
		{"-1", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.String() != tc.out {
				t.Fatalf("ParseAmount(%q) = %s, %v, want %s", tc.in, got, err, tc.out)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("ParseAmount(%q) err = %v, want ErrInvalidAmount", tc.in, err)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate(" 2024-01-05 ")
	if err != nil || got != "2024-01-05" {
		t.Fatalf("ParseDate = %q, %v, want 2024-01-05", got, err)
	}
	for _, bad := range []string{"2024-1-5", "05/01/2024", "2024-02-30", ""} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("ParseDate(%q) err = %v, want ErrInvalidDate", bad, err)
		}
	}
}

func TestMonthBounds(t *testing.T) {
	first, last := MonthBounds(time.Date(2024, 2, 17, 15, 0, 0, 0, time.UTC))
	if first != "2024-02-01" || last != "2024-02-29" {
		t.Fatalf("MonthBounds = %s..%s, want 2024-02-01..2024-02-29", first, last)
	}
}
