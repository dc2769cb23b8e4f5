package otp

import (
	"strconv"
	"testing"
)

func TestNumericGenerateWithinBounds(t *testing.T) {
	gen := NewNumeric(100000, 999999)

	for i := 0; i < 1000; i++ {
		code, err := gen.Generate()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digit code, got %q", code)
		}

		n, err := strconv.ParseInt(code, 10, 64)
		if err != nil {
			t.Fatalf("code is not numeric: %q", code)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code out of range: %d", n)
		}
	}
}

func TestNumericGenerateCoversRange(t *testing.T) {
	gen := NewNumeric(1, 4)

	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		code, err := gen.Generate()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		seen[code] = true
	}

	for _, want := range []string{"1", "2", "3", "4"} {
		if !seen[want] {
			t.Fatalf("expected %q to be generated at least once over 500 draws", want)
		}
	}
	if len(seen) != 4 {
		t.Fatalf("expected only values 1..4, got %v", seen)
	}
}

func TestNewNumericFallsBackOnInvalidRange(t *testing.T) {
	cases := []struct {
		name     string
		min, max int64
	}{
		{name: "zero min", min: 0, max: 10},
		{name: "negative min", min: -5, max: 10},
		{name: "max below min", min: 100, max: 10},
		{name: "max equals min", min: 100, max: 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen := NewNumeric(tc.min, tc.max)
			if gen.min != 100000 || gen.max != 999999 {
				t.Fatalf("expected fallback bounds, got min=%d max=%d", gen.min, gen.max)
			}
		})
	}
}
