package money

import "testing"

func TestFromAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   Cents
	}{
		{name: "whole amount", amount: 10.00, want: 1000},
		{name: "fractional amount", amount: 3.33, want: 333},
		{name: "rounds half up", amount: 0.005, want: 1},
		{name: "float drift is absorbed", amount: 0.1 + 0.2, want: 30},
		{name: "negative amount", amount: -12.34, want: -1234},
		{name: "zero", amount: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromAmount(tt.amount); got != tt.want {
				t.Errorf("FromAmount(%v) = %d, want %d", tt.amount, got, tt.want)
			}
		})
	}
}

func TestAmountRoundTrip(t *testing.T) {
	for _, amount := range []float64{0, 0.01, 3.33, 99.99, 1234.56} {
		if got := FromAmount(amount).Amount(); got != amount {
			t.Errorf("round trip of %v yielded %v", amount, got)
		}
	}
}

func TestRepeatedAdditionHasNoDrift(t *testing.T) {
	// 0.01 added ten thousand times is exactly 100.00 in cents,
	// where float64 accumulation would drift.
	var sum Cents
	for i := 0; i < 10000; i++ {
		sum += FromAmount(0.01)
	}
	if sum != 10000 {
		t.Errorf("expected 10000 cents, got %d", sum)
	}
}

func TestAbs(t *testing.T) {
	if got := Cents(-250).Abs(); got != 250 {
		t.Errorf("Abs(-250) = %d, want 250", got)
	}
	if got := Cents(250).Abs(); got != 250 {
		t.Errorf("Abs(250) = %d, want 250", got)
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		amount float64
		want   float64
	}{
		{amount: 3.334, want: 3.33},
		{amount: 3.336, want: 3.34},
		{amount: 10, want: 10},
		{amount: -1.006, want: -1.01},
	}

	for _, tt := range tests {
		if got := Round(tt.amount); got != tt.want {
			t.Errorf("Round(%v) = %v, want %v", tt.amount, got, tt.want)
		}
	}
}
