package split

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 0.001

func sumShares(shares []Share) float64 {
	var sum float64
	for _, s := range shares {
		sum += s.Amount
	}
	return sum
}

func TestEqualStrategy(t *testing.T) {
	tests := []struct {
		name         string
		total        float64
		participants []string
		wantErr      error
		wantAmounts  []float64
	}{
		{
			name:         "even division",
			total:        90.00,
			participants: []string{"a", "b", "c"},
			wantAmounts:  []float64{30.00, 30.00, 30.00},
		},
		{
			name:         "remainder goes to first participant",
			total:        10.00,
			participants: []string{"a", "b", "c"},
			wantAmounts:  []float64{3.34, 3.33, 3.33},
		},
		{
			name:         "single participant gets full amount",
			total:        42.50,
			participants: []string{"a"},
			wantAmounts:  []float64{42.50},
		},
		{
			name:         "four participants uneven",
			total:        100.01,
			participants: []string{"a", "b", "c", "d"},
			wantAmounts:  []float64{25.01, 25.00, 25.00, 25.00},
		},
		{
			name:         "no participants",
			total:        10.00,
			participants: nil,
			wantErr:      ErrNoParticipants,
		},
		{
			name:         "zero amount",
			total:        0,
			participants: []string{"a", "b"},
			wantErr:      ErrNonPositiveAmount,
		},
		{
			name:         "negative amount",
			total:        -5.00,
			participants: []string{"a", "b"},
			wantErr:      ErrNonPositiveAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &EqualStrategy{}
			shares, err := s.Allocate(tt.total, tt.participants)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			checkShares(t, shares, tt.participants, tt.wantAmounts, ShareTypeEqual)
			if got := sumShares(shares); math.Abs(got-tt.total) > tolerance {
				t.Errorf("shares sum to %.2f, expected %.2f", got, tt.total)
			}
		})
	}
}

func TestCustomStrategy(t *testing.T) {
	tests := []struct {
		name         string
		total        float64
		participants []string
		amounts      []float64
		wantErr      error
	}{
		{
			name:         "exact amounts",
			total:        100.00,
			participants: []string{"a", "b", "c"},
			amounts:      []float64{50.00, 30.00, 20.00},
		},
		{
			name:         "zero share allowed",
			total:        60.00,
			participants: []string{"a", "b"},
			amounts:      []float64{60.00, 0},
		},
		{
			name:         "sum off by two cents is accepted",
			total:        100.00,
			participants: []string{"a", "b"},
			amounts:      []float64{50.01, 50.01},
		},
		{
			name:         "sum off by three cents is rejected",
			total:        100.00,
			participants: []string{"a", "b"},
			amounts:      []float64{50.02, 50.01},
			wantErr:      ErrCustomSumMismatch,
		},
		{
			name:         "count mismatch",
			total:        100.00,
			participants: []string{"a", "b", "c"},
			amounts:      []float64{50.00, 50.00},
			wantErr:      ErrAmountCountMismatch,
		},
		{
			name:         "negative share",
			total:        100.00,
			participants: []string{"a", "b"},
			amounts:      []float64{110.00, -10.00},
			wantErr:      ErrNegativeShare,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &CustomStrategy{Amounts: tt.amounts}
			shares, err := s.Allocate(tt.total, tt.participants)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			checkShares(t, shares, tt.participants, tt.amounts, ShareTypeCustom)
		})
	}
}

func TestPercentageStrategy(t *testing.T) {
	tests := []struct {
		name         string
		total        float64
		participants []string
		percentages  []float64
		wantErr      error
	}{
		{
			name:         "clean percentages",
			total:        200.00,
			participants: []string{"a", "b", "c", "d"},
			percentages:  []float64{40, 30, 20, 10},
		},
		{
			name:         "repeating thirds reconcile to total",
			total:        50.00,
			participants: []string{"a", "b", "c"},
			percentages:  []float64{33.3, 33.3, 33.4},
		},
		{
			name:         "hundred percent to one participant",
			total:        75.00,
			participants: []string{"a", "b"},
			percentages:  []float64{100, 0},
		},
		{
			name:         "count mismatch",
			total:        100.00,
			participants: []string{"a", "b"},
			percentages:  []float64{50},
			wantErr:      ErrPercentageCountMismatch,
		},
		{
			name:         "percentage above 100",
			total:        100.00,
			participants: []string{"a", "b"},
			percentages:  []float64{110, -10},
			wantErr:      ErrPercentageOutOfRange,
		},
		{
			name:         "sum not 100",
			total:        100.00,
			participants: []string{"a", "b"},
			percentages:  []float64{60, 50},
			wantErr:      ErrPercentageSumMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &PercentageStrategy{Percentages: tt.percentages}
			shares, err := s.Allocate(tt.total, tt.participants)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(shares) != len(tt.participants) {
				t.Fatalf("expected %d shares, got %d", len(tt.participants), len(shares))
			}
			// Regardless of rounding in individual percentages, the shares
			// must reconstruct the total exactly.
			if got := sumShares(shares); math.Abs(got-tt.total) > tolerance {
				t.Errorf("shares sum to %.2f, expected %.2f", got, tt.total)
			}
			for i, s := range shares {
				if s.ShareType != ShareTypePercentage {
					t.Errorf("share %d: expected share type %q, got %q", i, ShareTypePercentage, s.ShareType)
				}
			}
		})
	}
}

func TestFactoryCreate(t *testing.T) {
	f := NewStrategyFactory()

	tests := []struct {
		name     string
		mode     string
		wantType ShareType
	}{
		{name: "equal", mode: "equal", wantType: ShareTypeEqual},
		{name: "custom", mode: "custom", wantType: ShareTypeCustom},
		{name: "percentage", mode: "percentage", wantType: ShareTypePercentage},
		{name: "unrecognized mode falls back to equal", mode: "weighted", wantType: ShareTypeEqual},
		{name: "empty mode falls back to equal", mode: "", wantType: ShareTypeEqual},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := f.Create(tt.mode, nil, nil)
			if s.Type() != tt.wantType {
				t.Errorf("expected strategy type %q, got %q", tt.wantType, s.Type())
			}
		})
	}
}

func TestFactoryFallbackAllocates(t *testing.T) {
	f := NewStrategyFactory()
	s := f.Create("something-else", []float64{1, 2}, []float64{50, 50})

	shares, err := s.Allocate(30.00, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkShares(t, shares, []string{"a", "b", "c"}, []float64{10.00, 10.00, 10.00}, ShareTypeEqual)
}

func checkShares(t *testing.T, shares []Share, participants []string, amounts []float64, shareType ShareType) {
	t.Helper()
	if len(shares) != len(participants) {
		t.Fatalf("expected %d shares, got %d", len(participants), len(shares))
	}
	for i, s := range shares {
		if s.ParticipantID != participants[i] {
			t.Errorf("share %d: expected participant %q, got %q", i, participants[i], s.ParticipantID)
		}
		if math.Abs(s.Amount-amounts[i]) > tolerance {
			t.Errorf("share %d: expected amount %.2f, got %.2f", i, amounts[i], s.Amount)
		}
		if s.ShareType != shareType {
			t.Errorf("share %d: expected share type %q, got %q", i, shareType, s.ShareType)
		}
	}
}
