package balance

import (
	"math"
	"math/rand"
	"testing"
)

const tolerance = 0.001

var testDir = Directory{
	"a": {Name: "Alice", Color: "#ef4444"},
	"b": {Name: "Bob", Color: "#3b82f6"},
	"c": {Name: "Cara", Color: "#22c55e"},
}

// equalSplit builds an expense paid by payer and divided evenly across the
// participants, remainder on the first, mirroring the equal allocator.
func equalSplit(amount float64, payer string, participants ...string) ExpenseRecord {
	n := len(participants)
	share := math.Round(amount*100/float64(n)) / 100
	first := math.Round((amount-share*float64(n-1))*100) / 100

	splits := make([]SplitRecord, n)
	for i, id := range participants {
		a := share
		if i == 0 {
			a = first
		}
		splits[i] = SplitRecord{ParticipantID: id, Amount: a}
	}
	return ExpenseRecord{Amount: amount, PayerID: payer, Splits: splits}
}

func TestNetBalances(t *testing.T) {
	tests := []struct {
		name     string
		expenses []ExpenseRecord
		want     map[string]float64
	}{
		{
			name:     "no expenses",
			expenses: nil,
			want:     map[string]float64{},
		},
		{
			name: "two expenses two participants",
			expenses: []ExpenseRecord{
				equalSplit(100.00, "a", "a", "b"),
				equalSplit(30.00, "b", "a", "b"),
			},
			want: map[string]float64{"a": 35.00, "b": -35.00},
		},
		{
			name: "three participants uneven split",
			expenses: []ExpenseRecord{
				equalSplit(10.00, "a", "a", "b", "c"),
			},
			want: map[string]float64{"a": 6.66, "b": -3.33, "c": -3.33},
		},
		{
			name: "payer not in splits",
			expenses: []ExpenseRecord{
				{Amount: 60.00, PayerID: "a", Splits: []SplitRecord{
					{ParticipantID: "b", Amount: 30.00},
					{ParticipantID: "c", Amount: 30.00},
				}},
			},
			want: map[string]float64{"a": 60.00, "b": -30.00, "c": -30.00},
		},
		{
			name: "empty ids from removed participants are skipped",
			expenses: []ExpenseRecord{
				{Amount: 50.00, PayerID: "", Splits: []SplitRecord{
					{ParticipantID: "a", Amount: 50.00},
				}},
				{Amount: 20.00, PayerID: "a", Splits: []SplitRecord{
					{ParticipantID: "", Amount: 10.00},
					{ParticipantID: "b", Amount: 10.00},
				}},
			},
			want: map[string]float64{"a": -30.00, "b": -10.00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NetBalances(tt.expenses, testDir)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d balances, got %d", len(tt.want), len(got))
			}
			for _, nb := range got {
				want, ok := tt.want[nb.ParticipantID]
				if !ok {
					t.Errorf("unexpected participant %q in balances", nb.ParticipantID)
					continue
				}
				if math.Abs(nb.NetBalance-want) > tolerance {
					t.Errorf("participant %q: expected net %.2f, got %.2f", nb.ParticipantID, want, nb.NetBalance)
				}
			}
		})
	}
}

func TestNetBalancesSumToZero(t *testing.T) {
	expenses := []ExpenseRecord{
		equalSplit(10.00, "a", "a", "b", "c"),
		equalSplit(99.99, "b", "a", "b", "c"),
		equalSplit(0.01, "c", "a", "b"),
		equalSplit(47.23, "a", "b", "c"),
	}

	var sum float64
	for _, nb := range NetBalances(expenses, testDir) {
		sum += nb.NetBalance
	}
	if math.Abs(sum) > tolerance {
		t.Errorf("net balances sum to %.4f, expected 0", sum)
	}
}

func TestNetBalancesNameFallback(t *testing.T) {
	expenses := []ExpenseRecord{
		equalSplit(20.00, "ghost-id", "ghost-id", "a"),
	}

	got := NetBalances(expenses, testDir)
	if len(got) != 2 {
		t.Fatalf("expected 2 balances, got %d", len(got))
	}
	if got[0].Name != "ghost-id" {
		t.Errorf("expected raw id as name for unknown participant, got %q", got[0].Name)
	}
	if got[1].Name != "Alice" {
		t.Errorf("expected directory name for known participant, got %q", got[1].Name)
	}
}

func TestSuggestSettlements(t *testing.T) {
	tests := []struct {
		name     string
		expenses []ExpenseRecord
		want     []Settlement
	}{
		{
			name:     "no expenses means no settlements",
			expenses: nil,
			want:     nil,
		},
		{
			name: "already settled",
			expenses: []ExpenseRecord{
				equalSplit(50.00, "a", "a", "b"),
				equalSplit(50.00, "b", "a", "b"),
			},
			want: nil,
		},
		{
			name: "single debtor single creditor",
			expenses: []ExpenseRecord{
				equalSplit(100.00, "a", "a", "b"),
				equalSplit(30.00, "b", "a", "b"),
			},
			want: []Settlement{
				{From: "Bob", To: "Alice", Amount: 35.00},
			},
		},
		{
			name: "one creditor two debtors",
			expenses: []ExpenseRecord{
				equalSplit(90.00, "a", "a", "b", "c"),
			},
			want: []Settlement{
				{From: "Bob", To: "Alice", Amount: 30.00},
				{From: "Cara", To: "Alice", Amount: 30.00},
			},
		},
		{
			name: "sub-cent residue is suppressed",
			expenses: []ExpenseRecord{
				{Amount: 0.01, PayerID: "a", Splits: []SplitRecord{
					{ParticipantID: "b", Amount: 0.01},
				}},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestSettlements(tt.expenses, testDir)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d settlements, got %d: %v", len(tt.want), len(got), got)
			}
			for i, s := range got {
				if s.From != tt.want[i].From || s.To != tt.want[i].To {
					t.Errorf("settlement %d: expected %s -> %s, got %s -> %s",
						i, tt.want[i].From, tt.want[i].To, s.From, s.To)
				}
				if math.Abs(s.Amount-tt.want[i].Amount) > tolerance {
					t.Errorf("settlement %d: expected amount %.2f, got %.2f", i, tt.want[i].Amount, s.Amount)
				}
			}
		})
	}
}

// Applying the suggested settlements to the net balances must drive every
// participant to within a cent of zero.
func TestSettlementsResolveBalances(t *testing.T) {
	expenses := []ExpenseRecord{
		equalSplit(123.45, "a", "a", "b", "c"),
		equalSplit(67.89, "b", "a", "b"),
		equalSplit(10.00, "c", "b", "c"),
		equalSplit(200.00, "a", "a", "c"),
	}

	// Settlements name participants by display name, so key the residuals
	// the same way.
	residual := make(map[string]float64)
	for _, nb := range NetBalances(expenses, testDir) {
		residual[nb.Name] = nb.NetBalance
	}

	for _, s := range SuggestSettlements(expenses, testDir) {
		residual[s.From] += s.Amount
		residual[s.To] -= s.Amount
	}

	for name, r := range residual {
		if math.Abs(r) > 0.011 {
			t.Errorf("participant %s left with residual %.4f after settlements", name, r)
		}
	}
}

// The settlement plan never pays out more than it collects, and each
// transfer has a positive amount.
func TestSettlementsConservation(t *testing.T) {
	expenses := []ExpenseRecord{
		equalSplit(500.00, "a", "a", "b", "c"),
		equalSplit(75.31, "c", "a", "c"),
	}

	var fromTotal, toTotal float64
	for _, s := range SuggestSettlements(expenses, testDir) {
		if s.Amount <= 0 {
			t.Errorf("settlement %s -> %s has non-positive amount %.2f", s.From, s.To, s.Amount)
		}
		fromTotal += s.Amount
		toTotal += s.Amount
	}
	if math.Abs(fromTotal-toTotal) > tolerance {
		t.Errorf("settlement totals diverge: paid %.2f, received %.2f", fromTotal, toTotal)
	}
}

// Shuffling the expense list changes neither net balances nor the total
// amount moved by the settlement plan.
func TestComputationOrderIndependence(t *testing.T) {
	expenses := []ExpenseRecord{
		equalSplit(100.00, "a", "a", "b"),
		equalSplit(30.00, "b", "a", "b"),
		equalSplit(12.34, "c", "a", "b", "c"),
		equalSplit(56.78, "a", "b", "c"),
	}

	base := make(map[string]float64)
	for _, nb := range NetBalances(expenses, testDir) {
		base[nb.ParticipantID] = nb.NetBalance
	}
	var baseMoved float64
	for _, s := range SuggestSettlements(expenses, testDir) {
		baseMoved += s.Amount
	}

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 10; trial++ {
		shuffled := make([]ExpenseRecord, len(expenses))
		copy(shuffled, expenses)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		for _, nb := range NetBalances(shuffled, testDir) {
			if math.Abs(nb.NetBalance-base[nb.ParticipantID]) > tolerance {
				t.Fatalf("trial %d: participant %q net %.2f, expected %.2f",
					trial, nb.ParticipantID, nb.NetBalance, base[nb.ParticipantID])
			}
		}
		var moved float64
		for _, s := range SuggestSettlements(shuffled, testDir) {
			moved += s.Amount
		}
		if math.Abs(moved-baseMoved) > tolerance {
			t.Fatalf("trial %d: total moved %.2f, expected %.2f", trial, moved, baseMoved)
		}
	}
}

// Recomputing over the same snapshot always yields the same result.
func TestComputationIdempotence(t *testing.T) {
	expenses := []ExpenseRecord{
		equalSplit(100.00, "a", "a", "b", "c"),
		equalSplit(42.00, "b", "a", "b"),
	}

	first := SuggestSettlements(expenses, testDir)
	for trial := 0; trial < 5; trial++ {
		again := SuggestSettlements(expenses, testDir)
		if len(again) != len(first) {
			t.Fatalf("trial %d: expected %d settlements, got %d", trial, len(first), len(again))
		}
		for i := range first {
			if again[i] != first[i] {
				t.Fatalf("trial %d: settlement %d changed from %+v to %+v", trial, i, first[i], again[i])
			}
		}
	}
}

func TestTotalSpent(t *testing.T) {
	expenses := []ExpenseRecord{
		equalSplit(10.10, "a", "a", "b"),
		equalSplit(20.20, "b", "a", "b"),
		equalSplit(0.01, "a", "a"),
	}

	if got := TotalSpent(expenses); math.Abs(got-30.31) > tolerance {
		t.Errorf("expected total spent 30.31, got %.2f", got)
	}
	if got := TotalSpent(nil); got != 0 {
		t.Errorf("expected total spent 0 for no expenses, got %.2f", got)
	}
}
