// Package balance computes net balances and suggested settlements for a
// group's expenses. The computations are pure, synchronous transforms over
// in-memory snapshots: nothing here touches storage, and results are views,
// recomputed on every request and never persisted.
package balance

import "github.com/Ksuraj2002/SplitMint/internal/money"

// ExpenseRecord is the minimal expense snapshot needed for balance math.
type ExpenseRecord struct {
	Amount  float64
	PayerID string
	Splits  []SplitRecord
}

// SplitRecord is one participant's share of an expense.
type SplitRecord struct {
	ParticipantID string
	Amount        float64
}

// Participant carries the display attributes attached to output rows.
type Participant struct {
	Name  string
	Color string
}

// Directory maps participant ids to display attributes. Missing entries
// degrade to echoing the raw id as the name.
type Directory map[string]Participant

// settleThreshold suppresses settlements born purely of rounding dust.
const settleThreshold = money.Cents(1)

// computeBalances aggregates payer credits and split debits into one net
// figure per participant, in cents. The returned order is first-appearance
// order, which fixes the tie-break order for settlement matching. Records
// with a missing payer or participant id are historical residue of removed
// participants and are skipped rather than failing the computation.
func computeBalances(expenses []ExpenseRecord) ([]string, map[string]money.Cents) {
	var order []string
	balances := make(map[string]money.Cents)

	touch := func(id string) {
		if _, ok := balances[id]; !ok {
			balances[id] = 0
			order = append(order, id)
		}
	}

	for _, exp := range expenses {
		if exp.PayerID == "" {
			continue
		}
		touch(exp.PayerID)
		balances[exp.PayerID] += money.FromAmount(exp.Amount)
		for _, s := range exp.Splits {
			if s.ParticipantID == "" {
				continue
			}
			touch(s.ParticipantID)
			balances[s.ParticipantID] -= money.FromAmount(s.Amount)
		}
	}

	return order, balances
}

// NetBalances returns each participant's net position across the expenses.
// Positive means the participant is owed money, negative means they owe.
func NetBalances(expenses []ExpenseRecord, dir Directory) []NetBalance {
	order, balances := computeBalances(expenses)

	result := make([]NetBalance, len(order))
	for i, id := range order {
		result[i] = NetBalance{
			ParticipantID: id,
			Name:          dir.name(id),
			NetBalance:    balances[id].Amount(),
		}
	}
	return result
}

// SuggestSettlements pairs debtors against creditors greedily until every
// balance is driven to within one cent of zero. The result is a short
// transaction list, at most len(debtors)+len(creditors)-1 entries; a
// provably minimal count would need subset matching and is deliberately
// out of scope.
func SuggestSettlements(expenses []ExpenseRecord, dir Directory) []Settlement {
	order, balances := computeBalances(expenses)

	type entry struct {
		name   string
		amount money.Cents
	}
	var debts, credits []entry
	for _, id := range order {
		switch net := balances[id]; {
		case net > 0:
			credits = append(credits, entry{name: dir.name(id), amount: net})
		case net < 0:
			debts = append(debts, entry{name: dir.name(id), amount: -net})
		}
	}

	var suggestions []Settlement
	i, j := 0, 0
	for i < len(debts) && j < len(credits) {
		pay := debts[i].amount
		if credits[j].amount < pay {
			pay = credits[j].amount
		}
		if pay > settleThreshold {
			suggestions = append(suggestions, Settlement{
				From:   debts[i].name,
				To:     credits[j].name,
				Amount: pay.Amount(),
			})
		}
		debts[i].amount -= pay
		credits[j].amount -= pay
		if debts[i].amount < settleThreshold {
			i++
		}
		if credits[j].amount < settleThreshold {
			j++
		}
	}

	return suggestions
}

// TotalSpent sums the expense amounts.
func TotalSpent(expenses []ExpenseRecord) float64 {
	var total money.Cents
	for _, exp := range expenses {
		total += money.FromAmount(exp.Amount)
	}
	return total.Amount()
}

func (d Directory) name(id string) string {
	if p, ok := d[id]; ok && p.Name != "" {
		return p.Name
	}
	return id
}
