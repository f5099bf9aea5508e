package balance

import (
	"context"

	"github.com/Ksuraj2002/SplitMint/internal/expense"
	"github.com/Ksuraj2002/SplitMint/internal/group"
	"github.com/Ksuraj2002/SplitMint/internal/metrics"
	"github.com/Ksuraj2002/SplitMint/internal/money"
)

// Service assembles balance views from persisted expenses. The engine itself
// is pure; the service only snapshots data and shapes responses.
type Service struct {
	groupRepo   *group.Repository
	expenseRepo *expense.Repository
}

// NewService creates a new balance service.
func NewService(groupRepo *group.Repository, expenseRepo *expense.Repository) *Service {
	return &Service{
		groupRepo:   groupRepo,
		expenseRepo: expenseRepo,
	}
}

// GroupBalance computes the balance view for one group owned by the user.
func (s *Service) GroupBalance(ctx context.Context, groupID, ownerID string) (*GroupBalanceResponse, error) {
	grp, err := s.groupRepo.GetByID(ctx, groupID, ownerID)
	if err != nil {
		return nil, err
	}
	if grp == nil {
		return nil, group.ErrGroupNotFound
	}

	participants, err := s.groupRepo.GetParticipants(ctx, groupID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenseRepo.ListByGroupID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	records := toRecords(expenses)
	dir := toDirectory(participants)
	metrics.BalanceComputations.Inc()

	return &GroupBalanceResponse{
		Balances:    notNilBalances(NetBalances(records, dir)),
		Settlements: notNilSettlements(SuggestSettlements(records, dir)),
		TotalSpent:  TotalSpent(records),
	}, nil
}

// Summary computes the aggregate view across all groups owned by the user.
func (s *Service) Summary(ctx context.Context, ownerID string) (*SummaryResponse, error) {
	groups, err := s.groupRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var records []ExpenseRecord
	dir := Directory{}
	for _, grp := range groups {
		participants, err := s.groupRepo.GetParticipants(ctx, grp.ID)
		if err != nil {
			return nil, err
		}
		for id, p := range toDirectory(participants) {
			dir[id] = p
		}

		expenses, err := s.expenseRepo.ListByGroupID(ctx, grp.ID)
		if err != nil {
			return nil, err
		}
		records = append(records, toRecords(expenses)...)
	}

	balances := NetBalances(records, dir)
	metrics.BalanceComputations.Inc()

	var owedToUser, owedByUser money.Cents
	for _, b := range balances {
		net := money.FromAmount(b.NetBalance)
		if net > 0 {
			owedToUser += net
		} else {
			owedByUser -= net
		}
	}

	return &SummaryResponse{
		TotalSpent:      TotalSpent(records),
		TotalOwedToUser: owedToUser.Amount(),
		TotalOwedByUser: owedByUser.Amount(),
		Balances:        notNilBalances(balances),
	}, nil
}

func toRecords(expenses []*expense.ExpenseWithSplits) []ExpenseRecord {
	records := make([]ExpenseRecord, len(expenses))
	for i, e := range expenses {
		record := ExpenseRecord{
			Amount:  e.Expense.Amount,
			PayerID: e.Expense.PayerID,
			Splits:  make([]SplitRecord, len(e.Splits)),
		}
		for j, s := range e.Splits {
			record.Splits[j] = SplitRecord{
				ParticipantID: s.ParticipantID,
				Amount:        s.Amount,
			}
		}
		records[i] = record
	}
	return records
}

func toDirectory(participants []*group.Participant) Directory {
	dir := make(Directory, len(participants))
	for _, p := range participants {
		dir[p.ID] = Participant{Name: p.Name, Color: p.Color}
	}
	return dir
}

func notNilBalances(balances []NetBalance) []NetBalance {
	if balances == nil {
		return []NetBalance{}
	}
	return balances
}

func notNilSettlements(settlements []Settlement) []Settlement {
	if settlements == nil {
		return []Settlement{}
	}
	return settlements
}
