package expense

import (
	"context"
	"errors"
	"time"

	"github.com/Ksuraj2002/SplitMint/internal/expense/split"
	"github.com/Ksuraj2002/SplitMint/internal/group"
)

// Common errors
var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrPayerRequired   = errors.New("payer required")
	ErrPayerNotInGroup = errors.New("payer must be a group participant")
)

// Service handles expense business logic.
type Service struct {
	repo         *Repository
	groupRepo    *group.Repository
	splitFactory *split.Factory
}

// NewService creates a new expense service with dependencies injected.
func NewService(repo *Repository, groupRepo *group.Repository, splitFactory *split.Factory) *Service {
	return &Service{
		repo:         repo,
		groupRepo:    groupRepo,
		splitFactory: splitFactory,
	}
}

// Create creates a new expense, runs the split allocator and persists the
// resulting splits. Nothing is written when allocation fails validation.
func (s *Service) Create(ctx context.Context, ownerID string, req *CreateExpenseRequest) (*ExpenseWithSplits, error) {
	grp, err := s.groupRepo.GetByID(ctx, req.GroupID, ownerID)
	if err != nil {
		return nil, err
	}
	if grp == nil {
		return nil, group.ErrGroupNotFound
	}

	if req.PayerID == "" {
		return nil, ErrPayerRequired
	}

	participantIDs, err := s.resolveParticipants(ctx, req.GroupID, req.PayerID, req.ParticipantIDs)
	if err != nil {
		return nil, err
	}

	strategy := s.splitFactory.Create(req.SplitMode, req.CustomAmounts, req.Percentages)
	shares, err := strategy.Allocate(req.Amount, participantIDs)
	if err != nil {
		return nil, err
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	return s.repo.Create(ctx, &Expense{
		GroupID:     req.GroupID,
		PayerID:     req.PayerID,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        date,
	}, shares)
}

// GetByID retrieves an expense with its splits.
func (s *Service) GetByID(ctx context.Context, id, ownerID string) (*ExpenseWithSplits, error) {
	e, err := s.repo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrExpenseNotFound
	}

	splits, err := s.repo.GetSplitsByExpenseID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithSplits{Expense: e, Splits: splits}, nil
}

// List retrieves expenses across the user's groups, narrowed by the filter.
func (s *Service) List(ctx context.Context, ownerID string, filter *ListFilter) ([]*ExpenseWithSplits, error) {
	return s.repo.ListByOwner(ctx, ownerID, filter)
}

// Update modifies an expense. Changing the amount, split mode or participant
// set re-runs the allocator; the stored splits are kept otherwise.
func (s *Service) Update(ctx context.Context, id, ownerID string, req *UpdateExpenseRequest) (*ExpenseWithSplits, error) {
	existing, err := s.repo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrExpenseNotFound
	}

	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Amount != nil {
		existing.Amount = *req.Amount
	}
	if req.Date != nil {
		existing.Date = *req.Date
	}
	if req.PayerID != nil {
		existing.PayerID = *req.PayerID
	}

	var shares []split.Share
	if req.Amount != nil || req.SplitMode != nil || req.ParticipantIDs != nil {
		participantIDs, err := s.resolveParticipants(ctx, existing.GroupID, existing.PayerID, req.ParticipantIDs)
		if err != nil {
			return nil, err
		}

		mode := ""
		if req.SplitMode != nil {
			mode = *req.SplitMode
		}
		strategy := s.splitFactory.Create(mode, req.CustomAmounts, req.Percentages)
		shares, err = strategy.Allocate(existing.Amount, participantIDs)
		if err != nil {
			return nil, err
		}
	}

	return s.repo.Update(ctx, existing, shares)
}

// Delete removes an expense and its splits.
func (s *Service) Delete(ctx context.Context, id, ownerID string) error {
	return s.repo.Delete(ctx, id, ownerID)
}

// resolveParticipants returns the ids the allocator will split across, in
// group order. A non-empty requested subset keeps only known participants;
// the default is the whole group.
func (s *Service) resolveParticipants(ctx context.Context, groupID, payerID string, requested []string) ([]string, error) {
	participants, err := s.groupRepo.GetParticipants(ctx, groupID)
	if err != nil {
		return nil, err
	}

	payerKnown := false
	var ids []string
	for _, p := range participants {
		if p.ID == payerID {
			payerKnown = true
		}
		if len(requested) == 0 || contains(requested, p.ID) {
			ids = append(ids, p.ID)
		}
	}

	if !payerKnown {
		return nil, ErrPayerNotInGroup
	}
	if len(ids) == 0 {
		return nil, split.ErrNoParticipants
	}

	return ids, nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
