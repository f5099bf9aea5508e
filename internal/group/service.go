package group

import (
	"context"
	"errors"
	"strings"
)

// Common errors
var (
	ErrGroupNotFound       = errors.New("group not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrGroupNameRequired   = errors.New("group name required")
	ErrMaxParticipants     = errors.New("max 4 participants per group (3 + you)")
)

// Service handles group business logic.
type Service struct {
	repo *Repository
}

// NewService creates a new group service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new group for the owner.
func (s *Service) Create(ctx context.Context, ownerID string, req *CreateGroupRequest) (*Group, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, ErrGroupNameRequired
	}
	return s.repo.Create(ctx, ownerID, req)
}

// GetByID retrieves a group owned by the user.
func (s *Service) GetByID(ctx context.Context, id, ownerID string) (*Group, error) {
	group, err := s.repo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

// GetByIDWithParticipants retrieves a group with its participants.
func (s *Service) GetByIDWithParticipants(ctx context.Context, id, ownerID string) (*Group, []*Participant, error) {
	group, err := s.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, nil, err
	}

	participants, err := s.repo.GetParticipants(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return group, participants, nil
}

// ListByOwner retrieves all groups owned by the user.
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]*Group, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Update renames an existing group.
func (s *Service) Update(ctx context.Context, id, ownerID string, req *UpdateGroupRequest) (*Group, error) {
	group, err := s.repo.Update(ctx, id, ownerID, req)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

// Delete removes a group and everything it owns.
func (s *Service) Delete(ctx context.Context, id, ownerID string) error {
	return s.repo.Delete(ctx, id, ownerID)
}

// AddParticipant adds a participant to a group, enforcing the group size cap.
func (s *Service) AddParticipant(ctx context.Context, groupID, ownerID string, req *AddParticipantRequest) (*Participant, error) {
	if _, err := s.GetByID(ctx, groupID, ownerID); err != nil {
		return nil, err
	}

	count, err := s.repo.CountParticipants(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if count >= MaxParticipants {
		return nil, ErrMaxParticipants
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		req.Name = "Participant"
	}

	return s.repo.AddParticipant(ctx, groupID, req)
}

// GetParticipants retrieves the participants of a group.
func (s *Service) GetParticipants(ctx context.Context, groupID, ownerID string) ([]*Participant, error) {
	if _, err := s.GetByID(ctx, groupID, ownerID); err != nil {
		return nil, err
	}
	return s.repo.GetParticipants(ctx, groupID)
}

// UpdateParticipant updates a participant's name or color.
func (s *Service) UpdateParticipant(ctx context.Context, groupID, ownerID, participantID string, req *UpdateParticipantRequest) (*Participant, error) {
	if _, err := s.GetByID(ctx, groupID, ownerID); err != nil {
		return nil, err
	}

	participant, err := s.repo.UpdateParticipant(ctx, groupID, participantID, req)
	if err != nil {
		return nil, err
	}
	if participant == nil {
		return nil, ErrParticipantNotFound
	}
	return participant, nil
}

// RemoveParticipant removes a participant from a group. The participant's
// splits and any expenses they paid for go with them; see the repository for
// the full effect set.
func (s *Service) RemoveParticipant(ctx context.Context, groupID, ownerID, participantID string) error {
	if _, err := s.GetByID(ctx, groupID, ownerID); err != nil {
		return err
	}
	return s.repo.RemoveParticipant(ctx, groupID, participantID)
}
