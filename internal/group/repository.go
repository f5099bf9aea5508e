package group

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Repository handles group and participant persistence.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new group repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new group owned by the given user.
func (r *Repository) Create(ctx context.Context, ownerID string, req *CreateGroupRequest) (*Group, error) {
	query := `
		INSERT INTO groups (id, owner_id, name)
		VALUES ($1, $2, $3)
		RETURNING id, owner_id, name, created_at, updated_at
	`

	group := &Group{}
	err := r.db.QueryRowContext(ctx, query, uuid.NewString(), ownerID, req.Name).Scan(
		&group.ID,
		&group.OwnerID,
		&group.Name,
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	return group, nil
}

// GetByID retrieves a group by id, scoped to its owner.
func (r *Repository) GetByID(ctx context.Context, id, ownerID string) (*Group, error) {
	query := `
		SELECT id, owner_id, name, created_at, updated_at
		FROM groups
		WHERE id = $1 AND owner_id = $2
	`

	group := &Group{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&group.ID,
		&group.OwnerID,
		&group.Name,
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return group, nil
}

// ListByOwner retrieves all groups owned by a user, most recently updated first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]*Group, error) {
	query := `
		SELECT id, owner_id, name, created_at, updated_at
		FROM groups
		WHERE owner_id = $1
		ORDER BY updated_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*Group
	for rows.Next() {
		group := &Group{}
		if err := rows.Scan(
			&group.ID,
			&group.OwnerID,
			&group.Name,
			&group.CreatedAt,
			&group.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}

	return groups, rows.Err()
}

// Update renames an existing group.
func (r *Repository) Update(ctx context.Context, id, ownerID string, req *UpdateGroupRequest) (*Group, error) {
	query := `
		UPDATE groups
		SET name = COALESCE($3, name),
		    updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING id, owner_id, name, created_at, updated_at
	`

	group := &Group{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID, req.Name).Scan(
		&group.ID,
		&group.OwnerID,
		&group.Name,
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update group: %w", err)
	}

	return group, nil
}

// Delete removes a group. Participants, expenses and splits cascade via
// foreign keys.
func (r *Repository) Delete(ctx context.Context, id, ownerID string) error {
	query := `DELETE FROM groups WHERE id = $1 AND owner_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrGroupNotFound
	}

	return nil
}

// CountParticipants returns the number of participants in a group.
func (r *Repository) CountParticipants(ctx context.Context, groupID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM participants WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, query, groupID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count participants: %w", err)
	}
	return count, nil
}

// AddParticipant inserts a new participant into a group.
func (r *Repository) AddParticipant(ctx context.Context, groupID string, req *AddParticipantRequest) (*Participant, error) {
	color := req.Color
	if color == "" {
		color = DefaultColor
	}

	query := `
		INSERT INTO participants (id, group_id, name, color)
		VALUES ($1, $2, $3, $4)
		RETURNING id, group_id, name, color, created_at
	`

	participant := &Participant{}
	err := r.db.QueryRowContext(ctx, query, uuid.NewString(), groupID, req.Name, color).Scan(
		&participant.ID,
		&participant.GroupID,
		&participant.Name,
		&participant.Color,
		&participant.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add participant: %w", err)
	}

	return participant, nil
}

// GetParticipants retrieves the participants of a group in creation order.
func (r *Repository) GetParticipants(ctx context.Context, groupID string) ([]*Participant, error) {
	query := `
		SELECT id, group_id, name, color, created_at
		FROM participants
		WHERE group_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var participants []*Participant
	for rows.Next() {
		participant := &Participant{}
		if err := rows.Scan(
			&participant.ID,
			&participant.GroupID,
			&participant.Name,
			&participant.Color,
			&participant.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, participant)
	}

	return participants, rows.Err()
}

// GetParticipant retrieves a specific participant from a group.
func (r *Repository) GetParticipant(ctx context.Context, groupID, participantID string) (*Participant, error) {
	query := `
		SELECT id, group_id, name, color, created_at
		FROM participants
		WHERE id = $1 AND group_id = $2
	`

	participant := &Participant{}
	err := r.db.QueryRowContext(ctx, query, participantID, groupID).Scan(
		&participant.ID,
		&participant.GroupID,
		&participant.Name,
		&participant.Color,
		&participant.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	return participant, nil
}

// UpdateParticipant updates a participant's name or color.
func (r *Repository) UpdateParticipant(ctx context.Context, groupID, participantID string, req *UpdateParticipantRequest) (*Participant, error) {
	query := `
		UPDATE participants
		SET name = COALESCE($3, name),
		    color = COALESCE($4, color)
		WHERE id = $1 AND group_id = $2
		RETURNING id, group_id, name, color, created_at
	`

	participant := &Participant{}
	err := r.db.QueryRowContext(ctx, query, participantID, groupID, req.Name, req.Color).Scan(
		&participant.ID,
		&participant.GroupID,
		&participant.Name,
		&participant.Color,
		&participant.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update participant: %w", err)
	}

	return participant, nil
}

// RemoveParticipant removes a participant and rewrites affected expenses in
// one transaction. Effect set: the participant's splits are stripped from
// every expense in the group, expenses the participant paid for are deleted,
// and expenses left with zero splits are deleted.
func (r *Repository) RemoveParticipant(ctx context.Context, groupID, participantID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	steps := []struct {
		query string
		args  []interface{}
	}{
		{
			query: `DELETE FROM splits
				WHERE participant_id = $1
				  AND expense_id IN (SELECT id FROM expenses WHERE group_id = $2)`,
			args: []interface{}{participantID, groupID},
		},
		{
			query: `DELETE FROM expenses WHERE group_id = $1 AND payer_id = $2`,
			args:  []interface{}{groupID, participantID},
		},
		{
			query: `DELETE FROM expenses e
				WHERE e.group_id = $1
				  AND NOT EXISTS (SELECT 1 FROM splits s WHERE s.expense_id = e.id)`,
			args: []interface{}{groupID},
		},
	}
	for _, step := range steps {
		if _, err := tx.ExecContext(ctx, step.query, step.args...); err != nil {
			return fmt.Errorf("failed to rewrite expenses: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx,
		`DELETE FROM participants WHERE id = $1 AND group_id = $2`,
		participantID, groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove participant: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrParticipantNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
