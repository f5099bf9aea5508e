package expense

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Ksuraj2002/SplitMint/internal/expense/split"
)

// Repository handles expense and split persistence.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const expenseColumns = `id, group_id, payer_id, description, amount, date, created_at`

func scanExpense(row interface{ Scan(...interface{}) error }) (*Expense, error) {
	e := &Expense{}
	err := row.Scan(
		&e.ID,
		&e.GroupID,
		&e.PayerID,
		&e.Description,
		&e.Amount,
		&e.Date,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Create inserts an expense and its splits in one transaction.
func (r *Repository) Create(ctx context.Context, e *Expense, shares []split.Share) (*ExpenseWithSplits, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO expenses (id, group_id, payer_id, description, amount, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + expenseColumns

	e.ID = uuid.NewString()
	created, err := scanExpense(tx.QueryRowContext(ctx, query,
		e.ID, e.GroupID, e.PayerID, e.Description, e.Amount, e.Date,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	splits, err := insertSplits(ctx, tx, created.ID, shares)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &ExpenseWithSplits{Expense: created, Splits: splits}, nil
}

// Update modifies an expense and, when shares is non-nil, replaces its splits,
// all in one transaction.
func (r *Repository) Update(ctx context.Context, e *Expense, shares []split.Share) (*ExpenseWithSplits, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE expenses
		SET payer_id = $2, description = $3, amount = $4, date = $5
		WHERE id = $1
		RETURNING ` + expenseColumns

	updated, err := scanExpense(tx.QueryRowContext(ctx, query,
		e.ID, e.PayerID, e.Description, e.Amount, e.Date,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	var splits []*Split
	if shares != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM splits WHERE expense_id = $1`, e.ID); err != nil {
			return nil, fmt.Errorf("failed to clear splits: %w", err)
		}
		splits, err = insertSplits(ctx, tx, e.ID, shares)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if splits == nil {
		splits, err = r.GetSplitsByExpenseID(ctx, e.ID)
		if err != nil {
			return nil, err
		}
	}

	return &ExpenseWithSplits{Expense: updated, Splits: splits}, nil
}

func insertSplits(ctx context.Context, tx *sql.Tx, expenseID string, shares []split.Share) ([]*Split, error) {
	query := `
		INSERT INTO splits (id, expense_id, participant_id, amount, share_type, position)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	splits := make([]*Split, len(shares))
	for i, share := range shares {
		s := &Split{
			ID:            uuid.NewString(),
			ExpenseID:     expenseID,
			ParticipantID: share.ParticipantID,
			Amount:        share.Amount,
			ShareType:     share.ShareType,
		}
		if _, err := tx.ExecContext(ctx, query,
			s.ID, s.ExpenseID, s.ParticipantID, s.Amount, s.ShareType, i,
		); err != nil {
			return nil, fmt.Errorf("failed to create split: %w", err)
		}
		splits[i] = s
	}

	return splits, nil
}

// GetByID retrieves an expense scoped to groups owned by the user.
func (r *Repository) GetByID(ctx context.Context, id, ownerID string) (*Expense, error) {
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.date, e.created_at
		FROM expenses e
		JOIN groups g ON e.group_id = g.id
		WHERE e.id = $1 AND g.owner_id = $2
	`

	e, err := scanExpense(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return e, nil
}

// GetSplitsByExpenseID retrieves the splits of an expense in stored order.
func (r *Repository) GetSplitsByExpenseID(ctx context.Context, expenseID string) ([]*Split, error) {
	query := `
		SELECT id, expense_id, participant_id, amount, share_type
		FROM splits
		WHERE expense_id = $1
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []*Split
	for rows.Next() {
		s := &Split{}
		if err := rows.Scan(&s.ID, &s.ExpenseID, &s.ParticipantID, &s.Amount, &s.ShareType); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, s)
	}

	return splits, rows.Err()
}

// ListByGroupID retrieves every expense of a group with splits attached,
// newest first.
func (r *Repository) ListByGroupID(ctx context.Context, groupID string) ([]*ExpenseWithSplits, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE group_id = $1
		ORDER BY date DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses, err := collectExpenses(rows)
	if err != nil {
		return nil, err
	}

	return r.attachSplits(ctx, expenses)
}

// ListByOwner retrieves expenses across all groups owned by the user,
// narrowed by the filter, newest first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID string, filter *ListFilter) ([]*ExpenseWithSplits, error) {
	conditions := []string{"g.owner_id = $1"}
	args := []interface{}{ownerID}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.GroupID != "" {
		conditions = append(conditions, "e.group_id = "+arg(filter.GroupID))
	}
	if filter.ParticipantID != "" {
		p := arg(filter.ParticipantID)
		conditions = append(conditions, fmt.Sprintf(
			"(e.payer_id = %s OR EXISTS (SELECT 1 FROM splits s WHERE s.expense_id = e.id AND s.participant_id = %s))", p, p))
	}
	if filter.Search != "" {
		conditions = append(conditions, "e.description ILIKE "+arg("%"+filter.Search+"%"))
	}
	if filter.MinAmount != nil {
		conditions = append(conditions, "e.amount >= "+arg(*filter.MinAmount))
	}
	if filter.MaxAmount != nil {
		conditions = append(conditions, "e.amount <= "+arg(*filter.MaxAmount))
	}
	if filter.FromDate != nil {
		conditions = append(conditions, "e.date >= "+arg(*filter.FromDate))
	}
	if filter.ToDate != nil {
		conditions = append(conditions, "e.date <= "+arg(*filter.ToDate))
	}

	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.date, e.created_at
		FROM expenses e
		JOIN groups g ON e.group_id = g.id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY e.date DESC, e.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses, err := collectExpenses(rows)
	if err != nil {
		return nil, err
	}

	return r.attachSplits(ctx, expenses)
}

// Delete removes an expense scoped to groups owned by the user.
func (r *Repository) Delete(ctx context.Context, id, ownerID string) error {
	query := `
		DELETE FROM expenses e
		USING groups g
		WHERE e.id = $1 AND e.group_id = g.id AND g.owner_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

func collectExpenses(rows *sql.Rows) ([]*Expense, error) {
	var expenses []*Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// attachSplits loads the splits for a batch of expenses with one query.
func (r *Repository) attachSplits(ctx context.Context, expenses []*Expense) ([]*ExpenseWithSplits, error) {
	result := make([]*ExpenseWithSplits, len(expenses))
	if len(expenses) == 0 {
		return result, nil
	}

	ids := make([]string, len(expenses))
	byID := make(map[string]*ExpenseWithSplits, len(expenses))
	for i, e := range expenses {
		ids[i] = e.ID
		result[i] = &ExpenseWithSplits{Expense: e}
		byID[e.ID] = result[i]
	}

	query := `
		SELECT id, expense_id, participant_id, amount, share_type
		FROM splits
		WHERE expense_id = ANY($1)
		ORDER BY expense_id, position
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to load splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		s := &Split{}
		if err := rows.Scan(&s.ID, &s.ExpenseID, &s.ParticipantID, &s.Amount, &s.ShareType); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		byID[s.ExpenseID].Splits = append(byID[s.ExpenseID].Splits, s)
	}

	return result, rows.Err()
}
