package expense

import "time"

// CreateExpenseRequest represents the request to create an expense.
// CustomAmounts and Percentages are positional: entry i belongs to the i-th
// resolved participant. Only the array matching the split mode is read.
type CreateExpenseRequest struct {
	GroupID        string     `json:"group_id" validate:"required"`
	PayerID        string     `json:"payer_id" validate:"required"`
	Description    string     `json:"description,omitempty"`
	Amount         float64    `json:"amount" validate:"required,gt=0"`
	Date           *time.Time `json:"date,omitempty"`
	SplitMode      string     `json:"split_mode,omitempty"` // equal, custom, percentage; default equal
	ParticipantIDs []string   `json:"participant_ids,omitempty"`
	CustomAmounts  []float64  `json:"custom_amounts,omitempty"`
	Percentages    []float64  `json:"percentages,omitempty"`
}

// UpdateExpenseRequest represents the request to update an expense.
// Changing the amount, split mode or participant set re-runs the allocator;
// otherwise the stored splits are kept.
type UpdateExpenseRequest struct {
	Description    *string    `json:"description,omitempty"`
	Amount         *float64   `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Date           *time.Time `json:"date,omitempty"`
	PayerID        *string    `json:"payer_id,omitempty"`
	SplitMode      *string    `json:"split_mode,omitempty"`
	ParticipantIDs []string   `json:"participant_ids,omitempty"`
	CustomAmounts  []float64  `json:"custom_amounts,omitempty"`
	Percentages    []float64  `json:"percentages,omitempty"`
}

// ListFilter narrows an expense listing.
type ListFilter struct {
	GroupID       string
	ParticipantID string
	Search        string
	MinAmount     *float64
	MaxAmount     *float64
	FromDate      *time.Time
	ToDate        *time.Time
}

// ExpenseResponse represents the response for an expense.
type ExpenseResponse struct {
	ID          string           `json:"id"`
	GroupID     string           `json:"group_id"`
	PayerID     string           `json:"payer_id"`
	Description string           `json:"description"`
	Amount      float64          `json:"amount"`
	Date        string           `json:"date"`
	CreatedAt   string           `json:"created_at"`
	Splits      []*SplitResponse `json:"splits,omitempty"`
}

// SplitResponse represents the response for a split.
type SplitResponse struct {
	ID            string  `json:"id"`
	ParticipantID string  `json:"participant_id"`
	Amount        float64 `json:"amount"`
	ShareType     string  `json:"share_type"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO.
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		GroupID:     e.GroupID,
		PayerID:     e.PayerID,
		Description: e.Description,
		Amount:      e.Amount,
		Date:        e.Date.Format("2006-01-02T15:04:05Z"),
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Split model to a SplitResponse DTO.
func (s *Split) ToResponse() *SplitResponse {
	return &SplitResponse{
		ID:            s.ID,
		ParticipantID: s.ParticipantID,
		Amount:        s.Amount,
		ShareType:     string(s.ShareType),
	}
}

// ToResponse converts an ExpenseWithSplits to a response DTO with splits.
func (e *ExpenseWithSplits) ToResponse() *ExpenseResponse {
	resp := e.Expense.ToResponse()
	resp.Splits = make([]*SplitResponse, len(e.Splits))
	for i, s := range e.Splits {
		resp.Splits[i] = s.ToResponse()
	}
	return resp
}
