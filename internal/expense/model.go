package expense

import (
	"time"

	"github.com/Ksuraj2002/SplitMint/internal/expense/split"
)

// Expense represents a logged expense in a group.
type Expense struct {
	ID          string    `json:"id"`
	GroupID     string    `json:"group_id"`
	PayerID     string    `json:"payer_id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

// Split is one participant's stored share of an expense. The share type
// records how the amount was derived; the amount itself is fixed.
type Split struct {
	ID            string          `json:"id"`
	ExpenseID     string          `json:"expense_id"`
	ParticipantID string          `json:"participant_id"`
	Amount        float64         `json:"amount"`
	ShareType     split.ShareType `json:"share_type"`
}

// ExpenseWithSplits combines an expense with its splits.
type ExpenseWithSplits struct {
	Expense *Expense
	Splits  []*Split
}
