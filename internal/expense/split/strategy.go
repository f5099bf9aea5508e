package split

import (
	"errors"

	"github.com/Ksuraj2002/SplitMint/internal/money"
)

// ShareType records how a split amount was derived. Once a share is stored
// it is a fixed amount, not a live formula.
type ShareType string

const (
	ShareTypeEqual      ShareType = "equal"
	ShareTypeCustom     ShareType = "custom"
	ShareTypePercentage ShareType = "percentage"
)

// Share is the calculated portion of an expense owed by one participant.
type Share struct {
	ParticipantID string    `json:"participant_id"`
	Amount        float64   `json:"amount"`
	ShareType     ShareType `json:"share_type"`
}

// Strategy is the interface all split strategies implement. A strategy value
// carries its own mode-specific inputs, so an equal split cannot be built
// with stray percentages and vice versa.
type Strategy interface {
	// Allocate computes one share per participant, in input order.
	// The share amounts sum exactly to the total rounded to 2 decimal
	// places (for custom splits, within the pre-validated tolerance).
	Allocate(total float64, participantIDs []string) ([]Share, error)

	// Type returns the share-type tag this strategy produces.
	Type() ShareType
}

// Validation errors returned by the strategies.
var (
	ErrNoParticipants          = errors.New("at least one participant required")
	ErrNonPositiveAmount       = errors.New("amount must be greater than zero")
	ErrNegativeShare           = errors.New("share amounts cannot be negative")
	ErrAmountCountMismatch     = errors.New("one custom amount required per participant")
	ErrCustomSumMismatch       = errors.New("custom amounts must sum to expense total")
	ErrPercentageCountMismatch = errors.New("one percentage required per participant")
	ErrPercentageOutOfRange    = errors.New("percentages must be between 0 and 100")
	ErrPercentageSumMismatch   = errors.New("percentages must sum to 100")
)

// sumTolerance is the reconciliation tolerance for caller-supplied custom
// amounts and percentages, in cents.
const sumTolerance = money.Cents(2)

// Factory builds split strategies from request data.
type Factory struct{}

// NewStrategyFactory creates a new factory instance.
func NewStrategyFactory() *Factory {
	return &Factory{}
}

// Create returns the strategy for the given mode, binding the positional
// inputs that belong to it. An unrecognized mode falls back to an equal
// split; that is the documented default, not an error.
func (f *Factory) Create(mode string, amounts, percentages []float64) Strategy {
	switch ShareType(mode) {
	case ShareTypeCustom:
		return &CustomStrategy{Amounts: amounts}
	case ShareTypePercentage:
		return &PercentageStrategy{Percentages: percentages}
	default:
		return &EqualStrategy{}
	}
}

func validateCommon(total float64, participantIDs []string) error {
	if len(participantIDs) == 0 {
		return ErrNoParticipants
	}
	if money.FromAmount(total) <= 0 {
		return ErrNonPositiveAmount
	}
	return nil
}
