package split

import (
	"math"

	"github.com/Ksuraj2002/SplitMint/internal/money"
)

// EqualStrategy divides the expense evenly among all participants.
// Any rounding leftover goes to the first participant, which keeps the sum
// exact and the tie-break deterministic.
type EqualStrategy struct{}

// Type returns the share-type tag.
func (s *EqualStrategy) Type() ShareType {
	return ShareTypeEqual
}

// Validate checks the inputs for an equal split.
func (s *EqualStrategy) Validate(total float64, participantIDs []string) error {
	return validateCommon(total, participantIDs)
}

// Allocate gives every participant an even share of the total.
func (s *EqualStrategy) Allocate(total float64, participantIDs []string) ([]Share, error) {
	if err := s.Validate(total, participantIDs); err != nil {
		return nil, err
	}

	n := len(participantIDs)
	totalCents := money.FromAmount(total)

	// share = round(total/n, 2), computed in cents
	share := money.Cents(math.Round(float64(totalCents) / float64(n)))
	remainder := totalCents - share*money.Cents(n)

	shares := make([]Share, n)
	for i, id := range participantIDs {
		amount := share
		if i == 0 {
			// First participant absorbs the rounding remainder
			amount += remainder
		}
		shares[i] = Share{
			ParticipantID: id,
			Amount:        amount.Amount(),
			ShareType:     ShareTypeEqual,
		}
	}

	return shares, nil
}
