package split

import "github.com/Ksuraj2002/SplitMint/internal/money"

// CustomStrategy assigns each participant an explicit fixed amount.
// Amounts are positional: Amounts[i] belongs to participantIDs[i].
type CustomStrategy struct {
	Amounts []float64
}

// Type returns the share-type tag.
func (s *CustomStrategy) Type() ShareType {
	return ShareTypeCustom
}

// Validate checks that one non-negative amount is supplied per participant
// and that the amounts reconcile with the total within 2 cents.
func (s *CustomStrategy) Validate(total float64, participantIDs []string) error {
	if err := validateCommon(total, participantIDs); err != nil {
		return err
	}
	if len(s.Amounts) != len(participantIDs) {
		return ErrAmountCountMismatch
	}

	var sum money.Cents
	for _, a := range s.Amounts {
		c := money.FromAmount(a)
		if c < 0 {
			return ErrNegativeShare
		}
		sum += c
	}
	if (sum - money.FromAmount(total)).Abs() > sumTolerance {
		return ErrCustomSumMismatch
	}
	return nil
}

// Allocate returns the supplied amounts, each rounded to 2 decimal places.
func (s *CustomStrategy) Allocate(total float64, participantIDs []string) ([]Share, error) {
	if err := s.Validate(total, participantIDs); err != nil {
		return nil, err
	}

	shares := make([]Share, len(participantIDs))
	for i, id := range participantIDs {
		shares[i] = Share{
			ParticipantID: id,
			Amount:        money.FromAmount(s.Amounts[i]).Amount(),
			ShareType:     ShareTypeCustom,
		}
	}

	return shares, nil
}
