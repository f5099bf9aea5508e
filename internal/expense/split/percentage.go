package split

import "github.com/Ksuraj2002/SplitMint/internal/money"

// PercentageStrategy divides the expense by explicit percentages.
// Percentages are positional: Percentages[i] belongs to participantIDs[i].
type PercentageStrategy struct {
	Percentages []float64
}

// Type returns the share-type tag.
func (s *PercentageStrategy) Type() ShareType {
	return ShareTypePercentage
}

// Validate checks that one percentage in [0,100] is supplied per participant
// and that the percentages sum to 100 within tolerance.
func (s *PercentageStrategy) Validate(total float64, participantIDs []string) error {
	if err := validateCommon(total, participantIDs); err != nil {
		return err
	}
	if len(s.Percentages) != len(participantIDs) {
		return ErrPercentageCountMismatch
	}

	var sum float64
	for _, p := range s.Percentages {
		if p < 0 || p > 100 {
			return ErrPercentageOutOfRange
		}
		sum += p
	}
	// Same tolerance as custom amounts: 100 +/- 0.02
	if (money.FromAmount(sum) - money.FromAmount(100)).Abs() > sumTolerance {
		return ErrPercentageSumMismatch
	}
	return nil
}

// Allocate computes each participant's amount from their percentage, then
// pushes any rounding leftover onto the first participant so the shares sum
// exactly to the rounded total.
func (s *PercentageStrategy) Allocate(total float64, participantIDs []string) ([]Share, error) {
	if err := s.Validate(total, participantIDs); err != nil {
		return nil, err
	}

	shares := make([]Share, len(participantIDs))
	var allocated money.Cents
	for i, id := range participantIDs {
		amount := money.FromAmount(total * s.Percentages[i] / 100)
		allocated += amount
		shares[i] = Share{
			ParticipantID: id,
			Amount:        amount.Amount(),
			ShareType:     ShareTypePercentage,
		}
	}

	if diff := money.FromAmount(total) - allocated; diff != 0 {
		shares[0].Amount = (money.FromAmount(shares[0].Amount) + diff).Amount()
	}

	return shares, nil
}
