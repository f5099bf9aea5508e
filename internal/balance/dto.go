package balance

// NetBalance is one participant's aggregate position across a set of
// expenses. Positive = owed to this participant, negative = they owe.
type NetBalance struct {
	ParticipantID string  `json:"participant_id"`
	Name          string  `json:"name"`
	NetBalance    float64 `json:"net_balance"`
}

// Settlement is a suggested payment from one participant to another.
type Settlement struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// GroupBalanceResponse is the balance view for a single group.
type GroupBalanceResponse struct {
	Balances    []NetBalance `json:"balances"`
	Settlements []Settlement `json:"settlements"`
	TotalSpent  float64      `json:"total_spent"`
}

// SummaryResponse aggregates balances across all groups owned by a user.
type SummaryResponse struct {
	TotalSpent      float64      `json:"total_spent"`
	TotalOwedToUser float64      `json:"total_owed_to_user"`
	TotalOwedByUser float64      `json:"total_owed_by_user"`
	Balances        []NetBalance `json:"balances"`
}
