package group

import "time"

// MaxParticipants is the cap on participants per group (3 + the owner's own
// participant entry).
const MaxParticipants = 4

// DefaultColor is the color tag assigned to participants created without one.
const DefaultColor = "#6366f1"

// Group represents an expense-sharing group owned by a user.
type Group struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Participant represents a member of a group. Participants are plain display
// entities, not user accounts; they belong to exactly one group.
type Participant struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}
