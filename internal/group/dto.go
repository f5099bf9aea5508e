package group

// CreateGroupRequest represents the request to create a new group.
type CreateGroupRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// UpdateGroupRequest represents the request to rename a group.
type UpdateGroupRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
}

// AddParticipantRequest represents the request to add a participant.
type AddParticipantRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Color string `json:"color,omitempty"`
}

// UpdateParticipantRequest represents the request to update a participant.
type UpdateParticipantRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Color *string `json:"color,omitempty"`
}

// GroupResponse represents the response for a group.
type GroupResponse struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	CreatedAt    string                 `json:"created_at"`
	UpdatedAt    string                 `json:"updated_at"`
	Participants []*ParticipantResponse `json:"participants,omitempty"`
}

// ParticipantResponse represents a participant in a group response.
type ParticipantResponse struct {
	ID      string `json:"id"`
	GroupID string `json:"group_id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
}

// ToResponse converts a Group model to a GroupResponse DTO.
func (g *Group) ToResponse() *GroupResponse {
	return &GroupResponse{
		ID:        g.ID,
		Name:      g.Name,
		CreatedAt: g.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: g.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Participant model to a ParticipantResponse DTO.
func (p *Participant) ToResponse() *ParticipantResponse {
	return &ParticipantResponse{
		ID:      p.ID,
		GroupID: p.GroupID,
		Name:    p.Name,
		Color:   p.Color,
	}
}
