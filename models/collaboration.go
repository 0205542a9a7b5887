package models

import "time"

const (
	CollaborationPending   = "pending"
	CollaborationAccepted  = "accepted"
	CollaborationDeclined  = "declined"
	CollaborationCompleted = "completed"
)

type Collaboration struct {
	ID          string    `json:"id"`
	RequesterID string    `json:"requesterId"`
	RecipientID string    `json:"recipientId"`
	Status      string    `json:"status"`
	Type        string    `json:"type"` // shoutout, reel_swap, joint_content
	Message     *string   `json:"message"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (c Collaboration) Clone() Collaboration {
	c.Message = cloneString(c.Message)
	return c
}

type NewCollaboration struct {
	RequesterID string  `json:"requesterId" binding:"required"`
	RecipientID string  `json:"recipientId" binding:"required"`
	Type        string  `json:"type" binding:"required,oneof=shoutout reel_swap joint_content"`
	Message     *string `json:"message"`
}

// StatusUpdate deliberately accepts any status string; transitions are not
// enforced.
type StatusUpdate struct {
	Status string `json:"status" binding:"required"`
}
