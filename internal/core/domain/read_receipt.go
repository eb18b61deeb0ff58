package domain

import "time"

// ReadReceipt records that a user has seen a message. One per (message, user).
type ReadReceipt struct {
	MessageID string    `json:"messageID"`
	UserID    string    `json:"userID"`
	ReadAt    time.Time `json:"readAt"`
}
