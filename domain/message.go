// Package domain contains the core concepts of hive-signal.
// Messages are immutable once the store has assigned their id and timestamp.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is a text persisted for one owner and relayed to one phone number.
type Message struct {
	ID          uuid.UUID
	OwnerID     string
	PhoneNumber string
	Content     string
	CreatedAt   time.Time
}

// MessageDraft is the caller supplied part of a Message, before persistence.
type MessageDraft struct {
	OwnerID     string `validate:"required"`
	PhoneNumber string `validate:"required,phone"`
	Content     string `validate:"required"`
}
