// Package event defines the telemetry emitted by the submission pipeline.
package event

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	MessageStoredType     Type = "MESSAGE_STORED"
	DispatchSucceededType Type = "DISPATCH_SUCCEEDED"
	DispatchFailedType    Type = "DISPATCH_FAILED"
)

// Event wraps a payload with its type and the time it was raised.
type Event struct {
	Type    Type
	Payload any
	At      time.Time
}

func New(t Type, payload any) Event {
	return Event{Type: t, Payload: payload, At: time.Now().UTC()}
}

type MessageStored struct {
	MessageID uuid.UUID
	OwnerID   string
}

type DispatchSucceeded struct {
	MessageID         uuid.UUID
	OwnerID           string
	ProviderMessageID string
}

// DispatchFailed records a message that is persisted but that the gateway
// could not relay. It never reaches the caller.
type DispatchFailed struct {
	MessageID   uuid.UUID
	OwnerID     string
	PhoneNumber string
	Detail      string
}
