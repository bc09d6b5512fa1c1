//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"hive-signal/domain/event"
)

// EventSink receives pipeline telemetry. A failing sink must never fail the
// request that raised the event.
type EventSink interface {
	Consume(ctx context.Context, e event.Event) error
}
