package observability

import (
	"context"
	"fmt"
	"hive-signal/domain/event"
	"hive-signal/errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newTestMonitor() *DispatchMonitor {
	return NewDispatchMonitor(logs.GetLoggerFromLevel(slog.LevelError))
}

func Test_Monitor_Counts_Each_Event_Kind(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	monitor := newTestMonitor()
	id := uuid.New()

	req.NoError(monitor.Consume(ctx, event.New(event.MessageStoredType, event.MessageStored{MessageID: id, OwnerID: "sess-abc"})))
	req.NoError(monitor.Consume(ctx, event.New(event.MessageStoredType, event.MessageStored{MessageID: uuid.New(), OwnerID: "sess-abc"})))
	req.NoError(monitor.Consume(ctx, event.New(event.DispatchSucceededType, event.DispatchSucceeded{MessageID: id, ProviderMessageID: "SM1"})))
	req.NoError(monitor.Consume(ctx, event.New(event.DispatchFailedType, event.DispatchFailed{MessageID: id, Detail: "gateway not configured"})))

	stats := monitor.Stats()
	req.Equal(uint64(2), stats.MessagesStored)
	req.Equal(uint64(1), stats.DispatchOK)
	req.Equal(uint64(1), stats.DispatchFailed)
	req.Len(stats.RecentFailures, 1)
	req.Equal(id.String(), stats.RecentFailures[0].MessageID)
	req.Equal("gateway not configured", stats.RecentFailures[0].Detail)
}

func Test_Monitor_Keeps_Latest_Failures_First(t *testing.T) {
	req := require.New(t)
	monitor := newTestMonitor()

	for i := 0; i < maxRecentFailures+5; i++ {
		payload := event.DispatchFailed{MessageID: uuid.New(), Detail: fmt.Sprintf("failure %d", i)}
		req.NoError(monitor.Consume(context.Background(), event.New(event.DispatchFailedType, payload)))
	}

	stats := monitor.Stats()
	req.Len(stats.RecentFailures, maxRecentFailures)
	req.Equal(fmt.Sprintf("failure %d", maxRecentFailures+4), stats.RecentFailures[0].Detail)
	req.Equal(uint64(maxRecentFailures+5), stats.DispatchFailed)
}

func Test_Monitor_Rejects_Mismatched_Payload(t *testing.T) {
	req := require.New(t)
	monitor := newTestMonitor()

	err := monitor.Consume(context.Background(), event.New(event.DispatchFailedType, "not a payload"))
	req.ErrorIs(err, errors.ErrInvalidPayload)
	req.Equal(uint64(0), monitor.Stats().DispatchFailed)
}

func Test_Monitor_Stats_Snapshot_Is_Detached(t *testing.T) {
	req := require.New(t)
	monitor := newTestMonitor()
	req.NoError(monitor.Consume(context.Background(), event.New(event.DispatchFailedType, event.DispatchFailed{MessageID: uuid.New()})))

	stats := monitor.Stats()
	stats.RecentFailures[0].Detail = "mutated"
	req.Empty(monitor.Stats().RecentFailures[0].Detail)
}
