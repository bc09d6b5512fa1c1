// Package observability turns pipeline events into logs and counters.
package observability

import (
	"context"
	"hive-signal/contract"
	"hive-signal/domain/event"
	"hive-signal/errors"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/process"
)

const maxRecentFailures = 20

// RecentFailure is a dispatch that failed after its message was stored.
type RecentFailure struct {
	MessageID string `json:"message_id"`
	Detail    string `json:"detail"`
	Timestamp string `json:"timestamp"`
}

// DispatchStats is the snapshot served by the health endpoint.
type DispatchStats struct {
	MessagesStored uint64          `json:"messages_stored"`
	DispatchOK     uint64          `json:"dispatch_ok"`
	DispatchFailed uint64          `json:"dispatch_failed"`
	UptimeSeconds  int64           `json:"uptime_seconds"`
	AllocMemMb     uint64          `json:"alloc_mem_mb"`
	NumGC          uint32          `json:"num_gc"`
	RSSMb          uint64          `json:"rss_mb"`
	CPUPercent     float64         `json:"cpu_percent"`
	RecentFailures []RecentFailure `json:"recent_failures"`
}

// DispatchMonitor consumes pipeline events. It never fails the caller.
type DispatchMonitor struct {
	log       *slog.Logger
	startedAt time.Time
	mu        sync.RWMutex
	failures  []RecentFailure

	stored     uint64
	dispatched uint64
	failed     uint64
}

func NewDispatchMonitor(log *slog.Logger) *DispatchMonitor {
	return &DispatchMonitor{
		log:       log,
		startedAt: time.Now(),
		failures:  make([]RecentFailure, 0),
	}
}

var _ contract.EventSink = (*DispatchMonitor)(nil)

func (m *DispatchMonitor) Consume(_ context.Context, e event.Event) error {
	switch e.Type {
	case event.MessageStoredType:
		atomic.AddUint64(&m.stored, 1)
	case event.DispatchSucceededType:
		payload, ok := e.Payload.(event.DispatchSucceeded)
		if !ok {
			return errors.ErrInvalidPayload
		}
		atomic.AddUint64(&m.dispatched, 1)
		m.log.Debug("SMS dispatched", "id", payload.MessageID, "sid", payload.ProviderMessageID)
	case event.DispatchFailedType:
		payload, ok := e.Payload.(event.DispatchFailed)
		if !ok {
			return errors.ErrInvalidPayload
		}
		atomic.AddUint64(&m.failed, 1)
		m.log.Warn("SMS dispatch failed", "id", payload.MessageID, "detail", payload.Detail)
		m.addFailure(payload, e.At)
	default:
		return errors.ErrInvalidPayload
	}
	return nil
}

// addFailure keeps the latest failures first, bounded to maxRecentFailures.
func (m *DispatchMonitor) addFailure(payload event.DispatchFailed, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	failure := RecentFailure{
		MessageID: payload.MessageID.String(),
		Detail:    payload.Detail,
		Timestamp: at.Format(time.RFC3339),
	}
	m.failures = append([]RecentFailure{failure}, m.failures...)
	if len(m.failures) > maxRecentFailures {
		m.failures = m.failures[:maxRecentFailures]
	}
}

func (m *DispatchMonitor) Stats() DispatchStats {
	stats := DispatchStats{
		MessagesStored: atomic.LoadUint64(&m.stored),
		DispatchOK:     atomic.LoadUint64(&m.dispatched),
		DispatchFailed: atomic.LoadUint64(&m.failed),
		UptimeSeconds:  int64(time.Since(m.startedAt).Seconds()),
	}

	m.mu.RLock()
	stats.RecentFailures = append([]RecentFailure{}, m.failures...)
	m.mu.RUnlock()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	stats.AllocMemMb = mem.Alloc / 1024 / 1024
	stats.NumGC = mem.NumGC

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		m.log.Debug("Error while retrieving own process", "err", err)
		return stats
	}
	if info, err := p.MemoryInfo(); err == nil {
		stats.RSSMb = info.RSS / 1024 / 1024
	}
	if cpu, err := p.CPUPercent(); err == nil {
		stats.CPUPercent = cpu
	}
	return stats
}
