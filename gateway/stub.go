package gateway

import (
	"context"
	"encoding/hex"
	"log/slog"

	"github.com/google/uuid"
)

// StubGateway accepts every message without any network call.
type StubGateway struct {
	cfg Config
	log *slog.Logger
}

func NewStubGateway(cfg Config, log *slog.Logger) *StubGateway {
	return &StubGateway{cfg: cfg, log: log}
}

var _ IGateway = (*StubGateway)(nil)

// Send returns a Twilio shaped SID: "SM" followed by 32 hex characters.
func (s *StubGateway) Send(_ context.Context, phoneNumber, _ string) DeliveryResult {
	if !s.cfg.Configured() {
		return notConfigured()
	}
	id := uuid.New()
	sid := "SM" + hex.EncodeToString(id[:])
	s.log.Debug("Stub SMS accepted", "sid", sid, "to", phoneNumber)
	return DeliveryResult{Success: true, ProviderMessageID: sid}
}
