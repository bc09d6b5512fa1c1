//go:generate go run go.uber.org/mock/mockgen -source=gateway.go -destination=../mocks/mock_gateway.go -package=mocks

// Package gateway relays message content to an external SMS provider.
// Every implementation makes a single attempt per call and reports the outcome
// as a DeliveryResult instead of an error.
package gateway

import (
	"context"
	"fmt"
	"hive-signal/errors"
	"log/slog"
)

type Mode string

const (
	ModeStub Mode = "stub"
	ModeLive Mode = "live"
)

type IGateway interface {
	Send(ctx context.Context, phoneNumber, content string) DeliveryResult
}

// Config carries the provider credentials. It is built once at start-up.
type Config struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// Configured reports whether all three values are present.
func (c Config) Configured() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromNumber != ""
}

type DeliveryResult struct {
	Success           bool
	ProviderMessageID string
	ErrorDetail       string
}

// Err returns nil on success and an ErrGateway wrapped detail otherwise.
func (r DeliveryResult) Err() error {
	if r.Success {
		return nil
	}
	return fmt.Errorf("%w: %s", errors.ErrGateway, r.ErrorDetail)
}

func notConfigured() DeliveryResult {
	return DeliveryResult{Success: false, ErrorDetail: errors.ErrGatewayNotConfigured.Error()}
}

// New selects the implementation for the given mode.
func New(mode Mode, cfg Config, log *slog.Logger) (IGateway, error) {
	switch mode {
	case ModeStub:
		log.Info("SMS gateway running in stub mode, no message will leave the process")
		return NewStubGateway(cfg, log), nil
	case ModeLive:
		if !cfg.Configured() {
			log.Warn("SMS gateway credentials are incomplete, every dispatch will fail")
		}
		return NewTwilioGateway(cfg, log), nil
	}
	return nil, fmt.Errorf("unknown gateway mode %q, expected %q or %q", mode, ModeStub, ModeLive)
}
