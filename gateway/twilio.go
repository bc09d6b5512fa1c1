package gateway

import (
	"context"
	"hive-signal/errors"
	"log/slog"

	"github.com/samber/lo"
	"github.com/twilio/twilio-go"
	twclient "github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

const genericSendFailure = "failed to send SMS"

// messageCreator is the single Twilio call the gateway relies on.
type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// TwilioGateway sends through the Twilio Messages API.
type TwilioGateway struct {
	cfg     Config
	log     *slog.Logger
	creator messageCreator
}

func NewTwilioGateway(cfg Config, log *slog.Logger) *TwilioGateway {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &TwilioGateway{cfg: cfg, log: log, creator: client.Api}
}

var _ IGateway = (*TwilioGateway)(nil)

// Send issues exactly one CreateMessage call. Provider errors keep the
// provider's message, anything else is reported generically.
// The Twilio client has no context support, so ctx is not propagated.
func (t *TwilioGateway) Send(_ context.Context, phoneNumber, content string) DeliveryResult {
	if !t.cfg.Configured() {
		return notConfigured()
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(phoneNumber)
	params.SetFrom(t.cfg.FromNumber)
	params.SetBody(content)

	resp, err := t.creator.CreateMessage(params)
	if err != nil {
		var restErr *twclient.TwilioRestError
		if errors.As(err, &restErr) {
			t.log.Debug("Twilio rejected the message", "code", restErr.Code, "status", restErr.Status, "err", restErr.Message)
			return DeliveryResult{Success: false, ErrorDetail: restErr.Message}
		}
		t.log.Debug("Failed to send SMS", "err", err)
		return DeliveryResult{Success: false, ErrorDetail: genericSendFailure}
	}

	sid := ""
	if resp != nil {
		sid = lo.FromPtr(resp.Sid)
	}
	t.log.Info("SMS sent via Twilio", "sid", sid, "to", phoneNumber)
	return DeliveryResult{Success: true, ProviderMessageID: sid}
}
