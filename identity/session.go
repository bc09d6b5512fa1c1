package identity

import (
	"hive-signal/domain"
	"hive-signal/errors"
	"log/slog"

	"github.com/google/uuid"
)

const SessionCookieName = "sms_session_id"

// SessionResolver scopes messages by an anonymous token minted on first use.
type SessionResolver struct {
	log *slog.Logger
}

func NewSessionResolver(log *slog.Logger) *SessionResolver {
	return &SessionResolver{log: log}
}

var _ Resolver = (*SessionResolver)(nil)

func (r *SessionResolver) Mode() domain.ScopeMode {
	return domain.ScopeSession
}

func (r *SessionResolver) Resolve(carrier Carrier) (string, error) {
	if token, ok := carrier.Cookie(SessionCookieName); ok && token != "" {
		return token, nil
	}
	token := uuid.NewString()
	carrier.SetCookie(SessionCookieName, token, 0)
	r.log.Debug("Minted anonymous session")
	return token, nil
}

func (r *SessionResolver) Peek(carrier Carrier) (string, error) {
	if token, ok := carrier.Cookie(SessionCookieName); ok && token != "" {
		return token, nil
	}
	return "", errors.ErrNoIdentity
}
