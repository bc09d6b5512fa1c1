package identity

import (
	"fmt"
	"hive-signal/auth"
	"hive-signal/domain"
	"hive-signal/errors"
	"log/slog"
)

const AccountCookieName = "_hive_signal_session"

// AccountResolver scopes messages by the id of the signed in account.
// The id travels in a signed token cookie issued at sign in.
type AccountResolver struct {
	log    *slog.Logger
	tokens *auth.TokenIssuer
}

func NewAccountResolver(log *slog.Logger, tokens *auth.TokenIssuer) *AccountResolver {
	return &AccountResolver{log: log, tokens: tokens}
}

var _ Resolver = (*AccountResolver)(nil)

func (r *AccountResolver) Mode() domain.ScopeMode {
	return domain.ScopeAccount
}

func (r *AccountResolver) Resolve(carrier Carrier) (string, error) {
	return r.Peek(carrier)
}

func (r *AccountResolver) Peek(carrier Carrier) (string, error) {
	token, ok := carrier.Cookie(AccountCookieName)
	if !ok || token == "" {
		return "", errors.ErrUnauthenticated
	}
	claims, err := r.tokens.ValidateToken(token)
	if err != nil {
		r.log.Debug("Rejected account session", "err", err)
		return "", fmt.Errorf("%w: %v", errors.ErrUnauthenticated, err)
	}
	return claims.AccountID, nil
}

// SignIn issues the session cookie for the account.
func (r *AccountResolver) SignIn(carrier Carrier, accountID string) error {
	token, err := r.tokens.GenerateToken(accountID)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrTokenGeneration, err)
	}
	carrier.SetCookie(AccountCookieName, token, r.tokens.Duration())
	return nil
}

// SignOut clears the session cookie of this carrier only. Tokens are not
// tracked server side, so a copy taken before sign out stays valid until it
// expires. AUTH_TOKEN_DURATION bounds that window.
func (r *AccountResolver) SignOut(carrier Carrier) {
	carrier.ClearCookie(AccountCookieName)
}
