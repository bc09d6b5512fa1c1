package identity

import (
	"hive-signal/auth"
	"hive-signal/domain"
	"hive-signal/errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type cookieJar struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newCookieJar() *cookieJar {
	return &cookieJar{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (j *cookieJar) Cookie(name string) (string, bool) {
	v, ok := j.values[name]
	return v, ok
}

func (j *cookieJar) SetCookie(name, value string, ttl time.Duration) {
	j.values[name] = value
	j.ttls[name] = ttl
}

func (j *cookieJar) ClearCookie(name string) {
	delete(j.values, name)
}

func TestSessionResolver_Mints_Once(t *testing.T) {
	req := require.New(t)
	resolver := NewSessionResolver(slog.Default())
	jar := newCookieJar()

	_, err := resolver.Peek(jar)
	req.ErrorIs(err, errors.ErrNoIdentity)

	first, err := resolver.Resolve(jar)
	req.NoError(err)
	_, err = uuid.Parse(first)
	req.NoError(err)
	req.Equal(first, jar.values[SessionCookieName])
	req.Zero(jar.ttls[SessionCookieName], "the core enforces no expiry")

	second, err := resolver.Resolve(jar)
	req.NoError(err)
	req.Equal(first, second)

	peeked, err := resolver.Peek(jar)
	req.NoError(err)
	req.Equal(first, peeked)
	req.Equal(domain.ScopeSession, resolver.Mode())
}

func TestSessionResolver_Reuses_Existing_Token(t *testing.T) {
	req := require.New(t)
	resolver := NewSessionResolver(slog.Default())
	jar := newCookieJar()
	jar.values[SessionCookieName] = "sess-abc"

	owner, err := resolver.Resolve(jar)
	req.NoError(err)
	req.Equal("sess-abc", owner)
}

func TestAccountResolver(t *testing.T) {
	req := require.New(t)
	tokens, err := auth.NewTokenIssuer("secret", time.Hour)
	req.NoError(err)
	resolver := NewAccountResolver(slog.Default(), tokens)
	jar := newCookieJar()

	_, err = resolver.Resolve(jar)
	req.ErrorIs(err, errors.ErrUnauthenticated)
	_, err = resolver.Peek(jar)
	req.ErrorIs(err, errors.ErrUnauthenticated)
	req.Empty(jar.values, "account mode never mints an identity")

	req.NoError(resolver.SignIn(jar, "account-7"))
	req.Equal(time.Hour, jar.ttls[AccountCookieName])

	owner, err := resolver.Resolve(jar)
	req.NoError(err)
	req.Equal("account-7", owner)

	resolver.SignOut(jar)
	_, err = resolver.Peek(jar)
	req.ErrorIs(err, errors.ErrUnauthenticated)
	req.Equal(domain.ScopeAccount, resolver.Mode())
}

func TestAccountResolver_Rejects_Forged_Token(t *testing.T) {
	req := require.New(t)
	tokens, err := auth.NewTokenIssuer("secret", time.Hour)
	req.NoError(err)
	forger, err := auth.NewTokenIssuer("guess", time.Hour)
	req.NoError(err)
	forged, err := forger.GenerateToken("account-7")
	req.NoError(err)

	jar := newCookieJar()
	jar.values[AccountCookieName] = forged

	_, err = NewAccountResolver(slog.Default(), tokens).Resolve(jar)
	req.ErrorIs(err, errors.ErrUnauthenticated)
}

func TestAccountResolver_SignOut_Only_Clears_Carrier(t *testing.T) {
	req := require.New(t)
	tokens, err := auth.NewTokenIssuer("secret", time.Hour)
	req.NoError(err)
	resolver := NewAccountResolver(slog.Default(), tokens)

	browser := newCookieJar()
	req.NoError(resolver.SignIn(browser, "account-7"))
	copied := newCookieJar()
	copied.values[AccountCookieName] = browser.values[AccountCookieName]

	resolver.SignOut(browser)
	_, err = resolver.Peek(browser)
	req.ErrorIs(err, errors.ErrUnauthenticated)

	owner, err := resolver.Peek(copied)
	req.NoError(err)
	req.Equal("account-7", owner)
}
