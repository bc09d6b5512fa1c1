package server

import (
	"hive-signal/identity"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// cookieCarrier exposes the request and response cookies of one echo request.
type cookieCarrier struct {
	c      echo.Context
	secure bool
}

func newCookieCarrier(c echo.Context, secure bool) *cookieCarrier {
	return &cookieCarrier{c: c, secure: secure}
}

func (cc *cookieCarrier) Cookie(name string) (string, bool) {
	cookie, err := cc.c.Cookie(name)
	if err != nil {
		return "", false
	}
	return cookie.Value, true
}

func (cc *cookieCarrier) SetCookie(name, value string, ttl time.Duration) {
	cookie := cc.baseCookie(name, value)
	if ttl > 0 {
		cookie.MaxAge = int(ttl.Seconds())
		cookie.Expires = time.Now().Add(ttl)
	}
	cc.c.SetCookie(cookie)
}

func (cc *cookieCarrier) ClearCookie(name string) {
	cookie := cc.baseCookie(name, "")
	cookie.MaxAge = -1
	cookie.Expires = time.Unix(0, 0)
	cc.c.SetCookie(cookie)
}

func (cc *cookieCarrier) baseCookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   cc.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// pendingCarrier holds cookie writes back until Commit, so a request that
// fails after resolving an identity leaves the client untouched.
type pendingCarrier struct {
	target  identity.Carrier
	pending []func()
}

func newPendingCarrier(target identity.Carrier) *pendingCarrier {
	return &pendingCarrier{target: target}
}

func (p *pendingCarrier) Cookie(name string) (string, bool) {
	return p.target.Cookie(name)
}

func (p *pendingCarrier) SetCookie(name, value string, ttl time.Duration) {
	p.pending = append(p.pending, func() { p.target.SetCookie(name, value, ttl) })
}

func (p *pendingCarrier) ClearCookie(name string) {
	p.pending = append(p.pending, func() { p.target.ClearCookie(name) })
}

func (p *pendingCarrier) Commit() {
	for _, write := range p.pending {
		write()
	}
	p.pending = nil
}
