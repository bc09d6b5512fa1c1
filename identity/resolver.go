// Package identity derives the owner id that scopes a caller's messages.
package identity

import (
	"hive-signal/domain"
	"time"
)

// Carrier is the transport side storage of identity tokens, cookies over HTTP.
type Carrier interface {
	Cookie(name string) (string, bool)
	// SetCookie stores value under name. A zero ttl keeps it for the browser session.
	SetCookie(name, value string, ttl time.Duration)
	ClearCookie(name string)
}

// Resolver yields the owner id of the caller behind a carrier.
type Resolver interface {
	Mode() domain.ScopeMode
	// Resolve is used before writes and may establish a new identity.
	Resolve(carrier Carrier) (string, error)
	// Peek never establishes an identity. It returns errors.ErrNoIdentity when
	// the caller has none yet and errors.ErrUnauthenticated when one is required.
	Peek(carrier Carrier) (string, error)
}
