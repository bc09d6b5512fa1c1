package domain

import "fmt"

// ScopeMode decides which identifier partitions stored messages.
// A deployment runs exactly one mode.
type ScopeMode string

const (
	ScopeSession ScopeMode = "session"
	ScopeAccount ScopeMode = "account"
)

func ParseScopeMode(s string) (ScopeMode, error) {
	switch ScopeMode(s) {
	case ScopeSession, ScopeAccount:
		return ScopeMode(s), nil
	}
	return "", fmt.Errorf("unknown owner scope %q, expected %q or %q", s, ScopeSession, ScopeAccount)
}

// OwnerField is the JSON field carrying the owner id of a serialized message.
func (m ScopeMode) OwnerField() string {
	if m == ScopeAccount {
		return "user_id"
	}
	return "session_id"
}
