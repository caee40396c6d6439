package identity

import (
	"strings"

	"github.com/google/uuid"
)

// Account is either an authenticated account or anonymous (demo) traffic.
// It is decided once when a request enters the system.
type Account struct {
	id            uuid.UUID
	authenticated bool
}

// Authenticated returns an account identity for a real account
func Authenticated(id uuid.UUID) Account {
	if id == uuid.Nil {
		return Anonymous()
	}
	return Account{id: id, authenticated: true}
}

// Anonymous returns the identity used for demo and unauthenticated traffic
func Anonymous() Account {
	return Account{}
}

// Parse resolves a raw account id from the wire. Anything that is not a
// non-nil UUID is anonymous.
func Parse(raw string) Account {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Anonymous()
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return Anonymous()
	}
	return Authenticated(id)
}

func (a Account) IsAuthenticated() bool {
	return a.authenticated
}

// ID returns the account id and whether the identity is authenticated
func (a Account) ID() (uuid.UUID, bool) {
	return a.id, a.authenticated
}

func (a Account) String() string {
	if !a.authenticated {
		return "anonymous"
	}
	return a.id.String()
}
