package domain

// Identity is the owner context driving which store backs the cart view.
// It is supplied by the caller on every operation and observed, not owned,
// by the cart engine.
type Identity struct {
	// OwnerID is the stable authenticated owner id, empty while anonymous.
	OwnerID string
	// SessionID identifies the visitor's device-local session and selects
	// the ephemeral store while anonymous.
	SessionID string
}

// Anonymous returns the identity of a visitor without an authenticated owner.
func Anonymous(sessionID string) Identity {
	return Identity{SessionID: sessionID}
}

// Authenticated returns the identity of a signed-in owner.
func Authenticated(ownerID, sessionID string) Identity {
	return Identity{OwnerID: ownerID, SessionID: sessionID}
}

// IsAnonymous reports whether the cart is backed by the ephemeral store.
func (i Identity) IsAnonymous() bool {
	return i.OwnerID == ""
}

// LockKey returns the serialization key for mutations under this identity.
// Operations for the same owner context are applied in issue order;
// different owners are independent.
func (i Identity) LockKey() string {
	if i.IsAnonymous() {
		return "session:" + i.SessionID
	}
	return "owner:" + i.OwnerID
}
