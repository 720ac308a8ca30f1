package handler

import (
	"net/http"

	"github.com/farmgate/storefront/internal/domain"
)

// Identity headers. Authentication credential issuance is external; the
// storefront consumes the owner id as an opaque, already-verified value and
// the session id as the device-local cart key.
const (
	HeaderOwnerID   = "X-Owner-ID"
	HeaderSessionID = "X-Session-ID"
)

// identityFromRequest builds the owner context for a request. A request
// without a session id gets an empty anonymous identity; handlers that need
// a session reject it explicitly.
func identityFromRequest(r *http.Request) domain.Identity {
	owner := r.Header.Get(HeaderOwnerID)
	session := r.Header.Get(HeaderSessionID)

	if owner == "" {
		return domain.Anonymous(session)
	}
	return domain.Authenticated(owner, session)
}

// requireSession rejects anonymous requests that carry no session id, since
// there is no store to address without one.
func requireSession(w http.ResponseWriter, ident domain.Identity) bool {
	if ident.IsAnonymous() && ident.SessionID == "" {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return false
	}
	return true
}
