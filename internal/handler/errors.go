package handler

import (
	"errors"
	"net/http"

	"github.com/farmgate/storefront/internal/domain"
)

// User-facing error messages for service errors
const (
	ErrMsgInvalidRequest   = "Invalid request. Please check your inputs."
	ErrMsgItemGone         = "That item is no longer available"
	ErrMsgLineNotFound     = "Cart line not found"
	ErrMsgMergeRetryable   = "Cart merge did not complete; please retry"
	ErrMsgStoreUnavailable = "Store is temporarily unavailable. Please try again."
	ErrMsgServerError      = "Something went wrong"
)

// statusForError maps domain errors to HTTP status codes. The split between
// 404/410-style responses and 503 lets the UI distinguish "item disappeared
// from the catalog" from "transient store failure" when deciding whether to
// offer a retry.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidItemRef):
		return http.StatusBadRequest, ErrMsgInvalidRequest
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemGone
	case errors.Is(err, domain.ErrLineNotFound):
		return http.StatusNotFound, ErrMsgLineNotFound
	case errors.Is(err, domain.ErrMergeIncomplete):
		return http.StatusConflict, ErrMsgMergeRetryable
	case errors.Is(err, domain.ErrPersistence):
		return http.StatusServiceUnavailable, ErrMsgStoreUnavailable
	default:
		return http.StatusInternalServerError, ErrMsgServerError
	}
}

// respondServiceError writes the mapped error response.
func respondServiceError(w http.ResponseWriter, err error) {
	status, message := statusForError(err)
	respondError(w, status, message)
}
