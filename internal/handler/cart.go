package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/farmgate/storefront/internal/cart"
	"github.com/farmgate/storefront/internal/domain"
	"github.com/farmgate/storefront/internal/logger"
)

// CartLineResponse is one cart position in API responses.
type CartLineResponse struct {
	ID        string `json:"id"`
	ItemKind  string `json:"item_kind"`
	ItemID    string `json:"item_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Subtotal  string `json:"subtotal"`
	Currency  string `json:"currency"`
}

// CartResponse is the derived cart view with totals.
type CartResponse struct {
	OwnerID   string             `json:"owner_id,omitempty"`
	Lines     []CartLineResponse `json:"lines"`
	ItemCount int                `json:"item_count"`
	Total     string             `json:"total"`
	Currency  string             `json:"currency,omitempty"`
}

func newCartResponse(c domain.Cart) CartResponse {
	resp := CartResponse{
		OwnerID:   c.OwnerID,
		Lines:     make([]CartLineResponse, 0, len(c.Lines)),
		ItemCount: c.ItemCount,
		Total:     c.Total.Amount.String(),
	}
	if len(c.Lines) > 0 {
		resp.Currency = c.Total.Currency.String()
	}

	for _, line := range c.Lines {
		resp.Lines = append(resp.Lines, CartLineResponse{
			ID:        line.ID,
			ItemKind:  string(line.ItemRef.Kind()),
			ItemID:    line.ItemRef.ID().String(),
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice.Amount.String(),
			Subtotal:  line.Subtotal().Amount.String(),
			Currency:  line.UnitPrice.Currency.String(),
		})
	}

	return resp
}

// HandleGetCart returns the current cart for the request's identity.
func HandleGetCart(svc cart.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident := identityFromRequest(r)
		if !requireSession(w, ident) {
			return
		}

		current, err := svc.Cart(r.Context(), ident)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to load cart", "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, newCartResponse(current))
	}
}

type AddItemRequest struct {
	ItemKind string `json:"item_kind" validate:"required,itemkind"`
	ItemID   string `json:"item_id" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"omitempty,min=1,max=10000"`
}

// HandleAddItem adds an item to the cart, snapshotting its price when the
// line is new.
func HandleAddItem(svc cart.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		ident := identityFromRequest(r)
		if !requireSession(w, ident) {
			return
		}

		var req AddItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode add item request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid add item request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		ref, err := domain.ParseItemRef(req.ItemKind, req.ItemID)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		current, err := svc.AddItem(r.Context(), ident, ref, req.Quantity)
		if err != nil {
			log.Error("Failed to add item", "error", err, "item", ref.String())
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, newCartResponse(current))
	}
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"min=-10000,max=10000"`
}

// HandleUpdateQuantity overwrites a line's quantity; zero or negative
// quantities remove the line.
func HandleUpdateQuantity(svc cart.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		ident := identityFromRequest(r)
		if !requireSession(w, ident) {
			return
		}

		var req UpdateQuantityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode update quantity request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid update quantity request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		lineID := chi.URLParam(r, "lineID")

		current, err := svc.UpdateQuantity(r.Context(), ident, lineID, req.Quantity)
		if err != nil {
			log.Error("Failed to update quantity", "error", err, "line_id", lineID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, newCartResponse(current))
	}
}

// HandleRemoveItem deletes a line; removing an absent line succeeds.
func HandleRemoveItem(svc cart.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident := identityFromRequest(r)
		if !requireSession(w, ident) {
			return
		}

		lineID := chi.URLParam(r, "lineID")

		current, err := svc.RemoveItem(r.Context(), ident, lineID)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to remove item", "error", err, "line_id", lineID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, newCartResponse(current))
	}
}

// HandleClearCart deletes every line for the identity's cart.
func HandleClearCart(svc cart.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident := identityFromRequest(r)
		if !requireSession(w, ident) {
			return
		}

		if err := svc.ClearCart(r.Context(), ident); err != nil {
			logger.FromContext(r.Context()).Error("Failed to clear cart", "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Cart cleared"})
	}
}

// HandleMergeCart is the identity-transition signal: the caller reports that
// the session's visitor now owns an authenticated identity, and the
// session's ephemeral cart is folded into the owner's durable cart. Safe to
// retry; merging an already-empty session cart is a no-op.
func HandleMergeCart(svc cart.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		ident := identityFromRequest(r)
		if ident.IsAnonymous() || ident.SessionID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		current, err := svc.MergeOnAuthentication(r.Context(), ident)
		if err != nil {
			log.Error("Cart merge failed", "error", err, "owner_id", ident.OwnerID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, newCartResponse(current))
	}
}
