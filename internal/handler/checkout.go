package handler

import (
	"net/http"

	"github.com/farmgate/storefront/internal/checkout"
	"github.com/farmgate/storefront/internal/logger"
)

// QuoteResponse is the pre-order summary for the current cart.
type QuoteResponse struct {
	ItemCount    int    `json:"item_count"`
	Subtotal     string `json:"subtotal"`
	Shipping     string `json:"shipping"`
	Total        string `json:"total"`
	Currency     string `json:"currency"`
	FreeShipping bool   `json:"free_shipping"`
}

// HandleQuote returns the checkout quote for the identity's cart.
func HandleQuote(svc checkout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident := identityFromRequest(r)
		if !requireSession(w, ident) {
			return
		}

		quote, err := svc.Quote(r.Context(), ident)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to compute quote", "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, QuoteResponse{
			ItemCount:    quote.ItemCount,
			Subtotal:     quote.Subtotal.Amount.String(),
			Shipping:     quote.Shipping.Amount.String(),
			Total:        quote.Total.Amount.String(),
			Currency:     quote.Total.Currency.String(),
			FreeShipping: quote.FreeShipping,
		})
	}
}
