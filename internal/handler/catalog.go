package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/farmgate/storefront/internal/catalog"
	"github.com/farmgate/storefront/internal/domain"
	"github.com/farmgate/storefront/internal/logger"
)

// ProductResponse is a catalog product in API responses.
type ProductResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	FarmName    string `json:"farm_name,omitempty"`
	Price       string `json:"price"`
	Currency    string `json:"currency"`
}

// LotResponse is an auction lot in API responses.
type LotResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	FarmName     string    `json:"farm_name,omitempty"`
	OpeningPrice string    `json:"opening_price"`
	CurrentPrice string    `json:"current_price"`
	Currency     string    `json:"currency"`
	ClosesAt     time.Time `json:"closes_at"`
}

func newProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		FarmName:    p.FarmName,
		Price:       p.Price.Amount.String(),
		Currency:    p.Price.Currency.String(),
	}
}

// HandleListProducts returns a page of catalog products.
func HandleListProducts(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

		products, err := svc.ListProducts(r.Context(), limit, offset)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to list products", "error", err)
			respondServiceError(w, err)
			return
		}

		resp := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			resp = append(resp, newProductResponse(p))
		}

		respondJSON(w, http.StatusOK, resp)
	}
}

// HandleGetProduct returns one product by id.
func HandleGetProduct(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "productID"))
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, newProductResponse(*product))
	}
}

// HandleGetLot returns one auction lot by id, including its current
// bid-driven price.
func HandleGetLot(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "lotID"))
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		lot, err := svc.GetLot(r.Context(), id)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, LotResponse{
			ID:           lot.ID.String(),
			Title:        lot.Title,
			FarmName:     lot.FarmName,
			OpeningPrice: lot.OpeningPrice.Amount.String(),
			CurrentPrice: lot.CurrentPrice.Amount.String(),
			Currency:     lot.CurrentPrice.Currency.String(),
			ClosesAt:     lot.ClosesAt,
		})
	}
}
