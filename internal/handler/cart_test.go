package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/farmgate/storefront/internal/domain"
	"github.com/farmgate/storefront/internal/handler"
)

var testProductID = uuid.MustParse("22222222-2222-2222-2222-222222222222")

func testCart() domain.Cart {
	line := domain.CartLine{
		ID:        "line-1",
		OwnerID:   "owner-1",
		ItemRef:   domain.ProductRef(testProductID),
		Quantity:  2,
		UnitPrice: domain.MustMoney("10", "EUR"),
	}
	cart, _ := domain.NewCart("owner-1", []domain.CartLine{line})
	return cart
}

func withIdentity(r *http.Request, owner, session string) *http.Request {
	if owner != "" {
		r.Header.Set(handler.HeaderOwnerID, owner)
	}
	if session != "" {
		r.Header.Set(handler.HeaderSessionID, session)
	}
	return r
}

func TestHandleGetCart(t *testing.T) {
	handler.InitValidator()

	tests := []struct {
		name           string
		owner          string
		session        string
		setupMock      func(*MockCartService)
		expectedStatus int
		expectedError  string
	}{
		{
			name:    "Authenticated cart",
			owner:   "owner-1",
			session: "session-1",
			setupMock: func(m *MockCartService) {
				m.On("Cart", mock.Anything, domain.Authenticated("owner-1", "session-1")).
					Return(testCart(), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "Anonymous cart",
			session: "session-1",
			setupMock: func(m *MockCartService) {
				m.On("Cart", mock.Anything, domain.Anonymous("session-1")).
					Return(domain.Cart{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "No identity at all",
			setupMock:      func(m *MockCartService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid request",
		},
		{
			name:    "Store unavailable",
			session: "session-1",
			setupMock: func(m *MockCartService) {
				m.On("Cart", mock.Anything, mock.Anything).
					Return(domain.Cart{}, domain.ErrPersistence)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedError:  "temporarily unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockCartService)
			tt.setupMock(mockSvc)

			req := withIdentity(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil), tt.owner, tt.session)
			w := httptest.NewRecorder()

			handler.HandleGetCart(mockSvc)(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, strings.ToLower(w.Body.String()), tt.expectedError)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestHandleAddItem(t *testing.T) {
	handler.InitValidator()

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockCartService)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Success with explicit quantity",
			requestBody: handler.AddItemRequest{
				ItemKind: "product",
				ItemID:   testProductID.String(),
				Quantity: 2,
			},
			setupMock: func(m *MockCartService) {
				m.On("AddItem", mock.Anything, domain.Anonymous("session-1"), domain.ProductRef(testProductID), 2).
					Return(testCart(), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Quantity defaults to one",
			requestBody: handler.AddItemRequest{
				ItemKind: "lot",
				ItemID:   testProductID.String(),
			},
			setupMock: func(m *MockCartService) {
				m.On("AddItem", mock.Anything, domain.Anonymous("session-1"), domain.LotRef(testProductID), 1).
					Return(testCart(), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Malformed JSON",
			requestBody:    "not-json",
			setupMock:      func(m *MockCartService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid request",
		},
		{
			name: "Unknown item kind",
			requestBody: handler.AddItemRequest{
				ItemKind: "voucher",
				ItemID:   testProductID.String(),
				Quantity: 1,
			},
			setupMock:      func(m *MockCartService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid request",
		},
		{
			name: "Negative quantity",
			requestBody: handler.AddItemRequest{
				ItemKind: "product",
				ItemID:   testProductID.String(),
				Quantity: -3,
			},
			setupMock:      func(m *MockCartService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid request",
		},
		{
			name: "Item vanished from catalog",
			requestBody: handler.AddItemRequest{
				ItemKind: "product",
				ItemID:   testProductID.String(),
				Quantity: 1,
			},
			setupMock: func(m *MockCartService) {
				m.On("AddItem", mock.Anything, mock.Anything, mock.Anything, 1).
					Return(domain.Cart{}, domain.ErrItemNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "no longer available",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockCartService)
			tt.setupMock(mockSvc)

			var body []byte
			if s, ok := tt.requestBody.(string); ok {
				body = []byte(s)
			} else {
				var err error
				body, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewReader(body)), "", "session-1")
			w := httptest.NewRecorder()

			handler.HandleAddItem(mockSvc)(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, strings.ToLower(w.Body.String()), tt.expectedError)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

// lineRequest routes the request through chi so URL params resolve.
func lineRequest(method, lineID string, body []byte, h http.HandlerFunc) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.MethodFunc(method, "/api/v1/cart/items/{lineID}", h)

	req := httptest.NewRequest(method, "/api/v1/cart/items/"+lineID, bytes.NewReader(body))
	req.Header.Set(handler.HeaderSessionID, "session-1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleUpdateQuantity(t *testing.T) {
	handler.InitValidator()

	t.Run("Success", func(t *testing.T) {
		mockSvc := new(MockCartService)
		mockSvc.On("UpdateQuantity", mock.Anything, domain.Anonymous("session-1"), "0", 5).
			Return(testCart(), nil)

		body, _ := json.Marshal(handler.UpdateQuantityRequest{Quantity: 5})
		w := lineRequest(http.MethodPatch, "0", body, handler.HandleUpdateQuantity(mockSvc))

		assert.Equal(t, http.StatusOK, w.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Unknown line", func(t *testing.T) {
		mockSvc := new(MockCartService)
		mockSvc.On("UpdateQuantity", mock.Anything, mock.Anything, "99", 5).
			Return(domain.Cart{}, domain.ErrLineNotFound)

		body, _ := json.Marshal(handler.UpdateQuantityRequest{Quantity: 5})
		w := lineRequest(http.MethodPatch, "99", body, handler.HandleUpdateQuantity(mockSvc))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, strings.ToLower(w.Body.String()), "not found")
	})

	t.Run("Malformed body", func(t *testing.T) {
		mockSvc := new(MockCartService)

		w := lineRequest(http.MethodPatch, "0", []byte("{"), handler.HandleUpdateQuantity(mockSvc))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockSvc.AssertNotCalled(t, "UpdateQuantity")
	})
}

func TestHandleRemoveItem(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockSvc := new(MockCartService)
		mockSvc.On("RemoveItem", mock.Anything, domain.Anonymous("session-1"), "0").
			Return(domain.Cart{}, nil)

		w := lineRequest(http.MethodDelete, "0", nil, handler.HandleRemoveItem(mockSvc))

		assert.Equal(t, http.StatusOK, w.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestHandleClearCart(t *testing.T) {
	mockSvc := new(MockCartService)
	mockSvc.On("ClearCart", mock.Anything, domain.Anonymous("session-1")).Return(nil)

	req := withIdentity(httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil), "", "session-1")
	w := httptest.NewRecorder()

	handler.HandleClearCart(mockSvc)(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Cart cleared")
	mockSvc.AssertExpectations(t)
}

func TestHandleMergeCart(t *testing.T) {
	tests := []struct {
		name           string
		owner          string
		session        string
		setupMock      func(*MockCartService)
		expectedStatus int
		expectedError  string
	}{
		{
			name:    "Success",
			owner:   "owner-1",
			session: "session-1",
			setupMock: func(m *MockCartService) {
				m.On("MergeOnAuthentication", mock.Anything, domain.Authenticated("owner-1", "session-1")).
					Return(testCart(), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Anonymous caller",
			session:        "session-1",
			setupMock:      func(m *MockCartService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid request",
		},
		{
			name:           "Missing session",
			owner:          "owner-1",
			setupMock:      func(m *MockCartService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid request",
		},
		{
			name:    "Partial merge",
			owner:   "owner-1",
			session: "session-1",
			setupMock: func(m *MockCartService) {
				m.On("MergeOnAuthentication", mock.Anything, mock.Anything).
					Return(domain.Cart{}, domain.ErrMergeIncomplete)
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "retry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockCartService)
			tt.setupMock(mockSvc)

			req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/v1/cart/merge", nil), tt.owner, tt.session)
			w := httptest.NewRecorder()

			handler.HandleMergeCart(mockSvc)(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, strings.ToLower(w.Body.String()), tt.expectedError)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestCartResponseShape(t *testing.T) {
	mockSvc := new(MockCartService)
	mockSvc.On("Cart", mock.Anything, mock.Anything).Return(testCart(), nil)

	req := withIdentity(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil), "owner-1", "session-1")
	w := httptest.NewRecorder()

	handler.HandleGetCart(mockSvc)(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp handler.CartResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	assert.Equal(t, "owner-1", resp.OwnerID)
	assert.Equal(t, 2, resp.ItemCount)
	assert.Equal(t, "20", resp.Total)
	assert.Equal(t, "EUR", resp.Currency)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, "product", resp.Lines[0].ItemKind)
	assert.Equal(t, "10", resp.Lines[0].UnitPrice)
	assert.Equal(t, "20", resp.Lines[0].Subtotal)
}
