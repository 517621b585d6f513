package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mintforge/packvault/internal/domain"
)

func TestHandleOpenPack(t *testing.T) {
	serial := 42

	tests := []struct {
		name           string
		reqBody        interface{}
		setupMocks     func(*MockAllocationService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Invalid JSON",
			reqBody:        "invalid json",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name:           "Missing Fields",
			reqBody:        OpenPackRequest{PackID: "pack_bronze"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "This field is required",
		},
		{
			name:    "Pack Not Found",
			reqBody: OpenPackRequest{PackID: "pack_ghost", UserID: "user-1"},
			setupMocks: func(m *MockAllocationService) {
				m.On("OpenPack", mock.Anything, "pack_ghost", "user-1").
					Return(nil, fmt.Errorf("%w: pack_ghost", domain.ErrPackNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgPackNotFoundError,
		},
		{
			name:    "Insufficient Funds",
			reqBody: OpenPackRequest{PackID: "pack_bronze", UserID: "user-1"},
			setupMocks: func(m *MockAllocationService) {
				m.On("OpenPack", mock.Anything, "pack_bronze", "user-1").
					Return(nil, fmt.Errorf("%w: balance 10", domain.ErrInsufficientFunds))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgNotEnoughCoinsError,
		},
		{
			name:    "Catalog Exhausted",
			reqBody: OpenPackRequest{PackID: "pack_bronze", UserID: "user-1"},
			setupMocks: func(m *MockAllocationService) {
				m.On("OpenPack", mock.Anything, "pack_bronze", "user-1").
					Return(nil, domain.ErrNoItemsAvailable)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgNothingAvailableError,
		},
		{
			name:    "Temporary Conflict",
			reqBody: OpenPackRequest{PackID: "pack_bronze", UserID: "user-1"},
			setupMocks: func(m *MockAllocationService) {
				m.On("OpenPack", mock.Anything, "pack_bronze", "user-1").
					Return(nil, domain.ErrTemporaryConflict)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   ErrMsgUnavailableError,
		},
		{
			name:    "Success",
			reqBody: OpenPackRequest{PackID: "pack_bronze", UserID: "user-1"},
			setupMocks: func(m *MockAllocationService) {
				m.On("OpenPack", mock.Anything, "pack_bronze", "user-1").
					Return(&domain.OpenResult{
						AllocationID: "alloc-1",
						ItemID:       "item_crown",
						ItemName:     "Gilded Crown",
						Rarity:       domain.RarityEpic,
						SerialNumber: &serial,
						NewBalance:   75,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"serial_number":42`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockAllocationService)
			if tt.setupMocks != nil {
				tt.setupMocks(mockSvc)
			}
			h := NewAllocationHandler(mockSvc)

			var body []byte
			if s, ok := tt.reqBody.(string); ok {
				body = []byte(s)
			} else {
				body, _ = json.Marshal(tt.reqBody)
			}

			req := httptest.NewRequest(http.MethodPost, "/pack/open", bytes.NewReader(body))
			rr := httptest.NewRecorder()
			h.HandleOpenPack(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestHandleGetWallet(t *testing.T) {
	t.Run("Missing user_id", func(t *testing.T) {
		h := NewAllocationHandler(new(MockAllocationService))

		req := httptest.NewRequest(http.MethodGet, "/wallet", nil)
		rr := httptest.NewRecorder()
		h.HandleGetWallet(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockSvc := new(MockAllocationService)
		mockSvc.On("GetWallet", mock.Anything, "ghost").Return(nil, domain.ErrWalletNotFound)
		h := NewAllocationHandler(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/wallet?user_id=ghost", nil)
		rr := httptest.NewRecorder()
		h.HandleGetWallet(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), ErrMsgWalletNotFoundError)
	})

	t.Run("Success", func(t *testing.T) {
		mockSvc := new(MockAllocationService)
		mockSvc.On("GetWallet", mock.Anything, "user-1").
			Return(&domain.Wallet{UserID: "user-1", Balance: 120}, nil)
		h := NewAllocationHandler(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/wallet?user_id=user-1", nil)
		rr := httptest.NewRecorder()
		h.HandleGetWallet(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"balance":120`)
	})
}

func TestHandleCreditWallet(t *testing.T) {
	t.Run("Rejects non-positive amount", func(t *testing.T) {
		h := NewAllocationHandler(new(MockAllocationService))

		body, _ := json.Marshal(CreditWalletRequest{UserID: "user-1", Amount: 0})
		req := httptest.NewRequest(http.MethodPost, "/wallet/credit", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		h.HandleCreditWallet(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Success", func(t *testing.T) {
		mockSvc := new(MockAllocationService)
		mockSvc.On("CreditWallet", mock.Anything, "user-1", 50).Return(50, nil)
		h := NewAllocationHandler(mockSvc)

		body, _ := json.Marshal(CreditWalletRequest{UserID: "user-1", Amount: 50})
		req := httptest.NewRequest(http.MethodPost, "/wallet/credit", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		h.HandleCreditWallet(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"balance":50`)
		mockSvc.AssertExpectations(t)
	})
}

func TestHandleGetAllocations(t *testing.T) {
	t.Run("Invalid limit", func(t *testing.T) {
		h := NewAllocationHandler(new(MockAllocationService))

		req := httptest.NewRequest(http.MethodGet, "/allocations?user_id=user-1&limit=nope", nil)
		rr := httptest.NewRecorder()
		h.HandleGetAllocations(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), ErrMsgInvalidLimit)
	})

	t.Run("Empty history is an empty array", func(t *testing.T) {
		mockSvc := new(MockAllocationService)
		mockSvc.On("ListAllocations", mock.Anything, "user-1", 50).
			Return([]domain.AllocationRecord(nil), nil)
		h := NewAllocationHandler(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/allocations?user_id=user-1", nil)
		rr := httptest.NewRecorder()
		h.HandleGetAllocations(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "[]\n", rr.Body.String())
	})

	t.Run("Respects limit parameter", func(t *testing.T) {
		mockSvc := new(MockAllocationService)
		mockSvc.On("ListAllocations", mock.Anything, "user-1", 5).
			Return([]domain.AllocationRecord{{AllocationID: "alloc-1", Outcome: domain.OutcomeSuccess}}, nil)
		h := NewAllocationHandler(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/allocations?user_id=user-1&limit=5", nil)
		rr := httptest.NewRecorder()
		h.HandleGetAllocations(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "alloc-1")
		mockSvc.AssertExpectations(t)
	})
}
