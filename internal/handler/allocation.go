package handler

import (
	"fmt"
	"net/http"

	"github.com/mintforge/packvault/internal/allocation"
	"github.com/mintforge/packvault/internal/domain"
	"github.com/mintforge/packvault/internal/logger"
)

// AllocationHandler serves the pack-opening and wallet surface.
type AllocationHandler struct {
	service allocation.Service
}

// NewAllocationHandler creates a new AllocationHandler
func NewAllocationHandler(service allocation.Service) *AllocationHandler {
	return &AllocationHandler{service: service}
}

// OpenPackRequest is the body of the open endpoint.
type OpenPackRequest struct {
	PackID string `json:"pack_id" validate:"required"`
	UserID string `json:"user_id" validate:"required"`
}

// HandleOpenPack runs one allocation
// @Summary Open a pack
// @Description Debits the pack price, draws an item under the pack's rarity weights, and grants it atomically
// @Tags pack
// @Accept json
// @Produce json
// @Param request body OpenPackRequest true "Open request"
// @Success 200 {object} domain.OpenResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /pack/open [post]
func (h *AllocationHandler) HandleOpenPack(w http.ResponseWriter, r *http.Request) {
	var req OpenPackRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Open pack"); err != nil {
		return
	}

	result, err := h.service.OpenPack(r.Context(), req.PackID, req.UserID)
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgOpenPackFailed,
			"pack", req.PackID, "user", req.UserID, "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleGetWallet reads a user's balance
// @Summary Get wallet
// @Description Returns the user's current balance
// @Tags wallet
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} domain.Wallet
// @Failure 404 {object} ErrorResponse
// @Router /wallet [get]
func (h *AllocationHandler) HandleGetWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	wallet, err := h.service.GetWallet(r.Context(), userID)
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgGetWalletFailed, "user", userID, "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, wallet)
}

// CreditWalletRequest is the body of the credit endpoint.
type CreditWalletRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Amount int    `json:"amount" validate:"required,min=1"`
}

// CreditWalletResponse reports the post-credit balance.
type CreditWalletResponse struct {
	Message string `json:"message"`
	Balance int    `json:"balance"`
}

// HandleCreditWallet funds a wallet
// @Summary Credit a wallet
// @Description Adds funds to a user's wallet, creating it on first use
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body CreditWalletRequest true "Credit request"
// @Success 200 {object} CreditWalletResponse
// @Failure 400 {object} ErrorResponse
// @Router /wallet/credit [post]
func (h *AllocationHandler) HandleCreditWallet(w http.ResponseWriter, r *http.Request) {
	var req CreditWalletRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Credit wallet"); err != nil {
		return
	}

	balance, err := h.service.CreditWallet(r.Context(), req.UserID, req.Amount)
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgCreditWalletFailed, "user", req.UserID, "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, CreditWalletResponse{
		Message: fmt.Sprintf(MsgWalletCreditedFormat, req.Amount),
		Balance: balance,
	})
}

// HandleGetAllocations reads allocation history
// @Summary Get allocation history
// @Description Returns the user's allocation audit records, newest first
// @Tags allocations
// @Produce json
// @Param user_id query string true "User ID"
// @Param limit query int false "Page size"
// @Success 200 {array} domain.AllocationRecord
// @Failure 400 {object} ErrorResponse
// @Router /allocations [get]
func (h *AllocationHandler) HandleGetAllocations(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}
	limit, ok := GetLimitParam(r, w, allocation.HistoryDefaultLimit)
	if !ok {
		return
	}

	records, err := h.service.ListAllocations(r.Context(), userID, limit)
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgGetAllocationsFailed, "user", userID, "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}
	if records == nil {
		records = []domain.AllocationRecord{}
	}

	respondJSON(w, http.StatusOK, records)
}
