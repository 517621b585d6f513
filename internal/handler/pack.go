package handler

import (
	"net/http"

	"github.com/mintforge/packvault/internal/catalog"
	"github.com/mintforge/packvault/internal/logger"
)

// PackHandler serves the storefront catalog surface.
type PackHandler struct {
	catalog catalog.Service
}

// NewPackHandler creates a new PackHandler
func NewPackHandler(catalogSvc catalog.Service) *PackHandler {
	return &PackHandler{catalog: catalogSvc}
}

// HandleListPacks returns all purchasable packs
// @Summary List active packs
// @Description Returns every pack currently open for purchase, weight tables included
// @Tags pack
// @Produce json
// @Success 200 {array} domain.Pack
// @Failure 500 {object} ErrorResponse
// @Router /pack/list [get]
func (h *PackHandler) HandleListPacks(w http.ResponseWriter, r *http.Request) {
	packs, err := h.catalog.ListActivePacks(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgListPacksFailed, "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, packs)
}

// HandleGetPackItems returns a pack's eligible items with remaining supply
// @Summary Get pack items
// @Description Returns the pack's item catalog annotated with remaining supply (-1 for unlimited)
// @Tags pack
// @Produce json
// @Param id query string true "Pack ID"
// @Success 200 {array} catalog.ItemAvailability
// @Failure 404 {object} ErrorResponse
// @Router /pack/items [get]
func (h *PackHandler) HandleGetPackItems(w http.ResponseWriter, r *http.Request) {
	packID, ok := GetQueryParam(r, w, "id")
	if !ok {
		return
	}

	items, err := h.catalog.ListPackItems(r.Context(), packID)
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgGetPackItemsFailed, "pack", packID, "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, items)
}

// HandleValidatePack checks a pack's weight table
// @Summary Validate pack configuration
// @Description Validates the pack's rarity weight table without opening anything
// @Tags pack
// @Produce json
// @Param id query string true "Pack ID"
// @Success 200 {object} SuccessResponse
// @Failure 409 {object} ErrorResponse
// @Router /pack/validate [post]
func (h *PackHandler) HandleValidatePack(w http.ResponseWriter, r *http.Request) {
	packID, ok := GetQueryParam(r, w, "id")
	if !ok {
		return
	}

	if err := h.catalog.ValidatePack(r.Context(), packID); err != nil {
		logger.FromContext(r.Context()).Warn("Pack failed validation", "pack", packID, "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgPackValidSuccess})
}
