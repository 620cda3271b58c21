package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"marketplace-backend/internal/domains/listing/model"
	"marketplace-backend/internal/domains/listing/service"
	"marketplace-backend/internal/shared/response"
)

// =====================================================
// LISTING HANDLER
// =====================================================

type ListingHandler struct {
	listingService service.ServiceInterface
}

func NewListingHandler(listingService service.ServiceInterface) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
	}
}

func respondError(c *gin.Context, err error) {
	var listingErr *model.ListingError
	if !errors.As(err, &listingErr) {
		response.InternalServerError(c, "An unexpected error occurred")
		return
	}

	status := http.StatusInternalServerError
	switch listingErr.Code {
	case model.ErrCodeListingNotFound:
		status = http.StatusNotFound
	case model.ErrCodeDuplicateSlug:
		status = http.StatusConflict
	case model.ErrCodeValidation:
		status = http.StatusBadRequest
	}

	response.ErrorResponse(c, status, listingErr.Code, listingErr.Message)
}

// CreateListing handles POST /api/v1/listings
func (h *ListingHandler) CreateListing(c *gin.Context) {
	value, exists := c.Get("user_id")
	sellerID, ok := value.(uuid.UUID)
	if !exists || !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	sellerName := ""
	if name, exists := c.Get("user_name"); exists {
		sellerName, _ = name.(string)
	}

	var req model.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	listing, err := h.listingService.CreateListing(c.Request.Context(), sellerID, sellerName, req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, listing)
}

// GetListing handles GET /api/v1/listings/:listing_id
func (h *ListingHandler) GetListing(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("listing_id"))
	if err != nil {
		response.BadRequest(c, "Invalid listing_id format")
		return
	}

	listing, err := h.listingService.GetListing(c.Request.Context(), listingID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, listing)
}

// GetListingBySlug handles GET /api/v1/listings/slug/:slug
func (h *ListingHandler) GetListingBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		response.BadRequest(c, "Missing slug")
		return
	}

	listing, err := h.listingService.GetListingBySlug(c.Request.Context(), slug)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, listing)
}

// ListListings handles GET /api/v1/listings
func (h *ListingHandler) ListListings(c *gin.Context) {
	var req model.ListListingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.listingService.ListListings(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}
