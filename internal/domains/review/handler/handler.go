package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"marketplace-backend/internal/domains/review/model"
	"marketplace-backend/internal/domains/review/service"
	"marketplace-backend/internal/shared/response"
)

// =====================================================
// REVIEW HANDLER
// =====================================================

type ReviewHandler struct {
	reviewService service.ServiceInterface
}

func NewReviewHandler(reviewService service.ServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// ========================================
// Helpers
// ========================================

// getUserID reads the authenticated user's ID set by the auth middleware
func getUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

// getUserName reads the authenticated user's display name
func getUserName(c *gin.Context) string {
	value, exists := c.Get("user_name")
	if !exists {
		return ""
	}
	name, _ := value.(string)
	return name
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps a domain error onto the HTTP surface
func respondError(c *gin.Context, err error) {
	var reviewErr *model.ReviewError
	if !errors.As(err, &reviewErr) {
		response.InternalServerError(c, "An unexpected error occurred")
		return
	}

	status := http.StatusInternalServerError
	switch reviewErr.Code {
	case model.ErrCodeReviewNotFound, model.ErrCodeReplyNotFound, model.ErrCodeListingNotFound:
		status = http.StatusNotFound
	case model.ErrCodeDuplicateReport:
		status = http.StatusConflict
	case model.ErrCodeForbidden:
		status = http.StatusForbidden
	case model.ErrCodeValidation:
		status = http.StatusBadRequest
	case model.ErrCodeUnauthorized:
		status = http.StatusUnauthorized
	}

	response.ErrorResponse(c, status, reviewErr.Code, reviewErr.Message)
}

// ========================================
// User Endpoints
// ========================================

// CreateReview handles POST /api/v1/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), userID, getUserName(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, review)
}

// GetReview handles GET /api/v1/reviews/:id
func (h *ReviewHandler) GetReview(c *gin.Context) {
	reviewID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	review, err := h.reviewService.GetReview(c.Request.Context(), reviewID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, review)
}

// ListReviews handles GET /api/v1/reviews
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	var req model.ListReviewsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.reviewService.ListReviews(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetListingReviews handles GET /api/v1/listings/:listing_id/reviews
func (h *ReviewHandler) GetListingReviews(c *gin.Context) {
	listingID, ok := parseUUIDParam(c, "listing_id")
	if !ok {
		return
	}

	reviews, err := h.reviewService.GetListingReviews(c.Request.Context(), listingID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, reviews)
}

// UpdateReview handles PUT /api/v1/reviews/:id
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	reviewID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	review, err := h.reviewService.UpdateReview(c.Request.Context(), userID, reviewID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, review)
}

// DeleteReview handles DELETE /api/v1/reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	reviewID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), userID, reviewID); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

// ToggleLike handles POST /api/v1/reviews/:id/like
func (h *ReviewHandler) ToggleLike(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	reviewID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.reviewService.ToggleLike(c.Request.Context(), userID, reviewID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// AddReply handles POST /api/v1/reviews/:id/replies
func (h *ReviewHandler) AddReply(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	reviewID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req model.AddReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	reply, err := h.reviewService.AddReply(c.Request.Context(), userID, getUserName(c), reviewID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, reply)
}

// ReportReview handles POST /api/v1/reviews/:id/report
func (h *ReviewHandler) ReportReview(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	reviewID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req model.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.reviewService.ReportReview(c.Request.Context(), userID, reviewID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ReportReply handles POST /api/v1/reviews/:id/replies/:reply_id/report
func (h *ReviewHandler) ReportReply(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	reviewID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	replyID, ok := parseUUIDParam(c, "reply_id")
	if !ok {
		return
	}

	var req model.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.reviewService.ReportReply(c.Request.Context(), userID, reviewID, replyID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ========================================
// Admin Endpoints
// ========================================

// AdminListReviews handles GET /api/v1/admin/reviews
func (h *ReviewHandler) AdminListReviews(c *gin.Context) {
	var req model.AdminListReviewsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.reviewService.AdminListReviews(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// AdminDeleteReview handles DELETE /api/v1/admin/reviews/:id
func (h *ReviewHandler) AdminDeleteReview(c *gin.Context) {
	reviewID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.reviewService.AdminDeleteReview(c.Request.Context(), reviewID); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

// RestoreReview handles POST /api/v1/admin/reviews/:id/restore
func (h *ReviewHandler) RestoreReview(c *gin.Context) {
	reviewID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	review, err := h.reviewService.RestoreReview(c.Request.Context(), reviewID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, review)
}
