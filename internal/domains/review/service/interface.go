package service

import (
	"context"

	"github.com/google/uuid"

	"marketplace-backend/internal/domains/review/model"
)

// =====================================================
// REVIEW SERVICE INTERFACE
// =====================================================

// ServiceInterface is the moderation facade. Domain failures (not found,
// forbidden, duplicate report, validation) come back as *model.ReviewError
// the caller can branch on; only persistence failures surface as plain errors.
type ServiceInterface interface {
	// ========================================
	// USER OPERATIONS
	// ========================================

	// CreateReview creates a review authored by the caller
	CreateReview(ctx context.Context, userID uuid.UUID, userName string, req model.CreateReviewRequest) (*model.ReviewResponse, error)

	// GetReview gets a visible review by ID
	GetReview(ctx context.Context, id uuid.UUID) (*model.ReviewResponse, error)

	// ListReviews lists all reviews, newest first.
	// Degrades to an empty page if the store is unreadable.
	ListReviews(ctx context.Context, req model.ListReviewsRequest) (*model.ListReviewsResponse, error)

	// GetListingReviews lists the visible reviews of a listing
	GetListingReviews(ctx context.Context, listingID uuid.UUID) ([]model.ReviewResponse, error)

	// UpdateReview edits the caller's own review
	UpdateReview(ctx context.Context, userID, reviewID uuid.UUID, req model.UpdateReviewRequest) (*model.ReviewResponse, error)

	// DeleteReview deletes the caller's own review
	DeleteReview(ctx context.Context, userID, reviewID uuid.UUID) error

	// ToggleLike flips the caller's like on a review
	ToggleLike(ctx context.Context, userID, reviewID uuid.UUID) (*model.LikeResult, error)

	// AddReply replies to a review
	AddReply(ctx context.Context, userID uuid.UUID, userName string, reviewID uuid.UUID, req model.AddReplyRequest) (*model.ReplyResponse, error)

	// ReportReview reports a review on behalf of the caller
	ReportReview(ctx context.Context, userID, reviewID uuid.UUID, req model.ReportRequest) (*model.ReportResult, error)

	// ReportReply reports a reply on behalf of the caller
	ReportReply(ctx context.Context, userID, reviewID, replyID uuid.UUID, req model.ReportRequest) (*model.ReportResult, error)

	// ========================================
	// ADMIN OPERATIONS
	// ========================================

	// AdminListReviews lists reviews with admin filters, hidden ones included
	AdminListReviews(ctx context.Context, req model.AdminListReviewsRequest) (*model.AdminListReviewsResponse, error)

	// AdminDeleteReview deletes any review unconditionally
	AdminDeleteReview(ctx context.Context, reviewID uuid.UUID) error

	// RestoreReview clears a review's reports and unhides it
	RestoreReview(ctx context.Context, reviewID uuid.UUID) (*model.ReviewResponse, error)
}
