package repository

import (
	"context"

	"github.com/google/uuid"

	"marketplace-backend/internal/domains/review/model"
)

// =====================================================
// REVIEW REPOSITORY INTERFACE
// =====================================================

// ReviewRepository persists reviews one row per review, with likes,
// replies and reports as nested documents on the row. Every mutation of
// nested state runs as a locked read-modify-write inside a transaction,
// and every mutation that changes the visible-review set of a listing
// recomputes that listing's rating summary in the same transaction.
type ReviewRepository interface {
	// ========================================
	// CRUD Operations
	// ========================================

	// Create inserts a new review and recomputes the listing rating
	Create(ctx context.Context, review *model.Review) error

	// GetByID gets review by ID
	GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error)

	// GetAll lists all reviews, newest first
	GetAll(ctx context.Context, page, limit int) ([]*model.Review, int, error)

	// ListByListing lists visible (non-hidden) reviews for a listing,
	// newest first. Also the aggregation input.
	ListByListing(ctx context.Context, listingID uuid.UUID) ([]*model.Review, error)

	// Update replaces content and images of an existing review.
	// No rating or visibility change, so no aggregation side effect.
	Update(ctx context.Context, review *model.Review) error

	// Delete removes a review and recomputes the listing rating
	Delete(ctx context.Context, id uuid.UUID) error

	// ========================================
	// Engagement Operations
	// ========================================

	// AddReply appends a reply to a review
	AddReply(ctx context.Context, reviewID uuid.UUID, reply model.Reply) (*model.Review, error)

	// ToggleLike flips userID's membership in the review's likes set.
	// Returns the new membership state and the new set size.
	ToggleLike(ctx context.Context, reviewID, userID uuid.UUID) (bool, int, error)

	// ========================================
	// Moderation Operations
	// ========================================

	// ReportReview appends a report to a review; hides the review and
	// recomputes the listing rating when the count reaches the threshold.
	// Returns the review's hidden state and report count after the write.
	ReportReview(ctx context.Context, reviewID uuid.UUID, report model.Report) (bool, int, error)

	// ReportReply appends a report to a reply inside a review
	ReportReply(ctx context.Context, reviewID, replyID uuid.UUID, report model.Report) (bool, int, error)

	// Restore clears a review's reports, unhides it and recomputes
	// the listing rating. Returns the restored review.
	Restore(ctx context.Context, reviewID uuid.UUID) (*model.Review, error)

	// AdminList lists reviews with admin filters, hidden ones included
	AdminList(ctx context.Context, req model.AdminListReviewsRequest) ([]*model.Review, int, error)
}
