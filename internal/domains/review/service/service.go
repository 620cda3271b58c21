package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"marketplace-backend/internal/domains/review/model"
	"marketplace-backend/internal/domains/review/repository"
	"marketplace-backend/pkg/cache"
	"marketplace-backend/pkg/logger"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

const listingReviewsCacheTTL = 5 * time.Minute

type reviewService struct {
	reviewRepo repository.ReviewRepository
	cache      cache.Cache
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	cache cache.Cache,
) ServiceInterface {
	return &reviewService{
		reviewRepo: reviewRepo,
		cache:      cache,
	}
}

func listingReviewsCacheKey(listingID uuid.UUID) string {
	return fmt.Sprintf("reviews:listing:%s", listingID)
}

// invalidateListing drops the cached review list for a listing.
// Cache failures are logged and ignored; the store is the source of truth.
func (s *reviewService) invalidateListing(ctx context.Context, listingID uuid.UUID) {
	if err := s.cache.Delete(ctx, listingReviewsCacheKey(listingID)); err != nil {
		logger.Warn("failed to invalidate listing reviews cache", err)
	}
}

// mapDomainError converts repository sentinels to typed domain errors.
// Anything unrecognized is a persistence failure and propagates as-is.
func mapDomainError(err error) error {
	switch {
	case errors.Is(err, model.ErrReviewNotFound):
		return model.NewReviewNotFoundError()
	case errors.Is(err, model.ErrReplyNotFound):
		return model.NewReplyNotFoundError()
	case errors.Is(err, model.ErrListingNotFound):
		return model.NewListingNotFoundError()
	case errors.Is(err, model.ErrDuplicateReport):
		return model.NewDuplicateReportError()
	default:
		return err
	}
}

// =====================================================
// CREATE REVIEW
// =====================================================

func (s *reviewService) CreateReview(
	ctx context.Context,
	userID uuid.UUID,
	userName string,
	req model.CreateReviewRequest,
) (*model.ReviewResponse, error) {
	// Step 1: Validate request. The transport layer validates too, but the
	// store must not be reachable with an out-of-range rating regardless.
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	// Step 2: Build review entity
	now := time.Now()
	review := &model.Review{
		ID:         uuid.New(),
		ListingID:  req.ListingID,
		AuthorID:   userID,
		AuthorName: userName,
		Rating:     req.Rating,
		Content:    req.Content,
		Images:     req.Images,
		Likes:      []uuid.UUID{},
		Replies:    []model.Reply{},
		Reports:    []model.Report{},
		Hidden:     false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// Step 3: Persist. The listing title snapshot and the rating recompute
	// happen in the same transaction as the insert.
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, mapDomainError(err)
	}

	// Step 4: Invalidate cached listing reviews
	s.invalidateListing(ctx, review.ListingID)

	response := model.NewReviewResponse(review)
	return &response, nil
}

// =====================================================
// GET REVIEW
// =====================================================

func (s *reviewService) GetReview(ctx context.Context, id uuid.UUID) (*model.ReviewResponse, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapDomainError(err)
	}

	// Hidden reviews are not publicly visible
	if review.Hidden {
		return nil, model.NewReviewNotFoundError()
	}

	response := model.NewReviewResponse(review)
	return &response, nil
}

// =====================================================
// LIST REVIEWS
// =====================================================

func (s *reviewService) ListReviews(
	ctx context.Context,
	req model.ListReviewsRequest,
) (*model.ListReviewsResponse, error) {
	req.Normalize()

	reviews, total, err := s.reviewRepo.GetAll(ctx, req.Page, req.Limit)
	if err != nil {
		// An unreadable store degrades to an empty page here
		logger.Warn("failed to list reviews, returning empty page", err)
		return &model.ListReviewsResponse{
			Reviews:    []model.ReviewResponse{},
			Pagination: model.NewPaginationMeta(req.Page, req.Limit, 0),
		}, nil
	}

	responses := make([]model.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		responses = append(responses, model.NewReviewResponse(review))
	}

	return &model.ListReviewsResponse{
		Reviews:    responses,
		Pagination: model.NewPaginationMeta(req.Page, req.Limit, total),
	}, nil
}

// =====================================================
// GET LISTING REVIEWS
// =====================================================

func (s *reviewService) GetListingReviews(ctx context.Context, listingID uuid.UUID) ([]model.ReviewResponse, error) {
	cacheKey := listingReviewsCacheKey(listingID)

	var cached []model.ReviewResponse
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		logger.Warn("failed to read listing reviews cache", err)
	}
	if found {
		return cached, nil
	}

	reviews, err := s.reviewRepo.ListByListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list listing reviews: %w", err)
	}

	responses := make([]model.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		responses = append(responses, model.NewReviewResponse(review))
	}

	if err := s.cache.Set(ctx, cacheKey, responses, listingReviewsCacheTTL); err != nil {
		logger.Warn("failed to cache listing reviews", err)
	}

	return responses, nil
}

// =====================================================
// UPDATE REVIEW
// =====================================================

func (s *reviewService) UpdateReview(
	ctx context.Context,
	userID, reviewID uuid.UUID,
	req model.UpdateReviewRequest,
) (*model.ReviewResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	// Step 2: Get existing review
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, mapDomainError(err)
	}

	// Step 3: Verify ownership before touching anything
	if !review.IsOwnedBy(userID) {
		return nil, model.NewForbiddenError("You can only edit your own reviews")
	}

	// Step 4: Apply provided fields
	if req.Content != nil {
		review.Content = *req.Content
	}
	if req.Images != nil {
		review.Images = req.Images
	}
	review.UpdatedAt = time.Now()

	// Step 5: Save changes
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, mapDomainError(err)
	}

	s.invalidateListing(ctx, review.ListingID)

	response := model.NewReviewResponse(review)
	return &response, nil
}

// =====================================================
// DELETE REVIEW (owner)
// =====================================================

func (s *reviewService) DeleteReview(ctx context.Context, userID, reviewID uuid.UUID) error {
	// Step 1: Get review
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return mapDomainError(err)
	}

	// Step 2: Verify ownership
	if !review.IsOwnedBy(userID) {
		return model.NewForbiddenError("You can only delete your own reviews")
	}

	// Step 3: Delete; listing rating recomputes in the same transaction
	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return mapDomainError(err)
	}

	s.invalidateListing(ctx, review.ListingID)
	return nil
}

// =====================================================
// TOGGLE LIKE
// =====================================================

func (s *reviewService) ToggleLike(ctx context.Context, userID, reviewID uuid.UUID) (*model.LikeResult, error) {
	liked, likes, err := s.reviewRepo.ToggleLike(ctx, reviewID, userID)
	if err != nil {
		return nil, mapDomainError(err)
	}

	return &model.LikeResult{
		Liked: liked,
		Likes: likes,
	}, nil
}

// =====================================================
// ADD REPLY
// =====================================================

func (s *reviewService) AddReply(
	ctx context.Context,
	userID uuid.UUID,
	userName string,
	reviewID uuid.UUID,
	req model.AddReplyRequest,
) (*model.ReplyResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	// Step 2: Build reply
	reply := model.Reply{
		ID:         uuid.New(),
		AuthorID:   userID,
		AuthorName: userName,
		Content:    req.Content,
		Reports:    []model.Report{},
		Hidden:     false,
		CreatedAt:  time.Now(),
	}

	// Step 3: Append under the review's row lock
	review, err := s.reviewRepo.AddReply(ctx, reviewID, reply)
	if err != nil {
		return nil, mapDomainError(err)
	}

	s.invalidateListing(ctx, review.ListingID)

	return &model.ReplyResponse{
		ID: reply.ID,
		Author: model.UserInfo{
			ID:   reply.AuthorID,
			Name: reply.AuthorName,
		},
		Content:   reply.Content,
		CreatedAt: reply.CreatedAt,
	}, nil
}

// =====================================================
// REPORT REVIEW
// =====================================================

func (s *reviewService) ReportReview(
	ctx context.Context,
	userID, reviewID uuid.UUID,
	req model.ReportRequest,
) (*model.ReportResult, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	// Step 2: Append the report. The threshold transition to hidden and
	// the listing rating recompute happen inside the same transaction.
	hidden, count, err := s.reviewRepo.ReportReview(ctx, reviewID, model.Report{
		UserID: userID,
		Reason: req.Reason,
	})
	if err != nil {
		return nil, mapDomainError(err)
	}

	// Step 3: A hide changes the visible set; drop the cached list
	if hidden {
		if review, err := s.reviewRepo.GetByID(ctx, reviewID); err == nil {
			s.invalidateListing(ctx, review.ListingID)
		}
	}

	return &model.ReportResult{
		Hidden:  hidden,
		Reports: count,
	}, nil
}

// =====================================================
// REPORT REPLY
// =====================================================

func (s *reviewService) ReportReply(
	ctx context.Context,
	userID, reviewID, replyID uuid.UUID,
	req model.ReportRequest,
) (*model.ReportResult, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	hidden, count, err := s.reviewRepo.ReportReply(ctx, reviewID, replyID, model.Report{
		UserID: userID,
		Reason: req.Reason,
	})
	if err != nil {
		return nil, mapDomainError(err)
	}

	// A hidden reply disappears from public responses but does not
	// change the listing aggregate, so no recompute happened.
	if hidden {
		if review, err := s.reviewRepo.GetByID(ctx, reviewID); err == nil {
			s.invalidateListing(ctx, review.ListingID)
		}
	}

	return &model.ReportResult{
		Hidden:  hidden,
		Reports: count,
	}, nil
}

// =====================================================
// ADMIN: LIST REVIEWS
// =====================================================

func (s *reviewService) AdminListReviews(
	ctx context.Context,
	req model.AdminListReviewsRequest,
) (*model.AdminListReviewsResponse, error) {
	req.Normalize()

	reviews, total, err := s.reviewRepo.AdminList(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	responses := make([]model.AdminReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		responses = append(responses, model.NewAdminReviewResponse(review))
	}

	return &model.AdminListReviewsResponse{
		Reviews:    responses,
		Pagination: model.NewPaginationMeta(req.Page, req.Limit, total),
	}, nil
}

// =====================================================
// ADMIN: DELETE REVIEW
// =====================================================

func (s *reviewService) AdminDeleteReview(ctx context.Context, reviewID uuid.UUID) error {
	// Unconditional: no ownership check, hidden or visible alike
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return mapDomainError(err)
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return mapDomainError(err)
	}

	s.invalidateListing(ctx, review.ListingID)
	return nil
}

// =====================================================
// ADMIN: RESTORE REVIEW
// =====================================================

func (s *reviewService) RestoreReview(ctx context.Context, reviewID uuid.UUID) (*model.ReviewResponse, error) {
	// Clears reports, unhides, and recomputes the listing rating
	// in one transaction.
	review, err := s.reviewRepo.Restore(ctx, reviewID)
	if err != nil {
		return nil, mapDomainError(err)
	}

	s.invalidateListing(ctx, review.ListingID)

	response := model.NewReviewResponse(review)
	return &response, nil
}
