package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// =====================================================
// USER REQUEST DTOs
// =====================================================

// CreateReviewRequest request to create a review
type CreateReviewRequest struct {
	ListingID uuid.UUID `json:"listing_id"`
	Rating    int       `json:"rating"`
	Content   string    `json:"content"`
	Images    []string  `json:"images"`
}

func (r CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ListingID, validation.Required),
		validation.Field(&r.Rating, validation.Required, validation.Min(MinRating), validation.Max(MaxRating)),
		validation.Field(&r.Content, validation.Required, validation.Length(MinContentLength, MaxContentLength)),
		validation.Field(&r.Images, validation.Length(0, MaxImages)),
	)
}

// UpdateReviewRequest request to edit review content.
// Rating is immutable after creation.
type UpdateReviewRequest struct {
	Content *string  `json:"content"`
	Images  []string `json:"images"`
}

func (r UpdateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.NilOrNotEmpty, validation.Length(MinContentLength, MaxContentLength)),
		validation.Field(&r.Images, validation.Length(0, MaxImages)),
	)
}

// AddReplyRequest request to reply to a review
type AddReplyRequest struct {
	Content string `json:"content"`
}

func (r AddReplyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required, validation.Length(1, MaxReplyLength)),
	)
}

// ReportRequest request to report a review or reply
type ReportRequest struct {
	Reason string `json:"reason"`
}

func (r ReportRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Reason, validation.Required, validation.Length(1, MaxReasonLength)),
	)
}

// ListReviewsRequest request to list reviews
type ListReviewsRequest struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

func (r *ListReviewsRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}

// =====================================================
// ADMIN REQUEST DTOs
// =====================================================

// AdminListReviewsRequest admin request to list reviews, hidden ones included
type AdminListReviewsRequest struct {
	ListingID *uuid.UUID `form:"listing_id"`
	Hidden    *bool      `form:"hidden"`
	Reported  *bool      `form:"reported"`
	Page      int        `form:"page"`
	Limit     int        `form:"limit"`
}

func (r *AdminListReviewsRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 50
	}
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// UserInfo author information in responses
type UserInfo struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ReplyResponse reply in public responses
type ReplyResponse struct {
	ID        uuid.UUID `json:"id"`
	Author    UserInfo  `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewResponse review in public responses. Hidden replies are omitted.
type ReviewResponse struct {
	ID           uuid.UUID       `json:"id"`
	ListingID    uuid.UUID       `json:"listing_id"`
	ListingTitle string          `json:"listing_title"`
	Author       UserInfo        `json:"author"`
	Rating       int             `json:"rating"`
	Content      string          `json:"content"`
	Images       []string        `json:"images"`
	Likes        int             `json:"likes"`
	Replies      []ReplyResponse `json:"replies"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewReviewResponse builds the public view of a review
func NewReviewResponse(review *Review) ReviewResponse {
	replies := make([]ReplyResponse, 0, len(review.Replies))
	for _, reply := range review.Replies {
		if reply.Hidden {
			continue
		}
		replies = append(replies, ReplyResponse{
			ID: reply.ID,
			Author: UserInfo{
				ID:   reply.AuthorID,
				Name: reply.AuthorName,
			},
			Content:   reply.Content,
			CreatedAt: reply.CreatedAt,
		})
	}

	return ReviewResponse{
		ID:           review.ID,
		ListingID:    review.ListingID,
		ListingTitle: review.ListingTitle,
		Author: UserInfo{
			ID:   review.AuthorID,
			Name: review.AuthorName,
		},
		Rating:    review.Rating,
		Content:   review.Content,
		Images:    review.Images,
		Likes:     len(review.Likes),
		Replies:   replies,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
}

// LikeResult outcome of a like toggle
type LikeResult struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

// ReportResult outcome of a report submission
type ReportResult struct {
	Hidden  bool `json:"hidden"`
	Reports int  `json:"reports"`
}

// ListReviewsResponse response for list reviews
type ListReviewsResponse struct {
	Reviews    []ReviewResponse `json:"reviews"`
	Pagination PaginationMeta   `json:"pagination"`
}

// PaginationMeta pagination metadata
type PaginationMeta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewPaginationMeta computes the pagination block for a page of results
func NewPaginationMeta(page, limit, total int) PaginationMeta {
	totalPages := (total + limit - 1) / limit
	return PaginationMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// =====================================================
// ADMIN RESPONSE DTOs
// =====================================================

// ReportView one report entry in the admin view
type ReportView struct {
	UserID    uuid.UUID `json:"user_id"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminReviewResponse admin response with moderation state
type AdminReviewResponse struct {
	ReviewResponse
	Hidden      bool         `json:"hidden"`
	Reports     []ReportView `json:"reports"`
	ReportCount int          `json:"report_count"`
}

// NewAdminReviewResponse builds the admin view of a review
func NewAdminReviewResponse(review *Review) AdminReviewResponse {
	reports := make([]ReportView, 0, len(review.Reports))
	for _, report := range review.Reports {
		reports = append(reports, ReportView{
			UserID:    report.UserID,
			Reason:    report.Reason,
			CreatedAt: report.CreatedAt,
		})
	}

	return AdminReviewResponse{
		ReviewResponse: NewReviewResponse(review),
		Hidden:         review.Hidden,
		Reports:        reports,
		ReportCount:    len(review.Reports),
	}
}

// AdminListReviewsResponse admin list response
type AdminListReviewsResponse struct {
	Reviews    []AdminReviewResponse `json:"reviews"`
	Pagination PaginationMeta        `json:"pagination"`
}
