package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateListingRequest request to create a listing
type CreateListingRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

func (r CreateListingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(3, 200)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
		validation.Field(&r.Price, validation.Required, validation.By(priceIsPositive)),
	)
}

func priceIsPositive(value interface{}) error {
	price, ok := value.(decimal.Decimal)
	if !ok || price.IsNegative() || price.IsZero() {
		return validation.NewError("validation_price", "must be greater than zero")
	}
	return nil
}

// ListListingsRequest request to list listings
type ListListingsRequest struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

func (r *ListListingsRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// ListingResponse listing in responses
type ListingResponse struct {
	ID            uuid.UUID       `json:"id"`
	Title         string          `json:"title"`
	Slug          string          `json:"slug"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	SellerID      uuid.UUID       `json:"seller_id"`
	SellerName    string          `json:"seller_name"`
	AverageRating float64         `json:"average_rating"`
	TotalRatings  int             `json:"total_ratings"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewListingResponse builds the response view of a listing
func NewListingResponse(listing *Listing) ListingResponse {
	return ListingResponse{
		ID:            listing.ID,
		Title:         listing.Title,
		Slug:          listing.Slug,
		Description:   listing.Description,
		Price:         listing.Price,
		SellerID:      listing.SellerID,
		SellerName:    listing.SellerName,
		AverageRating: listing.AverageRating,
		TotalRatings:  listing.TotalRatings,
		CreatedAt:     listing.CreatedAt,
		UpdatedAt:     listing.UpdatedAt,
	}
}

// ListListingsResponse response for list listings
type ListListingsResponse struct {
	Listings []ListingResponse `json:"listings"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
	Total    int               `json:"total"`
}
