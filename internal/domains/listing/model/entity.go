package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// LISTING ENTITY
// =====================================================

// Listing is a marketplace item offered by a seller. AverageRating and
// TotalRatings are maintained by the review domain and summarize the
// listing's visible reviews.
type Listing struct {
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
