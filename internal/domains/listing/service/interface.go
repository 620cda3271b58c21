package service

import (
	"context"

	"github.com/google/uuid"

	"marketplace-backend/internal/domains/listing/model"
)

// =====================================================
// LISTING SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// CreateListing creates a listing offered by the caller
	CreateListing(ctx context.Context, sellerID uuid.UUID, sellerName string, req model.CreateListingRequest) (*model.ListingResponse, error)

	// GetListing gets a listing by ID
	GetListing(ctx context.Context, id uuid.UUID) (*model.ListingResponse, error)

	// GetListingBySlug gets a listing by its URL slug
	GetListingBySlug(ctx context.Context, slug string) (*model.ListingResponse, error)

	// ListListings lists listings, newest first
	ListListings(ctx context.Context, req model.ListListingsRequest) (*model.ListListingsResponse, error)
}
