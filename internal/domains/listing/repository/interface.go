package repository

import (
	"context"

	"github.com/google/uuid"

	"marketplace-backend/internal/domains/listing/model"
)

// =====================================================
// LISTING REPOSITORY INTERFACE
// =====================================================

type ListingRepository interface {
	// Create inserts a new listing
	Create(ctx context.Context, listing *model.Listing) error

	// GetByID gets listing by ID
	GetByID(ctx context.Context, id uuid.UUID) (*model.Listing, error)

	// GetBySlug gets listing by slug
	GetBySlug(ctx context.Context, slug string) (*model.Listing, error)

	// GetAll lists listings, newest first
	GetAll(ctx context.Context, page, limit int) ([]*model.Listing, int, error)
}
