package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"marketplace-backend/internal/domains/listing/model"
	"marketplace-backend/internal/domains/listing/repository"
	"marketplace-backend/internal/shared/utils"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type listingService struct {
	listingRepo repository.ListingRepository
}

func NewListingService(listingRepo repository.ListingRepository) ServiceInterface {
	return &listingService{
		listingRepo: listingRepo,
	}
}

func mapDomainError(err error) error {
	switch {
	case errors.Is(err, model.ErrListingNotFound):
		return model.NewListingNotFoundError()
	case errors.Is(err, model.ErrDuplicateSlug):
		return model.NewDuplicateSlugError()
	default:
		return err
	}
}

func (s *listingService) CreateListing(
	ctx context.Context,
	sellerID uuid.UUID,
	sellerName string,
	req model.CreateListingRequest,
) (*model.ListingResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	now := time.Now()
	listing := &model.Listing{
		ID:            uuid.New(),
		Title:         req.Title,
		Slug:          utils.GenerateSlug(req.Title),
		Description:   req.Description,
		Price:         req.Price,
		SellerID:      sellerID,
		SellerName:    sellerName,
		AverageRating: 0,
		TotalRatings:  0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// Slug collisions get a short random suffix
	if err := s.listingRepo.Create(ctx, listing); err != nil {
		if !errors.Is(err, model.ErrDuplicateSlug) {
			return nil, mapDomainError(err)
		}
		listing.Slug = fmt.Sprintf("%s-%s", listing.Slug, uuid.NewString()[:8])
		if err := s.listingRepo.Create(ctx, listing); err != nil {
			return nil, mapDomainError(err)
		}
	}

	response := model.NewListingResponse(listing)
	return &response, nil
}

func (s *listingService) GetListing(ctx context.Context, id uuid.UUID) (*model.ListingResponse, error) {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapDomainError(err)
	}

	response := model.NewListingResponse(listing)
	return &response, nil
}

func (s *listingService) GetListingBySlug(ctx context.Context, slug string) (*model.ListingResponse, error) {
	listing, err := s.listingRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, mapDomainError(err)
	}

	response := model.NewListingResponse(listing)
	return &response, nil
}

func (s *listingService) ListListings(
	ctx context.Context,
	req model.ListListingsRequest,
) (*model.ListListingsResponse, error) {
	req.Normalize()

	listings, total, err := s.listingRepo.GetAll(ctx, req.Page, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}

	responses := make([]model.ListingResponse, 0, len(listings))
	for _, listing := range listings {
		responses = append(responses, model.NewListingResponse(listing))
	}

	return &model.ListListingsResponse{
		Listings: responses,
		Page:     req.Page,
		Limit:    req.Limit,
		Total:    total,
	}, nil
}
