package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketplace-backend/internal/domains/listing/model"
)

type mockListingRepository struct {
	mock.Mock
}

func (m *mockListingRepository) Create(ctx context.Context, listing *model.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *mockListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *mockListingRepository) GetBySlug(ctx context.Context, slug string) (*model.Listing, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *mockListingRepository) GetAll(ctx context.Context, page, limit int) ([]*model.Listing, int, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.Listing), args.Int(1), args.Error(2)
}

func TestCreateListing(t *testing.T) {
	t.Run("creates listing with generated slug and zero rating", func(t *testing.T) {
		repo := new(mockListingRepository)
		svc := NewListingService(repo)
		sellerID := uuid.New()

		repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Listing")).Return(nil)

		resp, err := svc.CreateListing(context.Background(), sellerID, "Alice", model.CreateListingRequest{
			Title: "Vintage Camera Kit",
			Price: decimal.NewFromInt(120),
		})
		require.NoError(t, err)
		assert.Equal(t, "vintage-camera-kit", resp.Slug)
		assert.Equal(t, sellerID, resp.SellerID)
		assert.Zero(t, resp.AverageRating)
		assert.Zero(t, resp.TotalRatings)
		repo.AssertExpectations(t)
	})

	t.Run("retries with suffixed slug on collision", func(t *testing.T) {
		repo := new(mockListingRepository)
		svc := NewListingService(repo)

		repo.On("Create", mock.Anything, mock.MatchedBy(func(l *model.Listing) bool {
			return l.Slug == "vintage-camera-kit"
		})).Return(model.ErrDuplicateSlug).Once()
		repo.On("Create", mock.Anything, mock.MatchedBy(func(l *model.Listing) bool {
			return len(l.Slug) > len("vintage-camera-kit")
		})).Return(nil).Once()

		resp, err := svc.CreateListing(context.Background(), uuid.New(), "Alice", model.CreateListingRequest{
			Title: "Vintage Camera Kit",
			Price: decimal.NewFromInt(120),
		})
		require.NoError(t, err)
		assert.NotEqual(t, "vintage-camera-kit", resp.Slug)
		repo.AssertExpectations(t)
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		repo := new(mockListingRepository)
		svc := NewListingService(repo)

		_, err := svc.CreateListing(context.Background(), uuid.New(), "Alice", model.CreateListingRequest{
			Title: "Vintage Camera Kit",
			Price: decimal.Zero,
		})

		var listingErr *model.ListingError
		require.ErrorAs(t, err, &listingErr)
		assert.Equal(t, model.ErrCodeValidation, listingErr.Code)
		repo.AssertNotCalled(t, "Create")
	})
}

func TestGetListingBySlug(t *testing.T) {
	t.Run("returns the listing matching the slug", func(t *testing.T) {
		repo := new(mockListingRepository)
		svc := NewListingService(repo)
		listing := &model.Listing{
			ID:    uuid.New(),
			Title: "Vintage Camera Kit",
			Slug:  "vintage-camera-kit",
			Price: decimal.NewFromInt(120),
		}

		repo.On("GetBySlug", mock.Anything, "vintage-camera-kit").Return(listing, nil)

		resp, err := svc.GetListingBySlug(context.Background(), "vintage-camera-kit")
		require.NoError(t, err)
		assert.Equal(t, listing.ID, resp.ID)
		assert.Equal(t, "vintage-camera-kit", resp.Slug)
		repo.AssertExpectations(t)
	})

	t.Run("maps unknown slug to not found", func(t *testing.T) {
		repo := new(mockListingRepository)
		svc := NewListingService(repo)

		repo.On("GetBySlug", mock.Anything, "missing-slug").Return(nil, model.ErrListingNotFound)

		_, err := svc.GetListingBySlug(context.Background(), "missing-slug")

		var listingErr *model.ListingError
		require.ErrorAs(t, err, &listingErr)
		assert.Equal(t, model.ErrCodeListingNotFound, listingErr.Code)
	})
}

func TestGetListing_NotFound(t *testing.T) {
	repo := new(mockListingRepository)
	svc := NewListingService(repo)
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).Return(nil, model.ErrListingNotFound)

	_, err := svc.GetListing(context.Background(), id)

	var listingErr *model.ListingError
	require.ErrorAs(t, err, &listingErr)
	assert.Equal(t, model.ErrCodeListingNotFound, listingErr.Code)
}
