package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketplace-backend/internal/domains/review/model"
)

// =====================================================
// MOCKS
// =====================================================

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *mockReviewRepository) GetAll(ctx context.Context, page, limit int) ([]*model.Review, int, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.Review), args.Int(1), args.Error(2)
}

func (m *mockReviewRepository) ListByListing(ctx context.Context, listingID uuid.UUID) ([]*model.Review, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Review), args.Error(1)
}

func (m *mockReviewRepository) Update(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockReviewRepository) AddReply(ctx context.Context, reviewID uuid.UUID, reply model.Reply) (*model.Review, error) {
	args := m.Called(ctx, reviewID, reply)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *mockReviewRepository) ToggleLike(ctx context.Context, reviewID, userID uuid.UUID) (bool, int, error) {
	args := m.Called(ctx, reviewID, userID)
	return args.Bool(0), args.Int(1), args.Error(2)
}

func (m *mockReviewRepository) ReportReview(ctx context.Context, reviewID uuid.UUID, report model.Report) (bool, int, error) {
	args := m.Called(ctx, reviewID, report)
	return args.Bool(0), args.Int(1), args.Error(2)
}

func (m *mockReviewRepository) ReportReply(ctx context.Context, reviewID, replyID uuid.UUID, report model.Report) (bool, int, error) {
	args := m.Called(ctx, reviewID, replyID, report)
	return args.Bool(0), args.Int(1), args.Error(2)
}

func (m *mockReviewRepository) Restore(ctx context.Context, reviewID uuid.UUID) (*model.Review, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *mockReviewRepository) AdminList(ctx context.Context, req model.AdminListReviewsRequest) ([]*model.Review, int, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.Review), args.Int(1), args.Error(2)
}

// noopCache satisfies the cache contract with misses and silent writes
type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}
func (noopCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (noopCache) Delete(ctx context.Context, keys ...string) error        { return nil }
func (noopCache) DeletePattern(ctx context.Context, pattern string) error { return nil }
func (noopCache) Ping(ctx context.Context) error                          { return nil }

// =====================================================
// FIXTURES
// =====================================================

func newService(repo *mockReviewRepository) ServiceInterface {
	return NewReviewService(repo, noopCache{})
}

func storedReview(authorID uuid.UUID) *model.Review {
	now := time.Now()
	return &model.Review{
		ID:         uuid.New(),
		ListingID:  uuid.New(),
		AuthorID:   authorID,
		AuthorName: "Alice",
		Rating:     4,
		Content:    "Solid product, arrived on time.",
		Images:     []string{},
		Likes:      []uuid.UUID{},
		Replies:    []model.Reply{},
		Reports:    []model.Report{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// =====================================================
// TESTS
// =====================================================

func TestCreateReview(t *testing.T) {
	t.Run("creates review", func(t *testing.T) {
		repo := new(mockReviewRepository)
		svc := newService(repo)
		userID := uuid.New()

		repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Review")).Return(nil)

		resp, err := svc.CreateReview(context.Background(), userID, "Alice", model.CreateReviewRequest{
			ListingID: uuid.New(),
			Rating:    5,
			Content:   "Great seller, fast shipping!",
		})
		require.NoError(t, err)
		assert.Equal(t, 5, resp.Rating)
		assert.Equal(t, userID, resp.Author.ID)
		repo.AssertExpectations(t)
	})

	t.Run("rejects out-of-range rating before hitting the store", func(t *testing.T) {
		repo := new(mockReviewRepository)
		svc := newService(repo)

		_, err := svc.CreateReview(context.Background(), uuid.New(), "Alice", model.CreateReviewRequest{
			ListingID: uuid.New(),
			Rating:    6,
			Content:   "Great seller, fast shipping!",
		})

		var reviewErr *model.ReviewError
		require.ErrorAs(t, err, &reviewErr)
		assert.Equal(t, model.ErrCodeValidation, reviewErr.Code)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("maps missing listing", func(t *testing.T) {
		repo := new(mockReviewRepository)
		svc := newService(repo)

		repo.On("Create", mock.Anything, mock.Anything).Return(model.ErrListingNotFound)

		_, err := svc.CreateReview(context.Background(), uuid.New(), "Alice", model.CreateReviewRequest{
			ListingID: uuid.New(),
			Rating:    3,
			Content:   "Okay product, nothing special.",
		})

		var reviewErr *model.ReviewError
		require.ErrorAs(t, err, &reviewErr)
		assert.Equal(t, model.ErrCodeListingNotFound, reviewErr.Code)
	})
}

func TestGetReview(t *testing.T) {
	t.Run("hidden review is not publicly visible", func(t *testing.T) {
		repo := new(mockReviewRepository)
		svc := newService(repo)
		review := storedReview(uuid.New())
		review.Hidden = true

		repo.On("GetByID", mock.Anything, review.ID).Return(review, nil)

		_, err := svc.GetReview(context.Background(), review.ID)

		var reviewErr *model.ReviewError
		require.ErrorAs(t, err, &reviewErr)
		assert.Equal(t, model.ErrCodeReviewNotFound, reviewErr.Code)
	})

	t.Run("returns visible review", func(t *testing.T) {
		repo := new(mockReviewRepository)
		svc := newService(repo)
		review := storedReview(uuid.New())

		repo.On("GetByID", mock.Anything, review.ID).Return(review, nil)

		resp, err := svc.GetReview(context.Background(), review.ID)
		require.NoError(t, err)
		assert.Equal(t, review.ID, resp.ID)
	})
}

func TestListReviews_DegradesToEmptyPage(t *testing.T) {
	repo := new(mockReviewRepository)
	svc := newService(repo)

	repo.On("GetAll", mock.Anything, 1, 20).Return(nil, 0, assert.AnError)

	resp, err := svc.ListReviews(context.Background(), model.ListReviewsRequest{})
	require.NoError(t, err)
	assert.Empty(t, resp.Reviews)
	assert.Equal(t, 0, resp.Pagination.Total)
}

func TestUpdateReview(t *testing.T) {
	t.Run("rejects non-owner", func(t *testing.T) {
		repo := new(mockReviewRepository)
		svc := newService(repo)
		review := storedReview(uuid.New())
		content := "Edited content goes here."

		repo.On("GetByID", mock.Anything, review.ID).Return(review, nil)

		_, err := svc.UpdateReview(context.Background(), uuid.New(), review.ID, model.UpdateReviewRequest{
			Content: &content,
		})

		var reviewErr *model.ReviewError
		require.ErrorAs(t, err, &reviewErr)
		assert.Equal(t, model.ErrCodeForbidden, reviewErr.Code)
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("owner edits content, rating untouched", func(t *testing.T) {
		repo := new(mockReviewRepository)
		svc := newService(repo)
		owner := uuid.New()
		review := storedReview(owner)
		content := "Edited content goes here."

		repo.On("GetByID", mock.Anything, review.ID).Return(review, nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Review")).Return(nil)

		resp, err := svc.UpdateReview(context.Background(), owner, review.ID, model.UpdateReviewRequest{
			Content: &content,
		})
		require.NoError(t, err)
		assert.Equal(t, content, resp.Content)
		assert.Equal(t, 4, resp.Rating)
		repo.AssertExpectations(t)
	})
}

func TestDeleteReview_RejectsNonOwner(t *testing.T) {
	repo := new(mockReviewRepository)
	svc := newService(repo)
	review := storedReview(uuid.New())

	repo.On("GetByID", mock.Anything, review.ID).Return(review, nil)

	err := svc.DeleteReview(context.Background(), uuid.New(), review.ID)

	var reviewErr *model.ReviewError
	require.ErrorAs(t, err, &reviewErr)
	assert.Equal(t, model.ErrCodeForbidden, reviewErr.Code)
	repo.AssertNotCalled(t, "Delete")
}

func TestReportReview(t *testing.T) {
	t.Run("returns hide state from store", func(t *testing.T) {
		repo := new(mockReviewRepository)
		svc := newService(repo)
		review := storedReview(uuid.New())

		repo.On("ReportReview", mock.Anything, review.ID, mock.AnythingOfType("model.Report")).
			Return(true, model.HideThreshold, nil)
		repo.On("GetByID", mock.Anything, review.ID).Return(review, nil)

		result, err := svc.ReportReview(context.Background(), uuid.New(), review.ID, model.ReportRequest{
			Reason: "spam",
		})
		require.NoError(t, err)
		assert.True(t, result.Hidden)
		assert.Equal(t, model.HideThreshold, result.Reports)
	})

	t.Run("maps duplicate report", func(t *testing.T) {
		repo := new(mockReviewRepository)
		svc := newService(repo)
		reviewID := uuid.New()

		repo.On("ReportReview", mock.Anything, reviewID, mock.Anything).
			Return(false, 0, model.ErrDuplicateReport)

		_, err := svc.ReportReview(context.Background(), uuid.New(), reviewID, model.ReportRequest{
			Reason: "spam",
		})

		var reviewErr *model.ReviewError
		require.ErrorAs(t, err, &reviewErr)
		assert.Equal(t, model.ErrCodeDuplicateReport, reviewErr.Code)
	})

	t.Run("rejects empty reason", func(t *testing.T) {
		repo := new(mockReviewRepository)
		svc := newService(repo)

		_, err := svc.ReportReview(context.Background(), uuid.New(), uuid.New(), model.ReportRequest{})

		var reviewErr *model.ReviewError
		require.ErrorAs(t, err, &reviewErr)
		assert.Equal(t, model.ErrCodeValidation, reviewErr.Code)
		repo.AssertNotCalled(t, "ReportReview")
	})
}

func TestAddReply(t *testing.T) {
	repo := new(mockReviewRepository)
	svc := newService(repo)
	review := storedReview(uuid.New())
	replier := uuid.New()

	repo.On("AddReply", mock.Anything, review.ID, mock.AnythingOfType("model.Reply")).Return(review, nil)

	resp, err := svc.AddReply(context.Background(), replier, "Bob", review.ID, model.AddReplyRequest{
		Content: "Thanks for the feedback!",
	})
	require.NoError(t, err)
	assert.Equal(t, replier, resp.Author.ID)
	assert.Equal(t, "Thanks for the feedback!", resp.Content)
}

func TestRestoreReview(t *testing.T) {
	repo := new(mockReviewRepository)
	svc := newService(repo)
	review := storedReview(uuid.New())

	repo.On("Restore", mock.Anything, review.ID).Return(review, nil)

	resp, err := svc.RestoreReview(context.Background(), review.ID)
	require.NoError(t, err)
	assert.Equal(t, review.ID, resp.ID)
}

func TestAdminListReviews(t *testing.T) {
	repo := new(mockReviewRepository)
	svc := newService(repo)
	hidden := true
	review := storedReview(uuid.New())
	review.Hidden = true
	review.Reports = []model.Report{{UserID: uuid.New(), Reason: "spam", CreatedAt: time.Now()}}

	repo.On("AdminList", mock.Anything, mock.MatchedBy(func(req model.AdminListReviewsRequest) bool {
		return req.Hidden != nil && *req.Hidden && req.Page == 1 && req.Limit == 50
	})).Return([]*model.Review{review}, 1, nil)

	resp, err := svc.AdminListReviews(context.Background(), model.AdminListReviewsRequest{Hidden: &hidden})
	require.NoError(t, err)
	require.Len(t, resp.Reviews, 1)
	assert.True(t, resp.Reviews[0].Hidden)
	assert.Equal(t, 1, resp.Reviews[0].ReportCount)
}
