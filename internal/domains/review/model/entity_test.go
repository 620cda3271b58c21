package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReview() *Review {
	now := time.Now()
	return &Review{
		ID:         uuid.New(),
		ListingID:  uuid.New(),
		AuthorID:   uuid.New(),
		AuthorName: "Alice",
		Rating:     4,
		Content:    "Solid product, arrived on time.",
		Images:     []string{},
		Likes:      []uuid.UUID{},
		Replies:    []Reply{},
		Reports:    []Report{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestReview_AddReport(t *testing.T) {
	t.Run("appends report and stays visible below threshold", func(t *testing.T) {
		review := newTestReview()

		for i := 0; i < HideThreshold-1; i++ {
			hidden, err := review.AddReport(Report{UserID: uuid.New(), Reason: "spam"})
			require.NoError(t, err)
			assert.False(t, hidden)
		}

		assert.Len(t, review.Reports, HideThreshold-1)
		assert.False(t, review.Hidden)
	})

	t.Run("hides exactly at threshold", func(t *testing.T) {
		review := newTestReview()

		for i := 0; i < HideThreshold-1; i++ {
			_, err := review.AddReport(Report{UserID: uuid.New(), Reason: "spam"})
			require.NoError(t, err)
		}
		require.False(t, review.Hidden)

		hidden, err := review.AddReport(Report{UserID: uuid.New(), Reason: "spam"})
		require.NoError(t, err)
		assert.True(t, hidden)
		assert.True(t, review.Hidden)
		assert.Len(t, review.Reports, HideThreshold)
	})

	t.Run("rejects duplicate reporter without changing state", func(t *testing.T) {
		review := newTestReview()
		reporter := uuid.New()

		_, err := review.AddReport(Report{UserID: reporter, Reason: "spam"})
		require.NoError(t, err)

		hidden, err := review.AddReport(Report{UserID: reporter, Reason: "still spam"})
		assert.ErrorIs(t, err, ErrDuplicateReport)
		assert.False(t, hidden)
		assert.Len(t, review.Reports, 1)
		assert.False(t, review.Hidden)
	})
}

func TestReview_ToggleLike(t *testing.T) {
	review := newTestReview()
	user := uuid.New()

	liked, count := review.ToggleLike(user)
	assert.True(t, liked)
	assert.Equal(t, 1, count)

	// Toggling again removes the like
	liked, count = review.ToggleLike(user)
	assert.False(t, liked)
	assert.Equal(t, 0, count)

	// Likes are per-user
	other := uuid.New()
	review.ToggleLike(user)
	liked, count = review.ToggleLike(other)
	assert.True(t, liked)
	assert.Equal(t, 2, count)
}

func TestReview_Restore(t *testing.T) {
	review := newTestReview()

	for i := 0; i < HideThreshold; i++ {
		_, err := review.AddReport(Report{UserID: uuid.New(), Reason: "spam"})
		require.NoError(t, err)
	}
	require.True(t, review.Hidden)

	review.Restore()

	assert.False(t, review.Hidden)
	assert.Empty(t, review.Reports)

	// A previous reporter can report again after a restore
	reporter := uuid.New()
	_, err := review.AddReport(Report{UserID: reporter, Reason: "spam"})
	require.NoError(t, err)
	assert.Len(t, review.Reports, 1)
}

func TestReview_FindReply(t *testing.T) {
	review := newTestReview()
	reply := Reply{
		ID:         uuid.New(),
		AuthorID:   uuid.New(),
		AuthorName: "Bob",
		Content:    "Thanks for the feedback",
		Reports:    []Report{},
		CreatedAt:  time.Now(),
	}
	review.AddReply(reply)

	found, ok := review.FindReply(reply.ID)
	require.True(t, ok)
	assert.Equal(t, reply.ID, found.ID)

	// The returned pointer mutates the stored reply
	_, err := found.AddReport(Report{UserID: uuid.New(), Reason: "rude"})
	require.NoError(t, err)
	assert.Len(t, review.Replies[0].Reports, 1)

	_, ok = review.FindReply(uuid.New())
	assert.False(t, ok)
}

func TestReply_AddReport(t *testing.T) {
	reply := &Reply{
		ID:      uuid.New(),
		Content: "some reply",
		Reports: []Report{},
	}

	for i := 0; i < HideThreshold-1; i++ {
		hidden, err := reply.AddReport(Report{UserID: uuid.New(), Reason: "abuse"})
		require.NoError(t, err)
		assert.False(t, hidden)
	}

	hidden, err := reply.AddReport(Report{UserID: uuid.New(), Reason: "abuse"})
	require.NoError(t, err)
	assert.True(t, hidden)

	// Duplicate reporter is rejected on replies too
	reporter := reply.Reports[0].UserID
	_, err = reply.AddReport(Report{UserID: reporter, Reason: "again"})
	assert.ErrorIs(t, err, ErrDuplicateReport)
}

func TestNewReviewResponse_FiltersHiddenReplies(t *testing.T) {
	review := newTestReview()
	visible := Reply{ID: uuid.New(), Content: "visible", Reports: []Report{}, CreatedAt: time.Now()}
	hidden := Reply{ID: uuid.New(), Content: "hidden", Reports: []Report{}, Hidden: true, CreatedAt: time.Now()}
	review.AddReply(visible)
	review.AddReply(hidden)
	review.Likes = []uuid.UUID{uuid.New(), uuid.New()}

	resp := NewReviewResponse(review)

	require.Len(t, resp.Replies, 1)
	assert.Equal(t, visible.ID, resp.Replies[0].ID)
	assert.Equal(t, 2, resp.Likes)
}
