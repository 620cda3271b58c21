package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"marketplace-backend/internal/domains/review/model"
	"marketplace-backend/pkg/database"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresReviewRepository struct {
	db database.DBTX
}

func NewPostgresReviewRepository(db database.DBTX) ReviewRepository {
	return &postgresReviewRepository{db: db}
}

const reviewColumns = `
	id, listing_id, listing_title, author_id, author_name,
	rating, content, images,
	likes, replies, reports, hidden,
	created_at, updated_at`

// scanner covers both pgx.Row and pgx.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanReview(row scanner) (*model.Review, error) {
	review := &model.Review{}
	var images, likes, replies, reports []byte

	err := row.Scan(
		&review.ID,
		&review.ListingID,
		&review.ListingTitle,
		&review.AuthorID,
		&review.AuthorName,
		&review.Rating,
		&review.Content,
		&images,
		&likes,
		&replies,
		&reports,
		&review.Hidden,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(images, &review.Images); err != nil {
		return nil, fmt.Errorf("failed to unmarshal images: %w", err)
	}
	if err := json.Unmarshal(likes, &review.Likes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal likes: %w", err)
	}
	if err := json.Unmarshal(replies, &review.Replies); err != nil {
		return nil, fmt.Errorf("failed to unmarshal replies: %w", err)
	}
	if err := json.Unmarshal(reports, &review.Reports); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reports: %w", err)
	}

	return review, nil
}

type reviewDocs struct {
	images  []byte
	likes   []byte
	replies []byte
	reports []byte
}

func marshalDocs(review *model.Review) (*reviewDocs, error) {
	if review.Images == nil {
		review.Images = []string{}
	}
	if review.Likes == nil {
		review.Likes = []uuid.UUID{}
	}
	if review.Replies == nil {
		review.Replies = []model.Reply{}
	}
	if review.Reports == nil {
		review.Reports = []model.Report{}
	}

	images, err := json.Marshal(review.Images)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal images: %w", err)
	}
	likes, err := json.Marshal(review.Likes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal likes: %w", err)
	}
	replies, err := json.Marshal(review.Replies)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal replies: %w", err)
	}
	reports, err := json.Marshal(review.Reports)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reports: %w", err)
	}

	return &reviewDocs{images: images, likes: likes, replies: replies, reports: reports}, nil
}

// =====================================================
// RATING AGGREGATION
// =====================================================

// recomputeListingRating rewrites a listing's average_rating/total_ratings
// from its currently visible reviews. Runs inside the caller's transaction
// so the visibility change and the aggregate change commit together.
// An empty visible set yields (0, 0).
func (r *postgresReviewRepository) recomputeListingRating(ctx context.Context, tx pgx.Tx, listingID uuid.UUID) error {
	query := `
		UPDATE listings l
		SET
			average_rating = COALESCE((
				SELECT ROUND(AVG(rv.rating)::numeric, 2)
				FROM reviews rv
				WHERE rv.listing_id = l.id AND rv.hidden = false
			), 0),
			total_ratings = (
				SELECT COUNT(*)
				FROM reviews rv
				WHERE rv.listing_id = l.id AND rv.hidden = false
			),
			updated_at = NOW()
		WHERE l.id = $1
	`

	result, err := tx.Exec(ctx, query, listingID)
	if err != nil {
		return fmt.Errorf("failed to recompute listing rating: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrListingNotFound
	}

	return nil
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresReviewRepository) Create(ctx context.Context, review *model.Review) error {
	docs, err := marshalDocs(review)
	if err != nil {
		return err
	}

	return database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		// Snapshot the listing title at review time
		err := tx.QueryRow(ctx, `SELECT title FROM listings WHERE id = $1`, review.ListingID).
			Scan(&review.ListingTitle)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrListingNotFound
			}
			return fmt.Errorf("failed to get listing title: %w", err)
		}

		query := `
			INSERT INTO reviews (
				id, listing_id, listing_title, author_id, author_name,
				rating, content, images,
				likes, replies, reports, hidden,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		`

		_, err = tx.Exec(ctx, query,
			review.ID,
			review.ListingID,
			review.ListingTitle,
			review.AuthorID,
			review.AuthorName,
			review.Rating,
			review.Content,
			docs.images,
			docs.likes,
			docs.replies,
			docs.reports,
			review.Hidden,
			review.CreatedAt,
			review.UpdatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" {
				return model.ErrListingNotFound
			}
			return fmt.Errorf("failed to create review: %w", err)
		}

		return r.recomputeListingRating(ctx, tx, review.ListingID)
	})
}

// =====================================================
// READS
// =====================================================

func (r *postgresReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	review, err := scanReview(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return review, nil
}

func (r *postgresReviewRepository) GetAll(ctx context.Context, page, limit int) ([]*model.Review, int, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	offset := (page - 1) * limit
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*model.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read reviews: %w", err)
	}

	var total int
	err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	return reviews, total, nil
}

func (r *postgresReviewRepository) ListByListing(ctx context.Context, listingID uuid.UUID) ([]*model.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE listing_id = $1 AND hidden = false
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*model.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reviews: %w", err)
	}

	return reviews, nil
}

// =====================================================
// UPDATE (content edit)
// =====================================================

func (r *postgresReviewRepository) Update(ctx context.Context, review *model.Review) error {
	if review.Images == nil {
		review.Images = []string{}
	}
	images, err := json.Marshal(review.Images)
	if err != nil {
		return fmt.Errorf("failed to marshal images: %w", err)
	}

	query := `
		UPDATE reviews
		SET content = $2, images = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, review.ID, review.Content, images)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}

	return nil
}

// =====================================================
// DELETE
// =====================================================

func (r *postgresReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		var listingID uuid.UUID
		err := tx.QueryRow(ctx, `DELETE FROM reviews WHERE id = $1 RETURNING listing_id`, id).Scan(&listingID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrReviewNotFound
			}
			return fmt.Errorf("failed to delete review: %w", err)
		}

		return r.recomputeListingRating(ctx, tx, listingID)
	})
}

// =====================================================
// LOCKED READ-MODIFY-WRITE
// =====================================================

// mutate runs fn against a row-locked copy of the review and writes the
// result back. The FOR UPDATE lock is the serialization point: two callers
// mutating the same review are ordered, never lost. The listing rating is
// recomputed before commit when the mutation changes the review's visibility,
// or always when forceRecompute is set.
func (r *postgresReviewRepository) mutate(
	ctx context.Context,
	reviewID uuid.UUID,
	forceRecompute bool,
	fn func(*model.Review) error,
) (*model.Review, error) {
	return database.WithTransactionResult(ctx, r.db, func(tx pgx.Tx) (*model.Review, error) {
		query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1 FOR UPDATE`

		review, err := scanReview(tx.QueryRow(ctx, query, reviewID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.ErrReviewNotFound
			}
			return nil, fmt.Errorf("failed to get review: %w", err)
		}

		wasHidden := review.Hidden

		if err := fn(review); err != nil {
			return nil, err
		}

		docs, err := marshalDocs(review)
		if err != nil {
			return nil, err
		}

		writeQuery := `
			UPDATE reviews
			SET likes = $2, replies = $3, reports = $4, hidden = $5
			WHERE id = $1
		`
		if _, err := tx.Exec(ctx, writeQuery,
			review.ID,
			docs.likes,
			docs.replies,
			docs.reports,
			review.Hidden,
		); err != nil {
			return nil, fmt.Errorf("failed to save review: %w", err)
		}

		if forceRecompute || review.Hidden != wasHidden {
			if err := r.recomputeListingRating(ctx, tx, review.ListingID); err != nil {
				return nil, err
			}
		}

		return review, nil
	})
}

// =====================================================
// ENGAGEMENT
// =====================================================

func (r *postgresReviewRepository) AddReply(ctx context.Context, reviewID uuid.UUID, reply model.Reply) (*model.Review, error) {
	return r.mutate(ctx, reviewID, false, func(review *model.Review) error {
		review.AddReply(reply)
		return nil
	})
}

func (r *postgresReviewRepository) ToggleLike(ctx context.Context, reviewID, userID uuid.UUID) (bool, int, error) {
	var liked bool
	var likes int

	_, err := r.mutate(ctx, reviewID, false, func(review *model.Review) error {
		liked, likes = review.ToggleLike(userID)
		return nil
	})
	if err != nil {
		return false, 0, err
	}

	return liked, likes, nil
}

// =====================================================
// MODERATION
// =====================================================

func (r *postgresReviewRepository) ReportReview(ctx context.Context, reviewID uuid.UUID, report model.Report) (bool, int, error) {
	report.CreatedAt = time.Now()

	var hidden bool
	var count int

	_, err := r.mutate(ctx, reviewID, false, func(review *model.Review) error {
		h, err := review.AddReport(report)
		if err != nil {
			return err
		}
		hidden = h
		count = len(review.Reports)
		return nil
	})
	if err != nil {
		return false, 0, err
	}

	return hidden, count, nil
}

func (r *postgresReviewRepository) ReportReply(ctx context.Context, reviewID, replyID uuid.UUID, report model.Report) (bool, int, error) {
	report.CreatedAt = time.Now()

	var hidden bool
	var count int

	_, err := r.mutate(ctx, reviewID, false, func(review *model.Review) error {
		reply, ok := review.FindReply(replyID)
		if !ok {
			return model.ErrReplyNotFound
		}
		h, err := reply.AddReport(report)
		if err != nil {
			return err
		}
		hidden = h
		count = len(reply.Reports)
		return nil
	})
	if err != nil {
		return false, 0, err
	}

	return hidden, count, nil
}

func (r *postgresReviewRepository) Restore(ctx context.Context, reviewID uuid.UUID) (*model.Review, error) {
	// Restoring always recomputes, even if the review was already visible
	return r.mutate(ctx, reviewID, true, func(review *model.Review) error {
		review.Restore()
		return nil
	})
}

// =====================================================
// ADMIN
// =====================================================

func (r *postgresReviewRepository) AdminList(ctx context.Context, req model.AdminListReviewsRequest) ([]*model.Review, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	argCount := 1

	if req.ListingID != nil {
		where += fmt.Sprintf(" AND listing_id = $%d", argCount)
		args = append(args, *req.ListingID)
		argCount++
	}

	if req.Hidden != nil {
		where += fmt.Sprintf(" AND hidden = $%d", argCount)
		args = append(args, *req.Hidden)
		argCount++
	}

	if req.Reported != nil {
		if *req.Reported {
			where += " AND jsonb_array_length(reports) > 0"
		} else {
			where += " AND jsonb_array_length(reports) = 0"
		}
	}

	query := `SELECT ` + reviewColumns + ` FROM reviews` + where +
		" ORDER BY created_at DESC" +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1)
	listArgs := append(append([]interface{}{}, args...), req.Limit, (req.Page-1)*req.Limit)

	rows, err := r.db.Query(ctx, query, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*model.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read reviews: %w", err)
	}

	countQuery := `SELECT COUNT(*) FROM reviews` + where

	var total int
	err = r.db.QueryRow(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	return reviews, total, nil
}
