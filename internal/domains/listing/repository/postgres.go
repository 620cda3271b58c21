package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"marketplace-backend/internal/domains/listing/model"
	"marketplace-backend/pkg/database"
)

// =====================================================
// POSTGRES LISTING REPOSITORY
// =====================================================

const listingColumns = `id, title, slug, description, price, seller_id, seller_name,
	average_rating, total_ratings, created_at, updated_at`

type postgresListingRepository struct {
	db database.DBTX
}

func NewPostgresListingRepository(db database.DBTX) ListingRepository {
	return &postgresListingRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanListing(row scanner) (*model.Listing, error) {
	var listing model.Listing
	err := row.Scan(
		&listing.ID,
		&listing.Title,
		&listing.Slug,
		&listing.Description,
		&listing.Price,
		&listing.SellerID,
		&listing.SellerName,
		&listing.AverageRating,
		&listing.TotalRatings,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *postgresListingRepository) Create(ctx context.Context, listing *model.Listing) error {
	query := `
		INSERT INTO listings (` + listingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, query,
		listing.ID,
		listing.Title,
		listing.Slug,
		listing.Description,
		listing.Price,
		listing.SellerID,
		listing.SellerName,
		listing.AverageRating,
		listing.TotalRatings,
		listing.CreatedAt,
		listing.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrDuplicateSlug
		}
		return fmt.Errorf("failed to create listing: %w", err)
	}

	return nil
}

func (r *postgresListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	listing, err := scanListing(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	return listing, nil
}

func (r *postgresListingRepository) GetBySlug(ctx context.Context, slug string) (*model.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE slug = $1`

	listing, err := scanListing(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to get listing by slug: %w", err)
	}

	return listing, nil
}

func (r *postgresListingRepository) GetAll(ctx context.Context, page, limit int) ([]*model.Listing, int, error) {
	offset := (page - 1) * limit

	query := `
		SELECT ` + listingColumns + `
		FROM listings
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list listings: %w", err)
	}
	defer rows.Close()

	listings := make([]*model.Listing, 0)
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate listings: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM listings`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	return listings, total, nil
}
