package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streamvault/watchlist-api/internal/domain"
	"github.com/streamvault/watchlist-api/internal/rating"
)

// ReviewsRepository provides persistence helpers for title reviews.
type ReviewsRepository struct {
	pool *pgxpool.Pool
}

const reviewColumns = `
    r.id,
    r.title_id,
    r.author_id,
    u.username,
    r.rating,
    r.description,
    r.active,
    r.created_at,
    r.updated_at
`

const reviewFrom = ` FROM reviews r JOIN users u ON u.id = r.author_id `

// ReviewCreateParams bundles the fields required to create a review.
type ReviewCreateParams struct {
	TitleID     string
	AuthorID    string
	Rating      int
	Description string
	Active      bool
}

// ReviewUpdateParams carries optional field changes for an existing review.
// Nil fields are left untouched.
type ReviewUpdateParams struct {
	Rating      *int
	Description *string
	Active      *bool
}

// ReviewListFilters narrows a per-title review listing.
type ReviewListFilters struct {
	Username *string
	Active   *bool
}

// Create inserts a review and folds its rating into the title aggregate.
//
// The uniqueness check, aggregate update and insert run in one transaction
// holding a row lock on the title, so concurrent attempts for the same
// title serialize and a duplicate (title, author) pair can never slip past
// the existence check. The unique index on (title_id, author_id) backstops
// the check; violations surface as ErrConflict.
func (r *ReviewsRepository) Create(ctx context.Context, params ReviewCreateParams) (domain.Review, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.Review{}, fmt.Errorf("begin review tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var agg rating.Aggregate
	err = tx.QueryRow(ctx,
		`SELECT avg_rating, rating_count FROM titles WHERE id = $1 FOR UPDATE`,
		params.TitleID,
	).Scan(&agg.Average, &agg.Count)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Review{}, ErrNotFound
		}
		return domain.Review{}, fmt.Errorf("lock title row: %w", err)
	}

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM reviews WHERE title_id = $1 AND author_id = $2)`,
		params.TitleID, params.AuthorID,
	).Scan(&exists)
	if err != nil {
		return domain.Review{}, fmt.Errorf("check existing review: %w", err)
	}
	if exists {
		return domain.Review{}, ErrConflict
	}

	next := agg.Apply(params.Rating)
	_, err = tx.Exec(ctx,
		`UPDATE titles SET avg_rating = $2, rating_count = $3, updated_at = now() WHERE id = $1`,
		params.TitleID, next.Average, next.Count,
	)
	if err != nil {
		return domain.Review{}, fmt.Errorf("update title aggregate: %w", err)
	}

	review := domain.Review{
		ID:          uuid.NewString(),
		TitleID:     params.TitleID,
		AuthorID:    params.AuthorID,
		Rating:      params.Rating,
		Description: params.Description,
		Active:      params.Active,
	}
	err = tx.QueryRow(ctx, `
        INSERT INTO reviews (id, title_id, author_id, rating, description, active)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING created_at, updated_at
    `, review.ID, review.TitleID, review.AuthorID, review.Rating, review.Description, review.Active,
	).Scan(&review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Review{}, ErrConflict
		}
		return domain.Review{}, fmt.Errorf("insert review: %w", err)
	}

	err = tx.QueryRow(ctx, `SELECT username FROM users WHERE id = $1`, review.AuthorID).Scan(&review.AuthorUsername)
	if err != nil {
		return domain.Review{}, fmt.Errorf("resolve author: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Review{}, fmt.Errorf("commit review tx: %w", err)
	}
	return review, nil
}

// GetByID fetches a review by its identifier.
func (r *ReviewsRepository) GetByID(ctx context.Context, id string) (domain.Review, error) {
	query := `SELECT ` + reviewColumns + reviewFrom + `WHERE r.id = $1`
	review, err := scanReview(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Review{}, ErrNotFound
		}
		return domain.Review{}, err
	}
	return review, nil
}

// Update applies field changes to an existing review. The title aggregate
// is deliberately not recomputed; the original rating stays folded in.
func (r *ReviewsRepository) Update(ctx context.Context, id string, params ReviewUpdateParams) (domain.Review, error) {
	query := `
        WITH updated AS (
            UPDATE reviews
            SET rating = COALESCE($2, rating),
                description = COALESCE($3, description),
                active = COALESCE($4, active),
                updated_at = now()
            WHERE id = $1
            RETURNING *
        )
        SELECT ` + reviewColumns + ` FROM updated r JOIN users u ON u.id = r.author_id`

	review, err := scanReview(r.pool.QueryRow(ctx, query, id, params.Rating, params.Description, params.Active))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Review{}, ErrNotFound
		}
		return domain.Review{}, err
	}
	return review, nil
}

// Delete removes a review. The title aggregate keeps the rating baked in.
func (r *ReviewsRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListForTitle returns the reviews of one title, optionally filtered by
// author username and active flag.
func (r *ReviewsRepository) ListForTitle(ctx context.Context, titleID string, filters ReviewListFilters) ([]domain.Review, error) {
	where := []string{"r.title_id = $1"}
	args := []interface{}{titleID}
	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.Username != nil && strings.TrimSpace(*filters.Username) != "" {
		where = append(where, fmt.Sprintf("u.username = %s", arg(strings.TrimSpace(*filters.Username))))
	}
	if filters.Active != nil {
		where = append(where, fmt.Sprintf("r.active = %s", arg(*filters.Active)))
	}

	query := `SELECT ` + reviewColumns + reviewFrom +
		`WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY r.created_at, r.id`

	return r.queryReviews(ctx, query, args...)
}

// ListByUsername returns every review authored by the named user across
// all titles.
func (r *ReviewsRepository) ListByUsername(ctx context.Context, username string) ([]domain.Review, error) {
	query := `SELECT ` + reviewColumns + reviewFrom +
		`WHERE u.username = $1 ORDER BY r.created_at, r.id`
	return r.queryReviews(ctx, query, username)
}

func (r *ReviewsRepository) queryReviews(ctx context.Context, query string, args ...interface{}) ([]domain.Review, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, review)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanReview(row pgx.Row) (domain.Review, error) {
	var review domain.Review
	err := row.Scan(
		&review.ID,
		&review.TitleID,
		&review.AuthorID,
		&review.AuthorUsername,
		&review.Rating,
		&review.Description,
		&review.Active,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return domain.Review{}, err
	}
	return review, nil
}
