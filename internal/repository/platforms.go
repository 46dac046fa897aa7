package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streamvault/watchlist-api/internal/domain"
)

// PlatformsRepository provides persistence helpers for streaming platforms.
type PlatformsRepository struct {
	pool *pgxpool.Pool
}

const platformColumns = `
    id,
    name,
    about,
    website,
    created_at,
    updated_at
`

// PlatformParams bundles the writable fields of a platform.
type PlatformParams struct {
	Name    string
	About   string
	Website string
}

// Create inserts a new platform row and returns the stored entity.
func (r *PlatformsRepository) Create(ctx context.Context, params PlatformParams) (domain.Platform, error) {
	query := fmt.Sprintf(`
        INSERT INTO platforms (id, name, about, website)
        VALUES ($1,$2,$3,$4)
        RETURNING %s
    `, platformColumns)

	row := r.pool.QueryRow(ctx, query, uuid.NewString(), params.Name, params.About, params.Website)
	return scanPlatform(row)
}

// GetByID fetches a platform by its identifier.
func (r *PlatformsRepository) GetByID(ctx context.Context, id string) (domain.Platform, error) {
	query := fmt.Sprintf(`SELECT %s FROM platforms WHERE id = $1`, platformColumns)
	platform, err := scanPlatform(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Platform{}, ErrNotFound
		}
		return domain.Platform{}, err
	}
	return platform, nil
}

// List returns all platforms ordered by creation time.
func (r *PlatformsRepository) List(ctx context.Context) ([]domain.Platform, error) {
	query := fmt.Sprintf(`SELECT %s FROM platforms ORDER BY created_at, id`, platformColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Platform, 0)
	for rows.Next() {
		platform, err := scanPlatform(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, platform)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update replaces the writable fields of a platform.
func (r *PlatformsRepository) Update(ctx context.Context, id string, params PlatformParams) (domain.Platform, error) {
	query := fmt.Sprintf(`
        UPDATE platforms
        SET name = $2, about = $3, website = $4, updated_at = now()
        WHERE id = $1
        RETURNING %s
    `, platformColumns)

	platform, err := scanPlatform(r.pool.QueryRow(ctx, query, id, params.Name, params.About, params.Website))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Platform{}, ErrNotFound
		}
		return domain.Platform{}, err
	}
	return platform, nil
}

// Delete removes a platform; owned titles and their reviews cascade away.
func (r *PlatformsRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM platforms WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPlatform(row pgx.Row) (domain.Platform, error) {
	var (
		platform  domain.Platform
		createdAt time.Time
		updatedAt time.Time
	)
	err := row.Scan(
		&platform.ID,
		&platform.Name,
		&platform.About,
		&platform.Website,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Platform{}, err
	}
	platform.CreatedAt = createdAt
	platform.UpdatedAt = updatedAt
	return platform, nil
}
