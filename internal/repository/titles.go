package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streamvault/watchlist-api/internal/domain"
)

// TitlesRepository provides persistence helpers for watchlist titles.
type TitlesRepository struct {
	pool *pgxpool.Pool
}

const titleColumns = `
    t.id,
    t.title,
    t.storyline,
    t.active,
    t.platform_id,
    p.name,
    t.avg_rating,
    t.rating_count,
    t.created_at,
    t.updated_at
`

const titleFrom = ` FROM titles t JOIN platforms p ON p.id = t.platform_id `

// TitleParams bundles the writable fields of a title. Aggregate fields are
// excluded on purpose; only review creation mutates them.
type TitleParams struct {
	Name       string
	Storyline  string
	Active     bool
	PlatformID string
}

// TitleListFilters narrows the title listing.
type TitleListFilters struct {
	PlatformID *string
	Active     *bool
}

// Create inserts a new title row with zeroed aggregates.
func (r *TitlesRepository) Create(ctx context.Context, params TitleParams) (domain.Title, error) {
	query := fmt.Sprintf(`
        WITH inserted AS (
            INSERT INTO titles (id, title, storyline, active, platform_id)
            VALUES ($1,$2,$3,$4,$5)
            RETURNING *
        )
        SELECT %s FROM inserted t JOIN platforms p ON p.id = t.platform_id
    `, titleColumns)

	title, err := scanTitle(r.pool.QueryRow(ctx, query, uuid.NewString(), params.Name, params.Storyline, params.Active, params.PlatformID))
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Title{}, ErrNotFound
		}
		return domain.Title{}, err
	}
	return title, nil
}

// GetByID fetches a title by its identifier.
func (r *TitlesRepository) GetByID(ctx context.Context, id string) (domain.Title, error) {
	query := `SELECT ` + titleColumns + titleFrom + `WHERE t.id = $1`
	title, err := scanTitle(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Title{}, ErrNotFound
		}
		return domain.Title{}, err
	}
	return title, nil
}

// List returns titles matching the provided filters.
func (r *TitlesRepository) List(ctx context.Context, filters TitleListFilters) ([]domain.Title, error) {
	where := make([]string, 0)
	args := make([]interface{}, 0)
	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.PlatformID != nil {
		where = append(where, fmt.Sprintf("t.platform_id = %s", arg(*filters.PlatformID)))
	}
	if filters.Active != nil {
		where = append(where, fmt.Sprintf("t.active = %s", arg(*filters.Active)))
	}

	query := `SELECT ` + titleColumns + titleFrom
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY t.created_at, t.id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Title, 0)
	for rows.Next() {
		title, err := scanTitle(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, title)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update replaces the writable fields of a title, leaving aggregates alone.
func (r *TitlesRepository) Update(ctx context.Context, id string, params TitleParams) (domain.Title, error) {
	query := fmt.Sprintf(`
        WITH updated AS (
            UPDATE titles
            SET title = $2, storyline = $3, active = $4, platform_id = $5, updated_at = now()
            WHERE id = $1
            RETURNING *
        )
        SELECT %s FROM updated t JOIN platforms p ON p.id = t.platform_id
    `, titleColumns)

	title, err := scanTitle(r.pool.QueryRow(ctx, query, id, params.Name, params.Storyline, params.Active, params.PlatformID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Title{}, ErrNotFound
		}
		if isForeignKeyViolation(err) {
			return domain.Title{}, ErrNotFound
		}
		return domain.Title{}, err
	}
	return title, nil
}

// Delete removes a title; its reviews cascade away.
func (r *TitlesRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM titles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTitle(row pgx.Row) (domain.Title, error) {
	var title domain.Title
	err := row.Scan(
		&title.ID,
		&title.Name,
		&title.Storyline,
		&title.Active,
		&title.PlatformID,
		&title.PlatformName,
		&title.AvgRating,
		&title.RatingCount,
		&title.CreatedAt,
		&title.UpdatedAt,
	)
	if err != nil {
		return domain.Title{}, err
	}
	return title, nil
}
