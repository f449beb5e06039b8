package postgres

import (
	"context"
	"database/sql"
	"errors"

	"giglog/internal/domain"
)

type venueRepository struct {
	DB Querier
}

func NewVenueRepository(db Querier) domain.VenueRepository {
	return &venueRepository{
		DB: db,
	}
}

func (r *venueRepository) Create(ctx context.Context, v *domain.Venue) error {
	query := `
		INSERT INTO venues (name, city, slug, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, v.Name, v.City, v.Slug, v.ImageURL, v.CreatedAt, v.UpdatedAt).Scan(&v.ID)
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (r *venueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	query := `
		SELECT id, name, city, slug, image_url, created_at, updated_at
		FROM venues
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *venueRepository) GetByNameFold(ctx context.Context, name string) (*domain.Venue, error) {
	query := `
		SELECT id, name, city, slug, image_url, created_at, updated_at
		FROM venues
		WHERE lower(name) = lower($1)
		ORDER BY created_at
		LIMIT 1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, name))
}

func (r *venueRepository) GetByNameCityFold(ctx context.Context, name, city string) (*domain.Venue, error) {
	query := `
		SELECT id, name, city, slug, image_url, created_at, updated_at
		FROM venues
		WHERE lower(name) = lower($1) AND lower(city) = lower($2)
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, name, city))
}

func (r *venueRepository) FindNameWithin(ctx context.Context, text string) (*domain.Venue, error) {
	// Reversed ILIKE: the stored venue name must appear inside the given text.
	query := `
		SELECT id, name, city, slug, image_url, created_at, updated_at
		FROM venues
		WHERE $1 ILIKE '%' || name || '%'
		ORDER BY length(name) DESC, created_at
		LIMIT 1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, text))
}

func (r *venueRepository) ListNames(ctx context.Context) ([]domain.NameRef, error) {
	query := `
		SELECT id, name
		FROM venues
		ORDER BY name
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	refs := make([]domain.NameRef, 0)
	for rows.Next() {
		var ref domain.NameRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (r *venueRepository) scanOne(row *sql.Row) (*domain.Venue, error) {
	v := &domain.Venue{}
	var imageNull sql.NullString
	err := row.Scan(&v.ID, &v.Name, &v.City, &v.Slug, &imageNull, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if imageNull.Valid {
		v.ImageURL = &imageNull.String
	}
	return v, nil
}
