package postgres

import (
	"context"
	"database/sql"
	"errors"

	"giglog/internal/domain"
)

type artistRepository struct {
	DB Querier
}

func NewArtistRepository(db Querier) domain.ArtistRepository {
	return &artistRepository{
		DB: db,
	}
}

func (r *artistRepository) Create(ctx context.Context, a *domain.Artist) error {
	query := `
		INSERT INTO artists (name, slug, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, a.Name, a.Slug, a.ImageURL, a.CreatedAt, a.UpdatedAt).Scan(&a.ID)
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (r *artistRepository) GetByID(ctx context.Context, id string) (*domain.Artist, error) {
	query := `
		SELECT id, name, slug, image_url, created_at, updated_at
		FROM artists
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *artistRepository) GetByNameFold(ctx context.Context, name string) (*domain.Artist, error) {
	query := `
		SELECT id, name, slug, image_url, created_at, updated_at
		FROM artists
		WHERE lower(name) = lower($1)
		ORDER BY created_at
		LIMIT 1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, name))
}

func (r *artistRepository) ListNames(ctx context.Context) ([]domain.NameRef, error) {
	query := `
		SELECT id, name
		FROM artists
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

func (r *artistRepository) scanOne(row *sql.Row) (*domain.Artist, error) {
	a := &domain.Artist{}
	var imageNull sql.NullString
	err := row.Scan(&a.ID, &a.Name, &a.Slug, &imageNull, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if imageNull.Valid {
		a.ImageURL = &imageNull.String
	}
	return a, nil
}
