package postgres

import (
	"context"
	"database/sql"
	"errors"

	"giglog/internal/domain"
)

type songRepository struct {
	DB Querier
}

func NewSongRepository(db Querier) domain.SongRepository {
	return &songRepository{
		DB: db,
	}
}

func (r *songRepository) Create(ctx context.Context, s *domain.Song) error {
	query := `
		INSERT INTO songs (artist_id, title, slug, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, s.ArtistID, s.Title, s.Slug, s.CreatedAt, s.UpdatedAt).Scan(&s.ID)
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (r *songRepository) GetByID(ctx context.Context, id string) (*domain.Song, error) {
	query := `
		SELECT id, artist_id, title, slug, created_at, updated_at
		FROM songs
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *songRepository) GetByArtistAndTitleFold(ctx context.Context, artistID, title string) (*domain.Song, error) {
	query := `
		SELECT id, artist_id, title, slug, created_at, updated_at
		FROM songs
		WHERE artist_id = $1 AND lower(title) = lower($2)
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, artistID, title))
}

func (r *songRepository) scanOne(row *sql.Row) (*domain.Song, error) {
	s := &domain.Song{}
	err := row.Scan(&s.ID, &s.ArtistID, &s.Title, &s.Slug, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}
