package postgres

import (
	"context"
	"database/sql"
	"errors"

	"giglog/internal/domain"
)

type festivalRepository struct {
	DB Querier
}

func NewFestivalRepository(db Querier) domain.FestivalRepository {
	return &festivalRepository{
		DB: db,
	}
}

func (r *festivalRepository) Create(ctx context.Context, f *domain.Festival) error {
	query := `
		INSERT INTO festivals (name, year, slug, image_url, poster_image_url, venue_id, start_date, end_date, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		f.Name, f.Year, f.Slug, f.ImageURL, f.PosterImageURL, f.VenueID,
		f.StartDate, f.EndDate, f.Price, f.CreatedAt, f.UpdatedAt,
	).Scan(&f.ID)
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (r *festivalRepository) GetByID(ctx context.Context, id string) (*domain.Festival, error) {
	query := `
		SELECT id, name, year, slug, image_url, poster_image_url, venue_id, start_date, end_date, price, created_at, updated_at
		FROM festivals
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *festivalRepository) GetByNameFold(ctx context.Context, name string) (*domain.Festival, error) {
	query := `
		SELECT id, name, year, slug, image_url, poster_image_url, venue_id, start_date, end_date, price, created_at, updated_at
		FROM festivals
		WHERE lower(name) = lower($1)
		ORDER BY created_at
		LIMIT 1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, name))
}

func (r *festivalRepository) ListAttendees(ctx context.Context, festivalID string) ([]*domain.FestivalAttendee, error) {
	query := `
		SELECT festival_id, person_id
		FROM festival_attendees
		WHERE festival_id = $1
	`
	rows, err := r.DB.QueryContext(ctx, query, festivalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	attendees := make([]*domain.FestivalAttendee, 0)
	for rows.Next() {
		a := &domain.FestivalAttendee{}
		if err := rows.Scan(&a.FestivalID, &a.PersonID); err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}
	return attendees, rows.Err()
}

func (r *festivalRepository) AddAttendee(ctx context.Context, festivalID, personID string) error {
	query := `
		INSERT INTO festival_attendees (festival_id, person_id)
		VALUES ($1, $2)
		ON CONFLICT (festival_id, person_id) DO NOTHING
	`
	if _, err := r.DB.ExecContext(ctx, query, festivalID, personID); err != nil {
		return mapError(err)
	}
	return nil
}

func (r *festivalRepository) RemoveAttendee(ctx context.Context, festivalID, personID string) error {
	query := `
		DELETE FROM festival_attendees
		WHERE festival_id = $1 AND person_id = $2
	`
	_, err := r.DB.ExecContext(ctx, query, festivalID, personID)
	return err
}

func (r *festivalRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM festivals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *festivalRepository) scanOne(row *sql.Row) (*domain.Festival, error) {
	f := &domain.Festival{}
	var yearNull sql.NullInt64
	var imageNull, posterNull, venueNull sql.NullString
	var startNull, endNull sql.NullTime
	err := row.Scan(
		&f.ID, &f.Name, &yearNull, &f.Slug, &imageNull, &posterNull, &venueNull,
		&startNull, &endNull, &f.Price, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if yearNull.Valid {
		y := int(yearNull.Int64)
		f.Year = &y
	}
	if imageNull.Valid {
		f.ImageURL = &imageNull.String
	}
	if posterNull.Valid {
		f.PosterImageURL = &posterNull.String
	}
	if venueNull.Valid {
		f.VenueID = &venueNull.String
	}
	if startNull.Valid {
		f.StartDate = &startNull.Time
	}
	if endNull.Valid {
		f.EndDate = &endNull.Time
	}
	return f, nil
}
