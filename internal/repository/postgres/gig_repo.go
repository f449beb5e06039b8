package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"giglog/internal/domain"
)

type gigRepository struct {
	DB Querier
}

func NewGigRepository(db Querier) domain.GigRepository {
	return &gigRepository{
		DB: db,
	}
}

const gigColumns = `id, venue_id, festival_id, date, position, ticket_cost, ticket_type, image_url, slug, created_at, updated_at`

func (r *gigRepository) Create(ctx context.Context, g *domain.Gig) error {
	query := `
		INSERT INTO gigs (venue_id, festival_id, date, position, ticket_cost, ticket_type, image_url, slug, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		g.VenueID, g.FestivalID, g.Date, g.Order, g.TicketCost, string(g.TicketType),
		g.ImageURL, g.Slug, g.CreatedAt, g.UpdatedAt,
	).Scan(&g.ID)
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (r *gigRepository) Update(ctx context.Context, g *domain.Gig) error {
	query := `
		UPDATE gigs
		SET venue_id = $2, festival_id = $3, date = $4, position = $5,
		    ticket_cost = $6, ticket_type = $7, image_url = $8, updated_at = $9
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		g.ID, g.VenueID, g.FestivalID, g.Date, g.Order, g.TicketCost,
		string(g.TicketType), g.ImageURL, g.UpdatedAt,
	)
	if err != nil {
		return mapError(err)
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

func (r *gigRepository) GetByID(ctx context.Context, id string) (*domain.Gig, error) {
	query := `
		SELECT ` + gigColumns + `
		FROM gigs
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *gigRepository) FindDuplicate(ctx context.Context, venueID string, date time.Time, headlinerArtistID string) (*domain.Gig, error) {
	query := `
		SELECT g.id, g.venue_id, g.festival_id, g.date, g.position, g.ticket_cost, g.ticket_type, g.image_url, g.slug, g.created_at, g.updated_at
		FROM gigs g
		JOIN gig_artists ga ON ga.gig_id = g.id AND ga.is_headliner
		WHERE g.venue_id = $1 AND g.date = $2 AND ga.artist_id = $3
		ORDER BY g.created_at
		LIMIT 1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, venueID, date, headlinerArtistID))
}

func (r *gigRepository) Delete(ctx context.Context, id string) error {
	// Act, setlist and attendee rows cascade via foreign keys.
	res, err := r.DB.ExecContext(ctx, `DELETE FROM gigs WHERE id = $1`, id)
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

func (r *gigRepository) ListDates(ctx context.Context) ([]time.Time, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT date FROM gigs ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	dates := make([]time.Time, 0)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func (r *gigRepository) ListActs(ctx context.Context, gigID string) ([]*domain.GigArtist, error) {
	query := `
		SELECT id, gig_id, artist_id, is_headliner, position, setlist_url, created_at, updated_at
		FROM gig_artists
		WHERE gig_id = $1
		ORDER BY position, created_at
	`
	rows, err := r.DB.QueryContext(ctx, query, gigID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	acts := make([]*domain.GigArtist, 0)
	for rows.Next() {
		a := &domain.GigArtist{}
		var setlistNull sql.NullString
		if err := rows.Scan(&a.ID, &a.GigID, &a.ArtistID, &a.IsHeadliner, &a.Order, &setlistNull, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		if setlistNull.Valid {
			a.SetlistURL = &setlistNull.String
		}
		acts = append(acts, a)
	}
	return acts, rows.Err()
}

func (r *gigRepository) CreateAct(ctx context.Context, act *domain.GigArtist) error {
	query := `
		INSERT INTO gig_artists (gig_id, artist_id, is_headliner, position, setlist_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		act.GigID, act.ArtistID, act.IsHeadliner, act.Order, act.SetlistURL, act.CreatedAt, act.UpdatedAt,
	).Scan(&act.ID)
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (r *gigRepository) UpdateAct(ctx context.Context, act *domain.GigArtist) error {
	query := `
		UPDATE gig_artists
		SET is_headliner = $2, position = $3, setlist_url = $4, updated_at = $5
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, act.ID, act.IsHeadliner, act.Order, act.SetlistURL, act.UpdatedAt)
	if err != nil {
		return mapError(err)
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

func (r *gigRepository) DeleteAct(ctx context.Context, actID string) error {
	// Setlist entries cascade via foreign keys.
	_, err := r.DB.ExecContext(ctx, `DELETE FROM gig_artists WHERE id = $1`, actID)
	return err
}

func (r *gigRepository) ListActSongs(ctx context.Context, actID string) ([]*domain.GigArtistSong, error) {
	query := `
		SELECT id, gig_artist_id, song_id, position, is_encore, info, is_tape, with_artist_id, cover_artist_id
		FROM gig_artist_songs
		WHERE gig_artist_id = $1
		ORDER BY position
	`
	rows, err := r.DB.QueryContext(ctx, query, actID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	entries := make([]*domain.GigArtistSong, 0)
	for rows.Next() {
		e := &domain.GigArtistSong{}
		var infoNull, withNull, coverNull sql.NullString
		if err := rows.Scan(&e.ID, &e.GigArtistID, &e.SongID, &e.Order, &e.IsEncore, &infoNull, &e.IsTape, &withNull, &coverNull); err != nil {
			return nil, err
		}
		if infoNull.Valid {
			e.Info = &infoNull.String
		}
		if withNull.Valid {
			e.WithArtistID = &withNull.String
		}
		if coverNull.Valid {
			e.CoverArtistID = &coverNull.String
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *gigRepository) CreateActSong(ctx context.Context, e *domain.GigArtistSong) error {
	query := `
		INSERT INTO gig_artist_songs (gig_artist_id, song_id, position, is_encore, info, is_tape, with_artist_id, cover_artist_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.GigArtistID, e.SongID, e.Order, e.IsEncore, e.Info, e.IsTape, e.WithArtistID, e.CoverArtistID,
	).Scan(&e.ID)
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (r *gigRepository) UpdateActSong(ctx context.Context, e *domain.GigArtistSong) error {
	query := `
		UPDATE gig_artist_songs
		SET position = $2, is_encore = $3, info = $4, is_tape = $5, with_artist_id = $6, cover_artist_id = $7
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, e.ID, e.Order, e.IsEncore, e.Info, e.IsTape, e.WithArtistID, e.CoverArtistID)
	if err != nil {
		return mapError(err)
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

func (r *gigRepository) DeleteActSong(ctx context.Context, entryID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM gig_artist_songs WHERE id = $1`, entryID)
	return err
}

func (r *gigRepository) ListAttendees(ctx context.Context, gigID string) ([]*domain.GigAttendee, error) {
	query := `
		SELECT gig_id, person_id
		FROM gig_attendees
		WHERE gig_id = $1
	`
	rows, err := r.DB.QueryContext(ctx, query, gigID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	attendees := make([]*domain.GigAttendee, 0)
	for rows.Next() {
		a := &domain.GigAttendee{}
		if err := rows.Scan(&a.GigID, &a.PersonID); err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}
	return attendees, rows.Err()
}

func (r *gigRepository) AddAttendee(ctx context.Context, gigID, personID string) error {
	query := `
		INSERT INTO gig_attendees (gig_id, person_id)
		VALUES ($1, $2)
		ON CONFLICT (gig_id, person_id) DO NOTHING
	`
	if _, err := r.DB.ExecContext(ctx, query, gigID, personID); err != nil {
		return mapError(err)
	}
	return nil
}

func (r *gigRepository) RemoveAttendee(ctx context.Context, gigID, personID string) error {
	query := `
		DELETE FROM gig_attendees
		WHERE gig_id = $1 AND person_id = $2
	`
	_, err := r.DB.ExecContext(ctx, query, gigID, personID)
	return err
}

func (r *gigRepository) scanOne(row *sql.Row) (*domain.Gig, error) {
	g := &domain.Gig{}
	var festivalNull, imageNull sql.NullString
	var ticketType string
	err := row.Scan(
		&g.ID, &g.VenueID, &festivalNull, &g.Date, &g.Order, &g.TicketCost,
		&ticketType, &imageNull, &g.Slug, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	g.TicketType = domain.TicketType(ticketType)
	if festivalNull.Valid {
		g.FestivalID = &festivalNull.String
	}
	if imageNull.Valid {
		g.ImageURL = &imageNull.String
	}
	return g, nil
}
