package postgres

import (
	"context"
	"database/sql"
	"errors"

	"giglog/internal/domain"
)

type personRepository struct {
	DB Querier
}

func NewPersonRepository(db Querier) domain.PersonRepository {
	return &personRepository{
		DB: db,
	}
}

func (r *personRepository) Create(ctx context.Context, p *domain.Person) error {
	query := `
		INSERT INTO people (name, slug, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, p.Name, p.Slug, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (r *personRepository) GetByID(ctx context.Context, id string) (*domain.Person, error) {
	query := `
		SELECT id, name, slug, created_at, updated_at
		FROM people
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *personRepository) GetByNameFold(ctx context.Context, name string) (*domain.Person, error) {
	query := `
		SELECT id, name, slug, created_at, updated_at
		FROM people
		WHERE lower(name) = lower($1)
		ORDER BY created_at
		LIMIT 1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, name))
}

func (r *personRepository) ListNames(ctx context.Context) ([]domain.NameRef, error) {
	query := `
		SELECT id, name
		FROM people
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

func (r *personRepository) Delete(ctx context.Context, id string) error {
	// Attendee rows cascade via foreign keys.
	res, err := r.DB.ExecContext(ctx, `DELETE FROM people WHERE id = $1`, id)
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

func (r *personRepository) scanOne(row *sql.Row) (*domain.Person, error) {
	p := &domain.Person{}
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}
