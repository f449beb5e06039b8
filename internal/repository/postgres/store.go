package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"giglog/internal/domain"
)

// Querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Repositories are written against it so the same code runs inside and
// outside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements domain.Store over a Postgres database.
type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

// Repos returns repositories bound to the plain database handle.
func (s *Store) Repos() *domain.Repos {
	return newRepos(s.DB)
}

// WithinTx runs fn against repositories bound to one transaction, committing
// on nil and rolling back on error.
func (s *Store) WithinTx(ctx context.Context, fn func(r *domain.Repos) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	r := newRepos(tx)
	r.Attempt = savepointAttempt(tx)
	if err := fn(r); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", mapError(err))
	}
	return nil
}

func newRepos(q Querier) *domain.Repos {
	return &domain.Repos{
		Artists:   NewArtistRepository(q),
		Venues:    NewVenueRepository(q),
		People:    NewPersonRepository(q),
		Festivals: NewFestivalRepository(q),
		Songs:     NewSongRepository(q),
		Gigs:      NewGigRepository(q),
		// Statements on the plain handle stand alone.
		Attempt: func(_ context.Context, fn func() error) error { return fn() },
	}
}

// savepointAttempt fences fn with a savepoint. Without it, the first failed
// statement puts the transaction into 25P02 and every later statement fails
// until rollback, so an error could never be recovered from in-transaction.
func savepointAttempt(tx *sql.Tx) func(ctx context.Context, fn func() error) error {
	return func(ctx context.Context, fn func() error) error {
		if _, err := tx.ExecContext(ctx, "SAVEPOINT attempt"); err != nil {
			return fmt.Errorf("savepoint: %w", err)
		}
		if err := fn(); err != nil {
			if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT attempt"); rbErr != nil {
				return fmt.Errorf("rollback to savepoint: %w", rbErr)
			}
			return err
		}
		if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT attempt"); err != nil {
			return fmt.Errorf("release savepoint: %w", err)
		}
		return nil
	}
}

// mapError translates driver errors into domain sentinels. Unique violations
// and serialization failures both surface as ErrConflict; everything else
// passes through.
func mapError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s: %w", pqErr.Constraint, domain.ErrConflict)
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("%s: %w", pqErr.Message, domain.ErrConflict)
		case "25P02": // in_failed_sql_transaction
			// A statement slipped past a savepoint fence after an earlier
			// failure. Classify as conflict so fail-soft callers skip the
			// item instead of aborting the run.
			return fmt.Errorf("%s: %w", pqErr.Message, domain.ErrConflict)
		}
	}
	return err
}
