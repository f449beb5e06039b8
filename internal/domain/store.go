package domain

import "context"

// Repos bundles the per-aggregate repositories that share one database handle
// or one open transaction.
type Repos struct {
	Artists   ArtistRepository
	Venues    VenueRepository
	People    PersonRepository
	Festivals FestivalRepository
	Songs     SongRepository
	Gigs      GigRepository

	// Attempt runs fn so that a failure leaves the surrounding transaction
	// usable. Postgres aborts a transaction after any failed statement, so
	// bindings inside a transaction fence fn with a savepoint; bindings to a
	// plain handle run fn directly. Callers that want to recover from an
	// expected error, such as a slug collision, must go through Attempt.
	Attempt func(ctx context.Context, fn func() error) error
}

// Store is the unit-of-work boundary. WithinTx runs fn against repositories
// bound to a single transaction, committing on nil and rolling back on error.
// Repos returns repositories bound to the plain handle for reads that do not
// need transactional visibility.
type Store interface {
	Repos() *Repos
	WithinTx(ctx context.Context, fn func(r *Repos) error) error
}
