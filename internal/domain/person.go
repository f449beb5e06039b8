package domain

import (
	"context"
	"time"
)

// Person represents someone who attends gigs.
// swagger:model Person
type Person struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPerson returns a new Person. ID is set by the repository on create.
func NewPerson(name, slug string, createdAt, updatedAt time.Time) *Person {
	return &Person{
		Name:      name,
		Slug:      slug,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// PersonService exposes person-level operations.
type PersonService interface {
	// Delete removes the person along with their gig and festival attendance.
	Delete(ctx context.Context, personID string) error
}

// PersonRepository defines the interface for person storage
type PersonRepository interface {
	Create(ctx context.Context, person *Person) error
	GetByID(ctx context.Context, id string) (*Person, error)
	GetByNameFold(ctx context.Context, name string) (*Person, error)
	ListNames(ctx context.Context) ([]NameRef, error)
	// Delete removes the person and cascades to attendee rows.
	Delete(ctx context.Context, id string) error
}
