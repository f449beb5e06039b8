package domain

import (
	"strings"

	"github.com/google/uuid"
)

// NewNamePrefix forces name-based resolution even when the remainder of the
// string would parse as an ID.
const NewNamePrefix = "new:"

// Reference identifies an entity either by its opaque ID or by a human-readable
// name to be resolved (and possibly created) later. The wire forms are decoded
// once at the boundary; the core never inspects raw strings.
type Reference struct {
	id   string
	name string
}

// ByID returns a Reference to an existing entity by opaque ID.
func ByID(id string) Reference {
	return Reference{id: id}
}

// ByName returns a Reference to an entity by name. Resolution is
// case-insensitive and creates the entity when no row matches.
func ByName(name string) Reference {
	return Reference{name: strings.TrimSpace(name)}
}

// ParseReference decodes the wire form of a reference: a valid UUID string is
// an ID reference, a "new:"-prefixed string is a name reference on the
// remainder, and anything else is a name reference on the whole string.
func ParseReference(s string) Reference {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, NewNamePrefix); ok {
		return ByName(rest)
	}
	if _, err := uuid.Parse(s); err == nil {
		return ByID(s)
	}
	return ByName(s)
}

// ID returns the opaque ID and true when this is an ID reference.
func (r Reference) ID() (string, bool) {
	return r.id, r.id != ""
}

// Name returns the name for a name reference; empty for ID references.
func (r Reference) Name() string {
	return r.name
}

// IsZero reports whether the reference carries neither an ID nor a name.
func (r Reference) IsZero() bool {
	return r.id == "" && r.name == ""
}
