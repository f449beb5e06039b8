package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"giglog/internal/domain"
)

// Resolver turns loose entity references into canonical IDs, creating entities
// on first reference. It carries a scoped write-behind cache so the same new
// name resolved twice within one logical operation (request or batch) yields
// one entity. Create one Resolver per operation and discard it at the end.
type Resolver struct {
	repos     *domain.Repos
	artists   map[string]string
	venues    map[string]string
	people    map[string]string
	festivals map[string]string
	songs     map[string]string
}

func NewResolver(repos *domain.Repos) *Resolver {
	return &Resolver{
		repos:     repos,
		artists:   make(map[string]string),
		venues:    make(map[string]string),
		people:    make(map[string]string),
		festivals: make(map[string]string),
		songs:     make(map[string]string),
	}
}

// Artist resolves an artist reference to its ID. An ID reference passes
// through unchecked; a missing row surfaces later as a referential failure at
// save time.
func (r *Resolver) Artist(ctx context.Context, ref domain.Reference) (string, error) {
	if id, ok := ref.ID(); ok {
		return id, nil
	}
	name := ref.Name()
	if name == "" {
		return "", fmt.Errorf("artist name is required: %w", domain.ErrValidation)
	}
	key := strings.ToLower(name)
	if id, ok := r.artists[key]; ok {
		return id, nil
	}
	artist, err := r.repos.Artists.GetByNameFold(ctx, name)
	if err == nil {
		r.artists[key] = artist.ID
		return artist.ID, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("get artist by name: %w", err)
	}
	now := time.Now()
	artist = domain.NewArtist(name, slugify(name), now, now)
	if err := r.createRetrySlug(ctx, func() error { return r.repos.Artists.Create(ctx, artist) }, &artist.Slug); err != nil {
		return "", fmt.Errorf("create artist %q: %w", name, err)
	}
	r.artists[key] = artist.ID
	return artist.ID, nil
}

// Venue resolves a venue reference. Venue identity requires both name and
// city; city defaults to the Unknown sentinel when the input names a venue
// without one.
func (r *Resolver) Venue(ctx context.Context, ref domain.Reference, city string) (string, error) {
	if id, ok := ref.ID(); ok {
		return id, nil
	}
	name := ref.Name()
	if name == "" {
		return "", fmt.Errorf("venue name is required: %w", domain.ErrValidation)
	}
	city = strings.TrimSpace(city)
	if city == "" {
		city = domain.UnknownCity
	}
	key := strings.ToLower(name) + "\x00" + strings.ToLower(city)
	if id, ok := r.venues[key]; ok {
		return id, nil
	}
	venue, err := r.repos.Venues.GetByNameCityFold(ctx, name, city)
	if err == nil {
		r.venues[key] = venue.ID
		return venue.ID, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("get venue by name and city: %w", err)
	}
	now := time.Now()
	venue = domain.NewVenue(name, city, slugify(name), now, now)
	if err := r.createRetrySlug(ctx, func() error { return r.repos.Venues.Create(ctx, venue) }, &venue.Slug); err != nil {
		return "", fmt.Errorf("create venue %q: %w", name, err)
	}
	r.venues[key] = venue.ID
	return venue.ID, nil
}

// Person resolves a person reference to its ID.
func (r *Resolver) Person(ctx context.Context, ref domain.Reference) (string, error) {
	if id, ok := ref.ID(); ok {
		return id, nil
	}
	name := ref.Name()
	if name == "" {
		return "", fmt.Errorf("person name is required: %w", domain.ErrValidation)
	}
	key := strings.ToLower(name)
	if id, ok := r.people[key]; ok {
		return id, nil
	}
	person, err := r.repos.People.GetByNameFold(ctx, name)
	if err == nil {
		r.people[key] = person.ID
		return person.ID, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("get person by name: %w", err)
	}
	now := time.Now()
	person = domain.NewPerson(name, slugify(name), now, now)
	if err := r.createRetrySlug(ctx, func() error { return r.repos.People.Create(ctx, person) }, &person.Slug); err != nil {
		return "", fmt.Errorf("create person %q: %w", name, err)
	}
	r.people[key] = person.ID
	return person.ID, nil
}

// Festival resolves a festival reference to its ID.
func (r *Resolver) Festival(ctx context.Context, ref domain.Reference) (string, error) {
	if id, ok := ref.ID(); ok {
		return id, nil
	}
	name := ref.Name()
	if name == "" {
		return "", fmt.Errorf("festival name is required: %w", domain.ErrValidation)
	}
	key := strings.ToLower(name)
	if id, ok := r.festivals[key]; ok {
		return id, nil
	}
	festival, err := r.repos.Festivals.GetByNameFold(ctx, name)
	if err == nil {
		r.festivals[key] = festival.ID
		return festival.ID, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("get festival by name: %w", err)
	}
	now := time.Now()
	festival = domain.NewFestival(name, slugify(name), now, now)
	if err := r.createRetrySlug(ctx, func() error { return r.repos.Festivals.Create(ctx, festival) }, &festival.Slug); err != nil {
		return "", fmt.Errorf("create festival %q: %w", name, err)
	}
	r.festivals[key] = festival.ID
	return festival.ID, nil
}

// Song resolves a (artist, title) pair to a song ID, creating the song under
// that artist on first reference.
func (r *Resolver) Song(ctx context.Context, artistID, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("song title is required: %w", domain.ErrValidation)
	}
	key := artistID + "\x00" + strings.ToLower(title)
	if id, ok := r.songs[key]; ok {
		return id, nil
	}
	song, err := r.repos.Songs.GetByArtistAndTitleFold(ctx, artistID, title)
	if err == nil {
		r.songs[key] = song.ID
		return song.ID, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("get song by title: %w", err)
	}
	now := time.Now()
	song = domain.NewSong(artistID, title, slugify(title), now, now)
	if err := r.createRetrySlug(ctx, func() error { return r.repos.Songs.Create(ctx, song) }, &song.Slug); err != nil {
		return "", fmt.Errorf("create song %q: %w", title, err)
	}
	r.songs[key] = song.ID
	return song.ID, nil
}

// createRetrySlug runs create once and, on a slug collision, retries once with
// a disambiguating suffix. A second conflict means the natural key itself is
// contended and is surfaced to the caller. Each attempt goes through
// repos.Attempt so a failed insert does not poison an enclosing transaction.
func (r *Resolver) createRetrySlug(ctx context.Context, create func() error, slug *string) error {
	err := r.repos.Attempt(ctx, create)
	if errors.Is(err, domain.ErrConflict) {
		*slug = *slug + "-" + shortID()
		return r.repos.Attempt(ctx, create)
	}
	return err
}
