package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"giglog/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedTime() time.Time {
	return time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)
}

// In-memory repositories shared by the service tests. They mimic the
// postgres repositories' behavior: case-insensitive name lookups,
// domain.ErrNotFound on misses, domain.ErrConflict on natural-key duplicates.

type fakeStore struct {
	repos    *domain.Repos
	attempts int // creates fenced via repos.Attempt

	artists   *fakeArtistRepo
	venues    *fakeVenueRepo
	people    *fakePersonRepo
	festivals *fakeFestivalRepo
	songs     *fakeSongRepo
	gigs      *fakeGigRepo
}

func newFakeStore() *fakeStore {
	s := &fakeStore{
		artists:   newFakeArtistRepo(),
		venues:    newFakeVenueRepo(),
		people:    newFakePersonRepo(),
		festivals: newFakeFestivalRepo(),
		songs:     newFakeSongRepo(),
		gigs:      newFakeGigRepo(),
	}
	s.repos = &domain.Repos{
		Artists:   s.artists,
		Venues:    s.venues,
		People:    s.people,
		Festivals: s.festivals,
		Songs:     s.songs,
		Gigs:      s.gigs,
	}
	s.repos.Attempt = func(_ context.Context, fn func() error) error {
		s.attempts++
		return fn()
	}
	return s
}

func (s *fakeStore) Repos() *domain.Repos { return s.repos }

func (s *fakeStore) WithinTx(ctx context.Context, fn func(r *domain.Repos) error) error {
	return fn(s.repos)
}

// fakeArtistRepo

type fakeArtistRepo struct {
	byID   map[string]*domain.Artist
	order  []string
	nextID int
	err    error // if set, Create returns this error once
}

func newFakeArtistRepo() *fakeArtistRepo {
	return &fakeArtistRepo{byID: make(map[string]*domain.Artist), nextID: 1}
}

func (f *fakeArtistRepo) Create(ctx context.Context, a *domain.Artist) error {
	if f.err != nil {
		err := f.err
		f.err = nil
		return err
	}
	for _, existing := range f.byID {
		if strings.EqualFold(existing.Name, a.Name) || existing.Slug == a.Slug {
			return fmt.Errorf("artists: %w", domain.ErrConflict)
		}
	}
	a.ID = fmt.Sprintf("artist-%d", f.nextID)
	f.nextID++
	f.byID[a.ID] = a
	f.order = append(f.order, a.ID)
	return nil
}

func (f *fakeArtistRepo) GetByID(ctx context.Context, id string) (*domain.Artist, error) {
	if a, ok := f.byID[id]; ok {
		return a, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeArtistRepo) GetByNameFold(ctx context.Context, name string) (*domain.Artist, error) {
	for _, id := range f.order {
		if strings.EqualFold(f.byID[id].Name, name) {
			return f.byID[id], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeArtistRepo) ListNames(ctx context.Context) ([]domain.NameRef, error) {
	refs := make([]domain.NameRef, 0, len(f.byID))
	for _, id := range f.order {
		refs = append(refs, domain.NameRef{ID: id, Name: f.byID[id].Name})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// fakeVenueRepo

type fakeVenueRepo struct {
	byID   map[string]*domain.Venue
	order  []string
	nextID int
}

func newFakeVenueRepo() *fakeVenueRepo {
	return &fakeVenueRepo{byID: make(map[string]*domain.Venue), nextID: 1}
}

func (f *fakeVenueRepo) Create(ctx context.Context, v *domain.Venue) error {
	for _, existing := range f.byID {
		if (strings.EqualFold(existing.Name, v.Name) && strings.EqualFold(existing.City, v.City)) || existing.Slug == v.Slug {
			return fmt.Errorf("venues: %w", domain.ErrConflict)
		}
	}
	v.ID = fmt.Sprintf("venue-%d", f.nextID)
	f.nextID++
	f.byID[v.ID] = v
	f.order = append(f.order, v.ID)
	return nil
}

func (f *fakeVenueRepo) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	if v, ok := f.byID[id]; ok {
		return v, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeVenueRepo) GetByNameFold(ctx context.Context, name string) (*domain.Venue, error) {
	for _, id := range f.order {
		if strings.EqualFold(f.byID[id].Name, name) {
			return f.byID[id], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeVenueRepo) GetByNameCityFold(ctx context.Context, name, city string) (*domain.Venue, error) {
	for _, id := range f.order {
		v := f.byID[id]
		if strings.EqualFold(v.Name, name) && strings.EqualFold(v.City, city) {
			return v, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeVenueRepo) FindNameWithin(ctx context.Context, text string) (*domain.Venue, error) {
	lower := strings.ToLower(text)
	var best *domain.Venue
	for _, id := range f.order {
		v := f.byID[id]
		if strings.Contains(lower, strings.ToLower(v.Name)) {
			if best == nil || len(v.Name) > len(best.Name) {
				best = v
			}
		}
	}
	if best == nil {
		return nil, domain.ErrNotFound
	}
	return best, nil
}

func (f *fakeVenueRepo) ListNames(ctx context.Context) ([]domain.NameRef, error) {
	refs := make([]domain.NameRef, 0, len(f.byID))
	for _, id := range f.order {
		refs = append(refs, domain.NameRef{ID: id, Name: f.byID[id].Name})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// fakePersonRepo

type fakePersonRepo struct {
	byID   map[string]*domain.Person
	order  []string
	nextID int
}

func newFakePersonRepo() *fakePersonRepo {
	return &fakePersonRepo{byID: make(map[string]*domain.Person), nextID: 1}
}

func (f *fakePersonRepo) Create(ctx context.Context, p *domain.Person) error {
	for _, existing := range f.byID {
		if strings.EqualFold(existing.Name, p.Name) || existing.Slug == p.Slug {
			return fmt.Errorf("people: %w", domain.ErrConflict)
		}
	}
	p.ID = fmt.Sprintf("person-%d", f.nextID)
	f.nextID++
	f.byID[p.ID] = p
	f.order = append(f.order, p.ID)
	return nil
}

func (f *fakePersonRepo) GetByID(ctx context.Context, id string) (*domain.Person, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakePersonRepo) GetByNameFold(ctx context.Context, name string) (*domain.Person, error) {
	for _, id := range f.order {
		if strings.EqualFold(f.byID[id].Name, name) {
			return f.byID[id], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakePersonRepo) ListNames(ctx context.Context) ([]domain.NameRef, error) {
	refs := make([]domain.NameRef, 0, len(f.byID))
	for _, id := range f.order {
		refs = append(refs, domain.NameRef{ID: id, Name: f.byID[id].Name})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

func (f *fakePersonRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeFestivalRepo

type fakeFestivalRepo struct {
	byID      map[string]*domain.Festival
	order     []string
	attendees []*domain.FestivalAttendee
	nextID    int
}

func newFakeFestivalRepo() *fakeFestivalRepo {
	return &fakeFestivalRepo{byID: make(map[string]*domain.Festival), nextID: 1}
}

func (f *fakeFestivalRepo) Create(ctx context.Context, fest *domain.Festival) error {
	for _, existing := range f.byID {
		if existing.Slug == fest.Slug {
			return fmt.Errorf("festivals: %w", domain.ErrConflict)
		}
	}
	fest.ID = fmt.Sprintf("festival-%d", f.nextID)
	f.nextID++
	f.byID[fest.ID] = fest
	f.order = append(f.order, fest.ID)
	return nil
}

func (f *fakeFestivalRepo) GetByID(ctx context.Context, id string) (*domain.Festival, error) {
	if fest, ok := f.byID[id]; ok {
		return fest, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeFestivalRepo) GetByNameFold(ctx context.Context, name string) (*domain.Festival, error) {
	for _, id := range f.order {
		if strings.EqualFold(f.byID[id].Name, name) {
			return f.byID[id], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeFestivalRepo) ListAttendees(ctx context.Context, festivalID string) ([]*domain.FestivalAttendee, error) {
	out := make([]*domain.FestivalAttendee, 0)
	for _, a := range f.attendees {
		if a.FestivalID == festivalID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeFestivalRepo) AddAttendee(ctx context.Context, festivalID, personID string) error {
	for _, a := range f.attendees {
		if a.FestivalID == festivalID && a.PersonID == personID {
			return nil
		}
	}
	f.attendees = append(f.attendees, &domain.FestivalAttendee{FestivalID: festivalID, PersonID: personID})
	return nil
}

func (f *fakeFestivalRepo) RemoveAttendee(ctx context.Context, festivalID, personID string) error {
	for i, a := range f.attendees {
		if a.FestivalID == festivalID && a.PersonID == personID {
			f.attendees = append(f.attendees[:i], f.attendees[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeFestivalRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	kept := f.attendees[:0]
	for _, a := range f.attendees {
		if a.FestivalID != id {
			kept = append(kept, a)
		}
	}
	f.attendees = kept
	return nil
}

// fakeSongRepo

type fakeSongRepo struct {
	byID   map[string]*domain.Song
	order  []string
	nextID int
}

func newFakeSongRepo() *fakeSongRepo {
	return &fakeSongRepo{byID: make(map[string]*domain.Song), nextID: 1}
}

func (f *fakeSongRepo) Create(ctx context.Context, s *domain.Song) error {
	for _, existing := range f.byID {
		if existing.ArtistID == s.ArtistID && strings.EqualFold(existing.Title, s.Title) {
			return fmt.Errorf("songs: %w", domain.ErrConflict)
		}
	}
	s.ID = fmt.Sprintf("song-%d", f.nextID)
	f.nextID++
	f.byID[s.ID] = s
	f.order = append(f.order, s.ID)
	return nil
}

func (f *fakeSongRepo) GetByID(ctx context.Context, id string) (*domain.Song, error) {
	if s, ok := f.byID[id]; ok {
		return s, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSongRepo) GetByArtistAndTitleFold(ctx context.Context, artistID, title string) (*domain.Song, error) {
	for _, id := range f.order {
		s := f.byID[id]
		if s.ArtistID == artistID && strings.EqualFold(s.Title, title) {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

// fakeGigRepo

type fakeGigRepo struct {
	byID      map[string]*domain.Gig
	acts      []*domain.GigArtist
	songs     []*domain.GigArtistSong
	attendees []*domain.GigAttendee
	nextID    int
	updateErr error // if set, Update returns this error once
}

func newFakeGigRepo() *fakeGigRepo {
	return &fakeGigRepo{byID: make(map[string]*domain.Gig), nextID: 1}
}

func (f *fakeGigRepo) Create(ctx context.Context, g *domain.Gig) error {
	for _, existing := range f.byID {
		if existing.Slug == g.Slug {
			return fmt.Errorf("gigs: %w", domain.ErrConflict)
		}
	}
	copied := *g
	g.ID = fmt.Sprintf("gig-%d", f.nextID)
	copied.ID = g.ID
	f.nextID++
	f.byID[g.ID] = &copied
	return nil
}

func (f *fakeGigRepo) Update(ctx context.Context, g *domain.Gig) error {
	if f.updateErr != nil {
		err := f.updateErr
		f.updateErr = nil
		return err
	}
	if _, ok := f.byID[g.ID]; !ok {
		return domain.ErrNotFound
	}
	copied := *g
	f.byID[g.ID] = &copied
	return nil
}

func (f *fakeGigRepo) GetByID(ctx context.Context, id string) (*domain.Gig, error) {
	if g, ok := f.byID[id]; ok {
		copied := *g
		copied.Acts = nil
		copied.Attendees = nil
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeGigRepo) FindDuplicate(ctx context.Context, venueID string, date time.Time, headlinerArtistID string) (*domain.Gig, error) {
	for _, g := range f.byID {
		if g.VenueID != venueID || !g.Date.Equal(date) {
			continue
		}
		for _, a := range f.acts {
			if a.GigID == g.ID && a.IsHeadliner && a.ArtistID == headlinerArtistID {
				copied := *g
				copied.Acts = nil
				copied.Attendees = nil
				return &copied, nil
			}
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeGigRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	keptActs := f.acts[:0]
	for _, a := range f.acts {
		if a.GigID != id {
			keptActs = append(keptActs, a)
		} else {
			f.removeActSongs(a.ID)
		}
	}
	f.acts = keptActs
	keptAtt := f.attendees[:0]
	for _, a := range f.attendees {
		if a.GigID != id {
			keptAtt = append(keptAtt, a)
		}
	}
	f.attendees = keptAtt
	return nil
}

func (f *fakeGigRepo) ListDates(ctx context.Context) ([]time.Time, error) {
	dates := make([]time.Time, 0, len(f.byID))
	for _, g := range f.byID {
		dates = append(dates, g.Date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

func (f *fakeGigRepo) ListActs(ctx context.Context, gigID string) ([]*domain.GigArtist, error) {
	out := make([]*domain.GigArtist, 0)
	for _, a := range f.acts {
		if a.GigID == gigID {
			copied := *a
			copied.Songs = nil
			out = append(out, &copied)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (f *fakeGigRepo) CreateAct(ctx context.Context, act *domain.GigArtist) error {
	for _, a := range f.acts {
		if a.GigID == act.GigID && a.ArtistID == act.ArtistID {
			return fmt.Errorf("gig_artists: %w", domain.ErrConflict)
		}
	}
	act.ID = fmt.Sprintf("act-%d", f.nextID)
	f.nextID++
	copied := *act
	f.acts = append(f.acts, &copied)
	return nil
}

func (f *fakeGigRepo) UpdateAct(ctx context.Context, act *domain.GigArtist) error {
	for i, a := range f.acts {
		if a.ID == act.ID {
			copied := *act
			f.acts[i] = &copied
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeGigRepo) DeleteAct(ctx context.Context, actID string) error {
	for i, a := range f.acts {
		if a.ID == actID {
			f.acts = append(f.acts[:i], f.acts[i+1:]...)
			f.removeActSongs(actID)
			return nil
		}
	}
	return nil
}

func (f *fakeGigRepo) removeActSongs(actID string) {
	kept := f.songs[:0]
	for _, s := range f.songs {
		if s.GigArtistID != actID {
			kept = append(kept, s)
		}
	}
	f.songs = kept
}

func (f *fakeGigRepo) ListActSongs(ctx context.Context, actID string) ([]*domain.GigArtistSong, error) {
	out := make([]*domain.GigArtistSong, 0)
	for _, s := range f.songs {
		if s.GigArtistID == actID {
			copied := *s
			out = append(out, &copied)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (f *fakeGigRepo) CreateActSong(ctx context.Context, e *domain.GigArtistSong) error {
	for _, s := range f.songs {
		if s.GigArtistID == e.GigArtistID && s.SongID == e.SongID {
			return fmt.Errorf("gig_artist_songs: %w", domain.ErrConflict)
		}
	}
	e.ID = fmt.Sprintf("entry-%d", f.nextID)
	f.nextID++
	copied := *e
	f.songs = append(f.songs, &copied)
	return nil
}

func (f *fakeGigRepo) UpdateActSong(ctx context.Context, e *domain.GigArtistSong) error {
	for i, s := range f.songs {
		if s.ID == e.ID {
			copied := *e
			f.songs[i] = &copied
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeGigRepo) DeleteActSong(ctx context.Context, entryID string) error {
	for i, s := range f.songs {
		if s.ID == entryID {
			f.songs = append(f.songs[:i], f.songs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeGigRepo) ListAttendees(ctx context.Context, gigID string) ([]*domain.GigAttendee, error) {
	out := make([]*domain.GigAttendee, 0)
	for _, a := range f.attendees {
		if a.GigID == gigID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeGigRepo) AddAttendee(ctx context.Context, gigID, personID string) error {
	for _, a := range f.attendees {
		if a.GigID == gigID && a.PersonID == personID {
			return nil
		}
	}
	f.attendees = append(f.attendees, &domain.GigAttendee{GigID: gigID, PersonID: personID})
	return nil
}

func (f *fakeGigRepo) RemoveAttendee(ctx context.Context, gigID, personID string) error {
	for i, a := range f.attendees {
		if a.GigID == gigID && a.PersonID == personID {
			f.attendees = append(f.attendees[:i], f.attendees[i+1:]...)
			return nil
		}
	}
	return nil
}
