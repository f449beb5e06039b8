package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"giglog/internal/domain"
)

type gigService struct {
	store    domain.Store
	enricher domain.Enricher // nil when no enrichment collaborator is configured
	logger   *slog.Logger
}

// NewGigService creates the gig upsert orchestrator. enricher may be nil.
func NewGigService(store domain.Store, enricher domain.Enricher, logger *slog.Logger) domain.GigService {
	return &gigService{
		store:    store,
		enricher: enricher,
		logger:   logger,
	}
}

func (s *gigService) UpsertGig(ctx context.Context, req domain.UpsertGigRequest) (*domain.Gig, bool, error) {
	s.maybeEnrich(ctx, &req)

	var gig *domain.Gig
	var created bool
	err := s.store.WithinTx(ctx, func(r *domain.Repos) error {
		var err error
		gig, created, err = upsertGig(ctx, r, NewResolver(r), req)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return gig, created, nil
}

func (s *gigService) GetGig(ctx context.Context, gigID string) (*domain.Gig, error) {
	r := s.store.Repos()
	gig, err := r.Gigs.GetByID(ctx, gigID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get gig: %w", err)
	}
	if err := loadGigChildren(ctx, r, gig); err != nil {
		return nil, err
	}
	return gig, nil
}

func (s *gigService) DeleteGig(ctx context.Context, gigID string) error {
	return s.store.WithinTx(ctx, func(r *domain.Repos) error {
		return r.Gigs.Delete(ctx, gigID)
	})
}

// maybeEnrich asks the enrichment collaborator for support acts and a setlist
// when a new gig names its headliner and venue but came without a setlist.
// Failures are logged and swallowed; enrichment is never fatal.
func (s *gigService) maybeEnrich(ctx context.Context, req *domain.UpsertGigRequest) {
	if s.enricher == nil || req.GigID != "" {
		return
	}
	headliner := -1
	for i, act := range req.Acts {
		if act.IsHeadliner {
			headliner = i
			break
		}
	}
	if headliner < 0 || req.Acts[headliner].Artist.Name() == "" || req.Venue.Name() == "" {
		return
	}
	if len(req.Acts[headliner].Setlist) > 0 {
		return
	}

	enr, err := s.enricher.EnrichGig(ctx, req.Acts[headliner].Artist.Name(), req.Venue.Name(), req.Date.Format("2006-01-02"))
	if err != nil {
		s.logger.Warn("enrichment unavailable", "artist", req.Acts[headliner].Artist.Name(), "err", err)
		return
	}
	if enr == nil {
		return
	}

	for _, song := range enr.Setlist {
		entry := domain.SetlistEntryInput{
			Title:    song.Title,
			IsEncore: song.IsEncore,
			Info:     song.Info,
			IsTape:   song.IsTape,
		}
		if song.WithArtistName != nil {
			entry.WithArtist = domain.ByName(*song.WithArtistName)
		}
		if song.CoverArtistName != nil {
			entry.CoverArtist = domain.ByName(*song.CoverArtistName)
		}
		req.Acts[headliner].Setlist = append(req.Acts[headliner].Setlist, entry)
	}

	for _, name := range enr.SupportActs {
		if hasActNamed(req.Acts, name) {
			continue
		}
		req.Acts = append(req.Acts, domain.ActInput{
			Artist: domain.ByName(name),
			Order:  len(req.Acts),
		})
	}
}

func hasActNamed(acts []domain.ActInput, name string) bool {
	for _, act := range acts {
		if strings.EqualFold(act.Artist.Name(), name) {
			return true
		}
	}
	return false
}

// upsertGig is the shared create-or-update core used by the API path and both
// importers. It runs against an open unit of work and a resolver scoped to
// the calling operation, so batch callers keep one resolver across rows.
func upsertGig(ctx context.Context, r *domain.Repos, res *Resolver, req domain.UpsertGigRequest) (*domain.Gig, bool, error) {
	now := time.Now()
	date := truncateToDay(req.Date)

	// The festival resolves first: its venue stands in when the request names
	// no venue of its own.
	var festivalID *string
	var festival *domain.Festival
	if !req.Festival.IsZero() {
		id, err := res.Festival(ctx, req.Festival)
		if err != nil {
			return nil, false, err
		}
		festivalID = &id
		festival, err = r.Festivals.GetByID(ctx, id)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, false, fmt.Errorf("get festival: %w", err)
		}
	}

	var venueID string
	switch {
	case !req.Venue.IsZero():
		id, err := res.Venue(ctx, req.Venue, req.VenueCity)
		if err != nil {
			return nil, false, err
		}
		venueID = id
	case festival != nil && festival.VenueID != nil:
		venueID = *festival.VenueID
	default:
		return nil, false, fmt.Errorf("no usable venue reference: %w", domain.ErrValidation)
	}

	// Resolve act artists up front; the headliner drives duplicate detection
	// and the gig slug.
	type desiredAct struct {
		artistID string
		input    domain.ActInput
	}
	positional := true
	for _, act := range req.Acts {
		if act.Order != 0 {
			positional = false
			break
		}
	}
	desiredActs := make([]desiredAct, 0, len(req.Acts))
	headlinerID := ""
	headlinerName := ""
	for i, act := range req.Acts {
		artistID, err := res.Artist(ctx, act.Artist)
		if err != nil {
			return nil, false, err
		}
		if positional {
			act.Order = i
		}
		desiredActs = append(desiredActs, desiredAct{artistID: artistID, input: act})
		if act.IsHeadliner && headlinerID == "" {
			headlinerID = artistID
			headlinerName = act.Artist.Name()
		}
	}

	var gig *domain.Gig
	created := false
	if req.GigID != "" {
		g, err := r.Gigs.GetByID(ctx, req.GigID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, false, fmt.Errorf("gig %s: %w", req.GigID, domain.ErrNotFound)
			}
			return nil, false, fmt.Errorf("get gig: %w", err)
		}
		gig = g
	} else if headlinerID != "" {
		// Repeated imports of the same gig become updates, not duplicates.
		g, err := r.Gigs.FindDuplicate(ctx, venueID, date, headlinerID)
		if err == nil {
			gig = g
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, false, fmt.Errorf("find duplicate gig: %w", err)
		}
	}

	ticketCost := req.TicketCost
	if festivalID != nil {
		// Festival gigs carry no per-gig cost; day pricing lives on the festival.
		ticketCost = decimal.NullDecimal{}
	}
	ticketType := req.TicketType
	if ticketType == "" {
		ticketType = domain.TicketOther
	}

	if gig == nil {
		if headlinerName == "" && headlinerID != "" {
			if a, err := r.Artists.GetByID(ctx, headlinerID); err == nil {
				headlinerName = a.Name
			}
		}
		gig = &domain.Gig{
			VenueID:    venueID,
			FestivalID: festivalID,
			Date:       date,
			Order:      req.Order,
			TicketCost: ticketCost,
			TicketType: ticketType,
			ImageURL:   req.ImageURL,
			Slug:       gigSlug(headlinerName, date),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := createGigRetrySlug(ctx, r, gig); err != nil {
			return nil, false, fmt.Errorf("create gig: %w", err)
		}
		created = true
	} else {
		gig.VenueID = venueID
		gig.FestivalID = festivalID
		gig.Date = date
		gig.Order = req.Order
		gig.TicketCost = ticketCost
		gig.TicketType = ticketType
		gig.ImageURL = req.ImageURL
		gig.UpdatedAt = now
		if err := r.Gigs.Update(ctx, gig); err != nil {
			return nil, false, fmt.Errorf("update gig: %w", err)
		}
	}

	// Reconcile acts by artist ID, then each surviving act's setlist.
	existingActs, err := r.Gigs.ListActs(ctx, gig.ID)
	if err != nil {
		return nil, false, fmt.Errorf("list acts: %w", err)
	}
	err = reconcile(existingActs, desiredActs,
		func(a *domain.GigArtist) string { return a.ArtistID },
		func(d desiredAct) string { return d.artistID },
		func(a *domain.GigArtist, d desiredAct) error {
			a.IsHeadliner = d.input.IsHeadliner
			a.Order = d.input.Order
			a.SetlistURL = d.input.SetlistURL
			a.UpdatedAt = now
			if err := r.Gigs.UpdateAct(ctx, a); err != nil {
				return fmt.Errorf("update act: %w", err)
			}
			return reconcileSetlist(ctx, r, res, a, d.input.Setlist)
		},
		func(d desiredAct) error {
			act := &domain.GigArtist{
				GigID:       gig.ID,
				ArtistID:    d.artistID,
				IsHeadliner: d.input.IsHeadliner,
				Order:       d.input.Order,
				SetlistURL:  d.input.SetlistURL,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := r.Gigs.CreateAct(ctx, act); err != nil {
				return fmt.Errorf("create act: %w", err)
			}
			return reconcileSetlist(ctx, r, res, act, d.input.Setlist)
		},
		func(a *domain.GigArtist) error {
			if err := r.Gigs.DeleteAct(ctx, a.ID); err != nil {
				return fmt.Errorf("delete act: %w", err)
			}
			return nil
		},
	)
	if err != nil {
		return nil, false, err
	}

	// Reconcile attendees by person ID; join rows have no mutable fields.
	personIDs := make([]string, 0, len(req.Attendees))
	for _, ref := range req.Attendees {
		id, err := res.Person(ctx, ref)
		if err != nil {
			return nil, false, err
		}
		personIDs = append(personIDs, id)
	}
	existingAttendees, err := r.Gigs.ListAttendees(ctx, gig.ID)
	if err != nil {
		return nil, false, fmt.Errorf("list attendees: %w", err)
	}
	err = reconcile(existingAttendees, personIDs,
		func(a *domain.GigAttendee) string { return a.PersonID },
		func(id string) string { return id },
		func(a *domain.GigAttendee, id string) error { return nil },
		func(id string) error { return r.Gigs.AddAttendee(ctx, gig.ID, id) },
		func(a *domain.GigAttendee) error { return r.Gigs.RemoveAttendee(ctx, gig.ID, a.PersonID) },
	)
	if err != nil {
		return nil, false, err
	}

	if err := loadGigChildren(ctx, r, gig); err != nil {
		return nil, false, err
	}
	return gig, created, nil
}

// reconcileSetlist diffs an act's stored setlist against the desired entries,
// keyed by song ID (resolved by title under the act's artist).
func reconcileSetlist(ctx context.Context, r *domain.Repos, res *Resolver, act *domain.GigArtist, entries []domain.SetlistEntryInput) error {
	type desiredSong struct {
		songID string
		input  domain.SetlistEntryInput
		with   *string
		cover  *string
		order  int
	}
	desired := make([]desiredSong, 0, len(entries))
	for i, entry := range entries {
		songID, err := res.Song(ctx, act.ArtistID, entry.Title)
		if err != nil {
			return err
		}
		d := desiredSong{songID: songID, input: entry, order: i}
		if !entry.WithArtist.IsZero() {
			id, err := res.Artist(ctx, entry.WithArtist)
			if err != nil {
				return err
			}
			d.with = &id
		}
		if !entry.CoverArtist.IsZero() {
			id, err := res.Artist(ctx, entry.CoverArtist)
			if err != nil {
				return err
			}
			d.cover = &id
		}
		desired = append(desired, d)
	}

	existing, err := r.Gigs.ListActSongs(ctx, act.ID)
	if err != nil {
		return fmt.Errorf("list setlist: %w", err)
	}
	return reconcile(existing, desired,
		func(e *domain.GigArtistSong) string { return e.SongID },
		func(d desiredSong) string { return d.songID },
		func(e *domain.GigArtistSong, d desiredSong) error {
			e.Order = d.order
			e.IsEncore = d.input.IsEncore
			e.Info = d.input.Info
			e.IsTape = d.input.IsTape
			e.WithArtistID = d.with
			e.CoverArtistID = d.cover
			if err := r.Gigs.UpdateActSong(ctx, e); err != nil {
				return fmt.Errorf("update setlist entry: %w", err)
			}
			return nil
		},
		func(d desiredSong) error {
			entry := &domain.GigArtistSong{
				GigArtistID:   act.ID,
				SongID:        d.songID,
				Order:         d.order,
				IsEncore:      d.input.IsEncore,
				Info:          d.input.Info,
				IsTape:        d.input.IsTape,
				WithArtistID:  d.with,
				CoverArtistID: d.cover,
			}
			if err := r.Gigs.CreateActSong(ctx, entry); err != nil {
				return fmt.Errorf("create setlist entry: %w", err)
			}
			return nil
		},
		func(e *domain.GigArtistSong) error {
			if err := r.Gigs.DeleteActSong(ctx, e.ID); err != nil {
				return fmt.Errorf("delete setlist entry: %w", err)
			}
			return nil
		},
	)
}

func loadGigChildren(ctx context.Context, r *domain.Repos, gig *domain.Gig) error {
	acts, err := r.Gigs.ListActs(ctx, gig.ID)
	if err != nil {
		return fmt.Errorf("list acts: %w", err)
	}
	for _, act := range acts {
		songs, err := r.Gigs.ListActSongs(ctx, act.ID)
		if err != nil {
			return fmt.Errorf("list setlist: %w", err)
		}
		act.Songs = songs
	}
	gig.Acts = acts

	attendees, err := r.Gigs.ListAttendees(ctx, gig.ID)
	if err != nil {
		return fmt.Errorf("list attendees: %w", err)
	}
	gig.Attendees = attendees
	return nil
}

func createGigRetrySlug(ctx context.Context, r *domain.Repos, gig *domain.Gig) error {
	create := func() error { return r.Gigs.Create(ctx, gig) }
	err := r.Attempt(ctx, create)
	if errors.Is(err, domain.ErrConflict) {
		gig.Slug = gig.Slug + "-" + shortID()
		return r.Attempt(ctx, create)
	}
	return err
}

func gigSlug(headlinerName string, date time.Time) string {
	base := "gig"
	if headlinerName != "" {
		base = slugify(headlinerName)
	}
	return base + "-" + date.Format("2006-01-02")
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
