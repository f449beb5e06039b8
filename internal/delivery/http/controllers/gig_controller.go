package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"giglog/internal/delivery/http/helpers"
	"giglog/internal/domain"
)

const dateLayout = "2006-01-02"

// UpsertActRequest is one act in an upsert request. Exactly one of artist_id
// and artist_name should be set; artist_name may carry the "new:" prefix to
// force creation.
type UpsertActRequest struct {
	ArtistID    string   `json:"artist_id,omitempty"`
	ArtistName  string   `json:"artist_name,omitempty"`
	IsHeadliner bool     `json:"is_headliner"`
	Order       int      `json:"order"`
	SetlistURL  *string  `json:"setlist_url,omitempty"`
	Setlist     []string `json:"setlist,omitempty"`
}

// UpsertGigRequest is the request body for PUT /gigs. Venue may be given by
// ID or by name+city; festival by ID or name. Attendee references are IDs,
// names, or "new:"-prefixed names.
type UpsertGigRequest struct {
	GigID        string             `json:"gig_id,omitempty"`
	VenueID      string             `json:"venue_id,omitempty"`
	VenueName    string             `json:"venue_name,omitempty"`
	VenueCity    string             `json:"venue_city,omitempty"`
	FestivalID   string             `json:"festival_id,omitempty"`
	FestivalName string             `json:"festival_name,omitempty"`
	Date         string             `json:"date"`
	Order        int                `json:"order"`
	TicketCost   *decimal.Decimal   `json:"ticket_cost,omitempty"`
	TicketType   string             `json:"ticket_type,omitempty"`
	ImageURL     *string            `json:"image_url,omitempty"`
	Acts         []UpsertActRequest `json:"acts,omitempty"`
	Attendees    []string           `json:"attendees,omitempty"`
}

// Validate implements helpers.Validator.
func (u UpsertGigRequest) Validate() []string {
	var errs []string
	if u.Date == "" {
		errs = append(errs, "date is required")
	} else if _, err := time.Parse(dateLayout, u.Date); err != nil {
		errs = append(errs, "date must be YYYY-MM-DD")
	}
	if u.VenueID == "" && u.VenueName == "" && u.FestivalID == "" && u.FestivalName == "" {
		errs = append(errs, "a venue or festival reference is required")
	}
	return errs
}

func (u UpsertGigRequest) toDomain() domain.UpsertGigRequest {
	date, _ := time.Parse(dateLayout, u.Date)
	req := domain.UpsertGigRequest{
		GigID:      u.GigID,
		VenueCity:  u.VenueCity,
		Date:       date,
		Order:      u.Order,
		TicketType: domain.ParseTicketType(u.TicketType),
		ImageURL:   u.ImageURL,
	}
	if u.VenueID != "" {
		req.Venue = domain.ByID(u.VenueID)
	} else if u.VenueName != "" {
		req.Venue = domain.ParseReference(u.VenueName)
	}
	if u.FestivalID != "" {
		req.Festival = domain.ByID(u.FestivalID)
	} else if u.FestivalName != "" {
		req.Festival = domain.ParseReference(u.FestivalName)
	}
	if u.TicketCost != nil {
		req.TicketCost = decimal.NullDecimal{Decimal: *u.TicketCost, Valid: true}
	}
	for _, act := range u.Acts {
		in := domain.ActInput{
			IsHeadliner: act.IsHeadliner,
			Order:       act.Order,
			SetlistURL:  act.SetlistURL,
		}
		if act.ArtistID != "" {
			in.Artist = domain.ByID(act.ArtistID)
		} else {
			in.Artist = domain.ParseReference(act.ArtistName)
		}
		for _, title := range act.Setlist {
			in.Setlist = append(in.Setlist, domain.SetlistEntryInput{Title: title})
		}
		req.Acts = append(req.Acts, in)
	}
	for _, ref := range u.Attendees {
		req.Attendees = append(req.Attendees, domain.ParseReference(ref))
	}
	return req
}

// UpsertGigSuccessResponse is the success envelope for PUT /gigs.
type UpsertGigSuccessResponse struct {
	Data  *domain.Gig       `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type GigController struct {
	Logger  *slog.Logger
	Service domain.GigService
}

func NewGigController(logger *slog.Logger, svc domain.GigService) *GigController {
	return &GigController{
		Logger:  logger,
		Service: svc,
	}
}

// Upsert godoc
// @Summary Create or update a gig
// @Description Creates or updates a gig, resolving venue, festival, artist and attendee references by ID or name and reconciling acts, setlists and attendees. A create that matches an existing gig on (venue, date, headliner) updates it instead.
// @Tags gigs
// @Accept json
// @Produce json
// @Param gig body UpsertGigRequest true "Gig data"
// @Success 200 {object} controllers.UpsertGigSuccessResponse "data contains the updated gig"
// @Success 201 {object} controllers.UpsertGigSuccessResponse "data contains the created gig"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /gigs [put]
func (c *GigController) Upsert(w http.ResponseWriter, r *http.Request) {
	var req UpsertGigRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	gig, created, err := c.Service.UpsertGig(r.Context(), req.toDomain())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	helpers.WriteJSONSuccess(w, status, gig)
}

// Get godoc
// @Summary Get a gig
// @Description Returns the gig with its acts, setlists and attendees.
// @Tags gigs
// @Produce json
// @Param gigID path string true "Gig ID"
// @Success 200 {object} controllers.UpsertGigSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /gigs/{gigID} [get]
func (c *GigController) Get(w http.ResponseWriter, r *http.Request) {
	gig, err := c.Service.GetGig(r.Context(), r.PathValue("gigID"))
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, gig)
}

// Delete godoc
// @Summary Delete a gig
// @Description Deletes the gig and its act, setlist and attendee rows.
// @Tags gigs
// @Produce json
// @Param gigID path string true "Gig ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /gigs/{gigID} [delete]
func (c *GigController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.DeleteGig(r.Context(), r.PathValue("gigID")); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}
