package controllers

import (
	"log/slog"
	"net/http"

	"giglog/internal/delivery/http/helpers"
	"giglog/internal/domain"
)

// SetFestivalAttendeesRequest is the request body for PUT
// /festivals/{festivalID}/attendees. Attendee references are IDs, names, or
// "new:"-prefixed names; the stored set is reconciled to match.
type SetFestivalAttendeesRequest struct {
	Attendees []string `json:"attendees"`
}

type FestivalController struct {
	Logger  *slog.Logger
	Service domain.FestivalService
}

func NewFestivalController(logger *slog.Logger, svc domain.FestivalService) *FestivalController {
	return &FestivalController{
		Logger:  logger,
		Service: svc,
	}
}

// SetAttendees godoc
// @Summary Set a festival's attendees
// @Description Reconciles the festival's attendee set against the given references, creating people referenced by name as needed.
// @Tags festivals
// @Accept json
// @Produce json
// @Param festivalID path string true "Festival ID"
// @Param attendees body SetFestivalAttendeesRequest true "Attendee references"
// @Success 200 {object} helpers.APIResponse "data contains the attendee list"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /festivals/{festivalID}/attendees [put]
func (c *FestivalController) SetAttendees(w http.ResponseWriter, r *http.Request) {
	var req SetFestivalAttendeesRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	refs := make([]domain.Reference, 0, len(req.Attendees))
	for _, s := range req.Attendees {
		refs = append(refs, domain.ParseReference(s))
	}
	attendees, err := c.Service.SetAttendees(r.Context(), r.PathValue("festivalID"), refs)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, attendees)
}

// Delete godoc
// @Summary Delete a festival
// @Description Deletes the festival and its attendee rows. Gigs linked to it survive with the festival link cleared.
// @Tags festivals
// @Produce json
// @Param festivalID path string true "Festival ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /festivals/{festivalID} [delete]
func (c *FestivalController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.Delete(r.Context(), r.PathValue("festivalID")); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}
