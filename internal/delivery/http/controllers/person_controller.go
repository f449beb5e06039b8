package controllers

import (
	"log/slog"
	"net/http"

	"giglog/internal/delivery/http/helpers"
	"giglog/internal/domain"
)

type PersonController struct {
	Logger  *slog.Logger
	Service domain.PersonService
}

func NewPersonController(logger *slog.Logger, svc domain.PersonService) *PersonController {
	return &PersonController{
		Logger:  logger,
		Service: svc,
	}
}

// Delete godoc
// @Summary Delete a person
// @Description Deletes the person along with their gig and festival attendance rows.
// @Tags people
// @Produce json
// @Param personID path string true "Person ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /people/{personID} [delete]
func (c *PersonController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.Delete(r.Context(), r.PathValue("personID")); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}
