package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"giglog/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(gigController *controllers.GigController, festivalController *controllers.FestivalController, personController *controllers.PersonController, importController *controllers.ImportController, searchController *controllers.SearchController) *http.ServeMux {
	mux := http.NewServeMux()

	// Gigs
	mux.HandleFunc("PUT /gigs", gigController.Upsert)
	mux.HandleFunc("GET /gigs/{gigID}", gigController.Get)
	mux.HandleFunc("DELETE /gigs/{gigID}", gigController.Delete)

	// Festivals
	mux.HandleFunc("PUT /festivals/{festivalID}/attendees", festivalController.SetAttendees)
	mux.HandleFunc("DELETE /festivals/{festivalID}", festivalController.Delete)

	// People
	mux.HandleFunc("DELETE /people/{personID}", personController.Delete)

	// Imports
	mux.HandleFunc("POST /import/csv", importController.ImportCSV)
	mux.HandleFunc("POST /import/calendar", importController.SyncCalendar)

	// Search and stats
	mux.HandleFunc("GET /search", searchController.SearchNames)
	mux.HandleFunc("GET /stats/attendance", searchController.Attendance)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
