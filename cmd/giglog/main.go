package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	"giglog/config"
	"giglog/internal/adapters/calendar"
	"giglog/internal/adapters/enrichment"
	delivery "giglog/internal/delivery/http"
	"giglog/internal/delivery/http/controllers"
	"giglog/internal/delivery/http/middleware"
	"giglog/internal/domain"
	"giglog/internal/repository/postgres"
	"giglog/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	store := postgres.NewStore(db)

	httpClient := &http.Client{Timeout: 30 * time.Second}
	var enricher domain.Enricher
	if cfg.EnrichmentURL != "" {
		enricher = enrichment.NewHTTPClient(httpClient, cfg.EnrichmentURL)
	}

	gigService := services.NewGigService(store, enricher, logger)
	festivalService := services.NewFestivalService(store)
	csvImporter := services.NewCSVImporter(store, logger)
	var calendarImporter domain.CalendarImporter
	if cfg.CalendarFeedURL != "" {
		fetcher := calendar.NewHTTPFetcher(httpClient, cfg.CalendarFeedURL)
		calendarImporter = services.NewCalendarImporter(store, fetcher, logger)
	}
	searchService := services.NewSearchService(store)
	statsService := services.NewStatsService(store)

	router := delivery.NewRouter(
		controllers.NewGigController(logger, gigService),
		controllers.NewFestivalController(logger, festivalService),
		controllers.NewPersonController(logger, services.NewPersonService(store)),
		controllers.NewImportController(logger, csvImporter, calendarImporter),
		controllers.NewSearchController(logger, searchService, statsService),
	)
	handler := middleware.LoggingMiddleware(logger, router)

	logger.Info("listening", "port", cfg.Port, "env", cfg.Environment)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
