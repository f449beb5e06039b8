package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"giglog/internal/domain"
)

type calendarHTTPFetcher struct {
	client  *http.Client
	baseURL string
}

// NewHTTPFetcher returns a fetcher that lists events from the configured
// calendar feed. The feed serves JSON arrays of events for a time range.
func NewHTTPFetcher(client *http.Client, baseURL string) domain.CalendarFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &calendarHTTPFetcher{client: client, baseURL: baseURL}
}

func (f *calendarHTTPFetcher) List(ctx context.Context, from, to time.Time) ([]domain.CalendarEvent, error) {
	u := fmt.Sprintf("%s/events?from=%s&to=%s",
		f.baseURL,
		url.QueryEscape(from.Format(time.RFC3339)),
		url.QueryEscape(to.Format(time.RFC3339)),
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar api returned status: %d", resp.StatusCode)
	}

	var events []domain.CalendarEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("failed to decode calendar response: %w", err)
	}
	return events, nil
}
