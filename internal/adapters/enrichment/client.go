package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"giglog/internal/domain"
)

type enrichmentHTTPClient struct {
	client  *http.Client
	baseURL string
}

// NewHTTPClient returns an Enricher backed by the configured enrichment
// provider. Callers treat every failure as "no enrichment available".
func NewHTTPClient(client *http.Client, baseURL string) domain.Enricher {
	if client == nil {
		client = http.DefaultClient
	}
	return &enrichmentHTTPClient{client: client, baseURL: baseURL}
}

func (c *enrichmentHTTPClient) EnrichGig(ctx context.Context, artistName, venueName, dateISO string) (*domain.Enrichment, error) {
	u := fmt.Sprintf("%s/enrich?artist=%s&venue=%s&date=%s",
		c.baseURL,
		url.QueryEscape(artistName),
		url.QueryEscape(venueName),
		url.QueryEscape(dateISO),
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch enrichment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("enrichment api returned status: %d", resp.StatusCode)
	}

	var enr domain.Enrichment
	if err := json.NewDecoder(resp.Body).Decode(&enr); err != nil {
		return nil, fmt.Errorf("failed to decode enrichment response: %w", err)
	}
	return &enr, nil
}
