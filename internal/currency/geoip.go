package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// GeoIPClient looks up the caller's country from an ipapi.co-style
// JSON endpoint. It implements GeoLookup.
type GeoIPClient struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
}

// NewGeoIPClient creates a GeoIPClient for the given endpoint URL.
// A nil httpClient gets a client with a short timeout; geolocation is
// best-effort and must never hold up a request for long.
func NewGeoIPClient(httpClient *http.Client, baseURL string) *GeoIPClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 3 * time.Second}
	}
	return &GeoIPClient{httpClient: httpClient, baseURL: baseURL}
}

// CountryCode fetches the ISO 3166 country code for the server's
// public IP.
func (g *GeoIPClient) CountryCode(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create geolocation request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("geolocation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geolocation endpoint returned status %d", resp.StatusCode)
	}

	var payload struct {
		CountryCode string `json:"country_code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode geolocation response: %w", err)
	}
	if payload.CountryCode == "" {
		return "", fmt.Errorf("geolocation response missing country_code")
	}

	return payload.CountryCode, nil
}
