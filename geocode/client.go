// Package geocode resolves coordinates to a short human-readable place name
// through a Nominatim-compatible reverse endpoint. Lookups are best effort:
// callers fall back to raw coordinates when one fails.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Default is the client the submission handler uses; main wires it once
// config is loaded.
var Default *Client

// Client calls a Nominatim-style reverse geocoding API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for the given endpoint base URL. The timeout is
// deliberately short: a slow geocoder must not hold up report submission.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

type reverseResponse struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Address     struct {
		Road          string `json:"road"`
		Neighbourhood string `json:"neighbourhood"`
		Suburb        string `json:"suburb"`
		City          string `json:"city"`
		Town          string `json:"town"`
		Village       string `json:"village"`
	} `json:"address"`
}

// ReverseLookup resolves lat/lng to a place name like "Elm Street, Riverside".
func (c *Client) ReverseLookup(ctx context.Context, lat, lng float64) (string, error) {
	params := url.Values{}
	params.Add("format", "jsonv2")
	params.Add("lat", fmt.Sprintf("%.6f", lat))
	params.Add("lon", fmt.Sprintf("%.6f", lng))
	params.Add("zoom", "16")
	params.Add("addressdetails", "1")

	fullURL := c.baseURL + "/reverse?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build reverse geocode request: %w", err)
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", "communitypulse-be/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call reverse geocode API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("reverse geocode API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to parse reverse geocode response: %w", err)
	}

	name := placeName(result)
	if name == "" {
		return "", fmt.Errorf("reverse geocode returned no usable place name")
	}
	return name, nil
}

// placeName condenses a reverse result to "<street or area>, <settlement>".
func placeName(r reverseResponse) string {
	area := firstNonEmpty(r.Address.Road, r.Address.Neighbourhood, r.Address.Suburb, r.Name)
	settlement := firstNonEmpty(r.Address.City, r.Address.Town, r.Address.Village)

	switch {
	case area != "" && settlement != "":
		return area + ", " + settlement
	case area != "":
		return area
	case settlement != "":
		return settlement
	default:
		return r.DisplayName
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
