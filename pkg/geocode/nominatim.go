package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"googlemaps.github.io/maps"
)

var nominatimURL = "https://nominatim.openstreetmap.org"

// Place is a single /search hit
type Place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Type        string `json:"type"`
}

// LatLng converts the string coordinates Nominatim returns
func (p Place) LatLng() (maps.LatLng, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return maps.LatLng{}, fmt.Errorf("invalid latitude %q: %w", p.Lat, err)
	}
	lng, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return maps.LatLng{}, fmt.Errorf("invalid longitude %q: %w", p.Lon, err)
	}
	return maps.LatLng{Lat: lat, Lng: lng}, nil
}

// Nominatim geocodes addresses against an OSM Nominatim compatible server
type Nominatim struct {
	httpClient *http.Client
	baseURL    string
}

// NewNominatim creates a geocoder for the given server, or the public one when empty
func NewNominatim(base string) *Nominatim {
	if base == "" {
		base = nominatimURL
	}
	return &Nominatim{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(base, "/"),
	}
}

// Search returns up to limit places matching the query
func (n *Nominatim) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	reqURL := fmt.Sprintf("%s/search?format=json&limit=%d&q=%s", n.baseURL, limit, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	// Nominatim's usage policy rejects requests without an identifying agent
	req.Header.Set("User-Agent", "hootroot/1.0")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to search places: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response body: %w", err)
	}

	var places []Place
	if err := json.Unmarshal(body, &places); err != nil {
		return nil, fmt.Errorf("failed to decode places JSON: %w", err)
	}

	return places, nil
}

func (n *Nominatim) Geocode(ctx context.Context, query string) (maps.LatLng, error) {
	places, err := n.Search(ctx, query, 1)
	if err != nil {
		return maps.LatLng{}, err
	}
	if len(places) == 0 {
		return maps.LatLng{}, fmt.Errorf("%w: %q", ErrNotFound, query)
	}
	return places[0].LatLng()
}
