package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"googlemaps.github.io/maps"
)

func TestCoordinates_Geocode(t *testing.T) {
	ll, err := Coordinates{}.Geocode(context.Background(), " 40.6819, -73.90871 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ll.Lat != 40.6819 || ll.Lng != -73.90871 {
		t.Errorf("unexpected coordinate: %+v", ll)
	}

	_, err = Coordinates{}.Geocode(context.Background(), "Herald Square")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for an address, got %v", err)
	}

	_, err = Coordinates{}.Geocode(context.Background(), "95,10")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("expected a range error for latitude 95, got %v", err)
	}
}

func TestNominatim_Geocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("expected path /search, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("q") != "Herald Square" {
			t.Errorf("expected q 'Herald Square', got %s", r.URL.Query().Get("q"))
		}
		if r.Header.Get("User-Agent") == "" {
			t.Errorf("expected a User-Agent header")
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[{"lat": "40.749824", "lon": "-73.987846", "display_name": "Herald Square, Manhattan"}]`))
	}))
	defer server.Close()

	g := NewNominatim(server.URL)

	ll, err := g.Geocode(context.Background(), "Herald Square")
	if err != nil {
		t.Fatalf("unexpected error geocoding mocked place: %v", err)
	}
	if ll.Lat != 40.749824 || ll.Lng != -73.987846 {
		t.Errorf("unexpected coordinate: %+v", ll)
	}
}

func TestNominatim_Geocode_NoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	_, err := NewNominatim(server.URL).Geocode(context.Background(), "Atlantis")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestChain_Geocode(t *testing.T) {
	fallbackCalls := 0
	fallback := Func(func(ctx context.Context, query string) (maps.LatLng, error) {
		fallbackCalls++
		return maps.LatLng{Lat: 1, Lng: 2}, nil
	})

	chain := Chain{Coordinates{}, fallback}

	ll, err := chain.Geocode(context.Background(), "3,4")
	if err != nil || ll.Lat != 3 || ll.Lng != 4 {
		t.Errorf("expected literal coordinate to short-circuit, got %+v (%v)", ll, err)
	}
	if fallbackCalls != 0 {
		t.Errorf("expected the fallback geocoder not to be called, got %d calls", fallbackCalls)
	}

	ll, err = chain.Geocode(context.Background(), "Somewhere")
	if err != nil || ll.Lat != 1 {
		t.Errorf("expected fallback geocoder answer, got %+v (%v)", ll, err)
	}
}

func TestChain_StopsOnHardError(t *testing.T) {
	boom := errors.New("network down")
	chain := Chain{
		Func(func(ctx context.Context, query string) (maps.LatLng, error) { return maps.LatLng{}, boom }),
		Func(func(ctx context.Context, query string) (maps.LatLng, error) {
			t.Errorf("second geocoder should not be reached")
			return maps.LatLng{}, nil
		}),
	}

	if _, err := chain.Geocode(context.Background(), "x"); !errors.Is(err, boom) {
		t.Errorf("expected network error to propagate, got %v", err)
	}
}

func TestCached_Geocode(t *testing.T) {
	calls := 0
	next := Func(func(ctx context.Context, query string) (maps.LatLng, error) {
		calls++
		return maps.LatLng{Lat: 40.7, Lng: -73.9}, nil
	})

	g := NewCached(next, 10, time.Hour)

	for _, q := range []string{"Herald Square", "herald square ", "HERALD SQUARE"} {
		ll, err := g.Geocode(context.Background(), q)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ll.Lat != 40.7 {
			t.Errorf("unexpected coordinate: %+v", ll)
		}
	}

	if calls != 1 {
		t.Errorf("expected normalised queries to hit the cache, underlying geocoder called %d times", calls)
	}
}
