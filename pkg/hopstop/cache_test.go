package hopstop

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"
	"time"
)

func TestCacheReadWrite(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	query := Params{X1: 1, Y1: 2, X2: 3, Y2: 4}.Encode()

	// 1. Read non-existent cache
	result, ok := readCache(query)
	if ok || result != nil {
		t.Errorf("expected readCache to fail for non-existent cache, but got success")
	}

	// 2. Write cache
	distance := 120
	want := &Result{
		Duration: 60,
		Steps: []Step{
			{
				Type:          "W",
				Duration:      60,
				Distance:      &distance,
				Instructions:  "Walk to the corner",
				StartPosition: &Position{Lat: 1, Lon: 2},
				EndPosition:   &Position{Lat: 1.001, Lon: 2},
			},
		},
	}
	writeCache(query, want)

	path, _ := getCachePath(query)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("expected cache file to be created at %s", path)
	}

	// 3. Read existing valid cache
	got, ok := readCache(query)
	if !ok {
		t.Fatalf("expected readCache to succeed for existing cache, but failed")
	}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("loaded result does not match written result.\nGot: %+v\nExpected: %+v", got, want)
	}
}

func TestCacheExpiration(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	query := Params{X1: 5, Y1: 6, X2: 7, Y2: 8}.Encode()
	cachePath, err := getCachePath(query)
	if err != nil {
		t.Fatalf("failed to resolve cache path: %v", err)
	}

	entry := CacheEntry{
		Timestamp: time.Now().Add(-time.Hour),
		Query:     query,
		Result:    &Result{Steps: []Step{{Type: "W"}}},
	}
	data, _ := json.Marshal(entry)
	if err := os.WriteFile(cachePath, data, 0644); err != nil {
		t.Fatalf("failed to write stale cache: %v", err)
	}

	if _, ok := readCache(query); ok {
		t.Errorf("expected readCache to reject an hour old entry, but it succeeded")
	}
}

func TestClient_Fetch_UsesCache(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(mockSubwayJSON))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithCache(true))
	params := Params{X1: -73.90871, Y1: 40.6819, X2: -73.98222, Y2: 40.74577}

	for i := 0; i < 2; i++ {
		result, err := client.Fetch(context.Background(), params)
		if err != nil {
			t.Fatalf("fetch %d failed: %v", i, err)
		}
		if len(result.Steps) != 2 {
			t.Fatalf("fetch %d: expected 2 steps, got %d", i, len(result.Steps))
		}
	}

	if hits != 1 {
		t.Errorf("expected the second fetch to be served from cache, server saw %d requests", hits)
	}
}

func TestClient_Fetch_CacheKeyedByProxy(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	hits := map[string]int{}
	newProxy := func(name string) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits[name]++
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(mockSubwayJSON))
		}))
	}
	first := newProxy("first")
	defer first.Close()
	second := newProxy("second")
	defer second.Close()

	params := Params{X1: -73.90871, Y1: 40.6819, X2: -73.98222, Y2: 40.74577}

	for _, base := range []string{first.URL, second.URL} {
		client := NewClient(WithBaseURL(base), WithCache(true))
		if _, err := client.Fetch(context.Background(), params); err != nil {
			t.Fatalf("fetch from %s failed: %v", base, err)
		}
	}

	if hits["first"] != 1 || hits["second"] != 1 {
		t.Errorf("expected each proxy to be asked once after switching base URL, got %v", hits)
	}
}
