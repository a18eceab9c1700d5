package hopstop

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// cacheDuration determines how long a HopStop answer is reused.
// Departures move quickly, so keep it short.
const cacheDuration = 15 * time.Minute

// CacheEntry represents the disk data format
type CacheEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Query     string    `json:"query"`
	Result    *Result   `json:"result"`
}

func getCachePath(query string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}

	cacheDir := filepath.Join(homeDir, ".hootroot_cache")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("could not create cache directory: %w", err)
	}

	// URLs contain characters that are not filesystem safe
	sum := sha1.Sum([]byte(query))
	return filepath.Join(cacheDir, hex.EncodeToString(sum[:])+".json"), nil
}

// readCache checks if a valid, unexpired answer exists for this request URL
func readCache(query string) (*Result, bool) {
	path, err := getCachePath(query)
	if err != nil {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	if entry.Query != query || entry.Result == nil {
		return nil, false
	}

	if time.Since(entry.Timestamp) > cacheDuration {
		return nil, false
	}

	return entry.Result, true
}

// writeCache saves the answer to disk, ignoring failures
func writeCache(query string, result *Result) {
	path, err := getCachePath(query)
	if err != nil {
		return
	}

	entry := CacheEntry{
		Timestamp: time.Now(),
		Query:     query,
		Result:    result,
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return
	}

	_ = os.WriteFile(path, data, 0644)
}
