package cmd

import (
	"strings"
	"testing"

	"hootroot/pkg/directions"

	"github.com/spf13/cobra"
)

func newTripCommand(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cmd := &cobra.Command{}
	addTripFlags(cmd)
	for name, value := range flags {
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatalf("failed to set --%s: %v", name, err)
		}
	}
	return cmd
}

func TestTripFromFlags(t *testing.T) {
	cmd := newTripCommand(t, map[string]string{
		"from": "40.6819,-73.90871",
		"to":   "Herald Square",
		"mode": "subwaying",
		"when": "2026-03-04T08:15:00-05:00",
	})

	_, req, err := tripFromFlags(cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Mode != directions.Subwaying {
		t.Errorf("expected SUBWAYING, got %s", req.Mode)
	}
	if req.When != "2026-03-04T08:15:00-05:00" {
		t.Errorf("expected the RFC 3339 departure to pass through, got %q", req.When)
	}
}

func TestTripFromFlags_RejectsBadWhen(t *testing.T) {
	cmd := newTripCommand(t, map[string]string{
		"from": "A",
		"to":   "B",
		"when": "tomorrow morning",
	})

	_, _, err := tripFromFlags(cmd)
	if err == nil || !strings.Contains(err.Error(), "--when") {
		t.Errorf("expected a --when error, got %v", err)
	}
}

func TestTripFromFlags_RequiresPlaces(t *testing.T) {
	cmd := newTripCommand(t, map[string]string{"from": "A"})

	if _, _, err := tripFromFlags(cmd); err == nil {
		t.Errorf("expected an error without --to or a saved home address")
	}
}
