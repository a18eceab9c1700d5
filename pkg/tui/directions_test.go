package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"hootroot/pkg/directions"

	"googlemaps.github.io/maps"
)

// waitForStop spins until it is told to stop, like the real spinner with a context
func waitForStop(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func TestRunWhileSpinning_WorkFinishes(t *testing.T) {
	ran := false
	err := runWhileSpinning(context.Background(), waitForStop, func(ctx context.Context) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ran {
		t.Errorf("expected work to run")
	}
}

func TestRunWhileSpinning_WorkError(t *testing.T) {
	boom := errors.New("hopstop unavailable")

	err := runWhileSpinning(context.Background(), waitForStop, func(ctx context.Context) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected the work error, got %v", err)
	}
}

func TestRunWhileSpinning_UserQuits(t *testing.T) {
	cancelled := make(chan struct{})

	// The spinner returns at once, as it does on ctrl+c
	quit := func(ctx context.Context) error { return nil }

	err := runWhileSpinning(context.Background(), quit, func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			close(cancelled)
			return ctx.Err()
		case <-time.After(5 * time.Second):
			return nil
		}
	})

	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	select {
	case <-cancelled:
	default:
		t.Errorf("expected the running work to be cancelled before returning")
	}
}

func TestPrintRoute_WithoutRoute(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("PrintRoute panicked on directions that were never planned: %v", r)
		}
	}()

	PrintRoute(nil)
	PrintRoute(directions.New("A", "B", "", ""))
	PrintRoute(&directions.HopStopDirections{DirectionsResult: &directions.Result{Routes: []directions.Route{{}}}})
}

func TestPrintRoute_DirectRoute(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	d := directions.New("A", "B", directions.Subwaying, "")
	d.StoreRoute(directions.DirectRoute(
		maps.LatLng{Lat: 40.6819, Lng: -73.90871},
		maps.LatLng{Lat: 40.746824, Lng: -73.983644},
		directions.Subwaying, 40,
	))

	PrintRoute(d)
}
