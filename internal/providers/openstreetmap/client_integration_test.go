//go:build integration

package openstreetmap

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
)

func TestClient_Reverse_Integration(t *testing.T) {
	// Test coordinates: Aspen, CO area
	lat := 39.11539
	lon := -107.65840

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	client := NewClient(logger, "Photini/integration-test")

	t.Logf("Making API call to OpenStreetMap Nominatim API...")
	t.Logf("Coordinates: lat=%f, lon=%f", lat, lon)

	resp, err := client.Reverse(context.Background(), lat, lon)
	if err != nil {
		t.Fatalf("Failed to get location data: %v", err)
	}

	// Pretty print the raw response
	rawJSON, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal response: %v", err)
	}

	t.Logf("Raw API Response:\n%s", string(rawJSON))

	if resp.Error != "" {
		t.Fatalf("Service error: %s", resp.Error)
	}

	t.Logf("Address:")
	for _, f := range resp.Address {
		t.Logf("  %s: %s", f.Key, f.Value)
	}

	if _, ok := resp.Address.Get("country_code"); !ok {
		t.Error("country_code missing from address")
	}

	if resp.DisplayName == "" {
		t.Error("DisplayName is empty")
	}
}

func TestClient_Search_Integration(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	client := NewClient(logger, "Photini/integration-test")

	results, err := client.Search(context.Background(), SearchParams{Query: "Aspen, Colorado"})
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}

	if len(results) == 0 {
		t.Fatal("no results")
	}

	for _, r := range results {
		t.Logf("  %s %v", r.DisplayName, r.Boundingbox)
		if len(r.Boundingbox) != 4 {
			t.Errorf("Expected boundingbox to have 4 values, got %d", len(r.Boundingbox))
		}
	}

	t.Log("✓ API call successful, response structure valid")
}
