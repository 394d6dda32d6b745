package types

import (
	"fmt"
	"strconv"
)

// BoundingBox delimits a located place
type BoundingBox struct {
	South float64 `json:"south"`
	North float64 `json:"north"`
	West  float64 `json:"west"`
	East  float64 `json:"east"`
}

// ParseBoundingBox reads a geocoder box given as [south, north, west, east]
// numeric strings.
func ParseBoundingBox(values []string) (BoundingBox, error) {
	if len(values) != 4 {
		return BoundingBox{}, fmt.Errorf("bounding box has %d values, want 4", len(values))
	}
	var f [4]float64
	for i, s := range values {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return BoundingBox{}, fmt.Errorf("bounding box value %q: %w", s, err)
		}
		f[i] = v
	}
	return BoundingBox{South: f[0], North: f[1], West: f[2], East: f[3]}, nil
}

// SearchResult is one candidate location returned by a place search
type SearchResult struct {
	Box         BoundingBox `json:"box"`
	DisplayName string      `json:"displayName"`
}

// ViewBounds holds the map viewport bounds as reported by the map page, in
// the page's own order.
type ViewBounds [4]float64
