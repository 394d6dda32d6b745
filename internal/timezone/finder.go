package timezone

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ringsaturn/tzf"

	"photomap/internal/types"
)

// ErrNoTimezone is returned for points outside every known zone
var ErrNoTimezone = errors.New("no timezone at point")

// Finder maps geotagged points to IANA zone names so photo timestamps can be
// given an offset.
type Finder interface {
	Zone(c types.Coords) (string, error)
}

type finder struct {
	f tzf.F
}

// the zone data is large, so it is loaded once per process and shared
var loadFinder = sync.OnceValues(func() (tzf.F, error) {
	return tzf.NewDefaultFinder()
})

// NewFinder returns a Finder backed by the bundled zone boundaries
func NewFinder() (Finder, error) {
	f, err := loadFinder()
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone data: %w", err)
	}
	return &finder{f: f}, nil
}

func (z *finder) Zone(c types.Coords) (string, error) {
	name := z.f.GetTimezoneName(c.Longitude, c.Latitude)
	if name == "" {
		return "", fmt.Errorf("%w: %s", ErrNoTimezone, c)
	}
	return name, nil
}
