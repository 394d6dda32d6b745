package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidCoords = errors.New("invalid coordinates")

type Coords struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func NewCoords(latitude, longitude float64) Coords {
	return Coords{
		Latitude:  latitude,
		Longitude: longitude,
	}
}

// ParseCoords parses the "lat, lon" text shown in the coordinates field
func ParseCoords(text string) (Coords, error) {
	lat, lon, ok := strings.Cut(text, ",")
	if !ok {
		return Coords{}, fmt.Errorf("%w: %q", ErrInvalidCoords, text)
	}
	latitude, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return Coords{}, fmt.Errorf("%w: latitude %q", ErrInvalidCoords, lat)
	}
	longitude, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return Coords{}, fmt.Errorf("%w: longitude %q", ErrInvalidCoords, lon)
	}
	// written so NaN fails too
	if !(latitude >= -90 && latitude <= 90 && longitude >= -180 && longitude <= 180) {
		return Coords{}, fmt.Errorf("%w: %q out of range", ErrInvalidCoords, text)
	}
	return NewCoords(latitude, longitude), nil
}

func (c Coords) String() string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + ", " +
		strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}
