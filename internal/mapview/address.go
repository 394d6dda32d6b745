package mapview

import (
	"slices"
	"strings"

	"photomap/internal/providers/openstreetmap"
	"photomap/internal/types"
)

// addressRule fills one location field from a list of OSM address keys. The
// field takes every listed key present, in order, and consumes it.
type addressRule struct {
	field func(*types.Location) *string
	keys  []string
}

var locationRules = []addressRule{
	{func(l *types.Location) *string { return &l.WorldRegion }, nil},
	{func(l *types.Location) *string { return &l.CountryCode }, []string{"country_code"}},
	{func(l *types.Location) *string { return &l.CountryName }, []string{"country"}},
	{func(l *types.Location) *string { return &l.ProvinceState }, []string{
		"region", "county", "state_district", "state"}},
	{func(l *types.Location) *string { return &l.City }, []string{
		"hamlet", "locality", "neighbourhood", "village", "suburb",
		"town", "city_district", "city"}},
	{func(l *types.Location) *string { return &l.Sublocation }, []string{
		"building", "house_number", "footway", "pedestrian", "road"}},
}

// ignoredAddressKeys are never copied into the sub-location
var ignoredAddressKeys = []string{"postcode"}

// locationFromAddress converts a reverse geocode address into location
// fields. Address keys not claimed by any field, postcode aside, are prefixed
// to the sub-location as "key: value".
func locationFromAddress(address openstreetmap.Address) types.Location {
	remaining := slices.Clone(address)
	var loc types.Location

	for _, rule := range locationRules {
		var element []string
		for _, key := range rule.keys {
			i := slices.IndexFunc(remaining, func(f openstreetmap.AddressField) bool {
				return f.Key == key
			})
			if i < 0 {
				continue
			}
			if v := remaining[i].Value; !slices.Contains(element, v) {
				element = append(element, v)
			}
			remaining = slices.Delete(remaining, i, i+1)
		}
		*rule.field(&loc) = strings.Join(element, ", ")
	}

	for _, f := range remaining {
		if slices.Contains(ignoredAddressKeys, f.Key) {
			continue
		}
		loc.Sublocation = f.Key + ": " + f.Value + ", " + loc.Sublocation
	}
	return loc
}
