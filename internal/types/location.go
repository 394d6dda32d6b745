package types

// Location holds the six IPTC location fields of an image, in the order the
// host's location display expects them.
type Location struct {
	WorldRegion   string `json:"worldRegion"`
	CountryCode   string `json:"countryCode"`
	CountryName   string `json:"countryName"`
	ProvinceState string `json:"provinceState"`
	City          string `json:"city"`
	Sublocation   string `json:"sublocation"`
}

// Fields returns the location as an ordered slice
func (l Location) Fields() []string {
	return []string{
		l.WorldRegion,
		l.CountryCode,
		l.CountryName,
		l.ProvinceState,
		l.City,
		l.Sublocation,
	}
}

// IsZero reports whether every field is empty
func (l Location) IsZero() bool {
	return l == Location{}
}
