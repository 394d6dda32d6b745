package openstreetmap

// AddressField is one entry of a reverse geocode address object
type AddressField struct {
	Key   string
	Value string
}

// Address keeps the address object's fields in the order the service sent
// them.
type Address []AddressField

// Get returns the value stored under key
func (a Address) Get(key string) (string, bool) {
	for _, f := range a {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// ReverseAPIResponse is the subset of a reverse lookup used by the map
type ReverseAPIResponse struct {
	PlaceId     int      `json:"place_id"`
	Licence     string   `json:"licence"`
	OsmType     string   `json:"osm_type"`
	OsmId       int      `json:"osm_id"`
	Lat         string   `json:"lat"`
	Lon         string   `json:"lon"`
	DisplayName string   `json:"display_name"`
	Boundingbox []string `json:"boundingbox"`

	// Error is set instead of Address when the service could not geocode
	// the point.
	Error   string  `json:"-"`
	Address Address `json:"-"`
}

// SearchAPIResult is one element of a search response
type SearchAPIResult struct {
	PlaceId     int      `json:"place_id"`
	Licence     string   `json:"licence"`
	OsmType     string   `json:"osm_type"`
	OsmId       int      `json:"osm_id"`
	Lat         string   `json:"lat"`
	Lon         string   `json:"lon"`
	Class       string   `json:"class"`
	Type        string   `json:"type"`
	Importance  float64  `json:"importance"`
	DisplayName string   `json:"display_name"`
	Boundingbox []string `json:"boundingbox"` // south, north, west, east
}
