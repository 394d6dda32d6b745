package mapview

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"photomap/internal/providers/openstreetmap"
	"photomap/internal/types"
)

const (
	nominatimTermsURL = "https://operations.osmfoundation.org/policies/nominatim/"
	leafletTermsURL   = "http://leafletjs.com/"
	osmTermsURL       = "http://www.openstreetmap.org/copyright"
	tilesTermsURL     = "https://carto.com/attribution"
)

var osmPageElements = PageElements{
	Head: `
    <link rel="stylesheet"
      href="https://unpkg.com/leaflet@1.0.3/dist/leaflet.css" />
    <script type="text/javascript">
      var L_NO_TOUCH = true;
    </script>
    <script type="text/javascript"
      src="https://unpkg.com/leaflet@1.0.3/dist/leaflet.js">
    </script>
`,
	Body: `
    <script type="text/javascript">
      initialize();
    </script>
`,
}

var osmTerms = []TermsItem{
	{Text: "Search powered by Nominatim", URL: nominatimTermsURL, Row: 0, Col: 0},
	{Text: "Map powered by Leaflet", URL: leafletTermsURL, Row: 0, Col: 1},
	{Text: "Map data ©OpenStreetMap\ncontributors, licensed under ODbL", URL: osmTermsURL, Row: 1, Col: 0},
	{Text: "Map tiles by CARTO\nlicensed under CC BY 3.0", URL: tilesTermsURL, Row: 1, Col: 1},
}

// OpenStreetMap is the open data backend: Leaflet tiles with Nominatim
// geocoding.
type OpenStreetMap struct {
	base     *Base
	geocoder Geocoder
}

// NewOpenStreetMap creates the backend around base, geocoding with geocoder
func NewOpenStreetMap(base *Base, geocoder Geocoder) *OpenStreetMap {
	return &OpenStreetMap{
		base:     base,
		geocoder: geocoder,
	}
}

// Name is the backend's configuration name
func (o *OpenStreetMap) Name() string { return "openstreetmap" }

// Base returns the shared map state
func (o *OpenStreetMap) Base() *Base { return o.base }

// PageElements returns the fixed fragments loading Leaflet
func (o *OpenStreetMap) PageElements() PageElements {
	return osmPageElements
}

// Terms returns the attribution links, two per row
func (o *OpenStreetMap) Terms() []TermsItem {
	return append([]TermsItem(nil), osmTerms...)
}

// OpenTerms opens the link of the terms item at index
func (o *OpenStreetMap) OpenTerms(index int) error {
	return openTerms(o.base, osmTerms, index)
}

// LoadTermsNominatim opens the geocoder's usage policy
func (o *OpenStreetMap) LoadTermsNominatim() { o.base.OpenURL(nominatimTermsURL) }

// LoadTermsLeaflet opens the map library's home page
func (o *OpenStreetMap) LoadTermsLeaflet() { o.base.OpenURL(leafletTermsURL) }

// LoadTermsOSM opens the map data copyright page
func (o *OpenStreetMap) LoadTermsOSM() { o.base.OpenURL(osmTermsURL) }

// LoadTermsTiles opens the tile provider's attribution page
func (o *OpenStreetMap) LoadTermsTiles() { o.base.OpenURL(tilesTermsURL) }

// GetAddress fills the location fields from the selected coordinates. Any
// failure leaves the fields untouched.
func (o *OpenStreetMap) GetAddress(ctx context.Context) {
	logger := o.base.logger
	coords, err := types.ParseCoords(o.base.host.Coords())
	if err != nil {
		logger.Error("cannot look up address", "error", err)
		return
	}

	var resp *openstreetmap.ReverseAPIResponse
	o.base.whileBusy(func() {
		resp, err = o.geocoder.Reverse(ctx, coords.Latitude, coords.Longitude)
	})
	if err != nil {
		o.logRequestError("reverse geocode failed", err)
		return
	}
	if resp.Error != "" {
		logger.Error("reverse geocode failed", "error", resp.Error)
		return
	}

	o.base.host.SetLocationTaken(locationFromAddress(resp.Address))
}

// Search looks up query, or the search box text when query is empty, and
// reports each match to the host.
func (o *OpenStreetMap) Search(ctx context.Context, query string) {
	host := o.base.host
	if query == "" {
		query = host.SearchText()
		host.ClearSearchText()
	}
	if query == "" {
		return
	}
	o.base.searchString = query
	o.base.results = nil
	host.ClearSearch()

	params := openstreetmap.SearchParams{Query: query}
	if bounds, ok := o.base.Bounds(); ok {
		params.ViewBox = viewBox(bounds)
	}

	var (
		results []openstreetmap.SearchAPIResult
		err     error
	)
	o.base.whileBusy(func() {
		results, err = o.geocoder.Search(ctx, params)
	})
	if err != nil {
		o.logRequestError("search failed", err)
		return
	}

	for _, r := range results {
		box, err := types.ParseBoundingBox(r.Boundingbox)
		if err != nil {
			o.base.logger.Warn("skipping search result", "display_name", r.DisplayName, "error", err)
			continue
		}
		result := types.SearchResult{Box: box, DisplayName: r.DisplayName}
		o.base.results = append(o.base.results, result)
		host.SearchResult(result)
	}
}

// SelectSearchResult handles a choice from the search drop-down. Once a
// search has been made, entry 0 repeats it and the results follow in the
// order they were reported; before that the entries are the results alone.
func (o *OpenStreetMap) SelectSearchResult(ctx context.Context, index int) error {
	if last := o.base.searchString; last != "" {
		if index == 0 {
			o.Search(ctx, last)
			return nil
		}
		index--
	}
	results := o.base.results
	if index < 0 || index >= len(results) {
		return fmt.Errorf("%w: no search result %d", ErrBadArguments, index)
	}
	o.base.GotoSearchResult(results[index])
	return nil
}

// viewBox orders the page's bounds as Nominatim's viewbox parameter
func viewBox(b types.ViewBounds) string {
	return fmt.Sprintf("%.8f,%.8f,%.8f,%.8f", b[3], b[0], b[1], b[2])
}

// error statuses from the service are expected and not worth reporting
func (o *OpenStreetMap) logRequestError(msg string, err error) {
	if errors.Is(err, openstreetmap.ErrStatus) {
		o.base.logger.Debug(msg, "error", err)
		return
	}
	o.base.logger.Error(msg, "error", err)
}

// MarkerDragStart selects the images at the dragged marker and freezes every
// other marker.
func (o *OpenStreetMap) MarkerDragStart(id string) {
	images, ok := o.base.MarkerImages(id)
	if !ok {
		o.base.logger.Warn("drag started on unknown marker", "marker_id", id)
		return
	}

	blocked := o.base.images.BlockSignals(true)
	o.base.images.SelectImages(slices.Clone(images))
	o.base.images.BlockSignals(blocked)

	o.base.host.SetCoordsEnabled(true)
	for _, other := range o.base.MarkerIDs() {
		if other != id {
			o.base.enableMarker(other, 0)
		}
	}
	o.base.host.DisplayCoords()
}

// OnMarkerDragStart handles the page's marker_drag_start callback
func (o *OpenStreetMap) OnMarkerDragStart(id string) {
	o.MarkerDragStart(id)
}

// Register adds the geocoding callbacks
func (o *OpenStreetMap) Register(br *Bridge) {
	br.Handle("get_address", 0, 0, func(ctx context.Context, _ []string) error {
		o.GetAddress(ctx)
		return nil
	})
	br.Handle("search", 0, 1, func(ctx context.Context, args []string) error {
		var query string
		if len(args) == 1 {
			query = args[0]
		}
		o.Search(ctx, query)
		return nil
	})
	br.Handle("goto_search_result", 1, 1, func(ctx context.Context, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: %q is not an index", ErrBadArguments, args[0])
		}
		return o.SelectSearchResult(ctx, index)
	})
}
