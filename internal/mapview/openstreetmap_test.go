package mapview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"photomap/internal/providers/openstreetmap"
	"photomap/internal/types"
)

func newOSM(t *testing.T) (*OpenStreetMap, *fixture, *fakeGeocoder) {
	t.Helper()
	f := newFixture("openstreetmap")
	g := &fakeGeocoder{busy: f.busy}
	return NewOpenStreetMap(f.base, g), f, g
}

func TestOpenStreetMap_PageElementsIdempotent(t *testing.T) {
	o, _, _ := newOSM(t)

	first := o.PageElements()
	second := o.PageElements()
	if first != second {
		t.Errorf("PageElements() changed between calls:\n%+v\n%+v", first, second)
	}
	if !strings.Contains(first.Head, "https://unpkg.com/leaflet@1.0.3/dist/leaflet.js") {
		t.Errorf("head missing leaflet script: %q", first.Head)
	}
	if !strings.Contains(first.Head, "var L_NO_TOUCH = true;") {
		t.Errorf("head missing L_NO_TOUCH: %q", first.Head)
	}
	if !strings.Contains(first.Body, "initialize();") {
		t.Errorf("body missing initialize call: %q", first.Body)
	}
}

func TestOpenStreetMap_Terms(t *testing.T) {
	o, f, _ := newOSM(t)

	o.LoadTermsNominatim()
	o.LoadTermsLeaflet()
	o.LoadTermsOSM()
	o.LoadTermsTiles()
	want := []string{
		"https://operations.osmfoundation.org/policies/nominatim/",
		"http://leafletjs.com/",
		"http://www.openstreetmap.org/copyright",
		"https://carto.com/attribution",
	}
	if diff := cmp.Diff(want, f.opener.urls); diff != "" {
		t.Errorf("opened URLs mismatch (-want +got):\n%s", diff)
	}

	terms := o.Terms()
	if len(terms) != 4 {
		t.Fatalf("Terms() returned %d items, want 4", len(terms))
	}
	for i, item := range terms {
		if item.URL != want[i] {
			t.Errorf("Terms()[%d].URL = %q, want %q", i, item.URL, want[i])
		}
		if item.Row != i/2 || item.Col != i%2 {
			t.Errorf("Terms()[%d] at (%d,%d), want (%d,%d)", i, item.Row, item.Col, i/2, i%2)
		}
	}

	f.opener.urls = nil
	if err := o.OpenTerms(3); err != nil {
		t.Fatalf("OpenTerms(3) error = %v", err)
	}
	if diff := cmp.Diff([]string{"https://carto.com/attribution"}, f.opener.urls); diff != "" {
		t.Errorf("OpenTerms(3) mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenStreetMap_GetAddress(t *testing.T) {
	o, f, g := newOSM(t)
	f.host.coords = "51.5, -0.12"
	g.reverseResp = &openstreetmap.ReverseAPIResponse{
		Address: openstreetmap.Address{
			{Key: "town", Value: "X"},
			{Key: "state", Value: "Y"},
			{Key: "road", Value: "Z"},
		},
	}

	o.GetAddress(context.Background())

	if diff := cmp.Diff([]types.Coords{{Latitude: 51.5, Longitude: -0.12}}, g.reverseCalls); diff != "" {
		t.Errorf("Reverse() calls mismatch (-want +got):\n%s", diff)
	}
	want := []types.Location{{ProvinceState: "Y", City: "X", Sublocation: "Z"}}
	if diff := cmp.Diff(want, f.host.locations); diff != "" {
		t.Errorf("SetLocationTaken() calls mismatch (-want +got):\n%s", diff)
	}
	if len(g.busyDuring) != 1 || !g.busyDuring[0] {
		t.Errorf("request not made while busy: %v", g.busyDuring)
	}
	if f.busy.active != 0 {
		t.Errorf("busy still held after GetAddress, depth %d", f.busy.active)
	}
}

func TestOpenStreetMap_GetAddressFailures(t *testing.T) {
	tests := []struct {
		name    string
		coords  string
		resp    *openstreetmap.ReverseAPIResponse
		err     error
		wantLog string
		noLog   bool
	}{
		{
			name:    "service error",
			coords:  "1, 2",
			resp:    &openstreetmap.ReverseAPIResponse{Error: "Unable to geocode"},
			wantLog: "Unable to geocode",
		},
		{
			name:    "transport error",
			coords:  "1, 2",
			err:     fmt.Errorf("%w: connection refused", openstreetmap.ErrTransport),
			wantLog: "connection refused",
		},
		{
			name:   "error status",
			coords: "1, 2",
			err:    fmt.Errorf("%w 503: busy", openstreetmap.ErrStatus),
			noLog:  true,
		},
		{
			name:    "bad coordinates",
			coords:  "",
			wantLog: "cannot look up address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, f, g := newOSM(t)
			f.host.coords = tt.coords
			g.reverseResp = tt.resp
			g.err = tt.err

			o.GetAddress(context.Background())

			if len(f.host.locations) != 0 {
				t.Errorf("SetLocationTaken() called %d times, want 0", len(f.host.locations))
			}
			if f.busy.active != 0 {
				t.Errorf("busy still held, depth %d", f.busy.active)
			}
			logs := f.logs.String()
			if tt.wantLog != "" && !strings.Contains(logs, tt.wantLog) {
				t.Errorf("log = %q, want %q", logs, tt.wantLog)
			}
			if tt.noLog && strings.Contains(logs, "level=ERROR") {
				t.Errorf("log = %q, want no error", logs)
			}
		})
	}
}

func TestOpenStreetMap_Search(t *testing.T) {
	o, f, g := newOSM(t)
	g.searchResp = []openstreetmap.SearchAPIResult{
		{DisplayName: "First", Boundingbox: []string{"1", "2", "3", "4"}},
		{DisplayName: "Broken", Boundingbox: []string{"1", "2"}},
		{DisplayName: "Second", Boundingbox: []string{"-5.5", "-4.5", "10", "11"}},
	}

	o.Search(context.Background(), "Aspen")

	if diff := cmp.Diff([]openstreetmap.SearchParams{{Query: "Aspen"}}, g.searchCalls); diff != "" {
		t.Errorf("Search() calls mismatch (-want +got):\n%s", diff)
	}
	want := []types.SearchResult{
		{Box: types.BoundingBox{South: 1, North: 2, West: 3, East: 4}, DisplayName: "First"},
		{Box: types.BoundingBox{South: -5.5, North: -4.5, West: 10, East: 11}, DisplayName: "Second"},
	}
	if diff := cmp.Diff(want, f.host.results); diff != "" {
		t.Errorf("search results mismatch (-want +got):\n%s", diff)
	}
	if f.host.clearedSearch != 1 {
		t.Errorf("ClearSearch() called %d times, want 1", f.host.clearedSearch)
	}
	if f.host.clearedText != 0 {
		t.Errorf("ClearSearchText() called for explicit query")
	}
	if o.Base().SearchString() != "Aspen" {
		t.Errorf("SearchString() = %q", o.Base().SearchString())
	}
	if !g.busyDuring[0] || f.busy.active != 0 {
		t.Errorf("busy not scoped to request: during=%v after=%d", g.busyDuring, f.busy.active)
	}
	if !strings.Contains(f.logs.String(), "skipping search result") {
		t.Errorf("malformed result not logged: %q", f.logs.String())
	}
}

func TestOpenStreetMap_SearchViewBox(t *testing.T) {
	o, _, g := newOSM(t)
	o.Base().SetStatus(types.ViewBounds{1, 2, 3, 4})

	o.Search(context.Background(), "x")

	if len(g.searchCalls) != 1 {
		t.Fatalf("Search() called %d times, want 1", len(g.searchCalls))
	}
	want := "4.00000000,1.00000000,2.00000000,3.00000000"
	if got := g.searchCalls[0].ViewBox; got != want {
		t.Errorf("ViewBox = %q, want %q", got, want)
	}
}

func TestOpenStreetMap_SearchFromEditBox(t *testing.T) {
	o, f, g := newOSM(t)
	f.host.searchText = "Paris"

	o.Search(context.Background(), "")

	if len(g.searchCalls) != 1 || g.searchCalls[0].Query != "Paris" {
		t.Errorf("Search() calls = %+v, want query Paris", g.searchCalls)
	}
	if f.host.clearedText != 1 || f.host.searchText != "" {
		t.Errorf("edit box not cleared")
	}
}

func TestOpenStreetMap_SearchEmptyIsNoop(t *testing.T) {
	o, f, g := newOSM(t)

	o.Search(context.Background(), "")

	if len(g.searchCalls) != 0 {
		t.Errorf("Search() called with empty query")
	}
	if f.host.clearedSearch != 0 {
		t.Errorf("ClearSearch() called for empty query")
	}
	if f.busy.acquired != 0 {
		t.Errorf("busy acquired for empty query")
	}
}

func TestOpenStreetMap_SearchFailure(t *testing.T) {
	o, f, g := newOSM(t)
	g.err = errors.New("network down")

	o.Search(context.Background(), "x")

	if len(f.host.results) != 0 {
		t.Errorf("results reported after failure: %+v", f.host.results)
	}
	if f.busy.active != 0 {
		t.Errorf("busy still held, depth %d", f.busy.active)
	}
	if !strings.Contains(f.logs.String(), "network down") {
		t.Errorf("log = %q, want transport error", f.logs.String())
	}
}

func TestOpenStreetMap_MarkerDragStart(t *testing.T) {
	o, f, _ := newOSM(t)
	f.images.blocked = false
	o.Base().InitializeFinished()
	f.host.displayCalls = 0
	o.Base().SetMarker("0", types.NewCoords(1, 1), []string{"a.jpg", "b.jpg"})
	o.Base().SetMarker("1", types.NewCoords(2, 2), []string{"c.jpg"})
	o.Base().SetMarker("2", types.NewCoords(3, 3), []string{"d.jpg"})
	f.script.commands = nil

	o.MarkerDragStart("1")

	if diff := cmp.Diff([]string{"c.jpg"}, f.images.selected); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
	if !f.images.blockedDuringSelect {
		t.Error("image list signals not blocked during selection")
	}
	if f.images.blocked {
		t.Error("image list signal blocking not restored")
	}
	if !f.host.coordsEnabled {
		t.Error("coordinates not enabled")
	}
	want := []string{`enableMarker("0", 0)`, `enableMarker("2", 0)`}
	if diff := cmp.Diff(want, f.script.commands); diff != "" {
		t.Errorf("JavaScript mismatch (-want +got):\n%s", diff)
	}
	if f.host.displayCalls != 1 {
		t.Errorf("DisplayCoords() called %d times, want 1", f.host.displayCalls)
	}
}

func TestOpenStreetMap_MarkerDragStartKeepsOuterBlock(t *testing.T) {
	o, f, _ := newOSM(t)
	f.images.blocked = true
	o.Base().SetMarker("0", types.NewCoords(1, 1), []string{"a.jpg"})

	o.MarkerDragStart("0")

	if !f.images.blocked {
		t.Error("outer signal block was released")
	}
}

func TestOpenStreetMap_MarkerDragStartUnknown(t *testing.T) {
	o, f, _ := newOSM(t)

	o.MarkerDragStart("9")

	if f.images.selected != nil || f.host.coordsEnabled {
		t.Error("unknown marker changed state")
	}
	if !strings.Contains(f.logs.String(), "unknown marker") {
		t.Errorf("log = %q, want unknown marker warning", f.logs.String())
	}
}

func TestOpenStreetMap_Bridge(t *testing.T) {
	o, f, g := newOSM(t)
	br := NewBridgeFor(o)
	ctx := context.Background()

	f.host.coords = "1, 2"
	g.reverseResp = &openstreetmap.ReverseAPIResponse{
		Address: openstreetmap.Address{{Key: "country_code", Value: "fr"}},
	}
	if err := br.Dispatch(ctx, "get_address", nil); err != nil {
		t.Fatalf("Dispatch(get_address) error = %v", err)
	}
	if len(f.host.locations) != 1 || f.host.locations[0].CountryCode != "fr" {
		t.Errorf("locations = %+v", f.host.locations)
	}

	if err := br.Dispatch(ctx, "search", []string{"Lyon"}); err != nil {
		t.Fatalf("Dispatch(search) error = %v", err)
	}
	if len(g.searchCalls) != 1 || g.searchCalls[0].Query != "Lyon" {
		t.Errorf("searchCalls = %+v", g.searchCalls)
	}

	o.Base().SetMarker("0", types.NewCoords(1, 1), []string{"a.jpg"})
	if err := br.Dispatch(ctx, "marker_drag_start", []string{"0"}); err != nil {
		t.Fatalf("Dispatch(marker_drag_start) error = %v", err)
	}
	if diff := cmp.Diff([]string{"a.jpg"}, f.images.selected); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}

	if err := br.Dispatch(ctx, "new_copyright", []string{"x"}); !errors.Is(err, ErrUnknownCallback) {
		t.Errorf("Dispatch(new_copyright) error = %v, want ErrUnknownCallback", err)
	}
}

func TestOpenStreetMap_SelectSearchResult(t *testing.T) {
	o, f, g := newOSM(t)
	o.Base().InitializeFinished()
	f.script.commands = nil
	g.searchResp = []openstreetmap.SearchAPIResult{
		{DisplayName: "First", Boundingbox: []string{"1", "2", "3", "4"}},
		{DisplayName: "Second", Boundingbox: []string{"5", "6", "7", "8"}},
	}
	br := NewBridgeFor(o)
	ctx := context.Background()

	// no search yet, so nothing to choose
	if err := br.Dispatch(ctx, "goto_search_result", []string{"0"}); !errors.Is(err, ErrBadArguments) {
		t.Errorf("Dispatch(goto_search_result, 0) before search error = %v, want ErrBadArguments", err)
	}

	o.Search(ctx, "Aspen")

	if err := br.Dispatch(ctx, "goto_search_result", []string{"2"}); err != nil {
		t.Fatalf("Dispatch(goto_search_result, 2) error = %v", err)
	}
	if diff := cmp.Diff([]string{"adjustBounds(5,8,6,7)"}, f.script.commands); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}

	if err := br.Dispatch(ctx, "goto_search_result", []string{"0"}); err != nil {
		t.Fatalf("Dispatch(goto_search_result, 0) error = %v", err)
	}
	if len(g.searchCalls) != 2 || g.searchCalls[1].Query != "Aspen" {
		t.Errorf("search not repeated: %+v", g.searchCalls)
	}
	if len(f.host.results) != 2 {
		t.Errorf("repeated search reported %d results, want 2", len(f.host.results))
	}

	for _, bad := range []string{"3", "-1", "x"} {
		if err := br.Dispatch(ctx, "goto_search_result", []string{bad}); !errors.Is(err, ErrBadArguments) {
			t.Errorf("Dispatch(goto_search_result, %s) error = %v, want ErrBadArguments", bad, err)
		}
	}
}

func TestOpenStreetMap_MarkerDragStartQuotesIDs(t *testing.T) {
	o, f, _ := newOSM(t)
	o.Base().InitializeFinished()
	o.Base().SetMarker("0", types.NewCoords(1, 1), []string{"a.jpg"})
	o.Base().SetMarker(`evil"id`, types.NewCoords(2, 2), []string{"b.jpg"})
	f.script.commands = nil

	o.MarkerDragStart("0")

	want := []string{`enableMarker("evil\"id", 0)`}
	if diff := cmp.Diff(want, f.script.commands); diff != "" {
		t.Errorf("JavaScript mismatch (-want +got):\n%s", diff)
	}
}
