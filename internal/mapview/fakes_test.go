package mapview

import (
	"bytes"
	"context"
	"log/slog"
	"sync"

	"photomap/internal/providers/openstreetmap"
	"photomap/internal/types"
)

type fakeHost struct {
	coords        string
	coordsEnabled bool
	displayCalls  int
	locations     []types.Location
	searchText    string
	clearedText   int
	clearedSearch int
	results       []types.SearchResult
}

func (h *fakeHost) Coords() string                         { return h.coords }
func (h *fakeHost) SetCoordsEnabled(enabled bool)          { h.coordsEnabled = enabled }
func (h *fakeHost) DisplayCoords()                         { h.displayCalls++ }
func (h *fakeHost) SetLocationTaken(loc types.Location)    { h.locations = append(h.locations, loc) }
func (h *fakeHost) SearchText() string                     { return h.searchText }
func (h *fakeHost) ClearSearchText()                       { h.searchText = ""; h.clearedText++ }
func (h *fakeHost) ClearSearch()                           { h.clearedSearch++; h.results = nil }
func (h *fakeHost) SearchResult(result types.SearchResult) { h.results = append(h.results, result) }

type fakeImages struct {
	blocked bool
	// blockedDuringSelect records the blocking state seen by SelectImages
	blockedDuringSelect bool
	selected            []string
	positions           map[string]types.Coords
}

func (f *fakeImages) SelectImages(images []string) {
	f.blockedDuringSelect = f.blocked
	f.selected = images
}

func (f *fakeImages) Selected() []string { return f.selected }

func (f *fakeImages) SetLatLong(images []string, coords *types.Coords) {
	if f.positions == nil {
		f.positions = make(map[string]types.Coords)
	}
	for _, image := range images {
		if coords == nil {
			delete(f.positions, image)
			continue
		}
		f.positions[image] = *coords
	}
}

func (f *fakeImages) BlockSignals(block bool) bool {
	old := f.blocked
	f.blocked = block
	return old
}

type fakeScript struct {
	commands []string
}

func (f *fakeScript) RunJavaScript(command string) {
	f.commands = append(f.commands, command)
}

type fakeOpener struct {
	urls []string
	err  error
}

func (f *fakeOpener) OpenURL(url string) error {
	f.urls = append(f.urls, url)
	return f.err
}

type fakeKeys map[string]string

func (k fakeKeys) Get(section, option string) string {
	return k[section+"/"+option]
}

// fakeBusy records whether the geocoder was called while busy
type fakeBusy struct {
	mu       sync.Mutex
	active   int
	acquired int
}

func (b *fakeBusy) Acquire() func() {
	b.mu.Lock()
	b.active++
	b.acquired++
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		b.active--
		b.mu.Unlock()
	}
}

type fakeGeocoder struct {
	busy *fakeBusy

	reverseResp *openstreetmap.ReverseAPIResponse
	searchResp  []openstreetmap.SearchAPIResult
	err         error

	reverseCalls []types.Coords
	searchCalls  []openstreetmap.SearchParams
	busyDuring   []bool
}

func (g *fakeGeocoder) Reverse(ctx context.Context, latitude, longitude float64) (*openstreetmap.ReverseAPIResponse, error) {
	g.reverseCalls = append(g.reverseCalls, types.NewCoords(latitude, longitude))
	g.busyDuring = append(g.busyDuring, g.busy != nil && g.busy.active > 0)
	return g.reverseResp, g.err
}

func (g *fakeGeocoder) Search(ctx context.Context, params openstreetmap.SearchParams) ([]openstreetmap.SearchAPIResult, error) {
	g.searchCalls = append(g.searchCalls, params)
	g.busyDuring = append(g.busyDuring, g.busy != nil && g.busy.active > 0)
	return g.searchResp, g.err
}

type fixture struct {
	host   *fakeHost
	images *fakeImages
	script *fakeScript
	opener *fakeOpener
	busy   *fakeBusy
	logs   *bytes.Buffer
	base   *Base
}

func newFixture(name string) *fixture {
	f := &fixture{
		host:   &fakeHost{},
		images: &fakeImages{},
		script: &fakeScript{},
		opener: &fakeOpener{},
		busy:   &fakeBusy{},
		logs:   &bytes.Buffer{},
	}
	f.base = NewBase(name, Deps{
		Host:   f.host,
		Images: f.images,
		Script: f.script,
		Busy:   f.busy,
		Opener: f.opener,
		Logger: slog.New(slog.NewTextHandler(f.logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
	})
	return f
}
