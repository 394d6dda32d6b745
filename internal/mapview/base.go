package mapview

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"

	"photomap/internal/types"
)

// Deps are the collaborators a map backend talks to
type Deps struct {
	Host   Host
	Images ImageList
	Script ScriptRunner
	Busy   BusyIndicator
	Opener URLOpener
	Logger *slog.Logger
}

// Base holds the state shared by every map backend: the marker-to-image
// mapping, the last reported viewport and the search history.
type Base struct {
	host   Host
	images ImageList
	script ScriptRunner
	busy   BusyIndicator
	opener URLOpener
	logger *slog.Logger

	mapLoaded    bool
	markers      map[string]*Marker
	bounds       types.ViewBounds
	hasBounds    bool
	searchString string
	results      []types.SearchResult
	properties   map[string]string
}

func NewBase(name string, d Deps) *Base {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Base{
		host:       d.Host,
		images:     d.Images,
		script:     d.Script,
		busy:       d.Busy,
		opener:     d.Opener,
		logger:     logger.With("component", "map-"+name),
		markers:    make(map[string]*Marker),
		properties: make(map[string]string),
	}
}

func (b *Base) Logger() *slog.Logger {
	return b.logger
}

// MapLoaded reports whether the page has finished initialising
func (b *Base) MapLoaded() bool {
	return b.mapLoaded
}

// InitializeFinished is called once the page's map control is ready. Markers
// placed before then are drawn now.
func (b *Base) InitializeFinished() {
	b.mapLoaded = true
	b.redrawMarkers()
	b.host.DisplayCoords()
}

// JavaScript runs command in the page. Commands issued before the map has
// loaded are dropped. Values spliced into command must be quoted with
// jsValue.
func (b *Base) JavaScript(command string) {
	if !b.mapLoaded {
		return
	}
	b.script.RunJavaScript(command)
}

// jsValue renders v as a JavaScript literal
func jsValue(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		// NaN and infinities have no JSON form
		return "null"
	}
	return string(data)
}

// Marker is a map marker and the images taken at its position
type Marker struct {
	Coords types.Coords
	Images []string
}

// SetMarker places a marker for the images taken at coords, replacing any
// marker with the same id
func (b *Base) SetMarker(id string, coords types.Coords, images []string) {
	if _, ok := b.markers[id]; ok {
		b.JavaScript("delMarker(" + jsValue(id) + ")")
	}
	b.markers[id] = &Marker{Coords: coords, Images: slices.Clone(images)}
	b.images.SetLatLong(images, &coords)
	b.drawMarker(id)
}

// RemoveMarker takes a marker off the map. The images keep their position.
func (b *Base) RemoveMarker(id string) {
	if _, ok := b.markers[id]; !ok {
		return
	}
	delete(b.markers, id)
	b.JavaScript("delMarker(" + jsValue(id) + ")")
}

// MarkerImages returns the images located at a marker
func (b *Base) MarkerImages(id string) ([]string, bool) {
	m, ok := b.markers[id]
	if !ok {
		return nil, false
	}
	return m.Images, true
}

// MarkerAt returns a copy of a marker
func (b *Base) MarkerAt(id string) (Marker, bool) {
	m, ok := b.markers[id]
	if !ok {
		return Marker{}, false
	}
	return Marker{Coords: m.Coords, Images: slices.Clone(m.Images)}, true
}

// MarkerIDs returns every marker id in sorted order
func (b *Base) MarkerIDs() []string {
	ids := make([]string, 0, len(b.markers))
	for id := range b.markers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (b *Base) drawMarker(id string) {
	m := b.markers[id]
	b.JavaScript(fmt.Sprintf("addMarker(%s, %s, %s, %d)", jsValue(id),
		jsValue(m.Coords.Latitude), jsValue(m.Coords.Longitude), b.markerActive(id, b.images.Selected())))
}

func (b *Base) redrawMarkers() {
	b.JavaScript("removeMarkers()")
	for _, id := range b.MarkerIDs() {
		b.drawMarker(id)
	}
}

// markerActive is 1 when any of the marker's images is selected
func (b *Base) markerActive(id string, selected []string) int {
	for _, image := range b.markers[id].Images {
		if slices.Contains(selected, image) {
			return 1
		}
	}
	return 0
}

func (b *Base) enableMarker(id string, active int) {
	b.JavaScript(fmt.Sprintf("enableMarker(%s, %d)", jsValue(id), active))
}

// NewSelection updates the map after the image selection changed: markers of
// selected images are enabled and brought into view.
func (b *Base) NewSelection() {
	selected := b.images.Selected()
	for _, id := range b.MarkerIDs() {
		b.enableMarker(id, b.markerActive(id, selected))
	}
	b.host.DisplayCoords()
	b.seeSelection(selected)
}

// seeSelection pans the map to include every selected image's marker
func (b *Base) seeSelection(selected []string) {
	var points [][2]float64
	for _, id := range b.MarkerIDs() {
		if b.markerActive(id, selected) == 0 {
			continue
		}
		c := b.markers[id].Coords
		p := [2]float64{c.Latitude, c.Longitude}
		if !slices.Contains(points, p) {
			points = append(points, p)
		}
	}
	if len(points) == 0 {
		return
	}
	b.JavaScript("fitPoints(" + jsValue(points) + ")")
}

// MarkerClick selects the images at a marker
func (b *Base) MarkerClick(id string) {
	m, ok := b.markers[id]
	if !ok {
		b.logger.Warn("click on unknown marker", "marker_id", id)
		return
	}
	b.images.SelectImages(slices.Clone(m.Images))
	b.NewSelection()
}

// MarkerDrag moves a marker's images to where the marker was dragged
func (b *Base) MarkerDrag(coords types.Coords, id string) {
	m, ok := b.markers[id]
	if !ok {
		b.logger.Warn("drag of unknown marker", "marker_id", id)
		return
	}
	m.Coords = coords
	b.images.SetLatLong(m.Images, &coords)
	b.host.DisplayCoords()
}

// MarkerDrop places images dropped onto the map at coords
func (b *Base) MarkerDrop(coords types.Coords, images []string) {
	b.moveImages(images, &coords)
	b.host.DisplayCoords()
	b.seeSelection(b.images.Selected())
}

// DropImages asks the page to convert a drop at pixel x, y into a position;
// the page answers with marker_drop.
func (b *Base) DropImages(x, y int, images []string) {
	b.JavaScript(fmt.Sprintf("markerDrop(%d,%d,%s)", x, y, jsValue(images)))
}

// NewCoords moves the selected images to the position typed into the
// coordinates field. A blank field removes their position; unreadable text
// is replaced by the current position.
func (b *Base) NewCoords() {
	selected := b.images.Selected()
	if len(selected) == 0 {
		return
	}
	text := strings.TrimSpace(b.host.Coords())
	if text == "" {
		b.moveImages(selected, nil)
		return
	}
	coords, err := types.ParseCoords(text)
	if err != nil {
		b.logger.Debug("ignoring coordinates", "text", text, "error", err)
		b.host.DisplayCoords()
		return
	}
	b.moveImages(selected, &coords)
	b.host.DisplayCoords()
	b.seeSelection(selected)
}

// moveImages takes images off their markers and, unless coords is nil, adds
// them to the marker at coords, creating one if needed
func (b *Base) moveImages(images []string, coords *types.Coords) {
	selected := b.images.Selected()
	for _, image := range images {
		b.removeImage(image, selected)
	}
	b.images.SetLatLong(images, coords)
	if coords == nil || len(images) == 0 {
		return
	}
	for _, id := range b.MarkerIDs() {
		if m := b.markers[id]; m.Coords == *coords {
			m.Images = append(m.Images, images...)
			b.enableMarker(id, b.markerActive(id, selected))
			return
		}
	}
	id := b.freeMarkerID()
	b.markers[id] = &Marker{Coords: *coords, Images: slices.Clone(images)}
	b.drawMarker(id)
}

func (b *Base) removeImage(image string, selected []string) {
	for _, id := range b.MarkerIDs() {
		m := b.markers[id]
		i := slices.Index(m.Images, image)
		if i < 0 {
			continue
		}
		m.Images = slices.Delete(m.Images, i, i+1)
		if len(m.Images) > 0 {
			b.enableMarker(id, b.markerActive(id, selected))
		} else {
			delete(b.markers, id)
			b.JavaScript("delMarker(" + jsValue(id) + ")")
		}
		return
	}
}

// freeMarkerID returns the lowest unused numeric id
func (b *Base) freeMarkerID() string {
	for i := 0; ; i++ {
		id := strconv.Itoa(i)
		if _, ok := b.markers[id]; !ok {
			return id
		}
	}
}

// SetStatus records the viewport bounds reported by the page
func (b *Base) SetStatus(bounds types.ViewBounds) {
	b.bounds = bounds
	b.hasBounds = true
}

// Bounds returns the last reported viewport, if any
func (b *Base) Bounds() (types.ViewBounds, bool) {
	return b.bounds, b.hasBounds
}

// SearchString is the most recent search query
func (b *Base) SearchString() string {
	return b.searchString
}

// SetProperty stores a named value read by the embedded page
func (b *Base) SetProperty(name, value string) {
	b.properties[name] = value
}

func (b *Base) Property(name string) string {
	return b.properties[name]
}

// GotoSearchResult pans the map to a search result
func (b *Base) GotoSearchResult(result types.SearchResult) {
	box := result.Box
	b.JavaScript(fmt.Sprintf("adjustBounds(%s,%s,%s,%s)",
		jsValue(box.South), jsValue(box.East), jsValue(box.North), jsValue(box.West)))
}

// OpenURL shows url in the default browser. Failures are only logged.
func (b *Base) OpenURL(url string) {
	if b.opener == nil {
		b.logger.Warn("no browser available", "url", url)
		return
	}
	if err := b.opener.OpenURL(url); err != nil {
		b.logger.Warn("failed to open browser", "url", url, "error", err)
	}
}

// whileBusy runs fn with the busy indicator held
func (b *Base) whileBusy(fn func()) {
	if b.busy != nil {
		release := b.busy.Acquire()
		defer release()
	}
	fn()
}

// register adds the callbacks every backend understands
func (b *Base) register(br *Bridge) {
	br.Handle("initialize_finished", 0, 0, func(context.Context, []string) error {
		b.InitializeFinished()
		return nil
	})
	br.Handle("new_status", 4, 4, func(_ context.Context, args []string) error {
		v, err := parseFloats(args)
		if err != nil {
			return err
		}
		b.SetStatus(types.ViewBounds{v[0], v[1], v[2], v[3]})
		return nil
	})
	br.Handle("marker_click", 1, 1, func(_ context.Context, args []string) error {
		b.MarkerClick(args[0])
		return nil
	})
	br.Handle("marker_drag", 3, 3, func(_ context.Context, args []string) error {
		coords, err := parseLatLng(args[0], args[1])
		if err != nil {
			return err
		}
		b.MarkerDrag(coords, args[2])
		return nil
	})
	br.Handle("marker_drop", 3, -1, func(_ context.Context, args []string) error {
		coords, err := parseLatLng(args[0], args[1])
		if err != nil {
			return err
		}
		b.MarkerDrop(coords, args[2:])
		return nil
	})
	br.Handle("log", 1, 1, func(_ context.Context, args []string) error {
		b.logger.Info("map page", "message", args[0])
		return nil
	})
}

// Busy is a reentrant BusyIndicator. OnChange, when set, is called as the
// indicator turns on and off.
type Busy struct {
	OnChange func(busy bool)

	mu    sync.Mutex
	depth int
}

// Acquire marks the UI busy. The returned func may be called more than once;
// only the first call releases.
func (b *Busy) Acquire() func() {
	b.mu.Lock()
	b.depth++
	if b.depth == 1 && b.OnChange != nil {
		b.OnChange(true)
	}
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			b.depth--
			if b.depth == 0 && b.OnChange != nil {
				b.OnChange(false)
			}
		})
	}
}

// Active reports whether any acquisition is outstanding
func (b *Busy) Active() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.depth > 0
}
