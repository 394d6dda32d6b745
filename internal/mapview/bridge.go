package mapview

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"photomap/internal/providers/openstreetmap"
	"photomap/internal/types"
)

var (
	ErrUnknownCallback = errors.New("unknown bridge callback")
	ErrBadArguments    = errors.New("bad bridge callback arguments")
)

// ScriptRunner executes JavaScript in the embedded map page
type ScriptRunner interface {
	RunJavaScript(command string)
}

// ImageList is the host's image selection model
type ImageList interface {
	// SelectImages replaces the selection with the given images
	SelectImages(images []string)
	Selected() []string
	// SetLatLong records where images were taken; nil clears the position
	SetLatLong(images []string, coords *types.Coords)
	// BlockSignals suppresses selection change notifications and returns
	// the previous blocking state
	BlockSignals(block bool) bool
}

// Host is the map panel surrounding the embedded page
type Host interface {
	// Coords returns the text of the coordinates field, "lat, lon"
	Coords() string
	SetCoordsEnabled(enabled bool)
	DisplayCoords()
	SetLocationTaken(location types.Location)

	// SearchText returns the contents of the search edit box
	SearchText() string
	ClearSearchText()
	// ClearSearch drops the results of the previous search
	ClearSearch()
	SearchResult(result types.SearchResult)
}

// BusyIndicator marks the UI busy until the returned release func is called
type BusyIndicator interface {
	Acquire() (release func())
}

// URLOpener opens a URL in the system's default browser
type URLOpener interface {
	OpenURL(url string) error
}

// KeyStore looks up application credentials
type KeyStore interface {
	Get(section, option string) string
}

// Geocoder performs reverse and forward geocoding
type Geocoder interface {
	Reverse(ctx context.Context, latitude, longitude float64) (*openstreetmap.ReverseAPIResponse, error)
	Search(ctx context.Context, params openstreetmap.SearchParams) ([]openstreetmap.SearchAPIResult, error)
}

// CopyrightListener receives the copyright text reported by the map control
type CopyrightListener interface {
	OnCopyrightChanged(text string)
}

// MarkerDragListener is notified when the user starts dragging a marker
type MarkerDragListener interface {
	OnMarkerDragStart(id string)
}

// Handler services one named callback from the map page
type Handler func(ctx context.Context, args []string) error

type handlerEntry struct {
	minArgs, maxArgs int
	fn               Handler
}

// Bridge is the table of callbacks the map page may invoke
type Bridge struct {
	handlers map[string]handlerEntry
}

func NewBridge() *Bridge {
	return &Bridge{handlers: make(map[string]handlerEntry)}
}

// Handle registers fn under name, accepting between minArgs and maxArgs
// arguments, or any number from minArgs when maxArgs is negative. A later
// registration replaces an earlier one.
func (b *Bridge) Handle(name string, minArgs, maxArgs int, fn Handler) {
	b.handlers[name] = handlerEntry{minArgs: minArgs, maxArgs: maxArgs, fn: fn}
}

// Dispatch invokes the named callback
func (b *Bridge) Dispatch(ctx context.Context, name string, args []string) error {
	h, ok := b.handlers[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCallback, name)
	}
	if len(args) < h.minArgs {
		return fmt.Errorf("%w: %s takes at least %d arguments, got %d",
			ErrBadArguments, name, h.minArgs, len(args))
	}
	if h.maxArgs >= 0 && len(args) > h.maxArgs {
		return fmt.Errorf("%w: %s takes at most %d arguments, got %d",
			ErrBadArguments, name, h.maxArgs, len(args))
	}
	return h.fn(ctx, args)
}

// Names lists the registered callbacks in sorted order
func (b *Bridge) Names() []string {
	names := make([]string, 0, len(b.handlers))
	for name := range b.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterListeners adds handlers for whichever listener interfaces v
// implements.
func (b *Bridge) RegisterListeners(v any) {
	if l, ok := v.(CopyrightListener); ok {
		b.Handle("new_copyright", 1, 1, func(_ context.Context, args []string) error {
			l.OnCopyrightChanged(args[0])
			return nil
		})
	}
	if l, ok := v.(MarkerDragListener); ok {
		b.Handle("marker_drag_start", 1, 1, func(_ context.Context, args []string) error {
			l.OnMarkerDragStart(args[0])
			return nil
		})
	}
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrBadArguments, a)
		}
		out[i] = v
	}
	return out, nil
}

func parseLatLng(lat, lng string) (types.Coords, error) {
	c, err := types.ParseCoords(lat + "," + lng)
	if err != nil {
		return types.Coords{}, fmt.Errorf("%w: %w", ErrBadArguments, err)
	}
	return c, nil
}
