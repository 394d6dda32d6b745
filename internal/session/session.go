package session

import (
	"maps"
	"slices"
	"sync"

	"photomap/internal/types"
)

// MultipleValues is shown in the coordinates field when the selected images
// are at different positions
const MultipleValues = "<multiple values>"

// Session is the browser-side map panel state: the fields a desktop host
// would keep in widgets, plus the queue of JavaScript commands waiting to be
// collected by the page.
//
// All backend calls must happen inside Do. State and TakeCommands may be
// called at any time, including while a backend call is waiting on the
// network.
type Session struct {
	// ui serialises backend calls; mu guards the fields below
	ui sync.Mutex
	mu sync.Mutex

	coords        string
	coordsEnabled bool
	location      types.Location
	searchText    string
	results       []types.SearchResult
	selected      []string
	positions     map[string]types.Coords
	blocked       bool
	selectionSeq  int
	commands      []string
	busy          bool
}

func New() *Session {
	return &Session{positions: make(map[string]types.Coords)}
}

// Do runs fn with exclusive access to the backends
func (s *Session) Do(fn func()) {
	s.ui.Lock()
	defer s.ui.Unlock()
	fn()
}

func (s *Session) locked(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// Host methods

func (s *Session) Coords() (text string) {
	s.locked(func() { text = s.coords })
	return text
}

func (s *Session) SetCoords(text string) {
	s.locked(func() { s.coords = text })
}

func (s *Session) SetCoordsEnabled(enabled bool) {
	s.locked(func() { s.coordsEnabled = enabled })
}

// DisplayCoords shows the position shared by the selected images, blank
// when nothing is selected
func (s *Session) DisplayCoords() {
	s.locked(func() {
		if len(s.selected) == 0 {
			s.coords = ""
			return
		}
		first, ok := s.positions[s.selected[0]]
		for _, image := range s.selected[1:] {
			if c, found := s.positions[image]; found != ok || c != first {
				s.coords = MultipleValues
				return
			}
		}
		s.coords = ""
		if ok {
			s.coords = first.String()
		}
	})
}

func (s *Session) SetLocationTaken(location types.Location) {
	s.locked(func() { s.location = location })
}

func (s *Session) SearchText() (text string) {
	s.locked(func() { text = s.searchText })
	return text
}

func (s *Session) SetSearchText(text string) {
	s.locked(func() { s.searchText = text })
}

func (s *Session) ClearSearchText() { s.SetSearchText("") }

func (s *Session) ClearSearch() {
	s.locked(func() { s.results = nil })
}

func (s *Session) SearchResult(result types.SearchResult) {
	s.locked(func() { s.results = append(s.results, result) })
}

// ImageList methods

func (s *Session) SelectImages(images []string) {
	s.locked(func() {
		s.selected = slices.Clone(images)
		if !s.blocked {
			s.selectionSeq++
		}
	})
}

func (s *Session) Selected() (images []string) {
	s.locked(func() { images = slices.Clone(s.selected) })
	return images
}

func (s *Session) BlockSignals(block bool) (old bool) {
	s.locked(func() {
		old = s.blocked
		s.blocked = block
	})
	return old
}

// SetLatLong records where images were taken. A nil position clears it.
func (s *Session) SetLatLong(images []string, coords *types.Coords) {
	s.locked(func() {
		for _, image := range images {
			if coords == nil {
				delete(s.positions, image)
				continue
			}
			s.positions[image] = *coords
		}
	})
}

// ScriptRunner

func (s *Session) RunJavaScript(command string) {
	s.locked(func() { s.commands = append(s.commands, command) })
}

// SetBusy records the busy indicator
func (s *Session) SetBusy(busy bool) {
	s.locked(func() { s.busy = busy })
}

// TakeCommands returns and clears the pending JavaScript commands
func (s *Session) TakeCommands() (cmds []string) {
	s.locked(func() {
		cmds = s.commands
		s.commands = nil
	})
	return cmds
}

// State is a snapshot of the panel
type State struct {
	Coords           string                  `json:"coords"`
	CoordsEnabled    bool                    `json:"coordsEnabled"`
	Location         types.Location          `json:"location"`
	SearchResults    []types.SearchResult    `json:"searchResults"`
	Selected         []string                `json:"selected"`
	Positions        map[string]types.Coords `json:"positions"`
	SelectionChanges int                     `json:"selectionChanges"`
	Busy             bool                    `json:"busy"`
}

func (s *Session) State() (st State) {
	s.locked(func() {
		st = State{
			Coords:           s.coords,
			CoordsEnabled:    s.coordsEnabled,
			Location:         s.location,
			SearchResults:    slices.Clone(s.results),
			Selected:         slices.Clone(s.selected),
			Positions:        maps.Clone(s.positions),
			SelectionChanges: s.selectionSeq,
			Busy:             s.busy,
		}
	})
	return st
}
