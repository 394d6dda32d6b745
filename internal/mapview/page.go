package mapview

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strings"
	"text/template"
)

var ErrUnknownBackend = errors.New("unknown map backend")

// PageElements are the HTML fragments a backend contributes to the map page
type PageElements struct {
	Head string
	Body string
}

// TermsItem is one attribution element shown under the map. Items without a
// URL are plain labels.
type TermsItem struct {
	Text string `json:"text"`
	URL  string `json:"url,omitempty"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

// Backend is a map provider plug-in
type Backend interface {
	Name() string
	PageElements() PageElements
	Terms() []TermsItem
	// OpenTerms opens the URL of the terms item at index
	OpenTerms(index int) error
	// Register adds the backend's callbacks to the bridge
	Register(br *Bridge)
	Base() *Base
}

// Options configure backend construction
type Options struct {
	TestMode bool
	Locale   string
	Keys     KeyStore
	Geocoder Geocoder
}

// NewBackend creates the named backend around base
func NewBackend(name string, base *Base, opts Options) (Backend, error) {
	switch name {
	case "bing":
		return NewBing(base, opts.Keys, opts.TestMode, opts.Locale), nil
	case "openstreetmap":
		if opts.Geocoder == nil {
			return nil, fmt.Errorf("openstreetmap backend needs a geocoder")
		}
		return NewOpenStreetMap(base, opts.Geocoder), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

// NewBridgeFor builds the callback table for a backend
func NewBridgeFor(b Backend) *Bridge {
	br := NewBridge()
	b.Base().register(br)
	b.Register(br)
	br.RegisterListeners(b)
	return br
}

func openTerms(b *Base, items []TermsItem, index int) error {
	if index < 0 || index >= len(items) {
		return fmt.Errorf("terms item %d out of range", index)
	}
	if items[index].URL == "" {
		return fmt.Errorf("terms item %d has no link", index)
	}
	b.OpenURL(items[index].URL)
	return nil
}

// InitData is the initial view handed to the page's loadMap
type InitData struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Zoom int     `json:"zoom"`

	// Properties carries values such as api_key set while building the page
	Properties map[string]string `json:"properties,omitempty"`
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="initial-scale=1.0, user-scalable=no" />
    <base href="{{.BaseHref}}" />
    <style type="text/css">
      html, body { height: 100%; margin: 0; padding: 0 }
      #mapDiv { position: relative; width: 100%; height: 100% }
    </style>
    <script type="text/javascript" src="../bridge.js"></script>
    <script type="text/javascript">
      function initialize()
      {
          loadMap();
      }
    </script>
{{.Head}}
    <script type="text/javascript" src="script.js"></script>
  </head>
  <body ondragstart="return false">
    <div id="mapDiv"></div>
    <script type="text/javascript">
      var initData = {{.Data}};
    </script>
{{.Body}}
  </body>
</html>
`))

// ComposePage builds the complete map page for a backend. baseHref is the
// directory holding the backend's script.js.
func ComposePage(b Backend, baseHref string, init InitData) (string, error) {
	pe := b.PageElements()
	if props := b.Base().properties; len(props) > 0 {
		init.Properties = maps.Clone(props)
	}
	data, err := json.Marshal(init)
	if err != nil {
		return "", fmt.Errorf("failed to encode init data: %w", err)
	}

	var sb strings.Builder
	err = pageTemplate.Execute(&sb, struct {
		BaseHref string
		Head     string
		Body     string
		Data     string
	}{
		BaseHref: baseHref,
		Head:     pe.Head,
		Body:     pe.Body,
		Data:     string(data),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}
	return sb.String(), nil
}
