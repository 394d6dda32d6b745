package mapview

import "fmt"

const (
	bingTestAPI       = "http://www.bing.com/api/maps/mapcontrol?callback=initialize&branch=experimental"
	bingProductionAPI = "http://ecn.dev.virtualearth.net/mapcontrol/mapcontrol.ashx?v=7.0"
	bingTermsURL      = "http://www.microsoft.com/maps/assets/docs/terms.aspx"
)

// Bing is the commercial map backend
type Bing struct {
	base      *Base
	keys      KeyStore
	testMode  bool
	locale    string
	copyright string
}

// NewBing creates the backend around base, reading its API key from keys
func NewBing(base *Base, keys KeyStore, testMode bool, locale string) *Bing {
	return &Bing{
		base:     base,
		keys:     keys,
		testMode: testMode,
		locale:   locale,
	}
}

// Name is the backend's configuration name
func (b *Bing) Name() string { return "bing" }

// Base returns the shared map state
func (b *Bing) Base() *Base { return b.base }

// LoadAPI returns the script tag loading the map control and publishes the
// API key to the page.
func (b *Bing) LoadAPI(testMode bool, locale string) string {
	src := bingProductionAPI
	if testMode {
		src = bingTestAPI
	}
	var key string
	if b.keys != nil {
		key = b.keys.Get("bing", "api_key")
	}
	b.base.SetProperty("api_key", key)
	if !testMode {
		src += "&mkt=" + MarketCode(locale)
	}
	return fmt.Sprintf(`
    <script charset="UTF-8" type="text/javascript"
      src="%s">
    </script>
`, src)
}

// PageElements returns the fragments loading the vendor map control
func (b *Bing) PageElements() PageElements {
	pe := PageElements{Head: b.LoadAPI(b.testMode, b.locale)}
	// the experimental control calls initialize itself
	if !b.testMode {
		pe.Body = `
    <script type="text/javascript">
      initialize();
    </script>
`
	}
	return pe
}

// NewCopyright replaces the displayed copyright notice
func (b *Bing) NewCopyright(text string) {
	b.copyright = text
}

// Copyright is the notice last reported by the map control
func (b *Bing) Copyright() string {
	return b.copyright
}

// OnCopyrightChanged handles the page's new_copyright callback
func (b *Bing) OnCopyrightChanged(text string) {
	b.NewCopyright(text)
}

// LoadTermsOfUse opens the vendor's terms of use
func (b *Bing) LoadTermsOfUse() {
	b.base.OpenURL(bingTermsURL)
}

// Terms returns the copyright label above the terms of use link
func (b *Bing) Terms() []TermsItem {
	return []TermsItem{
		{Text: b.copyright, Row: 0, Col: 0},
		{Text: "Terms of Use", URL: bingTermsURL, Row: 1, Col: 0},
	}
}

// OpenTerms opens the link of the terms item at index
func (b *Bing) OpenTerms(index int) error {
	return openTerms(b.base, b.Terms(), index)
}

// Register adds nothing: the common and listener callbacks cover Bing
func (b *Bing) Register(br *Bridge) {}
