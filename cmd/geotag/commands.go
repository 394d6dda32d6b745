package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"photomap/internal/browser"
	"photomap/internal/config"
	"photomap/internal/mapview"
	"photomap/internal/providers/openstreetmap"
	"photomap/internal/session"
	"photomap/internal/timezone"
	"photomap/internal/types"
)

var searchBounds string

// reverseOutput is printed by the reverse command
type reverseOutput struct {
	Location types.Location `json:"location"`
	Timezone string         `json:"timezone,omitempty"`
}

var reverseCmd = &cobra.Command{
	Use:   "reverse <lat,lon>",
	Short: "Look up the address at a point",
	Long:  `Reverse geocode a point and print the location fields it fills.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		coords, err := types.ParseCoords(args[0])
		if err != nil {
			return err
		}
		sess, osm, err := newOpenStreetMap(cfg)
		if err != nil {
			return err
		}
		sess.Do(func() {
			sess.SetCoords(args[0])
			osm.GetAddress(cmd.Context())
		})

		out := reverseOutput{Location: sess.State().Location}
		if finder, err := timezone.NewFinder(); err != nil {
			logger.Warn("timezone lookup unavailable", "error", err)
		} else if out.Timezone, err = finder.Zone(coords); err != nil {
			logger.Warn("timezone lookup failed", "error", err)
		}
		return writeJSON(cmd.OutOrStdout(), out)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for places by name",
	Long:  `Forward geocode a free-text query and print each match with its bounding box.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var bounds *types.ViewBounds
		if searchBounds != "" {
			b, err := parseViewBounds(searchBounds)
			if err != nil {
				return err
			}
			bounds = &b
		}
		sess, osm, err := newOpenStreetMap(cfg)
		if err != nil {
			return err
		}
		sess.Do(func() {
			if bounds != nil {
				osm.Base().SetStatus(*bounds)
			}
			osm.Search(cmd.Context(), strings.Join(args, " "))
		})
		return writeJSON(cmd.OutOrStdout(), sess.State().SearchResults)
	},
}

var marketCmd = &cobra.Command{
	Use:   "market [locale]",
	Short: "Print the Bing market code for a locale",
	Long:  `Print the Bing market code for a locale, or for the user's default locale when none is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		locale := cfg.App.Locale
		if len(args) == 1 {
			locale = args[0]
		} else if locale == "" {
			locale = mapview.DefaultLocale()
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), mapview.MarketCode(locale))
		return err
	},
}

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Print the map page for a backend",
	Long:  `Compose the HTML page hosting the selected backend's map control.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := newBackend(cfg, session.New())
		if err != nil {
			return err
		}
		page, err := mapview.ComposePage(backend, cfg.App.ScriptDir+"/"+backend.Name()+"/", mapview.InitData{
			Lat:  cfg.Map.Lat,
			Lng:  cfg.Map.Lng,
			Zoom: cfg.Map.Zoom,
		})
		if err != nil {
			return err
		}
		_, err = io.WriteString(cmd.OutOrStdout(), page)
		return err
	},
}

func newGeocoder(cfg *config.Config) *openstreetmap.Client {
	return openstreetmap.NewClient(logger, cfg.UserAgent(),
		openstreetmap.WithBaseURL(cfg.Nominatim.BaseURL),
		openstreetmap.WithTimeout(cfg.Nominatim.Timeout),
		openstreetmap.WithRateLimit(cfg.Nominatim.RateLimit),
	)
}

func newBackend(cfg *config.Config, sess *session.Session) (mapview.Backend, error) {
	base := mapview.NewBase(cfg.App.Backend, mapview.Deps{
		Host:   sess,
		Images: sess,
		Script: sess,
		Busy:   &mapview.Busy{OnChange: sess.SetBusy},
		Opener: browser.NewOpener(logger),
		Logger: logger,
	})
	locale := cfg.App.Locale
	if locale == "" {
		locale = mapview.DefaultLocale()
	}
	return mapview.NewBackend(cfg.App.Backend, base, mapview.Options{
		TestMode: cfg.App.TestMode,
		Locale:   locale,
		Keys:     cfg,
		Geocoder: newGeocoder(cfg),
	})
}

// geocoding commands always use OpenStreetMap, whatever backend is configured
func newOpenStreetMap(cfg *config.Config) (*session.Session, *mapview.OpenStreetMap, error) {
	osmCfg := *cfg
	osmCfg.App.Backend = "openstreetmap"
	sess := session.New()
	backend, err := newBackend(&osmCfg, sess)
	if err != nil {
		return nil, nil, err
	}
	return sess, backend.(*mapview.OpenStreetMap), nil
}

// parseViewBounds reads "south,west,north,east", the order the map page
// reports its viewport in
func parseViewBounds(text string) (types.ViewBounds, error) {
	var b types.ViewBounds
	parts := strings.Split(text, ",")
	if len(parts) != len(b) {
		return b, fmt.Errorf("bounds need %d comma separated values, got %d", len(b), len(parts))
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return types.ViewBounds{}, fmt.Errorf("bounds value %q: %w", p, err)
		}
		b[i] = v
	}
	return b, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
