package openstreetmap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

// API Docs: https://nominatim.org/release-docs/develop/api/Reverse/
// Sample requests:
// - https://nominatim.openstreetmap.org/reverse?lat=39.11&lon=-107.65&zoom=18&format=json&addressdetails=1
// - https://nominatim.openstreetmap.org/search?q=Aspen&format=json&polygon=0&addressdetails=0
const (
	baseURL = "https://nominatim.openstreetmap.org"

	// ReverseZoom asks for building level detail
	ReverseZoom = 18
)

var (
	// ErrTransport is returned when the request could not be completed
	ErrTransport = errors.New("nominatim request failed")
	// ErrStatus is returned when the service answers with status >= 400
	ErrStatus = errors.New("nominatim returned error status")
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at another Nominatim instance
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithTimeout limits the duration of each request
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRateLimit caps requests per second. Zero or less disables the limit.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// NewClient creates a Nominatim client. The public service requires a user
// agent naming the application.
func NewClient(logger *slog.Logger, userAgent string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		userAgent:  userAgent,
		limiter:    rate.NewLimiter(rate.Limit(1), 1),
		logger:     logger.With("component", "openstreetmap-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchParams holds a forward geocode query
type SearchParams struct {
	Query string
	// ViewBox biases results towards "west,south,east,north"; empty for none
	ViewBox string
}

// Reverse looks up the address of a point
func (c *Client) Reverse(ctx context.Context, latitude, longitude float64) (*ReverseAPIResponse, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(longitude, 'f', -1, 64))
	q.Set("zoom", strconv.Itoa(ReverseZoom))
	q.Set("format", "json")
	q.Set("addressdetails", "1")

	body, err := c.get(ctx, "/reverse", q)
	if err != nil {
		return nil, err
	}

	var apiResp ReverseAPIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// error is a plain string on older servers and {code, message} on newer
	if e := gjson.GetBytes(body, "error"); e.Exists() {
		apiResp.Error = e.String()
		if e.IsObject() {
			apiResp.Error = e.Get("message").String()
		}
		return &apiResp, nil
	}

	gjson.GetBytes(body, "address").ForEach(func(key, value gjson.Result) bool {
		apiResp.Address = append(apiResp.Address, AddressField{Key: key.String(), Value: value.String()})
		return true
	})

	c.logger.Debug("successfully fetched OpenStreetMap location data",
		"latitude", latitude,
		"longitude", longitude,
		"display_name", apiResp.DisplayName,
	)

	return &apiResp, nil
}

// Search finds places matching a free-text query. Results keep the
// service's order.
func (c *Client) Search(ctx context.Context, params SearchParams) ([]SearchAPIResult, error) {
	q := url.Values{}
	q.Set("q", params.Query)
	q.Set("format", "json")
	q.Set("polygon", "0")
	q.Set("addressdetails", "0")
	if params.ViewBox != "" {
		q.Set("viewbox", params.ViewBox)
	}

	body, err := c.get(ctx, "/search", q)
	if err != nil {
		return nil, err
	}

	var results []SearchAPIResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("successfully fetched OpenStreetMap search results",
		"query", params.Query,
		"results", len(results),
	)

	return results, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	// Build URL with query parameters
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u = u.JoinPath(path)
	u.RawQuery = q.Encode()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("fetching OpenStreetMap data", "url", u.String())

	// Make the HTTP request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrTransport, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		c.logger.Debug("OpenStreetMap API returned error",
			"status_code", resp.StatusCode,
			"url", u.String(),
		)
		return nil, fmt.Errorf("%w %d: %s", ErrStatus, resp.StatusCode, string(body))
	}

	return body, nil
}
