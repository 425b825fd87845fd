package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	placePhotoURL   = "https://maps.googleapis.com/maps/api/place/photo"
	nearbySearchURL = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"
	customSearchURL = "https://www.googleapis.com/customsearch/v1"

	defaultRateLimit   = 10
	defaultHTTPTimeout = 10 * time.Second

	// maximum upstream error body kept for logging
	maxErrorBody = 4 << 10
)

// ErrNoResults is returned when a search succeeds but has nothing to offer.
var ErrNoResults = errors.New("no results")

// UpstreamError carries a failed Google response so handlers can pass the
// status through while the body is only logged.
type UpstreamError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s upstream returned HTTP %d: %s", e.Service, e.StatusCode, e.Body)
}

// Options configures a Client. Empty URLs fall back to the public Google
// endpoints; tests point them at httptest servers.
type Options struct {
	MapsAPIKey     string
	SearchAPIKey   string
	SearchEngineID string
	RateLimit      float64
	HTTPClient     *http.Client

	PhotoURL  string
	NearbyURL string
	SearchURL string
}

// Client talks to the Google Maps Platform and Custom Search APIs. No
// retries: a failed call is reported to the caller as-is.
type Client struct {
	mapsKey        string
	searchKey      string
	searchEngineID string
	httpClient     *http.Client
	rateLimiter    *rate.Limiter

	photoURL  string
	nearbyURL string
	searchURL string
}

func NewClient(opts Options) *Client {
	limit := opts.RateLimit
	if limit <= 0 {
		limit = defaultRateLimit
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{
		mapsKey:        opts.MapsAPIKey,
		searchKey:      opts.SearchAPIKey,
		searchEngineID: opts.SearchEngineID,
		httpClient:     httpClient,
		rateLimiter:    rate.NewLimiter(rate.Limit(limit), burstFor(limit)),
		photoURL:       orDefault(opts.PhotoURL, placePhotoURL),
		nearbyURL:      orDefault(opts.NearbyURL, nearbySearchURL),
		searchURL:      orDefault(opts.SearchURL, customSearchURL),
	}
}

// burstFor allows two seconds worth of requests, and never less than one so
// that fractional limits still admit a request.
func burstFor(limit float64) int {
	return max(1, int(math.Ceil(limit*2)))
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// MapsAPIKey is the key handed to browser clients for the Maps JS SDK.
func (c *Client) MapsAPIKey() string {
	return c.mapsKey
}

// Photo is an image body streamed from the Place Photo endpoint. The caller
// must close Body.
type Photo struct {
	ContentType   string
	ContentLength int64
	Body          io.ReadCloser
}

// PlacePhoto fetches the image for a photo reference.
func (c *Client) PlacePhoto(ctx context.Context, reference string, maxWidth int) (*Photo, error) {
	params := url.Values{}
	params.Set("maxwidth", strconv.Itoa(maxWidth))
	params.Set("photo_reference", reference)
	params.Set("key", c.mapsKey)

	resp, err := c.get(ctx, c.photoURL, params)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		defer resp.Body.Close()
		return nil, upstreamError("place photo", resp)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return &Photo{
		ContentType:   contentType,
		ContentLength: resp.ContentLength,
		Body:          resp.Body,
	}, nil
}

// SearchImage runs a Custom Search image query and returns the first link.
func (c *Client) SearchImage(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("key", c.searchKey)
	params.Set("cx", c.searchEngineID)
	params.Set("q", query)
	params.Set("searchType", "image")
	params.Set("num", "1")

	var parsed struct {
		Items []struct {
			Link string `json:"link"`
		} `json:"items"`
	}
	if err := c.getJSON(ctx, "custom search", c.searchURL, params, &parsed); err != nil {
		return "", err
	}
	for _, item := range parsed.Items {
		if item.Link != "" {
			return item.Link, nil
		}
	}
	return "", ErrNoResults
}

// LatLng is a WGS84 coordinate.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is the subset of a Nearby Search result the application uses.
type Place struct {
	PlaceID  string   `json:"place_id"`
	Name     string   `json:"name"`
	Vicinity string   `json:"vicinity"`
	Rating   *float64 `json:"rating,omitempty"`
	Location LatLng   `json:"location"`
	Types    []string `json:"types,omitempty"`
}

// NearbyRequest describes a circular Nearby Search.
type NearbyRequest struct {
	Location LatLng
	Radius   int // meters, the API caps it at 50000
	Type     string
}

// NearbySearch returns the first page of places around a location.
func (c *Client) NearbySearch(ctx context.Context, req NearbyRequest) ([]Place, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", req.Location.Lat, req.Location.Lng))
	params.Set("radius", strconv.Itoa(req.Radius))
	if req.Type != "" {
		params.Set("type", req.Type)
	}
	params.Set("key", c.mapsKey)

	var parsed struct {
		Status       string `json:"status"`
		ErrorMessage string `json:"error_message"`
		Results      []struct {
			PlaceID  string   `json:"place_id"`
			Name     string   `json:"name"`
			Vicinity string   `json:"vicinity"`
			Rating   *float64 `json:"rating"`
			Types    []string `json:"types"`
			Geometry struct {
				Location LatLng `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}
	if err := c.getJSON(ctx, "nearby search", c.nearbyURL, params, &parsed); err != nil {
		return nil, err
	}

	switch parsed.Status {
	case "OK", "ZERO_RESULTS":
	default:
		return nil, &UpstreamError{Service: "nearby search", StatusCode: http.StatusBadGateway, Body: parsed.Status + ": " + parsed.ErrorMessage}
	}

	places := make([]Place, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		places = append(places, Place{
			PlaceID:  r.PlaceID,
			Name:     r.Name,
			Vicinity: r.Vicinity,
			Rating:   r.Rating,
			Location: r.Geometry.Location,
			Types:    r.Types,
		})
	}
	return places, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (*http.Response, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "ChurchFinder/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

func (c *Client) getJSON(ctx context.Context, service, endpoint string, params url.Values, out interface{}) error {
	resp, err := c.get(ctx, endpoint, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return upstreamError(service, resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", service, err)
	}
	return nil
}

func upstreamError(service string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &UpstreamError{Service: service, StatusCode: resp.StatusCode, Body: string(body)}
}
