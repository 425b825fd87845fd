package client

// http_client.go = REST client for the church-finder API server.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dondi-c/church-finder/internal/microservices/http-api/dto"
)

// ErrNoPhoto is returned when the image search found nothing for a church.
var ErrNoPhoto = errors.New("no photo found")

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// HTTPClient talks to the API server
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// constructor for HTTP client
func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(jsonData)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() // Ensure the response body is closed

	if resp.StatusCode >= http.StatusBadRequest {
		var e struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Error == "" {
			e.Error = resp.Status
		}
		return &APIError{StatusCode: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// MapsKey fetches the browser key the server hands to map clients
func (c *HTTPClient) MapsKey(ctx context.Context) (string, error) {
	var result struct {
		APIKey string `json:"apiKey"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/maps/script", nil, nil, &result); err != nil {
		return "", err
	}
	return result.APIKey, nil
}

// GetChurch loads the aggregated church for a place. The seed is sent so the
// server can create the church the first time the place is seen.
func (c *HTTPClient) GetChurch(ctx context.Context, placeID string, seed *dto.ChurchSeed) (*dto.ChurchDetailResponse, error) {
	query := url.Values{}
	if seed != nil {
		query.Set("name", seed.Name)
		query.Set("vicinity", seed.Vicinity)
		query.Set("lat", seed.Lat)
		query.Set("lng", seed.Lng)
		if seed.Rating != "" {
			query.Set("rating", seed.Rating)
		}
	}

	var result dto.ChurchDetailResponse
	if err := c.do(ctx, http.MethodGet, "/api/churches/"+url.PathEscape(placeID), query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) ListChurches(ctx context.Context) ([]dto.ChurchListItem, error) {
	var result []dto.ChurchListItem
	if err := c.do(ctx, http.MethodGet, "/api/churches", nil, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTPClient) ListDenominations(ctx context.Context) ([]string, error) {
	var result []string
	if err := c.do(ctx, http.MethodGet, "/api/churches/denominations", nil, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTPClient) UpdateChurch(ctx context.Context, id int64, in *dto.UpdateChurchDTO) (*dto.ChurchResponse, error) {
	var result dto.ChurchResponse
	if err := c.do(ctx, http.MethodPatch, "/api/churches/"+strconv.FormatInt(id, 10), nil, in, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) AddServiceTime(ctx context.Context, churchID int64, in *dto.CreateServiceTimeDTO) (*dto.ServiceTimeResponse, error) {
	var result dto.ServiceTimeResponse
	path := fmt.Sprintf("/api/churches/%d/service-times", churchID)
	if err := c.do(ctx, http.MethodPost, path, nil, in, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) AddReview(ctx context.Context, churchID int64, in *dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	var result dto.ReviewResponse
	path := fmt.Sprintf("/api/churches/%d/reviews", churchID)
	if err := c.do(ctx, http.MethodPost, path, nil, in, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ChurchPhoto returns an image URL for the church, or ErrNoPhoto.
func (c *HTTPClient) ChurchPhoto(ctx context.Context, name string) (string, error) {
	var result struct {
		ImageURL string `json:"imageUrl"`
	}
	err := c.do(ctx, http.MethodGet, "/api/churches/photos/"+url.PathEscape(name), nil, nil, &result)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return "", ErrNoPhoto
	}
	if err != nil {
		return "", err
	}
	return result.ImageURL, nil
}

// FindChurchByID looks a church up in the list, the REST surface has no
// lookup by numeric id.
func (c *HTTPClient) FindChurchByID(ctx context.Context, id int64) (*dto.ChurchListItem, error) {
	list, err := c.ListChurches(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, &APIError{StatusCode: http.StatusNotFound, Message: "Church not found"}
}
