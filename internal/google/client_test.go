package google

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(Options{
		MapsAPIKey:     "maps-key",
		SearchAPIKey:   "search-key",
		SearchEngineID: "cx-id",
		RateLimit:      100,
		HTTPClient:     srv.Client(),
		PhotoURL:       srv.URL + "/photo",
		NearbyURL:      srv.URL + "/nearby",
		SearchURL:      srv.URL + "/search",
	})
}

func TestNewClient_FractionalRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"link":"https://img.example/slow.jpg"}]}`))
	}))
	defer srv.Close()

	c := NewClient(Options{
		SearchAPIKey:   "search-key",
		SearchEngineID: "cx-id",
		RateLimit:      0.4,
		HTTPClient:     srv.Client(),
		SearchURL:      srv.URL + "/search",
	})
	assert.Equal(t, 1, c.rateLimiter.Burst())

	link, err := c.SearchImage(context.Background(), "St. Mary church")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/slow.jpg", link)
}

func TestBurstFor(t *testing.T) {
	assert.Equal(t, 1, burstFor(0.1))
	assert.Equal(t, 1, burstFor(0.5))
	assert.Equal(t, 2, burstFor(0.75))
	assert.Equal(t, 20, burstFor(10))
}

func TestPlacePhoto_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/photo", r.URL.Path)
		assert.Equal(t, "abc123", r.URL.Query().Get("photo_reference"))
		assert.Equal(t, "800", r.URL.Query().Get("maxwidth"))
		assert.Equal(t, "maps-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	photo, err := newTestClient(srv).PlacePhoto(context.Background(), "abc123", 800)
	require.NoError(t, err)
	defer photo.Body.Close()

	body, err := io.ReadAll(photo.Body)
	require.NoError(t, err)
	assert.Equal(t, "image/png", photo.ContentType)
	assert.Equal(t, "png-bytes", string(body))
}

func TestPlacePhoto_UpstreamForbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "The provided API key is invalid.", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).PlacePhoto(context.Background(), "abc123", 400)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusForbidden, upstream.StatusCode)
	assert.Contains(t, upstream.Body, "API key is invalid")
}

func TestSearchImage(t *testing.T) {
	t.Run("first link", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "St. Marys church building exterior", q.Get("q"))
			assert.Equal(t, "image", q.Get("searchType"))
			assert.Equal(t, "1", q.Get("num"))
			assert.Equal(t, "cx-id", q.Get("cx"))
			assert.Equal(t, "search-key", q.Get("key"))
			w.Write([]byte(`{"items":[{"link":"https://img.example/1.jpg"}]}`))
		}))
		defer srv.Close()

		link, err := newTestClient(srv).SearchImage(context.Background(), "St. Marys church building exterior")
		require.NoError(t, err)
		assert.Equal(t, "https://img.example/1.jpg", link)
	})

	t.Run("no items", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"searchInformation":{"totalResults":"0"}}`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv).SearchImage(context.Background(), "nothing")
		assert.ErrorIs(t, err, ErrNoResults)
	})

	t.Run("quota exceeded", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"message":"Quota exceeded"}}`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv).SearchImage(context.Background(), "x")
		var upstream *UpstreamError
		require.ErrorAs(t, err, &upstream)
		assert.Equal(t, http.StatusTooManyRequests, upstream.StatusCode)
	})
}

func TestNearbySearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "40.712800,-74.006000", q.Get("location"))
		assert.Equal(t, "1500", q.Get("radius"))
		assert.Equal(t, "church", q.Get("type"))
		w.Write([]byte(`{
			"status": "OK",
			"results": [
				{"place_id": "p1", "name": "Grace Chapel", "vicinity": "1 Main St", "rating": 4.6,
				 "geometry": {"location": {"lat": 40.71, "lng": -74.01}}, "types": ["church"]},
				{"place_id": "p2", "name": "St. Paul", "vicinity": "2 Elm St",
				 "geometry": {"location": {"lat": 40.72, "lng": -74.00}}}
			]
		}`))
	}))
	defer srv.Close()

	places, err := newTestClient(srv).NearbySearch(context.Background(), NearbyRequest{
		Location: LatLng{Lat: 40.7128, Lng: -74.0060},
		Radius:   1500,
		Type:     "church",
	})
	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, "p1", places[0].PlaceID)
	assert.Equal(t, 40.71, places[0].Location.Lat)
	require.NotNil(t, places[0].Rating)
	assert.Equal(t, 4.6, *places[0].Rating)
	assert.Nil(t, places[1].Rating)
}

func TestNearbySearch_DeniedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"bad key","results":[]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).NearbySearch(context.Background(), NearbyRequest{Radius: 100})
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusBadGateway, upstream.StatusCode)
	assert.Contains(t, upstream.Body, "REQUEST_DENIED")
}

func TestNearbySearch_ZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	}))
	defer srv.Close()

	places, err := newTestClient(srv).NearbySearch(context.Background(), NearbyRequest{Radius: 100})
	require.NoError(t, err)
	assert.Empty(t, places)
	assert.NotNil(t, places)
}
