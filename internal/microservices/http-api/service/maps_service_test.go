package service

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dondi-c/church-finder/internal/cache"
	"github.com/dondi-c/church-finder/internal/google"
)

func photoOf(contentType string, body []byte) *google.Photo {
	return &google.Photo{
		ContentType:   contentType,
		ContentLength: int64(len(body)),
		Body:          io.NopCloser(bytes.NewReader(body)),
	}
}

func TestMapsService_ScriptKey(t *testing.T) {
	client := new(MockPlacesClient)
	client.On("MapsAPIKey").Return("maps-key").Once()
	svc := NewMapsService(client, nil, time.Hour)

	key, err := svc.ScriptKey()
	require.NoError(t, err)
	assert.Equal(t, "maps-key", key)

	client.On("MapsAPIKey").Return("").Once()
	_, err = svc.ScriptKey()
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestMapsService_PlacePhoto_MissThenStore(t *testing.T) {
	client := new(MockPlacesClient)
	store := new(MockCache)
	svc := NewMapsService(client, store, time.Hour)
	ctx := context.Background()

	store.On("Get", ctx, "photo:abc123:400").Return(nil, cache.ErrMiss)
	client.On("PlacePhoto", ctx, "abc123", 400).Return(photoOf("image/png", []byte("png")), nil)
	store.On("Set", ctx, "photo:abc123:400", []byte("image/png\npng"), time.Hour).Return(nil)

	res, err := svc.PlacePhoto(ctx, "abc123", 400)
	require.NoError(t, err)
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	assert.Equal(t, "png", string(body))
	assert.Equal(t, "image/png", res.ContentType)
	assert.False(t, res.CacheHit)
	store.AssertExpectations(t)
}

func TestMapsService_PlacePhoto_HitSkipsUpstream(t *testing.T) {
	client := new(MockPlacesClient)
	store := new(MockCache)
	svc := NewMapsService(client, store, time.Hour)
	ctx := context.Background()

	store.On("Get", ctx, "photo:abc123:400").Return([]byte("image/jpeg\njpg-bytes"), nil)

	res, err := svc.PlacePhoto(ctx, "abc123", 400)
	require.NoError(t, err)

	body, _ := io.ReadAll(res.Body)
	assert.Equal(t, "jpg-bytes", string(body))
	assert.Equal(t, "image/jpeg", res.ContentType)
	assert.True(t, res.CacheHit)
	client.AssertNotCalled(t, "PlacePhoto", mock.Anything, mock.Anything, mock.Anything)
}

func TestMapsService_PlacePhoto_LargeBodyNotCached(t *testing.T) {
	client := new(MockPlacesClient)
	store := new(MockCache)
	svc := NewMapsService(client, store, time.Hour)
	ctx := context.Background()

	large := bytes.Repeat([]byte{'x'}, maxCachedPhotoBytes+10)
	store.On("Get", ctx, mock.Anything).Return(nil, cache.ErrMiss)
	client.On("PlacePhoto", ctx, "big", 1600).Return(photoOf("image/jpeg", large), nil)

	res, err := svc.PlacePhoto(ctx, "big", 1600)
	require.NoError(t, err)
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	assert.Equal(t, len(large), len(body))
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMapsService_PlacePhoto_UpstreamError(t *testing.T) {
	client := new(MockPlacesClient)
	svc := NewMapsService(client, cache.Noop{}, time.Hour)

	upstream := &google.UpstreamError{Service: "place photo", StatusCode: http.StatusForbidden, Body: "denied"}
	client.On("PlacePhoto", mock.Anything, "abc123", 400).Return(nil, upstream)

	_, err := svc.PlacePhoto(context.Background(), "abc123", 400)
	var got *google.UpstreamError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, http.StatusForbidden, got.StatusCode)
}

func TestMapsService_PlacePhoto_CacheDisabled(t *testing.T) {
	client := new(MockPlacesClient)
	store := new(MockCache)
	svc := NewMapsService(client, store, 0)

	client.On("PlacePhoto", mock.Anything, "abc", 400).Return(photoOf("image/jpeg", []byte("x")), nil)

	_, err := svc.PlacePhoto(context.Background(), "abc", 400)
	require.NoError(t, err)
	store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMapsService_SearchChurchPhoto(t *testing.T) {
	t.Run("queries and caches", func(t *testing.T) {
		client := new(MockPlacesClient)
		store := new(MockCache)
		svc := NewMapsService(client, store, time.Hour)

		store.On("Get", mock.Anything, "photo-search:st. marys").Return(nil, cache.ErrMiss)
		client.On("SearchImage", mock.Anything, "St. Marys church building exterior").Return("https://img.example/a.jpg", nil)
		store.On("Set", mock.Anything, "photo-search:st. marys", []byte("https://img.example/a.jpg"), 24*time.Hour).Return(nil)

		link, err := svc.SearchChurchPhoto(context.Background(), "St. Marys")
		require.NoError(t, err)
		assert.Equal(t, "https://img.example/a.jpg", link)
		store.AssertExpectations(t)
	})

	t.Run("cached", func(t *testing.T) {
		client := new(MockPlacesClient)
		store := new(MockCache)
		svc := NewMapsService(client, store, time.Hour)

		store.On("Get", mock.Anything, "photo-search:grace").Return([]byte("https://img.example/g.jpg"), nil)

		link, err := svc.SearchChurchPhoto(context.Background(), "Grace")
		require.NoError(t, err)
		assert.Equal(t, "https://img.example/g.jpg", link)
		client.AssertNotCalled(t, "SearchImage", mock.Anything, mock.Anything)
	})

	t.Run("no results", func(t *testing.T) {
		client := new(MockPlacesClient)
		svc := NewMapsService(client, cache.Noop{}, time.Hour)
		client.On("SearchImage", mock.Anything, mock.Anything).Return("", google.ErrNoResults)

		_, err := svc.SearchChurchPhoto(context.Background(), "Nowhere")
		assert.ErrorIs(t, err, google.ErrNoResults)
	})

	t.Run("blank name", func(t *testing.T) {
		svc := NewMapsService(new(MockPlacesClient), cache.Noop{}, time.Hour)
		_, err := svc.SearchChurchPhoto(context.Background(), " ")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestMapsService_PlacePhoto_EvictsMalformedEntry(t *testing.T) {
	client := new(MockPlacesClient)
	store := new(MockCache)
	svc := NewMapsService(client, store, time.Hour)
	ctx := context.Background()

	store.On("Get", ctx, "photo:abc123:400").Return([]byte("no-content-type"), nil)
	store.On("Delete", ctx, "photo:abc123:400").Return(nil).Once()
	client.On("PlacePhoto", ctx, "abc123", 400).Return(photoOf("image/jpeg", []byte("jpg")), nil)
	store.On("Set", ctx, "photo:abc123:400", []byte("image/jpeg\njpg"), time.Hour).Return(nil)

	res, err := svc.PlacePhoto(ctx, "abc123", 400)
	require.NoError(t, err)
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	assert.Equal(t, "jpg", string(body))
	assert.False(t, res.CacheHit)
	store.AssertExpectations(t)
	client.AssertExpectations(t)
}
