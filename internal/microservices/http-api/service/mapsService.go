package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dondi-c/church-finder/internal/cache"
	"github.com/dondi-c/church-finder/internal/google"
)

const (
	// photos above this size are streamed without being cached
	maxCachedPhotoBytes = 5 << 20

	photoSearchTTL = 24 * time.Hour
)

// ErrMissingAPIKey is returned when the maps key is empty at request time.
var ErrMissingAPIKey = errors.New("maps api key is not configured")

// PlacesClient is the subset of the Google client the maps service uses.
type PlacesClient interface {
	MapsAPIKey() string
	PlacePhoto(ctx context.Context, reference string, maxWidth int) (*google.Photo, error)
	SearchImage(ctx context.Context, query string) (string, error)
}

// PhotoResult is an image ready to be written to the response. The caller
// must close Body.
type PhotoResult struct {
	ContentType   string
	ContentLength int64
	Body          io.ReadCloser
	CacheHit      bool
}

type MapsService interface {
	ScriptKey() (string, error)
	PlacePhoto(ctx context.Context, reference string, maxWidth int) (*PhotoResult, error)
	SearchChurchPhoto(ctx context.Context, churchName string) (string, error)
}

type mapsService struct {
	client   PlacesClient
	cache    cache.Provider
	photoTTL time.Duration
}

func NewMapsService(client PlacesClient, provider cache.Provider, photoTTL time.Duration) MapsService {
	if provider == nil {
		provider = cache.Noop{}
	}
	return &mapsService{
		client:   client,
		cache:    provider,
		photoTTL: photoTTL,
	}
}

func (s *mapsService) ScriptKey() (string, error) {
	key := s.client.MapsAPIKey()
	if key == "" {
		return "", ErrMissingAPIKey
	}
	return key, nil
}

func photoCacheKey(reference string, maxWidth int) string {
	return fmt.Sprintf("photo:%s:%d", reference, maxWidth)
}

// cached photos are stored as "<content type>\n<bytes>"
func encodePhoto(contentType string, body []byte) []byte {
	out := make([]byte, 0, len(contentType)+1+len(body))
	out = append(out, contentType...)
	out = append(out, '\n')
	return append(out, body...)
}

func decodePhoto(b []byte) (string, []byte, bool) {
	i := bytes.IndexByte(b, '\n')
	if i <= 0 {
		return "", nil, false
	}
	return string(b[:i]), b[i+1:], true
}

func (s *mapsService) PlacePhoto(ctx context.Context, reference string, maxWidth int) (*PhotoResult, error) {
	log := zerolog.Ctx(ctx)
	key := photoCacheKey(reference, maxWidth)

	if s.photoTTL > 0 {
		if b, err := s.cache.Get(ctx, key); err == nil {
			if contentType, body, ok := decodePhoto(b); ok {
				return &PhotoResult{
					ContentType:   contentType,
					ContentLength: int64(len(body)),
					Body:          io.NopCloser(bytes.NewReader(body)),
					CacheHit:      true,
				}, nil
			}
			log.Warn().Str("key", key).Msg("evicting malformed cached photo")
			if err := s.cache.Delete(ctx, key); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("photo cache delete failed")
			}
		} else if !errors.Is(err, cache.ErrMiss) {
			log.Warn().Err(err).Str("key", key).Msg("photo cache read failed")
		}
	}

	photo, err := s.client.PlacePhoto(ctx, reference, maxWidth)
	if err != nil {
		return nil, err
	}

	buf, err := io.ReadAll(io.LimitReader(photo.Body, maxCachedPhotoBytes+1))
	if err != nil {
		photo.Body.Close()
		return nil, fmt.Errorf("read photo body: %w", err)
	}

	if len(buf) > maxCachedPhotoBytes {
		return &PhotoResult{
			ContentType:   photo.ContentType,
			ContentLength: photo.ContentLength,
			Body:          multiReadCloser{Reader: io.MultiReader(bytes.NewReader(buf), photo.Body), Closer: photo.Body},
		}, nil
	}
	photo.Body.Close()

	if s.photoTTL > 0 {
		if err := s.cache.Set(ctx, key, encodePhoto(photo.ContentType, buf), s.photoTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("photo cache write failed")
		}
	}

	return &PhotoResult{
		ContentType:   photo.ContentType,
		ContentLength: int64(len(buf)),
		Body:          io.NopCloser(bytes.NewReader(buf)),
	}, nil
}

type multiReadCloser struct {
	io.Reader
	io.Closer
}

func photoSearchCacheKey(churchName string) string {
	return "photo-search:" + strings.ToLower(churchName)
}

// SearchChurchPhoto returns the first image link for a church exterior.
// google.ErrNoResults is returned when the search finds nothing.
func (s *mapsService) SearchChurchPhoto(ctx context.Context, churchName string) (string, error) {
	name := strings.TrimSpace(churchName)
	if name == "" {
		return "", validationError("church name is required")
	}

	key := photoSearchCacheKey(name)
	if b, err := s.cache.Get(ctx, key); err == nil && len(b) > 0 {
		return string(b), nil
	}

	link, err := s.client.SearchImage(ctx, name+" church building exterior")
	if err != nil {
		return "", err
	}

	if err := s.cache.Set(ctx, key, []byte(link), photoSearchTTL); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("photo search cache write failed")
	}
	return link, nil
}
