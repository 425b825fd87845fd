package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dondi-c/church-finder/internal/google"
	"github.com/dondi-c/church-finder/internal/microservices/http-api/models"
)

// --- HELPER FUNCTIONS FOR POINTERS ---
func stringPtr(s string) *string { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int { return &i }

// MockChurchRepository mocks the ChurchRepository interface
type MockChurchRepository struct {
	mock.Mock
}

func (m *MockChurchRepository) FindByPlaceID(ctx context.Context, placeID string) (*models.Church, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Church), args.Error(1)
}

func (m *MockChurchRepository) FindOrCreate(ctx context.Context, seed *models.Church) (*models.Church, bool, error) {
	args := m.Called(ctx, seed)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Church), args.Bool(1), args.Error(2)
}

func (m *MockChurchRepository) Create(ctx context.Context, church *models.Church) error {
	args := m.Called(ctx, church)
	return args.Error(0)
}

func (m *MockChurchRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) (*models.Church, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Church), args.Error(1)
}

func (m *MockChurchRepository) List(ctx context.Context) ([]models.Church, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Church), args.Error(1)
}

func (m *MockChurchRepository) ListDenominations(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockReviewRepository mocks the ReviewRepository interface
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Summary(ctx context.Context, churchID int64) (float64, int64, error) {
	args := m.Called(ctx, churchID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

// MockServiceTimeRepository mocks the ServiceTimeRepository interface
type MockServiceTimeRepository struct {
	mock.Mock
}

func (m *MockServiceTimeRepository) Create(ctx context.Context, st *models.ServiceTime) error {
	args := m.Called(ctx, st)
	return args.Error(0)
}

// MockPlacesClient mocks the Google client
type MockPlacesClient struct {
	mock.Mock
}

func (m *MockPlacesClient) MapsAPIKey() string {
	return m.Called().String(0)
}

func (m *MockPlacesClient) PlacePhoto(ctx context.Context, reference string, maxWidth int) (*google.Photo, error) {
	args := m.Called(ctx, reference, maxWidth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*google.Photo), args.Error(1)
}

func (m *MockPlacesClient) SearchImage(ctx context.Context, query string) (string, error) {
	args := m.Called(ctx, query)
	return args.String(0), args.Error(1)
}

// MockCache mocks cache.Provider
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
