package handler_test

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/mock"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/dondi-c/church-finder/internal/microservices/http-api/dto"
	"github.com/dondi-c/church-finder/internal/microservices/http-api/service"
)

// --- HELPER FUNCTIONS FOR POINTERS ---
func stringPtr(s string) *string { return &s }

func setupEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidators(v); err != nil {
			panic(err)
		}
	}
	return gin.New()
}

// --- MOCK SERVICES ---

type MockChurchService struct {
	mock.Mock
}

func (m *MockChurchService) GetDetail(ctx context.Context, placeID string, seed dto.ChurchSeed) (*dto.ChurchDetailResponse, error) {
	args := m.Called(ctx, placeID, seed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ChurchDetailResponse), args.Error(1)
}

func (m *MockChurchService) Create(ctx context.Context, req *dto.CreateChurchDTO) (*dto.ChurchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ChurchResponse), args.Error(1)
}

func (m *MockChurchService) Update(ctx context.Context, id int64, req *dto.UpdateChurchDTO) (*dto.ChurchResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ChurchResponse), args.Error(1)
}

func (m *MockChurchService) List(ctx context.Context) ([]dto.ChurchListItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.ChurchListItem), args.Error(1)
}

func (m *MockChurchService) ListDenominations(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockChurchService) GeoJSON(ctx context.Context) (*geojson.FeatureCollection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geojson.FeatureCollection), args.Error(1)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) CreateReview(ctx context.Context, churchID int64, req *dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, churchID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

type MockServiceTimeService struct {
	mock.Mock
}

func (m *MockServiceTimeService) CreateServiceTime(ctx context.Context, churchID int64, req *dto.CreateServiceTimeDTO) (*dto.ServiceTimeResponse, error) {
	args := m.Called(ctx, churchID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ServiceTimeResponse), args.Error(1)
}

type MockMapsService struct {
	mock.Mock
}

func (m *MockMapsService) ScriptKey() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockMapsService) PlacePhoto(ctx context.Context, reference string, maxWidth int) (*service.PhotoResult, error) {
	args := m.Called(ctx, reference, maxWidth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PhotoResult), args.Error(1)
}

func (m *MockMapsService) SearchChurchPhoto(ctx context.Context, churchName string) (string, error) {
	args := m.Called(ctx, churchName)
	return args.String(0), args.Error(1)
}
