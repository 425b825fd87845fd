package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/dondi-c/church-finder/internal/microservices/http-api/dto"
	"github.com/dondi-c/church-finder/internal/microservices/http-api/models"
	"github.com/dondi-c/church-finder/internal/microservices/http-api/repository"
)

type ChurchService interface {
	// GetDetail returns the aggregated church for a place id, creating it
	// from seed when it does not exist yet.
	GetDetail(ctx context.Context, placeID string, seed dto.ChurchSeed) (*dto.ChurchDetailResponse, error)
	Create(ctx context.Context, req *dto.CreateChurchDTO) (*dto.ChurchResponse, error)
	Update(ctx context.Context, id int64, req *dto.UpdateChurchDTO) (*dto.ChurchResponse, error)
	List(ctx context.Context) ([]dto.ChurchListItem, error)
	ListDenominations(ctx context.Context) ([]string, error)
	GeoJSON(ctx context.Context) (*geojson.FeatureCollection, error)
}

type churchService struct {
	churchRepo repository.ChurchRepository
	reviewRepo repository.ReviewRepository
}

func NewChurchService(churchRepo repository.ChurchRepository, reviewRepo repository.ReviewRepository) ChurchService {
	return &churchService{
		churchRepo: churchRepo,
		reviewRepo: reviewRepo,
	}
}

func (s *churchService) GetDetail(ctx context.Context, placeID string, seed dto.ChurchSeed) (*dto.ChurchDetailResponse, error) {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return nil, validationError("place id is required")
	}

	church, err := s.churchRepo.FindByPlaceID(ctx, placeID)
	if errors.Is(err, repository.ErrChurchNotFound) {
		church, err = s.createFromSeed(ctx, placeID, seed)
	}
	if err != nil {
		return nil, err
	}

	avg, total, err := s.reviewRepo.Summary(ctx, church.ID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToChurchDetail(church, dto.ReviewSummary{
		AverageRating: dto.RoundRating(avg),
		TotalReviews:  total,
	}), nil
}

func (s *churchService) createFromSeed(ctx context.Context, placeID string, seed dto.ChurchSeed) (*models.Church, error) {
	model, err := seedToModel(placeID, seed)
	if err != nil {
		return nil, err
	}

	church, created, err := s.churchRepo.FindOrCreate(ctx, model)
	if err != nil {
		return nil, err
	}
	if created {
		zerolog.Ctx(ctx).Info().
			Int64("church_id", church.ID).
			Str("place_id", placeID).
			Msg("church created from places result")
	}
	return church, nil
}

func seedToModel(placeID string, seed dto.ChurchSeed) (*models.Church, error) {
	name := strings.TrimSpace(seed.Name)
	vicinity := strings.TrimSpace(seed.Vicinity)
	lat := strings.TrimSpace(seed.Lat)
	lng := strings.TrimSpace(seed.Lng)

	if name == "" || vicinity == "" || lat == "" || lng == "" {
		return nil, validationError("name, vicinity, lat and lng are required to create a church")
	}
	if !validCoordinate(lat, 90) || !validCoordinate(lng, 180) {
		return nil, validationError("invalid coordinates %q,%q", lat, lng)
	}

	church := &models.Church{
		PlaceID:  placeID,
		Name:     name,
		Vicinity: vicinity,
		Lat:      lat,
		Lng:      lng,
	}
	if rating := strings.TrimSpace(seed.Rating); rating != "" {
		if _, err := strconv.ParseFloat(rating, 64); err != nil {
			return nil, validationError("invalid rating %q", rating)
		}
		church.Rating = &rating
	}
	return church, nil
}

func validCoordinate(s string, limit float64) bool {
	v, err := strconv.ParseFloat(s, 64)
	return err == nil && v >= -limit && v <= limit
}

func (s *churchService) Create(ctx context.Context, req *dto.CreateChurchDTO) (*dto.ChurchResponse, error) {
	church := req.ToModel()
	if err := s.churchRepo.Create(ctx, church); err != nil {
		return nil, err
	}
	resp := dto.FromModelToChurchResponse(church)
	return &resp, nil
}

func (s *churchService) Update(ctx context.Context, id int64, req *dto.UpdateChurchDTO) (*dto.ChurchResponse, error) {
	church, err := s.churchRepo.Update(ctx, id, req.Fields())
	if err != nil {
		return nil, err
	}
	resp := dto.FromModelToChurchResponse(church)
	return &resp, nil
}

func (s *churchService) List(ctx context.Context) ([]dto.ChurchListItem, error) {
	churches, err := s.churchRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ChurchListItem, 0, len(churches))
	for i := range churches {
		out = append(out, dto.FromModelToChurchListItem(&churches[i]))
	}
	return out, nil
}

// ListDenominations never returns nil, blanks or duplicates. Duplicates
// are compared ignoring case.
func (s *churchService) ListDenominations(ctx context.Context) ([]string, error) {
	raw, err := s.churchRepo.ListDenominations(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, d := range raw {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		key := strings.ToLower(d)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out, nil
}

// GeoJSON renders every church as a point feature. Rows whose coordinates
// do not parse are skipped.
func (s *churchService) GeoJSON(ctx context.Context) (*geojson.FeatureCollection, error) {
	churches, err := s.churchRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(churches))}
	for _, c := range churches {
		lat, errLat := strconv.ParseFloat(c.Lat, 64)
		lng, errLng := strconv.ParseFloat(c.Lng, 64)
		if errLat != nil || errLng != nil {
			zerolog.Ctx(ctx).Warn().Int64("church_id", c.ID).Msg("skipping church with unparsable coordinates")
			continue
		}

		point := geom.NewPoint(geom.XY).MustSetCoords(geom.Coord{lng, lat}).SetSRID(4326)
		props := map[string]interface{}{
			"place_id": c.PlaceID,
			"name":     c.Name,
			"vicinity": c.Vicinity,
		}
		if c.Denomination != nil {
			props["denomination"] = *c.Denomination
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:         fmt.Sprintf("%d", c.ID),
			Geometry:   point,
			Properties: props,
		})
	}
	return fc, nil
}
