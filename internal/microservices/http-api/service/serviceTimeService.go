package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dondi-c/church-finder/internal/microservices/http-api/dto"
	"github.com/dondi-c/church-finder/internal/microservices/http-api/models"
	"github.com/dondi-c/church-finder/internal/microservices/http-api/repository"
)

type ServiceTimeService interface {
	CreateServiceTime(ctx context.Context, churchID int64, req *dto.CreateServiceTimeDTO) (*dto.ServiceTimeResponse, error)
}

type serviceTimeService struct {
	repo repository.ServiceTimeRepository
}

func NewServiceTimeService(repo repository.ServiceTimeRepository) ServiceTimeService {
	return &serviceTimeService{repo: repo}
}

func (s *serviceTimeService) CreateServiceTime(ctx context.Context, churchID int64, req *dto.CreateServiceTimeDTO) (*dto.ServiceTimeResponse, error) {
	if req.DayOfWeek == nil || *req.DayOfWeek < 0 || *req.DayOfWeek > 6 {
		return nil, validationError("day of week must be between 0 and 6")
	}
	start, err := models.ParseClockTime(req.StartTime)
	if err != nil {
		return nil, validationError("start time: %v", err)
	}
	end, err := models.ParseClockTime(req.EndTime)
	if err != nil {
		return nil, validationError("end time: %v", err)
	}

	// not enforced, the stored data has always allowed it
	if !start.Before(end) {
		zerolog.Ctx(ctx).Warn().
			Int64("church_id", churchID).
			Str("start_time", start.String()).
			Str("end_time", end.String()).
			Msg("service time ends before it starts")
	}

	st := &models.ServiceTime{
		ChurchID:  churchID,
		DayOfWeek: *req.DayOfWeek,
		StartTime: start,
		EndTime:   end,
		Language:  models.DefaultLanguage,
	}
	if req.ServiceType != nil {
		if t := strings.TrimSpace(*req.ServiceType); t != "" {
			st.ServiceType = &t
		}
	}
	if req.Language != nil {
		if lang := strings.TrimSpace(*req.Language); lang != "" {
			st.Language = lang
		}
	}

	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	return dto.FromModelToServiceTimeResponse(st), nil
}

