package service

import (
	"context"
	"strings"

	"github.com/dondi-c/church-finder/internal/microservices/http-api/dto"
	"github.com/dondi-c/church-finder/internal/microservices/http-api/models"
	"github.com/dondi-c/church-finder/internal/microservices/http-api/repository"
)

type ReviewService interface {
	CreateReview(ctx context.Context, churchID int64, req *dto.CreateReviewDTO) (*dto.ReviewResponse, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo}
}

// CreateReview stores a review for an existing church. An unknown church id
// surfaces as repository.ErrChurchNotFound.
func (s *reviewService) CreateReview(ctx context.Context, churchID int64, req *dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	userName := strings.TrimSpace(req.UserName)
	if userName == "" {
		return nil, validationError("user name is required")
	}
	if req.Rating == nil || *req.Rating < 1 || *req.Rating > 5 {
		return nil, validationError("rating must be between 1 and 5")
	}

	review := &models.Review{
		ChurchID: churchID,
		UserName: userName,
		Rating:   dto.RoundRating(*req.Rating),
	}
	if req.Comment != nil {
		if comment := strings.TrimSpace(*req.Comment); comment != "" {
			review.Comment = &comment
		}
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

