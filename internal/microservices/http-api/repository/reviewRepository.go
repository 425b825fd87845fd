package repository

import (
	"context"
	"fmt"

	"github.com/dondi-c/church-finder/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Summary(ctx context.Context, churchID int64) (float64, int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create a new review; created_at is assigned on insert.
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		if isForeignKeyViolation(err) {
			return ErrChurchNotFound
		}
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

// Summary returns the average rating and number of reviews for a church.
func (r *reviewRepository) Summary(ctx context.Context, churchID int64) (float64, int64, error) {
	var out struct {
		Average float64
		Total   int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS total").
		Where("church_id = ?", churchID).
		Scan(&out).Error
	if err != nil {
		return 0, 0, fmt.Errorf("review summary: %w", err)
	}
	return out.Average, out.Total, nil
}
