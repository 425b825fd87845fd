package repository

import (
	"context"
	"fmt"

	"github.com/dondi-c/church-finder/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type ServiceTimeRepository interface {
	Create(ctx context.Context, st *models.ServiceTime) error
}

type serviceTimeRepository struct {
	db *gorm.DB
}

func NewServiceTimeRepository(db *gorm.DB) ServiceTimeRepository {
	return &serviceTimeRepository{db: db}
}

// Create inserts a service time. The church_id foreign key is enforced by
// the store and reported as ErrChurchNotFound.
func (r *serviceTimeRepository) Create(ctx context.Context, st *models.ServiceTime) error {
	if err := r.db.WithContext(ctx).Create(st).Error; err != nil {
		if isForeignKeyViolation(err) {
			return ErrChurchNotFound
		}
		return fmt.Errorf("create service time: %w", err)
	}
	return nil
}

