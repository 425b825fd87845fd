package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dondi-c/church-finder/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type ChurchRepository interface {
	FindByPlaceID(ctx context.Context, placeID string) (*models.Church, error)
	FindOrCreate(ctx context.Context, seed *models.Church) (*models.Church, bool, error)
	Create(ctx context.Context, church *models.Church) error
	Update(ctx context.Context, id int64, fields map[string]interface{}) (*models.Church, error)
	List(ctx context.Context) ([]models.Church, error)
	ListDenominations(ctx context.Context) ([]string, error)
}

type churchRepository struct {
	db *gorm.DB
}

func NewChurchRepository(db *gorm.DB) ChurchRepository {
	return &churchRepository{db: db}
}

func orderedServiceTimes(db *gorm.DB) *gorm.DB {
	return db.Order("day_of_week ASC, start_time ASC, id ASC")
}

func newestReviews(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC, id DESC")
}

// FindByPlaceID loads a church with its service times and reviews
// (newest review first).
func (r *churchRepository) FindByPlaceID(ctx context.Context, placeID string) (*models.Church, error) {
	var c models.Church
	err := r.db.WithContext(ctx).
		Preload("ServiceTimes", orderedServiceTimes).
		Preload("Reviews", newestReviews).
		Where("place_id = ?", placeID).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChurchNotFound
		}
		return nil, fmt.Errorf("find church detail: %w", err)
	}
	normalizeRelations(&c)
	return &c, nil
}

// FindOrCreate returns the church for seed.PlaceID, inserting seed when it
// does not exist yet. The bool reports whether a row was inserted. A
// concurrent insert for the same place id loses on the unique constraint
// and is answered by re-reading the winner's row.
func (r *churchRepository) FindOrCreate(ctx context.Context, seed *models.Church) (*models.Church, bool, error) {
	existing, err := r.FindByPlaceID(ctx, seed.PlaceID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrChurchNotFound) {
		return nil, false, err
	}

	if err := r.Create(ctx, seed); err != nil {
		if errors.Is(err, ErrDuplicatePlace) {
			existing, err := r.FindByPlaceID(ctx, seed.PlaceID)
			return existing, false, err
		}
		return nil, false, err
	}

	normalizeRelations(seed)
	return seed, true, nil
}

func (r *churchRepository) Create(ctx context.Context, church *models.Church) error {
	// relations are never created through the church row
	if err := r.db.WithContext(ctx).Omit("ServiceTimes", "Reviews").Create(church).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicatePlace
		}
		return fmt.Errorf("create church: %w", err)
	}
	return nil
}

// Update applies a partial update of business fields and returns the fresh row.
func (r *churchRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) (*models.Church, error) {
	db := r.db.WithContext(ctx)

	var c models.Church
	if err := db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChurchNotFound
		}
		return nil, fmt.Errorf("get church: %w", err)
	}

	if len(fields) == 0 {
		return &c, nil
	}

	if err := db.Model(&models.Church{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("update church: %w", err)
	}

	if err := db.First(&c, id).Error; err != nil {
		return nil, fmt.Errorf("reload church: %w", err)
	}
	return &c, nil
}

func (r *churchRepository) List(ctx context.Context) ([]models.Church, error) {
	var list []models.Church
	if err := r.db.WithContext(ctx).
		Preload("ServiceTimes", orderedServiceTimes).
		Order("name ASC, id ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list churches: %w", err)
	}
	for i := range list {
		if list[i].ServiceTimes == nil {
			list[i].ServiceTimes = []models.ServiceTime{}
		}
	}
	return list, nil
}

// ListDenominations returns the non-blank denominations, sorted. Spellings
// that differ only in case collapse to one entry, matching the map filter.
func (r *churchRepository) ListDenominations(ctx context.Context) ([]string, error) {
	denominations := []string{}
	err := r.db.WithContext(ctx).
		Raw(`SELECT min(btrim(denomination) COLLATE "C") AS denomination
			FROM churches
			WHERE denomination IS NOT NULL AND btrim(denomination) <> ''
			GROUP BY lower(btrim(denomination))
			ORDER BY lower(btrim(denomination))`).
		Scan(&denominations).Error
	if err != nil {
		return nil, fmt.Errorf("list denominations: %w", err)
	}
	return denominations, nil
}

func normalizeRelations(c *models.Church) {
	if c.ServiceTimes == nil {
		c.ServiceTimes = []models.ServiceTime{}
	}
	if c.Reviews == nil {
		c.Reviews = []models.Review{}
	}
}
