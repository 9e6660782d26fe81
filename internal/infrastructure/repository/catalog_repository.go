package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/salesdesk/salesdesk-api/internal/domain/entity"
	domainRepo "github.com/salesdesk/salesdesk-api/internal/domain/repository"
	"gorm.io/gorm"
)

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) domainRepo.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceDetail, error) {
	var service entity.ServiceDetail
	err := r.db.WithContext(ctx).First(&service, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &service, err
}

func (r *catalogRepository) List(ctx context.Context) ([]entity.ServiceDetail, error) {
	var services []entity.ServiceDetail
	err := r.db.WithContext(ctx).Order("name ASC").Find(&services).Error
	return services, err
}

func (r *catalogRepository) SearchByName(ctx context.Context, term string) ([]entity.ServiceDetail, error) {
	var services []entity.ServiceDetail
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?)", "%"+term+"%").
		Order("name ASC").
		Find(&services).Error
	return services, err
}

func (r *catalogRepository) CreateBatch(ctx context.Context, services []entity.ServiceDetail) error {
	if len(services) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&services).Error
}

func (r *catalogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.ServiceDetail{}).Count(&count).Error
	return count, err
}
