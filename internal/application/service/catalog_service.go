package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/salesdesk/salesdesk-api/internal/domain/entity"
	"github.com/salesdesk/salesdesk-api/internal/domain/repository"
	"github.com/salesdesk/salesdesk-api/pkg/apperror"
)

// CatalogService handles catalog lookup operations
type CatalogService struct {
	catalogRepo repository.CatalogRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalogRepo repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo}
}

// Load returns the full catalog
func (s *CatalogService) Load(ctx context.Context) ([]entity.ServiceDetail, error) {
	return s.catalogRepo.List(ctx)
}

// Get returns one catalog entry by id
func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (*entity.ServiceDetail, error) {
	service, err := s.catalogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, apperror.NewNotFoundError("Service")
	}
	return service, nil
}

// Search performs a case-insensitive substring match on service names.
// A blank term yields no suggestions rather than matching everything.
func (s *CatalogService) Search(ctx context.Context, term string) ([]entity.ServiceDetail, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []entity.ServiceDetail{}, nil
	}
	return s.catalogRepo.SearchByName(ctx, term)
}
