package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/salesdesk/salesdesk-api/internal/domain/entity"
)

// CatalogRepository defines the interface for catalog data operations.
// The catalog is read-only through this API; entries are created by an
// out-of-band admin flow (or the startup seed).
type CatalogRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceDetail, error)
	List(ctx context.Context) ([]entity.ServiceDetail, error)
	// SearchByName performs a case-insensitive substring match on name.
	SearchByName(ctx context.Context, term string) ([]entity.ServiceDetail, error)
	CreateBatch(ctx context.Context, services []entity.ServiceDetail) error
	Count(ctx context.Context) (int64, error)
}
