package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/salesdesk/salesdesk-api/internal/domain/entity"
)

// SaleRepository defines the interface for sale data operations.
// Sales are append-only: no update or delete methods exist because a
// sale is immutable once written.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	// ListAll returns the full transaction log ordered by sale time.
	// The sales feed replaces its entire snapshot with this result on
	// every refresh.
	ListAll(ctx context.Context) ([]entity.Sale, error)
}
