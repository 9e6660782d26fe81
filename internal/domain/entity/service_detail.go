package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceDetail represents one sellable service in the catalog.
// Catalog entries are created by an out-of-band admin flow and are
// read-only through this API; once a sale references one it is
// treated as immutable.
type ServiceDetail struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"size:255;not null;index" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	UnitPrice   int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt   time.Time `json:"created_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s ServiceDetail) MarshalJSON() ([]byte, error) {
	type Alias ServiceDetail
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
	}{
		Alias:     Alias(s),
		UnitPrice: float64(s.UnitPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new catalog entry
func (s *ServiceDetail) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ServiceDetail model
func (ServiceDetail) TableName() string {
	return "service_details"
}

// GetUnitPriceDecimal returns the unit price as a decimal
func (s *ServiceDetail) GetUnitPriceDecimal() float64 {
	return float64(s.UnitPrice) / 100
}
