package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/salesdesk/salesdesk-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale represents one completed transaction. A sale is written exactly
// once on submission and never updated or deleted afterwards. Product
// name and description are captured at sale time and are not re-synced
// if the catalog later changes.
type Sale struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ServiceDetailID uuid.UUID          `gorm:"type:uuid;not null;index" json:"service_detail_id"`
	Name            string             `gorm:"size:255;not null" json:"name"`
	Description     string             `gorm:"type:text" json:"description"`
	UnitPrice       int64              `gorm:"not null" json:"-"`  // Stored in cents, excluded from JSON
	Quantity        int                `gorm:"not null" json:"quantity"`
	Total           int64              `gorm:"not null" json:"-"`  // Stored in cents, excluded from JSON
	Discount        int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	FinalCharged    int64              `gorm:"not null" json:"-"`  // Stored in cents, excluded from JSON
	CustomerPhone   string             `gorm:"size:20" json:"customer_phone,omitempty"`
	PaymentMethod   enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	SoldAt          time.Time          `gorm:"not null;index" json:"sold_at"`
	CreatedAt       time.Time          `json:"created_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		UnitPrice    float64 `json:"unit_price"`
		Total        float64 `json:"total"`
		Discount     float64 `json:"discount"`
		FinalCharged float64 `json:"final_charged"`
	}{
		Alias:        Alias(s),
		UnitPrice:    float64(s.UnitPrice) / 100,
		Total:        float64(s.Total) / 100,
		Discount:     float64(s.Discount) / 100,
		FinalCharged: float64(s.FinalCharged) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// GetUnitPriceDecimal returns the unit price as a decimal
func (s *Sale) GetUnitPriceDecimal() float64 {
	return float64(s.UnitPrice) / 100
}

// GetFinalChargedDecimal returns the final charged amount as a decimal
func (s *Sale) GetFinalChargedDecimal() float64 {
	return float64(s.FinalCharged) / 100
}

// GetTotalDecimal returns the total as a decimal
func (s *Sale) GetTotalDecimal() float64 {
	return float64(s.Total) / 100
}

// GetDiscountDecimal returns the discount as a decimal
func (s *Sale) GetDiscountDecimal() float64 {
	return float64(s.Discount) / 100
}
