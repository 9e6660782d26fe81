package request

// QuoteRequest represents a pricing preview request for a sale draft
type QuoteRequest struct {
	UnitPrice float64 `json:"unit_price" binding:"required,gt=0"`
	Quantity  int     `json:"quantity" binding:"required,gte=1"`
	Discount  float64 `json:"discount"`
}

// CreateSaleRequest represents a sale submission
type CreateSaleRequest struct {
	ServiceDetailID string  `json:"service_detail_id" binding:"required"`
	Quantity        int     `json:"quantity" binding:"required,gte=1"`
	Discount        float64 `json:"discount"`
	CustomerPhone   string  `json:"customer_phone"`
	PaymentMethod   string  `json:"payment_method" binding:"required"`
}
