package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/salesdesk/salesdesk-api/internal/domain/entity"
	"github.com/salesdesk/salesdesk-api/internal/domain/enum"
	"github.com/salesdesk/salesdesk-api/internal/domain/repository"
	"github.com/salesdesk/salesdesk-api/pkg/apperror"
	"github.com/salesdesk/salesdesk-api/pkg/invoice"
)

// InvoiceNotifier sends an invoice message to a customer phone number
type InvoiceNotifier interface {
	Send(ctx context.Context, number, message string) error
}

// SaleService handles sale submission
type SaleService struct {
	saleRepo      repository.SaleRepository
	catalogRepo   repository.CatalogRepository
	notifier      InvoiceNotifier
	feed          *SalesFeed
	businessName  string
	notifyTimeout time.Duration
	now           func() time.Time
}

// NewSaleService creates a new sale service. The notifier and feed may
// be nil (no invoicing, no live feed to poke).
func NewSaleService(
	saleRepo repository.SaleRepository,
	catalogRepo repository.CatalogRepository,
	notifier InvoiceNotifier,
	feed *SalesFeed,
	businessName string,
	notifyTimeout time.Duration,
) *SaleService {
	if notifyTimeout == 0 {
		notifyTimeout = 10 * time.Second
	}
	return &SaleService{
		saleRepo:      saleRepo,
		catalogRepo:   catalogRepo,
		notifier:      notifier,
		feed:          feed,
		businessName:  businessName,
		notifyTimeout: notifyTimeout,
		now:           time.Now,
	}
}

// CreateSaleInput represents a sale submission
type CreateSaleInput struct {
	ServiceDetailID uuid.UUID
	Quantity        int
	Discount        float64 // decimal, pre-clamp; recomputed before storage
	CustomerPhone   string
	PaymentMethod   enum.PaymentMethod
}

// CreateSale validates the submission, writes one immutable sale and
// fires the invoice notification when a phone number was supplied.
// The notification is best effort: its failure is logged as a warning
// and never reverts the already-persisted sale.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	var fieldErrors []apperror.FieldError

	if input.ServiceDetailID == uuid.Nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "service_detail_id", Message: "A product must be selected",
		})
	}
	if input.Quantity < 1 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "quantity", Message: "Quantity must be a positive integer",
		})
	}
	if input.Discount < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "discount", Message: "Discount cannot be negative",
		})
	}
	if !input.PaymentMethod.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "payment_method", Message: "Payment method must be cash or online",
		})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	product, err := s.catalogRepo.GetByID(ctx, input.ServiceDetailID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "service_detail_id", Message: "Selected product does not exist"},
		})
	}

	total, _, final := computeQuoteCents(product.UnitPrice, input.Quantity, toCents(input.Discount))
	if final < 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "final_charged", Message: "Final price is not a valid non-negative amount"},
		})
	}

	// The stored discount is recomputed from the final price rather
	// than taken from the raw input, so the two fields cannot drift.
	storedDiscount := total - final
	if storedDiscount < 0 {
		storedDiscount = 0
	}

	sale := &entity.Sale{
		ServiceDetailID: product.ID,
		Name:            product.Name,
		Description:     product.Description,
		UnitPrice:       product.UnitPrice,
		Quantity:        input.Quantity,
		Total:           total,
		Discount:        storedDiscount,
		FinalCharged:    final,
		CustomerPhone:   input.CustomerPhone,
		PaymentMethod:   input.PaymentMethod,
		SoldAt:          s.now(),
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}

	if s.feed != nil {
		s.feed.Poke()
	}

	if s.notifier != nil && sale.CustomerPhone != "" {
		go s.sendInvoice(*sale)
	}

	return sale, nil
}

// sendInvoice runs outside the request lifecycle with its own timeout
func (s *SaleService) sendInvoice(sale entity.Sale) {
	ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
	defer cancel()

	message := invoice.BuildMessage(invoice.MessageInput{
		BusinessName:  s.businessName,
		ServiceName:   sale.Name,
		Quantity:      sale.Quantity,
		UnitPrice:     sale.GetUnitPriceDecimal(),
		Total:         sale.GetTotalDecimal(),
		Discount:      sale.GetDiscountDecimal(),
		FinalCharged:  sale.GetFinalChargedDecimal(),
		PaymentMethod: sale.PaymentMethod.String(),
		SoldAt:        sale.SoldAt,
	})

	if err := s.notifier.Send(ctx, sale.CustomerPhone, message); err != nil {
		log.Printf("Warning: invoice notification failed for sale %s: %v", sale.ID, err)
	}
}
