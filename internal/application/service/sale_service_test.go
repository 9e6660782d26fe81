package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/salesdesk/salesdesk-api/internal/domain/entity"
	"github.com/salesdesk/salesdesk-api/internal/domain/enum"
	infraRepo "github.com/salesdesk/salesdesk-api/internal/infrastructure/repository"
	"github.com/salesdesk/salesdesk-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entity.ServiceDetail{}, &entity.Sale{}, &entity.User{})
	require.NoError(t, err)

	return db
}

func seedService(t *testing.T, db *gorm.DB, name string, unitPriceCents int64) *entity.ServiceDetail {
	t.Helper()

	service := &entity.ServiceDetail{
		Name:        name,
		Description: "test service",
		UnitPrice:   unitPriceCents,
	}
	require.NoError(t, db.Create(service).Error)
	return service
}

// recordingNotifier captures invoice sends for assertions
type recordingNotifier struct {
	mu       sync.Mutex
	sent     []string
	failWith error
	fired    chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{fired: make(chan struct{}, 4)}
}

func (n *recordingNotifier) Send(ctx context.Context, number, message string) error {
	n.mu.Lock()
	n.sent = append(n.sent, number)
	n.mu.Unlock()
	n.fired <- struct{}{}
	return n.failWith
}

func (n *recordingNotifier) waitFired(t *testing.T) {
	t.Helper()
	select {
	case <-n.fired:
	case <-time.After(2 * time.Second):
		t.Fatal("expected invoice notification to fire")
	}
}

func (n *recordingNotifier) sendCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

func TestCreateSale_PersistsComputedAmounts(t *testing.T) {
	db := setupTestDB(t)
	product := seedService(t, db, "Visa Service", 50000)

	saleRepo := infraRepo.NewSaleRepository(db)
	catalogRepo := infraRepo.NewCatalogRepository(db)
	svc := NewSaleService(saleRepo, catalogRepo, nil, nil, "Test Travels", time.Second)

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		ServiceDetailID: product.ID,
		Quantity:        2,
		Discount:        150,
		PaymentMethod:   enum.PaymentCash,
	})
	require.NoError(t, err)
	require.NotNil(t, sale)

	assert.NotEqual(t, uuid.Nil, sale.ID)
	assert.Equal(t, product.ID, sale.ServiceDetailID)
	assert.Equal(t, "Visa Service", sale.Name)
	assert.Equal(t, int64(50000), sale.UnitPrice)
	assert.Equal(t, int64(100000), sale.Total)
	assert.Equal(t, int64(15000), sale.Discount)
	assert.Equal(t, int64(85000), sale.FinalCharged)
	assert.False(t, sale.SoldAt.IsZero())

	stored, err := saleRepo.GetByID(context.Background(), sale.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, sale.FinalCharged, stored.FinalCharged)
}

func TestCreateSale_ClampsOversizedDiscount(t *testing.T) {
	db := setupTestDB(t)
	product := seedService(t, db, "Visa Service", 50000)

	svc := NewSaleService(
		infraRepo.NewSaleRepository(db),
		infraRepo.NewCatalogRepository(db),
		nil, nil, "Test Travels", time.Second,
	)

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		ServiceDetailID: product.ID,
		Quantity:        2,
		Discount:        1200, // exceeds the 1000.00 total
		PaymentMethod:   enum.PaymentOnline,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(100000), sale.Total)
	assert.Equal(t, int64(100000), sale.Discount)
	assert.Equal(t, int64(0), sale.FinalCharged)
	// Stored discount always equals total minus final
	assert.Equal(t, sale.Total-sale.FinalCharged, sale.Discount)
}

func TestCreateSale_ValidationErrors(t *testing.T) {
	db := setupTestDB(t)
	product := seedService(t, db, "Visa Service", 50000)

	svc := NewSaleService(
		infraRepo.NewSaleRepository(db),
		infraRepo.NewCatalogRepository(db),
		nil, nil, "Test Travels", time.Second,
	)

	tests := []struct {
		name      string
		input     CreateSaleInput
		wantField string
	}{
		{
			name: "missing product",
			input: CreateSaleInput{
				Quantity: 1, PaymentMethod: enum.PaymentCash,
			},
			wantField: "service_detail_id",
		},
		{
			name: "zero quantity",
			input: CreateSaleInput{
				ServiceDetailID: product.ID, Quantity: 0, PaymentMethod: enum.PaymentCash,
			},
			wantField: "quantity",
		},
		{
			name: "negative discount",
			input: CreateSaleInput{
				ServiceDetailID: product.ID, Quantity: 1, Discount: -10, PaymentMethod: enum.PaymentCash,
			},
			wantField: "discount",
		},
		{
			name: "invalid payment method",
			input: CreateSaleInput{
				ServiceDetailID: product.ID, Quantity: 1, PaymentMethod: "card",
			},
			wantField: "payment_method",
		},
		{
			name: "unknown product",
			input: CreateSaleInput{
				ServiceDetailID: uuid.New(), Quantity: 1, PaymentMethod: enum.PaymentCash,
			},
			wantField: "service_detail_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sale, err := svc.CreateSale(context.Background(), &tt.input)
			require.Error(t, err)
			assert.Nil(t, sale)

			appErr := apperror.GetAppError(err)
			assert.Equal(t, 422, appErr.Code)

			fields := make([]string, 0, len(appErr.Errors))
			for _, fe := range appErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}

	var count int64
	require.NoError(t, db.Model(&entity.Sale{}).Count(&count).Error)
	assert.Zero(t, count, "rejected submissions must not be persisted")
}

func TestCreateSale_SendsInvoiceWhenPhonePresent(t *testing.T) {
	db := setupTestDB(t)
	product := seedService(t, db, "Visa Service", 50000)

	notifier := newRecordingNotifier()
	svc := NewSaleService(
		infraRepo.NewSaleRepository(db),
		infraRepo.NewCatalogRepository(db),
		notifier, nil, "Test Travels", time.Second,
	)

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		ServiceDetailID: product.ID,
		Quantity:        1,
		CustomerPhone:   "9876543210",
		PaymentMethod:   enum.PaymentCash,
	})
	require.NoError(t, err)

	notifier.waitFired(t)
	assert.Equal(t, 1, notifier.sendCount())
}

func TestCreateSale_SkipsInvoiceWithoutPhone(t *testing.T) {
	db := setupTestDB(t)
	product := seedService(t, db, "Visa Service", 50000)

	notifier := newRecordingNotifier()
	svc := NewSaleService(
		infraRepo.NewSaleRepository(db),
		infraRepo.NewCatalogRepository(db),
		notifier, nil, "Test Travels", time.Second,
	)

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		ServiceDetailID: product.ID,
		Quantity:        1,
		PaymentMethod:   enum.PaymentCash,
	})
	require.NoError(t, err)

	select {
	case <-notifier.fired:
		t.Fatal("no invoice should be sent without a phone number")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCreateSale_NotifierFailureDoesNotRevertSale(t *testing.T) {
	db := setupTestDB(t)
	product := seedService(t, db, "Visa Service", 50000)

	notifier := newRecordingNotifier()
	notifier.failWith = errors.New("gateway down")

	saleRepo := infraRepo.NewSaleRepository(db)
	svc := NewSaleService(
		saleRepo,
		infraRepo.NewCatalogRepository(db),
		notifier, nil, "Test Travels", time.Second,
	)

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		ServiceDetailID: product.ID,
		Quantity:        1,
		CustomerPhone:   "9876543210",
		PaymentMethod:   enum.PaymentOnline,
	})
	require.NoError(t, err)
	notifier.waitFired(t)

	stored, err := saleRepo.GetByID(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored, "sale must survive a failed notification")
}

func TestCreateSale_PokesFeed(t *testing.T) {
	db := setupTestDB(t)
	product := seedService(t, db, "Visa Service", 50000)

	saleRepo := infraRepo.NewSaleRepository(db)
	feed := NewSalesFeed(saleRepo, time.Hour)
	require.NoError(t, feed.Start(context.Background()))
	defer feed.Stop()

	svc := NewSaleService(
		saleRepo,
		infraRepo.NewCatalogRepository(db),
		nil, feed, "Test Travels", time.Second,
	)

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		ServiceDetailID: product.ID,
		Quantity:        1,
		PaymentMethod:   enum.PaymentCash,
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return len(feed.Snapshot()) == 1
	}, 2*time.Second, 10*time.Millisecond)
}
