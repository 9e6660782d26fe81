package service

import (
	"context"
	"testing"
	"time"

	"github.com/salesdesk/salesdesk-api/internal/domain/entity"
	"github.com/salesdesk/salesdesk-api/internal/domain/enum"
	infraRepo "github.com/salesdesk/salesdesk-api/internal/infrastructure/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesFeed_StartLoadsInitialSnapshot(t *testing.T) {
	db := setupTestDB(t)
	product := seedService(t, db, "Visa Service", 50000)
	saleRepo := infraRepo.NewSaleRepository(db)

	require.NoError(t, saleRepo.Create(context.Background(), &entity.Sale{
		ServiceDetailID: product.ID,
		Name:            product.Name,
		UnitPrice:       product.UnitPrice,
		Quantity:        1,
		Total:           50000,
		FinalCharged:    50000,
		PaymentMethod:   enum.PaymentCash,
		SoldAt:          time.Now(),
	}))

	feed := NewSalesFeed(saleRepo, time.Hour)
	require.NoError(t, feed.Start(context.Background()))
	defer feed.Stop()

	assert.Len(t, feed.Snapshot(), 1)
}

func TestSalesFeed_StartTwiceFails(t *testing.T) {
	db := setupTestDB(t)
	feed := NewSalesFeed(infraRepo.NewSaleRepository(db), time.Hour)

	require.NoError(t, feed.Start(context.Background()))
	defer feed.Stop()

	assert.Error(t, feed.Start(context.Background()))
}

func TestSalesFeed_RefreshReplacesWholeSnapshot(t *testing.T) {
	db := setupTestDB(t)
	product := seedService(t, db, "Visa Service", 50000)
	saleRepo := infraRepo.NewSaleRepository(db)
	feed := NewSalesFeed(saleRepo, time.Hour)

	require.NoError(t, feed.Refresh(context.Background()))
	assert.Empty(t, feed.Snapshot())

	for i := 0; i < 3; i++ {
		require.NoError(t, saleRepo.Create(context.Background(), &entity.Sale{
			ServiceDetailID: product.ID,
			Name:            product.Name,
			UnitPrice:       product.UnitPrice,
			Quantity:        1,
			Total:           50000,
			FinalCharged:    50000,
			PaymentMethod:   enum.PaymentCash,
			SoldAt:          time.Now(),
		}))
	}

	before := feed.Snapshot()
	require.NoError(t, feed.Refresh(context.Background()))

	assert.Len(t, feed.Snapshot(), 3)
	// The previously handed-out slice is untouched
	assert.Empty(t, before)
}

func TestSalesFeed_PokeTriggersRefresh(t *testing.T) {
	db := setupTestDB(t)
	product := seedService(t, db, "Visa Service", 50000)
	saleRepo := infraRepo.NewSaleRepository(db)

	feed := NewSalesFeed(saleRepo, time.Hour)
	require.NoError(t, feed.Start(context.Background()))
	defer feed.Stop()

	require.NoError(t, saleRepo.Create(context.Background(), &entity.Sale{
		ServiceDetailID: product.ID,
		Name:            product.Name,
		UnitPrice:       product.UnitPrice,
		Quantity:        1,
		Total:           50000,
		FinalCharged:    50000,
		PaymentMethod:   enum.PaymentOnline,
		SoldAt:          time.Now(),
	}))

	feed.Poke()

	assert.Eventually(t, func() bool {
		return len(feed.Snapshot()) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSalesFeed_StopIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	feed := NewSalesFeed(infraRepo.NewSaleRepository(db), time.Hour)

	require.NoError(t, feed.Start(context.Background()))
	feed.Stop()
	feed.Stop()
}
