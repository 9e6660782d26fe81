package service

import (
	"github.com/salesdesk/salesdesk-api/internal/domain/entity"
)

// DashboardService derives dashboard statistics from the sales feed.
// It keeps no state of its own: every call recomputes from the current
// feed snapshot.
type DashboardService struct {
	feed *SalesFeed
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(feed *SalesFeed) *DashboardService {
	return &DashboardService{feed: feed}
}

// DashboardStats is the full dashboard payload: summary cards, the
// filtered transaction table, per-product rollups and the chart series
type DashboardStats struct {
	Summary       SalesSummary    `json:"summary"`
	Sales         []entity.Sale   `json:"sales"`
	Products      []ProductRollup `json:"products"`
	MonthlySeries []MonthlyPoint  `json:"monthly_series"`
}

// GetStats applies the filter to the feed snapshot and aggregates the
// result. The monthly series is always computed over the full
// snapshot, independent of the active filter.
func (s *DashboardService) GetStats(filter SaleFilter, sortBy, sortOrder string) *DashboardStats {
	snapshot := s.feed.Snapshot()
	filtered := FilterSales(snapshot, filter)

	return &DashboardStats{
		Summary:       Summarize(filtered),
		Sales:         filtered,
		Products:      RollupByProduct(filtered, sortBy, sortOrder),
		MonthlySeries: MonthlySeries(snapshot),
	}
}

// ListSales applies the filter to the feed snapshot and returns the
// matching transactions with their summary
func (s *DashboardService) ListSales(filter SaleFilter) ([]entity.Sale, SalesSummary) {
	filtered := FilterSales(s.feed.Snapshot(), filter)
	return filtered, Summarize(filtered)
}
