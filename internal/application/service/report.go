package service

import (
	"sort"
	"time"

	"github.com/salesdesk/salesdesk-api/internal/domain/entity"
	"github.com/salesdesk/salesdesk-api/internal/domain/enum"
)

// FilterMode selects how the transaction log is sliced for reporting
type FilterMode string

const (
	FilterToday    FilterMode = "today"
	FilterAll      FilterMode = "all"
	FilterDay      FilterMode = "day"
	FilterMonth    FilterMode = "month"
	FilterYear     FilterMode = "year"
	FilterRange    FilterMode = "range"
	FilterThisWeek FilterMode = "this_week"
	FilterLastWeek FilterMode = "last_week"
)

// SaleFilter describes one active filter selection. Exactly one mode is
// active at a time; values belonging to other modes are ignored. Modes
// that require an explicit value (day, month, year, range) yield an
// empty result when the value is missing rather than falling back to
// today.
type SaleFilter struct {
	Mode FilterMode

	Day   string // "2006-01-02", used by FilterDay
	Month string // "2006-01", used by FilterMonth
	Year  string // "2006", used by FilterYear
	Start string // "2006-01-02", used by FilterRange
	End   string // "2006-01-02", used by FilterRange

	// Now is the reference clock for the today and week modes; the
	// zero value means time.Now().
	Now time.Time
}

func (f SaleFilter) clock() time.Time {
	if f.Now.IsZero() {
		return time.Now()
	}
	return f.Now
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns midnight of the Sunday that starts t's week
func startOfWeek(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}

// FilterSales returns the subset of sales matching the filter. The
// input slice is never mutated; applying the same filter twice yields
// an identical result.
func FilterSales(sales []entity.Sale, f SaleFilter) []entity.Sale {
	mode := f.Mode
	if mode == "" {
		mode = FilterToday
	}

	result := make([]entity.Sale, 0, len(sales))

	switch mode {
	case FilterAll:
		result = append(result, sales...)

	case FilterToday:
		start := startOfDay(f.clock())
		end := start.AddDate(0, 0, 1)
		for _, s := range sales {
			if !s.SoldAt.Before(start) && s.SoldAt.Before(end) {
				result = append(result, s)
			}
		}

	case FilterDay:
		day, err := time.ParseInLocation("2006-01-02", f.Day, f.clock().Location())
		if err != nil {
			return result
		}
		for _, s := range sales {
			y1, m1, d1 := s.SoldAt.Date()
			y2, m2, d2 := day.Date()
			if y1 == y2 && m1 == m2 && d1 == d2 {
				result = append(result, s)
			}
		}

	case FilterMonth:
		month, err := time.ParseInLocation("2006-01", f.Month, f.clock().Location())
		if err != nil {
			return result
		}
		for _, s := range sales {
			if s.SoldAt.Year() == month.Year() && s.SoldAt.Month() == month.Month() {
				result = append(result, s)
			}
		}

	case FilterYear:
		year, err := time.ParseInLocation("2006", f.Year, f.clock().Location())
		if err != nil {
			return result
		}
		for _, s := range sales {
			if s.SoldAt.Year() == year.Year() {
				result = append(result, s)
			}
		}

	case FilterRange:
		loc := f.clock().Location()
		start, err := time.ParseInLocation("2006-01-02", f.Start, loc)
		if err != nil {
			return result
		}
		end, err := time.ParseInLocation("2006-01-02", f.End, loc)
		if err != nil {
			return result
		}
		// Inclusive range: start at 00:00:00.000, end at 23:59:59.999
		endExclusive := startOfDay(end).AddDate(0, 0, 1)
		for _, s := range sales {
			if !s.SoldAt.Before(start) && s.SoldAt.Before(endExclusive) {
				result = append(result, s)
			}
		}

	case FilterThisWeek:
		start := startOfWeek(f.clock())
		end := start.AddDate(0, 0, 7)
		for _, s := range sales {
			if !s.SoldAt.Before(start) && s.SoldAt.Before(end) {
				result = append(result, s)
			}
		}

	case FilterLastWeek:
		end := startOfWeek(f.clock())
		start := end.AddDate(0, 0, -7)
		for _, s := range sales {
			if !s.SoldAt.Before(start) && s.SoldAt.Before(end) {
				result = append(result, s)
			}
		}
	}

	return result
}

// SalesSummary holds the aggregate totals for a filtered set of sales
type SalesSummary struct {
	TransactionCount   int     `json:"transaction_count"`
	TotalQuantity      int     `json:"total_quantity"`
	TotalRevenue       float64 `json:"total_revenue"`
	TotalDiscount      float64 `json:"total_discount"`
	CashTransactions   int     `json:"cash_transactions"`
	OnlineTransactions int     `json:"online_transactions"`
	CashRevenue        float64 `json:"cash_revenue"`
	OnlineRevenue      float64 `json:"online_revenue"`
}

// Summarize computes totals over a set of sales. Revenue is the sum of
// final charged amounts, not pre-discount totals.
func Summarize(sales []entity.Sale) SalesSummary {
	summary := SalesSummary{TransactionCount: len(sales)}

	var revenue, discount, cashRevenue, onlineRevenue int64
	for _, s := range sales {
		summary.TotalQuantity += s.Quantity
		revenue += s.FinalCharged
		discount += s.Discount

		switch s.PaymentMethod {
		case enum.PaymentCash:
			summary.CashTransactions++
			cashRevenue += s.FinalCharged
		case enum.PaymentOnline:
			summary.OnlineTransactions++
			onlineRevenue += s.FinalCharged
		}
	}

	summary.TotalRevenue = float64(revenue) / 100
	summary.TotalDiscount = float64(discount) / 100
	summary.CashRevenue = float64(cashRevenue) / 100
	summary.OnlineRevenue = float64(onlineRevenue) / 100
	return summary
}

// ProductRollup is the aggregate for one product name within a
// filtered set of sales
type ProductRollup struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
	Discount float64 `json:"discount"`
}

// Rollup sort keys
const (
	RollupSortQuantity = "quantity"
	RollupSortAmount   = "amount"
)

type rollupAccumulator struct {
	quantity int
	revenue  int64
	discount int64
}

// RollupByProduct groups sales by product name and sums quantity,
// revenue and discount per group. Descending by default; pass
// sortOrder "asc" to flip. Ties keep first-appearance order.
func RollupByProduct(sales []entity.Sale, sortBy, sortOrder string) []ProductRollup {
	groups := make(map[string]*rollupAccumulator)
	names := make([]string, 0)

	for _, s := range sales {
		acc, ok := groups[s.Name]
		if !ok {
			acc = &rollupAccumulator{}
			groups[s.Name] = acc
			names = append(names, s.Name)
		}
		acc.quantity += s.Quantity
		acc.revenue += s.FinalCharged
		acc.discount += s.Discount
	}

	rollups := make([]ProductRollup, 0, len(names))
	for _, name := range names {
		acc := groups[name]
		rollups = append(rollups, ProductRollup{
			Name:     name,
			Quantity: acc.quantity,
			Revenue:  float64(acc.revenue) / 100,
			Discount: float64(acc.discount) / 100,
		})
	}

	ascending := sortOrder == "asc" || sortOrder == "ASC"
	switch sortBy {
	case RollupSortAmount:
		sort.SliceStable(rollups, func(i, j int) bool {
			if ascending {
				return rollups[i].Revenue < rollups[j].Revenue
			}
			return rollups[i].Revenue > rollups[j].Revenue
		})
	default:
		sort.SliceStable(rollups, func(i, j int) bool {
			if ascending {
				return rollups[i].Quantity < rollups[j].Quantity
			}
			return rollups[i].Quantity > rollups[j].Quantity
		})
	}

	return rollups
}

// MonthlyPoint is one calendar-month bucket of the chart series
type MonthlyPoint struct {
	Month  string  `json:"month"`
	Cash   float64 `json:"cash"`
	Online float64 `json:"online"`
}

// MonthlySeries buckets the full transaction log into twelve calendar
// months, summing cash and online revenue per month. Buckets are
// year-agnostic: sales from different years land in the same month
// bucket. Always computed over the full set, independent of the active
// filter.
func MonthlySeries(sales []entity.Sale) []MonthlyPoint {
	var cash, online [12]int64
	for _, s := range sales {
		idx := int(s.SoldAt.Month()) - 1
		switch s.PaymentMethod {
		case enum.PaymentCash:
			cash[idx] += s.FinalCharged
		case enum.PaymentOnline:
			online[idx] += s.FinalCharged
		}
	}

	series := make([]MonthlyPoint, 12)
	for i := 0; i < 12; i++ {
		series[i] = MonthlyPoint{
			Month:  time.Month(i + 1).String()[:3],
			Cash:   float64(cash[i]) / 100,
			Online: float64(online[i]) / 100,
		}
	}
	return series
}
