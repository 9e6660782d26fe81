package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/salesdesk/salesdesk-api/internal/application/service"
)

// ParseSaleFilter builds the report filter from query parameters.
// Exactly one mode is active per request; the mode defaults to today
// when nothing else is chosen.
func ParseSaleFilter(c *gin.Context) service.SaleFilter {
	return service.SaleFilter{
		Mode:  service.FilterMode(c.DefaultQuery("filter", "today")),
		Day:   c.Query("day"),
		Month: c.Query("month"),
		Year:  c.Query("year"),
		Start: c.Query("start_date"),
		End:   c.Query("end_date"),
	}
}
