package routes

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bbbang105/flowershop-admin-sub001/config"
)

// monthRange parses the "month" query param (YYYY-MM, defaulting to the
// current month in the shop timezone) into [start, end) bounds.
func monthRange(c *gin.Context) (time.Time, time.Time, error) {
	month := c.Query("month")
	if month == "" {
		now := time.Now().In(config.Location)
		month = now.Format("2006-01")
	}

	start, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM", month)
	}
	return start, start.AddDate(0, 1, 0), nil
}

// parseDate parses a YYYY-MM-DD form value. Calendar dates are kept as UTC
// midnights so the driver's normalization cannot shift them across a day
// boundary; only "which day is it now" questions consult the shop timezone.
func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}
