package controllers

import (
	"net/http"
	"time"

	"github.com/fredneedsausername/FreDiet/services"

	"github.com/gin-gonic/gin"
)

type SummaryController struct {
	Svc *services.SummaryService
	Loc *time.Location
	Now func() time.Time
}

func NewSummaryController(svc *services.SummaryService, loc *time.Location) *SummaryController {
	return &SummaryController{Svc: svc, Loc: loc, Now: time.Now}
}

func (h *SummaryController) GetDailySummary(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "message": "authentication required"})
		return
	}

	from, to, ok := parseDateRange(c, h.Loc, h.Now)
	if !ok {
		return
	}

	out, err := h.Svc.DailyTotals(c.Request.Context(), userID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// --- helpers ---

func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// parseDateRange reads from/to as YYYY-MM-DD in the reference timezone.
// A missing bound defaults to the other; both missing means today per the
// injected clock.
func parseDateRange(c *gin.Context, loc *time.Location, now func() time.Time) (time.Time, time.Time, bool) {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" && toStr == "" {
		today := now().In(loc)
		return today, today, true
	}
	if fromStr == "" {
		fromStr = toStr
	}
	if toStr == "" {
		toStr = fromStr
	}

	from, err := time.ParseInLocation("2006-01-02", fromStr, loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "invalid from date"})
		return time.Time{}, time.Time{}, false
	}
	to, err := time.ParseInLocation("2006-01-02", toStr, loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "invalid to date"})
		return time.Time{}, time.Time{}, false
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "`to` must be on/after `from`"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
