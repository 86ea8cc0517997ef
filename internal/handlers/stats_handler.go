package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "cashira/internal/errors"
	"cashira/internal/models"
	"cashira/internal/services"
	"cashira/internal/stats"
)

// StatsHandler serves aggregated statistics and chart series.
type StatsHandler struct {
	statsService services.StatsServicer
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService services.StatsServicer) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// referenceDate reads the optional date query parameter, defaulting to now.
func referenceDate(c *gin.Context) (time.Time, error) {
	v := c.Query("date")
	if v == "" {
		return time.Now(), nil
	}
	t, err := parseFlexibleTime(v)
	if err != nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date format, use RFC3339 or YYYY-MM-DD")
	}
	return t, nil
}

// Totals handles the overall totals request
// @Summary     Totals
// @Description Get total income, total expense, and balance (in cents) over all of the user's transactions
// @Tags        stats
// @Produce     json
// @Success     200 {object} stats.Totals "Totals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats/totals [get]
func (h *StatsHandler) Totals(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.statsService.Totals(ownerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, totals)
}

// Chart handles a single chart series request
// @Summary     Chart series
// @Description Get a chart series for a timeframe: daily (7 day buckets), weekly (4 Monday-Sunday weeks), or monthly (current month by category)
// @Tags        stats
// @Produce     json
// @Param       timeframe query string true  "Timeframe (daily, weekly, monthly)"
// @Param       date      query string false "Reference date (RFC3339 or YYYY-MM-DD, default today)"
// @Success     200 {array} stats.Bucket "Chart buckets"
// @Failure     400 {object} ErrorResponse "Invalid timeframe or date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats/chart [get]
func (h *StatsHandler) Chart(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	timeframe := stats.Timeframe(c.Query("timeframe"))
	if !timeframe.Valid() {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "timeframe must be daily, weekly, or monthly"))
		return
	}

	ref, err := referenceDate(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	buckets, err := h.statsService.Chart(ownerID, timeframe, ref)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"buckets": buckets})
}

// Categories handles the per-category sums request
// @Summary     Category totals
// @Description Get summed amounts per category for one kind, in first-seen order; categories without transactions are absent
// @Tags        stats
// @Produce     json
// @Param       kind query string false "Kind to sum (income, expense; default expense)"
// @Success     200 {array} stats.CategoryAmount "Category sums"
// @Failure     400 {object} ErrorResponse "Invalid kind"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats/categories [get]
func (h *StatsHandler) Categories(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	kind := models.KindExpense
	if v := c.Query("kind"); v != "" {
		kind = models.TransactionKind(v)
		if !kind.Valid() {
			respondWithError(c, apperrors.ErrInvalidKind)
			return
		}
	}

	result, err := h.statsService.Categories(ownerID, kind)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": result})
}

// Summary handles the combined dashboard request
// @Summary     Dashboard summary
// @Description Get totals plus the daily, weekly, and monthly chart series in one response
// @Tags        stats
// @Produce     json
// @Param       date query string false "Reference date (RFC3339 or YYYY-MM-DD, default today)"
// @Success     200 {object} services.Summary "Summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats/summary [get]
func (h *StatsHandler) Summary(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	ref, err := referenceDate(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.statsService.Summary(ownerID, ref)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
