package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"cashira/internal/models"
	"cashira/internal/services"
	"cashira/internal/stats"
)

// --- mock service ---

type mockStatsService struct {
	totalsFn        func(ownerID string) (stats.Totals, error)
	chartFn         func(ownerID string, timeframe stats.Timeframe, ref time.Time) ([]stats.Bucket, error)
	categoriesFn    func(ownerID string, kind models.TransactionKind) ([]stats.CategoryAmount, error)
	summaryFn       func(ownerID string, ref time.Time) (*services.Summary, error)
	groupedByDateFn func(ownerID string, now time.Time) ([]stats.DateGroup, error)
}

func (m *mockStatsService) Totals(ownerID string) (stats.Totals, error) {
	if m.totalsFn != nil {
		return m.totalsFn(ownerID)
	}
	return stats.Totals{}, nil
}

func (m *mockStatsService) Chart(ownerID string, timeframe stats.Timeframe, ref time.Time) ([]stats.Bucket, error) {
	if m.chartFn != nil {
		return m.chartFn(ownerID, timeframe, ref)
	}
	return []stats.Bucket{}, nil
}

func (m *mockStatsService) Categories(ownerID string, kind models.TransactionKind) ([]stats.CategoryAmount, error) {
	if m.categoriesFn != nil {
		return m.categoriesFn(ownerID, kind)
	}
	return []stats.CategoryAmount{}, nil
}

func (m *mockStatsService) Summary(ownerID string, ref time.Time) (*services.Summary, error) {
	if m.summaryFn != nil {
		return m.summaryFn(ownerID, ref)
	}
	return &services.Summary{}, nil
}

func (m *mockStatsService) GroupedByDate(ownerID string, now time.Time) ([]stats.DateGroup, error) {
	if m.groupedByDateFn != nil {
		return m.groupedByDateFn(ownerID, now)
	}
	return []stats.DateGroup{}, nil
}

var _ services.StatsServicer = (*mockStatsService)(nil)

// --- test helpers ---

func setupStatsRouter(handler *StatsHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectOwnerID("owner-1"))
	auth.GET("/stats/totals", handler.Totals)
	auth.GET("/stats/chart", handler.Chart)
	auth.GET("/stats/categories", handler.Categories)
	auth.GET("/stats/summary", handler.Summary)
	return r
}

// --- tests ---

func TestStatsHandler_Totals(t *testing.T) {
	t.Run("returns the totals", func(t *testing.T) {
		statsSvc := &mockStatsService{
			totalsFn: func(ownerID string) (stats.Totals, error) {
				return stats.Totals{TotalIncome: 5000, TotalExpense: 3000, Balance: 2000}, nil
			},
		}
		handler := NewStatsHandler(statsSvc)
		r := setupStatsRouter(handler)

		rec := doRequest(r, "GET", "/stats/totals", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["total_income"] != float64(5000) || result["balance"] != float64(2000) {
			t.Errorf("unexpected totals payload: %v", result)
		}
	})

	t.Run("returns 401 without owner in context", func(t *testing.T) {
		handler := NewStatsHandler(&mockStatsService{})
		r := gin.New()
		r.GET("/stats/totals", handler.Totals)

		rec := doRequest(r, "GET", "/stats/totals", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestStatsHandler_Chart(t *testing.T) {
	t.Run("passes the timeframe and reference date through", func(t *testing.T) {
		var gotTimeframe stats.Timeframe
		var gotRef time.Time
		statsSvc := &mockStatsService{
			chartFn: func(ownerID string, timeframe stats.Timeframe, ref time.Time) ([]stats.Bucket, error) {
				gotTimeframe = timeframe
				gotRef = ref
				return []stats.Bucket{{Label: "Mon"}}, nil
			},
		}
		handler := NewStatsHandler(statsSvc)
		r := setupStatsRouter(handler)

		rec := doRequest(r, "GET", "/stats/chart?timeframe=weekly&date=2026-03-11", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotTimeframe != stats.TimeframeWeekly {
			t.Errorf("expected weekly, got %s", gotTimeframe)
		}
		y, m, d := gotRef.Date()
		if y != 2026 || m != time.March || d != 11 {
			t.Errorf("expected reference date 2026-03-11, got %v", gotRef)
		}
	})

	t.Run("returns 400 on missing or unknown timeframe", func(t *testing.T) {
		handler := NewStatsHandler(&mockStatsService{})
		r := setupStatsRouter(handler)

		for _, path := range []string{"/stats/chart", "/stats/chart?timeframe=yearly"} {
			rec := doRequest(r, "GET", path, "")
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 for %s, got %d", path, rec.Code)
			}
			assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
		}
	})

	t.Run("returns 400 on malformed date", func(t *testing.T) {
		handler := NewStatsHandler(&mockStatsService{})
		r := setupStatsRouter(handler)

		rec := doRequest(r, "GET", "/stats/chart?timeframe=daily&date=junk", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestStatsHandler_Categories(t *testing.T) {
	t.Run("defaults to expense", func(t *testing.T) {
		var gotKind models.TransactionKind
		statsSvc := &mockStatsService{
			categoriesFn: func(ownerID string, kind models.TransactionKind) ([]stats.CategoryAmount, error) {
				gotKind = kind
				return []stats.CategoryAmount{{Category: "food", Amount: 3000}}, nil
			},
		}
		handler := NewStatsHandler(statsSvc)
		r := setupStatsRouter(handler)

		rec := doRequest(r, "GET", "/stats/categories", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotKind != models.KindExpense {
			t.Errorf("expected default expense kind, got %s", gotKind)
		}
	})

	t.Run("honors an explicit kind", func(t *testing.T) {
		var gotKind models.TransactionKind
		statsSvc := &mockStatsService{
			categoriesFn: func(ownerID string, kind models.TransactionKind) ([]stats.CategoryAmount, error) {
				gotKind = kind
				return nil, nil
			},
		}
		handler := NewStatsHandler(statsSvc)
		r := setupStatsRouter(handler)

		rec := doRequest(r, "GET", "/stats/categories?kind=income", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotKind != models.KindIncome {
			t.Errorf("expected income, got %s", gotKind)
		}
	})

	t.Run("returns 400 on unknown kind", func(t *testing.T) {
		handler := NewStatsHandler(&mockStatsService{})
		r := setupStatsRouter(handler)

		rec := doRequest(r, "GET", "/stats/categories?kind=transfer", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_KIND")
	})
}

func TestStatsHandler_Summary(t *testing.T) {
	t.Run("returns the combined summary", func(t *testing.T) {
		statsSvc := &mockStatsService{
			summaryFn: func(ownerID string, ref time.Time) (*services.Summary, error) {
				return &services.Summary{
					Totals: stats.Totals{TotalIncome: 5000, TotalExpense: 3000, Balance: 2000},
					Daily:  make([]stats.Bucket, 7),
					Weekly: make([]stats.Bucket, 4),
				}, nil
			},
		}
		handler := NewStatsHandler(statsSvc)
		r := setupStatsRouter(handler)

		rec := doRequest(r, "GET", "/stats/summary", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		totals := result["totals"].(map[string]interface{})
		if totals["balance"] != float64(2000) {
			t.Errorf("unexpected totals: %v", totals)
		}
		if daily, ok := result["daily"].([]interface{}); !ok || len(daily) != 7 {
			t.Errorf("expected 7 daily buckets, got %v", result["daily"])
		}
	})
}
