package services

import (
	"time"

	"golang.org/x/sync/errgroup"

	"cashira/internal/models"
	"cashira/internal/stats"
)

// statsService runs the pure aggregation engine over the owner's
// fetched transaction list.
type statsService struct {
	transactions TransactionServicer
}

// NewStatsService creates a new StatsServicer.
func NewStatsService(transactions TransactionServicer) StatsServicer {
	return &statsService{transactions: transactions}
}

// Totals computes overall income, expense, and balance for the owner.
func (s *statsService) Totals(ownerID string) (stats.Totals, error) {
	txs, err := s.transactions.ListAll(ownerID)
	if err != nil {
		return stats.Totals{}, err
	}
	return stats.ComputeTotals(txs)
}

// Chart computes one chart series for the owner around the reference date.
func (s *statsService) Chart(ownerID string, timeframe stats.Timeframe, ref time.Time) ([]stats.Bucket, error) {
	txs, err := s.transactions.ListAll(ownerID)
	if err != nil {
		return nil, err
	}
	return stats.BucketByTimeframe(txs, timeframe, ref)
}

// Categories sums the owner's transactions of the given kind per category.
func (s *statsService) Categories(ownerID string, kind models.TransactionKind) ([]stats.CategoryAmount, error) {
	txs, err := s.transactions.ListAll(ownerID)
	if err != nil {
		return nil, err
	}
	return stats.GroupByCategory(txs, kind)
}

// Summary computes the totals and all three chart series over a single
// fetched list. The engine is pure and shares nothing, so the four
// aggregations run concurrently on the same slice.
func (s *statsService) Summary(ownerID string, ref time.Time) (*Summary, error) {
	txs, err := s.transactions.ListAll(ownerID)
	if err != nil {
		return nil, err
	}

	var summary Summary
	var g errgroup.Group
	g.Go(func() error {
		var err error
		summary.Totals, err = stats.ComputeTotals(txs)
		return err
	})
	g.Go(func() error {
		var err error
		summary.Daily, err = stats.BucketByTimeframe(txs, stats.TimeframeDaily, ref)
		return err
	})
	g.Go(func() error {
		var err error
		summary.Weekly, err = stats.BucketByTimeframe(txs, stats.TimeframeWeekly, ref)
		return err
	})
	g.Go(func() error {
		var err error
		summary.Monthly, err = stats.BucketByTimeframe(txs, stats.TimeframeMonthly, ref)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &summary, nil
}

// GroupedByDate groups the owner's transactions by calendar day for the
// list view, preserving the store's occurred_at-descending order.
func (s *statsService) GroupedByDate(ownerID string, now time.Time) ([]stats.DateGroup, error) {
	txs, err := s.transactions.ListAll(ownerID)
	if err != nil {
		return nil, err
	}
	return stats.GroupByCalendarDate(txs, now)
}
