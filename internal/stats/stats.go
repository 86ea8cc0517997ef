// Package stats is the transaction aggregation engine: pure
// transformations from a flat list of transactions into the derived
// views the application serves. No I/O, no retained state, inputs are
// never mutated, and no particular input order is assumed.
package stats

import (
	"fmt"
	"time"

	"cashira/internal/models"
)

// Timeframe selects the bucketing mode for chart series.
type Timeframe string

const (
	TimeframeDaily   Timeframe = "daily"
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
)

// Valid reports whether t is a recognized timeframe.
func (t Timeframe) Valid() bool {
	switch t {
	case TimeframeDaily, TimeframeWeekly, TimeframeMonthly:
		return true
	}
	return false
}

// Totals holds the overall income/expense sums in cents.
type Totals struct {
	TotalIncome  int64 `json:"total_income"`
	TotalExpense int64 `json:"total_expense"`
	Balance      int64 `json:"balance"`
}

// Bucket is one chart data point: a time window (or, in monthly mode, a
// category) with independently accumulated income and expense sums.
type Bucket struct {
	Label   string `json:"label"`
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
}

// CategoryAmount is a category together with its summed amount.
type CategoryAmount struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
}

// DateGroup is a list-view group of transactions sharing a calendar day.
type DateGroup struct {
	Label        string               `json:"label"`
	Transactions []models.Transaction `json:"transactions"`
}

// check enforces the engine's input precondition: every transaction has
// a positive amount and a known kind. Validation belongs upstream in
// the store adapter; receiving a malformed transaction here is a caller
// bug and fails loudly rather than being coerced.
func check(t *models.Transaction) error {
	if t.Amount <= 0 {
		return fmt.Errorf("transaction %s: non-positive amount %d", t.ID, t.Amount)
	}
	if !t.Kind.Valid() {
		return fmt.Errorf("transaction %s: unknown kind %q", t.ID, t.Kind)
	}
	return nil
}

// ComputeTotals sums income and expense over the whole list.
// The empty list yields all-zero totals.
func ComputeTotals(txs []models.Transaction) (Totals, error) {
	var totals Totals
	for i := range txs {
		if err := check(&txs[i]); err != nil {
			return Totals{}, err
		}
		switch txs[i].Kind {
		case models.KindIncome:
			totals.TotalIncome += txs[i].Amount
		case models.KindExpense:
			totals.TotalExpense += txs[i].Amount
		}
	}
	totals.Balance = totals.TotalIncome - totals.TotalExpense
	return totals, nil
}

// BucketByTimeframe produces chart-ready buckets around ref:
//
//   - daily: exactly 7 calendar-day buckets, ref-6 days through ref,
//     oldest first, labeled with weekday abbreviations.
//   - weekly: exactly 4 Monday-Sunday week buckets ending at ref's week,
//     oldest first, labeled "Week 1" through "Week 4".
//   - monthly: transactions inside ref's calendar month grouped by
//     category in first-seen order ("where did money go this month").
//
// Transactions outside all windows are silently excluded.
func BucketByTimeframe(txs []models.Transaction, timeframe Timeframe, ref time.Time) ([]Bucket, error) {
	for i := range txs {
		if err := check(&txs[i]); err != nil {
			return nil, err
		}
	}

	switch timeframe {
	case TimeframeDaily:
		return bucketDaily(txs, ref), nil
	case TimeframeWeekly:
		return bucketWeekly(txs, ref), nil
	case TimeframeMonthly:
		return bucketMonthlyByCategory(txs, ref), nil
	default:
		return nil, fmt.Errorf("unknown timeframe %q", timeframe)
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// startOfDay truncates t to midnight in t's location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Monday midnight beginning t's week.
func startOfWeek(t time.Time) time.Time {
	d := startOfDay(t)
	offset := (int(d.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return d.AddDate(0, 0, -offset)
}

func bucketDaily(txs []models.Transaction, ref time.Time) []Bucket {
	days := make([]time.Time, 7)
	buckets := make([]Bucket, 7)
	for i := 0; i < 7; i++ {
		day := ref.AddDate(0, 0, i-6)
		days[i] = day
		buckets[i] = Bucket{Label: day.Format("Mon")}
	}

	for i := range txs {
		for j := range days {
			if sameDay(txs[i].OccurredAt, days[j]) {
				accumulate(&buckets[j], &txs[i])
				break
			}
		}
	}
	return buckets
}

func bucketWeekly(txs []models.Transaction, ref time.Time) []Bucket {
	starts := make([]time.Time, 4)
	buckets := make([]Bucket, 4)
	for i := 0; i < 4; i++ {
		starts[i] = startOfWeek(ref).AddDate(0, 0, -7*(3-i))
		buckets[i] = Bucket{Label: fmt.Sprintf("Week %d", i+1)}
	}

	for i := range txs {
		at := txs[i].OccurredAt
		for j := range starts {
			if !at.Before(starts[j]) && at.Before(starts[j].AddDate(0, 0, 7)) {
				accumulate(&buckets[j], &txs[i])
				break
			}
		}
	}
	return buckets
}

func bucketMonthlyByCategory(txs []models.Transaction, ref time.Time) []Bucket {
	refYear, refMonth, _ := ref.Date()

	index := make(map[string]int)
	buckets := []Bucket{}
	for i := range txs {
		y, m, _ := txs[i].OccurredAt.Date()
		if y != refYear || m != refMonth {
			continue
		}
		cat := txs[i].Category
		j, ok := index[cat]
		if !ok {
			j = len(buckets)
			index[cat] = j
			buckets = append(buckets, Bucket{Label: titleCase(cat)})
		}
		accumulate(&buckets[j], &txs[i])
	}
	return buckets
}

func accumulate(b *Bucket, t *models.Transaction) {
	if t.Kind == models.KindIncome {
		b.Income += t.Amount
	} else {
		b.Expense += t.Amount
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}

// GroupByCategory filters to the given kind and sums amounts per
// category. Categories without a matching transaction are absent, and
// the result preserves first-seen order; consumers wanting a sorted
// view must sort explicitly.
func GroupByCategory(txs []models.Transaction, kind models.TransactionKind) ([]CategoryAmount, error) {
	index := make(map[string]int)
	result := []CategoryAmount{}
	for i := range txs {
		if err := check(&txs[i]); err != nil {
			return nil, err
		}
		if txs[i].Kind != kind {
			continue
		}
		cat := txs[i].Category
		j, ok := index[cat]
		if !ok {
			j = len(result)
			index[cat] = j
			result = append(result, CategoryAmount{Category: cat})
		}
		result[j].Amount += txs[i].Amount
	}
	return result, nil
}

// GroupByCalendarDate groups transactions by the calendar day of
// OccurredAt for list views, relative to now: "Today", "Yesterday", or
// a long-form date. Groups appear in first-occurrence order and members
// keep the relative order of the input (typically most-recent-first,
// since the store lists by occurred_at descending).
func GroupByCalendarDate(txs []models.Transaction, now time.Time) ([]DateGroup, error) {
	yesterday := now.AddDate(0, 0, -1)

	index := make(map[string]int)
	groups := []DateGroup{}
	for i := range txs {
		if err := check(&txs[i]); err != nil {
			return nil, err
		}

		var label string
		switch {
		case sameDay(txs[i].OccurredAt, now):
			label = "Today"
		case sameDay(txs[i].OccurredAt, yesterday):
			label = "Yesterday"
		default:
			label = txs[i].OccurredAt.Format("January 2, 2006")
		}

		j, ok := index[label]
		if !ok {
			j = len(groups)
			index[label] = j
			groups = append(groups, DateGroup{Label: label})
		}
		groups[j].Transactions = append(groups[j].Transactions, txs[i])
	}
	return groups, nil
}
