package services

import (
	"testing"
	"time"

	"cashira/internal/models"
	"cashira/internal/stats"
	"cashira/internal/testutil"
)

func TestStatsService_Totals(t *testing.T) {
	t.Run("totals cover only the owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		txSvc := NewTransactionService(db)
		svc := NewStatsService(txSvc)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		testutil.CreateTestTransaction(t, db, owner.ID, models.KindIncome, 5000, "salary")
		testutil.CreateTestTransaction(t, db, owner.ID, models.KindExpense, 2000, "food")
		testutil.CreateTestTransaction(t, db, owner.ID, models.KindExpense, 1000, "food")
		testutil.CreateTestTransaction(t, db, other.ID, models.KindExpense, 9999, "bills")

		totals, err := svc.Totals(owner.ID)
		testutil.AssertNoError(t, err)

		if totals.TotalIncome != 5000 || totals.TotalExpense != 3000 || totals.Balance != 2000 {
			t.Errorf("unexpected totals: %+v", totals)
		}
	})

	t.Run("owner with no transactions gets zero totals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStatsService(NewTransactionService(db))
		owner := testutil.CreateTestUser(t, db)

		totals, err := svc.Totals(owner.ID)
		testutil.AssertNoError(t, err)
		if totals != (stats.Totals{}) {
			t.Errorf("expected zero totals, got %+v", totals)
		}
	})
}

func TestStatsService_Chart(t *testing.T) {
	t.Run("daily chart has 7 buckets with sums at the right day", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStatsService(NewTransactionService(db))
		owner := testutil.CreateTestUser(t, db)

		ref := time.Now()
		testutil.CreateTestTransactionAt(t, db, owner.ID, models.KindExpense, 300, "food", ref)
		testutil.CreateTestTransactionAt(t, db, owner.ID, models.KindExpense, 100, "food", ref.AddDate(0, 0, -8))

		buckets, err := svc.Chart(owner.ID, stats.TimeframeDaily, ref)
		testutil.AssertNoError(t, err)

		if len(buckets) != 7 {
			t.Fatalf("expected 7 buckets, got %d", len(buckets))
		}
		if buckets[6].Expense != 300 {
			t.Errorf("expected today's bucket to hold 300, got %d", buckets[6].Expense)
		}
		var total int64
		for _, b := range buckets {
			total += b.Expense
		}
		if total != 300 {
			t.Errorf("expected out-of-window transaction excluded, got total %d", total)
		}
	})

	t.Run("weekly chart has 4 buckets", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStatsService(NewTransactionService(db))
		owner := testutil.CreateTestUser(t, db)

		buckets, err := svc.Chart(owner.ID, stats.TimeframeWeekly, time.Now())
		testutil.AssertNoError(t, err)
		if len(buckets) != 4 {
			t.Fatalf("expected 4 buckets, got %d", len(buckets))
		}
	})

	t.Run("unknown timeframe is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStatsService(NewTransactionService(db))
		owner := testutil.CreateTestUser(t, db)

		if _, err := svc.Chart(owner.ID, stats.Timeframe("yearly"), time.Now()); err == nil {
			t.Fatal("expected error for unknown timeframe")
		}
	})
}

func TestStatsService_Categories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewStatsService(NewTransactionService(db))
	owner := testutil.CreateTestUser(t, db)

	testutil.CreateTestTransaction(t, db, owner.ID, models.KindIncome, 5000, "salary")
	testutil.CreateTestTransaction(t, db, owner.ID, models.KindExpense, 2000, "food")
	testutil.CreateTestTransaction(t, db, owner.ID, models.KindExpense, 1000, "food")

	groups, err := svc.Categories(owner.ID, models.KindExpense)
	testutil.AssertNoError(t, err)

	if len(groups) != 1 {
		t.Fatalf("expected 1 category, got %d", len(groups))
	}
	if groups[0].Category != "food" || groups[0].Amount != 3000 {
		t.Errorf("expected food=3000, got %+v", groups[0])
	}
}

func TestStatsService_Summary(t *testing.T) {
	t.Run("series agree with totals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStatsService(NewTransactionService(db))
		owner := testutil.CreateTestUser(t, db)

		ref := time.Now()
		testutil.CreateTestTransactionAt(t, db, owner.ID, models.KindIncome, 5000, "salary", ref)
		testutil.CreateTestTransactionAt(t, db, owner.ID, models.KindExpense, 2000, "food", ref.AddDate(0, 0, -1))
		testutil.CreateTestTransactionAt(t, db, owner.ID, models.KindExpense, 1000, "bills", ref.AddDate(0, 0, -2))

		summary, err := svc.Summary(owner.ID, ref)
		testutil.AssertNoError(t, err)

		if summary.Totals.TotalIncome != 5000 || summary.Totals.TotalExpense != 3000 {
			t.Errorf("unexpected totals: %+v", summary.Totals)
		}
		if len(summary.Daily) != 7 {
			t.Errorf("expected 7 daily buckets, got %d", len(summary.Daily))
		}
		if len(summary.Weekly) != 4 {
			t.Errorf("expected 4 weekly buckets, got %d", len(summary.Weekly))
		}

		var daily int64
		for _, b := range summary.Daily {
			daily += b.Income + b.Expense
		}
		if daily != 8000 {
			t.Errorf("expected daily series to cover all recent transactions, got %d", daily)
		}
	})

	t.Run("empty owner gets zero-filled summary", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStatsService(NewTransactionService(db))
		owner := testutil.CreateTestUser(t, db)

		summary, err := svc.Summary(owner.ID, time.Now())
		testutil.AssertNoError(t, err)
		if summary.Totals != (stats.Totals{}) {
			t.Errorf("expected zero totals, got %+v", summary.Totals)
		}
		if len(summary.Daily) != 7 || len(summary.Weekly) != 4 {
			t.Errorf("expected zero-filled series, got %d daily / %d weekly", len(summary.Daily), len(summary.Weekly))
		}
		if len(summary.Monthly) != 0 {
			t.Errorf("expected no monthly categories, got %+v", summary.Monthly)
		}
	})
}

func TestStatsService_GroupedByDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewStatsService(NewTransactionService(db))
	owner := testutil.CreateTestUser(t, db)

	now := time.Now()
	testutil.CreateTestTransactionAt(t, db, owner.ID, models.KindExpense, 100, "food", now)
	testutil.CreateTestTransactionAt(t, db, owner.ID, models.KindExpense, 200, "bills", now.AddDate(0, 0, -1))

	groups, err := svc.GroupedByDate(owner.ID, now)
	testutil.AssertNoError(t, err)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Label != "Today" || groups[1].Label != "Yesterday" {
		t.Errorf("unexpected labels: %q, %q", groups[0].Label, groups[1].Label)
	}
}
