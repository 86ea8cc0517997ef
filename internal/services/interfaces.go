package services

import (
	"time"

	"cashira/internal/identity"
	"cashira/internal/models"
	"cashira/internal/pagination"
	"cashira/internal/stats"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	GetOrCreateFromIdentity(id *identity.Identity) (*models.User, error)
	GetUserByID(userID string) (*models.User, error)
	UpdatePreferences(userID string, update PreferenceUpdate) (*models.User, error)
}

// PreferenceUpdate holds optional preference fields; nil means unchanged.
type PreferenceUpdate struct {
	Currency *string
	Theme    *models.Theme
}

// TransactionDraft is an unsaved transaction payload submitted for
// creation. The id and recorded_at fields are server-assigned.
type TransactionDraft struct {
	Amount     int64
	Kind       models.TransactionKind
	Category   string
	Note       string
	OccurredAt time.Time
}

// TransactionUpdate holds optional transaction fields; nil means
// unchanged. recorded_at is immutable and deliberately absent.
type TransactionUpdate struct {
	Amount     *int64
	Kind       *models.TransactionKind
	Category   *string
	Note       *string
	OccurredAt *time.Time
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Kind     *models.TransactionKind
	Category *string
	FromDate *time.Time
	ToDate   *time.Time
}

// TransactionServicer defines the contract for the per-owner transaction
// store. Every operation is partitioned by owner ID; cross-owner
// visibility is forbidden.
type TransactionServicer interface {
	Create(ownerID string, draft TransactionDraft) (*models.Transaction, error)
	List(ownerID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	ListAll(ownerID string) ([]models.Transaction, error)
	GetByID(ownerID, transactionID string) (*models.Transaction, error)
	Update(ownerID, transactionID string, fields TransactionUpdate) (*models.Transaction, error)
	Delete(ownerID, transactionID string) error
}

// Summary bundles the totals and all three chart series for the
// dashboard in a single response.
type Summary struct {
	Totals  stats.Totals  `json:"totals"`
	Daily   []stats.Bucket `json:"daily"`
	Weekly  []stats.Bucket `json:"weekly"`
	Monthly []stats.Bucket `json:"monthly"`
}

// StatsServicer exposes the aggregation engine over the transaction store.
type StatsServicer interface {
	Totals(ownerID string) (stats.Totals, error)
	Chart(ownerID string, timeframe stats.Timeframe, ref time.Time) ([]stats.Bucket, error)
	Categories(ownerID string, kind models.TransactionKind) ([]stats.CategoryAmount, error)
	Summary(ownerID string, ref time.Time) (*Summary, error)
	GroupedByDate(ownerID string, now time.Time) ([]stats.DateGroup, error)
}
