package models

import (
	"time"

	"cashira/internal/uuid"

	"gorm.io/gorm"
)

// TransactionKind is the income/expense direction of a transaction.
// Direction is always carried by the kind, never by a negative amount.
type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

// Valid reports whether k is a recognized transaction kind.
func (k TransactionKind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Categories is the fixed set of transaction categories. Free-form
// categories are not supported.
var Categories = []string{
	"food", "transport", "shopping", "entertainment", "health",
	"education", "bills", "home", "salary", "gifts", "savings", "other",
}

// ValidCategory reports whether name is one of the fixed categories.
func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Transaction represents a single income or expense entry. Transactions
// are partitioned per owner and never shared across users. Rows are
// deleted permanently; there is no soft-delete column.
type Transaction struct {
	ID       string          `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID  string          `gorm:"type:uuid;not null;index" json:"owner_id"`
	Amount   int64           `gorm:"type:bigint;not null" json:"amount"` // minor units (cents), always > 0
	Kind     TransactionKind `gorm:"not null" json:"kind"`
	Category string          `gorm:"not null" json:"category"`
	Note     string          `gorm:"size:500" json:"note,omitempty"`

	// OccurredAt is the user-supplied date the transaction represents and
	// may be edited. RecordedAt is set once at creation and never mutated.
	OccurredAt time.Time `gorm:"not null;index" json:"occurred_at"`
	RecordedAt time.Time `gorm:"not null" json:"recorded_at"`
}

// BeforeCreate hook assigns a UUIDv7 id and the immutable creation timestamp.
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New()
	}
	if t.RecordedAt.IsZero() {
		t.RecordedAt = time.Now()
	}
	return nil
}
