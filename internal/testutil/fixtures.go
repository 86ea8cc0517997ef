package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"cashira/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a unique Google subject and email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	n := nextID()
	user := &models.User{
		GoogleID: fmt.Sprintf("google-sub-%d", n),
		Email:    fmt.Sprintf("user%d@test.com", n),
		Name:     fmt.Sprintf("Test User %d", n),
		Theme:    models.ThemeLight,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestTransaction creates a transaction of the given kind and
// amount (in cents) dated now.
func CreateTestTransaction(t *testing.T, db *gorm.DB, ownerID string, kind models.TransactionKind, amount int64, category string) *models.Transaction {
	t.Helper()
	return CreateTestTransactionAt(t, db, ownerID, kind, amount, category, time.Now())
}

// CreateTestTransactionAt creates a transaction with an explicit
// occurred_at date.
func CreateTestTransactionAt(t *testing.T, db *gorm.DB, ownerID string, kind models.TransactionKind, amount int64, category string, occurredAt time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		OwnerID:    ownerID,
		Amount:     amount,
		Kind:       kind,
		Category:   category,
		OccurredAt: occurredAt,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}
