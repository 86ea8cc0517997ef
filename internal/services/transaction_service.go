package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "cashira/internal/errors"
	"cashira/internal/models"
	"cashira/internal/pagination"
)

// transactionService is the store adapter for per-owner transactions.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// Create validates a draft and persists it for the owner. The id and
// recorded_at fields are assigned by the store, never by the caller.
func (s *transactionService) Create(ownerID string, draft TransactionDraft) (*models.Transaction, error) {
	if ownerID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if draft.Amount <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}
	if !draft.Kind.Valid() {
		return nil, apperrors.ErrInvalidKind
	}
	if !models.ValidCategory(draft.Category) {
		return nil, apperrors.ErrInvalidCategory
	}

	occurredAt := draft.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	transaction := &models.Transaction{
		OwnerID:    ownerID,
		Amount:     draft.Amount,
		Kind:       draft.Kind,
		Category:   draft.Category,
		Note:       draft.Note,
		OccurredAt: occurredAt,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// List retrieves a paginated, filtered list of the owner's transactions,
// sorted by occurred_at descending.
func (s *transactionService) List(ownerID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("owner_id = ?", ownerID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("occurred_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// ListAll retrieves every transaction for the owner, sorted by
// occurred_at descending. This is the shape the aggregation engine
// consumes; personal-finance lists are small enough to hold in memory.
func (s *transactionService) ListAll(ownerID string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Where("owner_id = ?", ownerID).
		Order("occurred_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.Kind != nil {
		q = q.Where("kind = ?", *f.Kind)
	}
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if f.FromDate != nil {
		q = q.Where("occurred_at >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("occurred_at <= ?", *f.ToDate)
	}
	return q
}

// GetByID retrieves a transaction by ID, scoped to the owner. A
// transaction belonging to another owner is indistinguishable from a
// missing one.
func (s *transactionService) GetByID(ownerID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND owner_id = ?", transactionID, ownerID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// Update edits the mutable fields of an owned transaction. recorded_at
// is never written after creation.
func (s *transactionService) Update(ownerID, transactionID string, fields TransactionUpdate) (*models.Transaction, error) {
	transaction, err := s.GetByID(ownerID, transactionID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if fields.Amount != nil {
		if *fields.Amount <= 0 {
			return nil, apperrors.ErrInvalidAmount
		}
		updates["amount"] = *fields.Amount
	}
	if fields.Kind != nil {
		if !fields.Kind.Valid() {
			return nil, apperrors.ErrInvalidKind
		}
		updates["kind"] = *fields.Kind
	}
	if fields.Category != nil {
		if !models.ValidCategory(*fields.Category) {
			return nil, apperrors.ErrInvalidCategory
		}
		updates["category"] = *fields.Category
	}
	if fields.Note != nil {
		updates["note"] = *fields.Note
	}
	if fields.OccurredAt != nil {
		updates["occurred_at"] = *fields.OccurredAt
	}

	if len(updates) > 0 {
		if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return transaction, nil
}

// Delete permanently removes an owned transaction. There is no
// soft-delete and no undo.
func (s *transactionService) Delete(ownerID, transactionID string) error {
	transaction, err := s.GetByID(ownerID, transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
