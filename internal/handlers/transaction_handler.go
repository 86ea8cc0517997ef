package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "cashira/internal/errors"
	"cashira/internal/models"
	"cashira/internal/money"
	"cashira/internal/pagination"
	"cashira/internal/services"
)

// TransactionHandler handles transaction CRUD requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	statsService       services.StatsServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, statsService services.StatsServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, statsService: statsService}
}

// CreateTransactionRequest represents the request payload for creating a
// transaction. Amount is a decimal number of currency units (e.g. 12.34)
// converted to cents server-side.
type CreateTransactionRequest struct {
	Amount   json.Number `json:"amount" binding:"required"`
	Kind     string      `json:"kind" binding:"required,transaction_kind"`
	Category string      `json:"category" binding:"required,category"`
	Note     string      `json:"note" binding:"max=500"`
	Date     *string     `json:"occurred_at"`
}

// TransactionResponse represents a transaction in the response, with the
// amount in cents.
type TransactionResponse struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	Amount     int64     `json:"amount"`
	Kind       string    `json:"kind"`
	Category   string    `json:"category"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Create handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record a new income or expense transaction for the signed-in user
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body CreateTransactionRequest true "Transaction draft"
// @Success     201 {object} TransactionResponse "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	cents, err := money.ParseCents(req.Amount.String())
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidAmount)
		return
	}

	occurredAt := time.Now()
	if req.Date != nil && *req.Date != "" {
		parsed, parseErr := parseFlexibleTime(*req.Date)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		occurredAt = parsed
	}

	transaction, err := h.transactionService.Create(ownerID, services.TransactionDraft{
		Amount:     cents,
		Kind:       models.TransactionKind(req.Kind),
		Category:   req.Category,
		Note:       req.Note,
		OccurredAt: occurredAt,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// List handles the retrieval of the user's transactions
// @Summary     List transactions
// @Description Get the signed-in user's transactions sorted by occurred_at descending, with optional pagination and filters
// @Tags        transactions
// @Produce     json
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 50, max 200)"
// @Param       kind      query string false "Filter by kind (income, expense)"
// @Param       category  query string false "Filter by category"
// @Param       from_date query string false "Filter by start date (RFC3339 or YYYY-MM-DD)"
// @Param       to_date   query string false "Filter by end date (RFC3339 or YYYY-MM-DD)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.List(ownerID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	if v := c.Query("kind"); v != "" {
		kind := models.TransactionKind(v)
		if !kind.Valid() {
			return filter, apperrors.ErrInvalidKind
		}
		filter.Kind = &kind
	}

	if v := c.Query("category"); v != "" {
		if !models.ValidCategory(v) {
			return filter, apperrors.ErrInvalidCategory
		}
		category := v
		filter.Category = &category
	}

	if v := c.Query("from_date"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid from_date format, use RFC3339 or YYYY-MM-DD")
		}
		filter.FromDate = &t
	}

	if v := c.Query("to_date"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid to_date format, use RFC3339 or YYYY-MM-DD")
		}
		filter.ToDate = &t
	}

	return filter, nil
}

// ListGrouped handles the list view grouped by calendar day
// @Summary     List transactions grouped by date
// @Description Get the signed-in user's transactions grouped under "Today", "Yesterday", or a long-form date label
// @Tags        transactions
// @Produce     json
// @Success     200 {array} stats.DateGroup "Date groups"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/grouped [get]
func (h *TransactionHandler) ListGrouped(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	groups, err := h.statsService.GroupedByDate(ownerID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// GetByID handles the retrieval of a specific transaction
// @Summary     Get transaction by ID
// @Description Get one of the signed-in user's transactions by ID
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} TransactionResponse "Transaction details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetByID(ownerID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransactionRequest represents the request payload for updating a
// transaction. Only amount, kind, category, note, and occurred_at may
// change; recorded_at is immutable.
type UpdateTransactionRequest struct {
	Amount   *json.Number `json:"amount"`
	Kind     *string      `json:"kind" binding:"omitempty,transaction_kind"`
	Category *string      `json:"category" binding:"omitempty,category"`
	Note     *string      `json:"note" binding:"omitempty,max=500"`
	Date     *string      `json:"occurred_at"`
}

// Update handles updating an existing transaction
// @Summary     Update transaction
// @Description Update an existing transaction's amount, kind, category, note, or occurred_at
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id      path string                   true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to update"
// @Success     200 {object} TransactionResponse "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var fields services.TransactionUpdate

	if req.Amount != nil {
		cents, parseErr := money.ParseCents(req.Amount.String())
		if parseErr != nil {
			respondWithError(c, apperrors.ErrInvalidAmount)
			return
		}
		fields.Amount = &cents
	}
	if req.Kind != nil {
		kind := models.TransactionKind(*req.Kind)
		fields.Kind = &kind
	}
	fields.Category = req.Category
	fields.Note = req.Note
	if req.Date != nil && *req.Date != "" {
		parsed, parseErr := parseFlexibleTime(*req.Date)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		fields.OccurredAt = &parsed
	}

	transaction, err := h.transactionService.Update(ownerID, c.Param("id"), fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// Delete handles the permanent deletion of a transaction
// @Summary     Delete transaction
// @Description Permanently delete a transaction by ID
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.Delete(ownerID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
