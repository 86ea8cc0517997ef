package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cashira/internal/currency"
	apperrors "cashira/internal/errors"
	"cashira/internal/models"
	"cashira/internal/services"
)

// PreferenceHandler serves the user's currency and theme preferences.
type PreferenceHandler struct {
	userService services.UserServicer
	geoLookup   currency.GeoLookup
}

// NewPreferenceHandler creates a new PreferenceHandler.
func NewPreferenceHandler(userService services.UserServicer, geoLookup currency.GeoLookup) *PreferenceHandler {
	return &PreferenceHandler{userService: userService, geoLookup: geoLookup}
}

// PreferencesResponse represents the resolved preference set.
type PreferencesResponse struct {
	Currency currency.Currency `json:"currency"`
	Theme    string            `json:"theme"`
	// Stored reports whether the currency came from an explicit user
	// choice rather than geolocation or the default.
	Stored bool `json:"stored"`
}

// Get handles the retrieval of preferences
// @Summary     Get preferences
// @Description Get the user's theme and display currency. An unset currency is resolved by geolocation, falling back to USD; lookup failure is never an error
// @Tags        preferences
// @Produce     json
// @Success     200 {object} PreferencesResponse "Preferences"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /preferences [get]
func (h *PreferenceHandler) Get(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(ownerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resolved := currency.Resolve(c.Request.Context(), user.Currency, h.geoLookup)

	c.JSON(http.StatusOK, PreferencesResponse{
		Currency: resolved,
		Theme:    string(user.Theme),
		Stored:   user.Currency != "",
	})
}

// UpdatePreferencesRequest represents the preference update payload.
type UpdatePreferencesRequest struct {
	Currency *string `json:"currency" binding:"omitempty,currency_code"`
	Theme    *string `json:"theme" binding:"omitempty,theme"`
}

// Update handles preference changes
// @Summary     Update preferences
// @Description Set the user's display currency and/or theme
// @Tags        preferences
// @Accept      json
// @Produce     json
// @Param       request body UpdatePreferencesRequest true "Preferences to set"
// @Success     200 {object} PreferencesResponse "Updated preferences"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /preferences [put]
func (h *PreferenceHandler) Update(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	update := services.PreferenceUpdate{Currency: req.Currency}
	if req.Theme != nil {
		theme := models.Theme(*req.Theme)
		update.Theme = &theme
	}

	user, err := h.userService.UpdatePreferences(ownerID, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resolved := currency.Resolve(c.Request.Context(), user.Currency, h.geoLookup)

	c.JSON(http.StatusOK, PreferencesResponse{
		Currency: resolved,
		Theme:    string(user.Theme),
		Stored:   user.Currency != "",
	})
}
