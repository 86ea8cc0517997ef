package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cashira/internal/errors"
	"cashira/internal/identity"
	"cashira/internal/middleware"
	"cashira/internal/models"
	"cashira/internal/services"
)

// AuthHandler exchanges provider ID tokens for session cookies and
// answers session lookups.
type AuthHandler struct {
	verifier    identity.Verifier
	userService services.UserServicer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(verifier identity.Verifier, userService services.UserServicer) *AuthHandler {
	return &AuthHandler{verifier: verifier, userService: userService}
}

// SigninRequest represents the sign-in request payload.
type SigninRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// UserResponse represents the user data in auth responses.
type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Picture  string `json:"picture,omitempty"`
	Currency string `json:"currency"`
	Theme    string `json:"theme"`
}

// Signin exchanges a Google ID token for a session cookie
// @Summary     Sign in with Google
// @Description Verify a Google ID token, create the user on first sign-in, and set a session cookie
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body SigninRequest true "Google ID token"
// @Success     200 {object} UserResponse "Signed in"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid ID token"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/signin [post]
func (h *AuthHandler) Signin(c *gin.Context) {
	var req SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	id, err := h.verifier.VerifyToken(c.Request.Context(), req.IDToken)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInvalidIDToken, err))
		return
	}

	user, err := h.userService.GetOrCreateFromIdentity(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.IssueSessionToken(user.ID, user.Email)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	middleware.SetSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{"user": userResponse(user)})
}

// Signout clears the session cookie
// @Summary     Sign out
// @Description Clear the session cookie
// @Tags        auth
// @Produce     json
// @Success     200 {object} MessageResponse "Signed out"
// @Router      /auth/signout [post]
func (h *AuthHandler) Signout(c *gin.Context) {
	middleware.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out successfully"})
}

// Me returns the current session user
// @Summary     Current user
// @Description Return the user for the current session cookie, or null when there is no valid session
// @Tags        auth
// @Produce     json
// @Success     200 {object} UserResponse "Current user or null"
// @Router      /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	// A missing or invalid session is not an error here: the client uses
	// this endpoint to decide whether to show the login screen.
	cookie, err := c.Cookie(middleware.SessionCookieName)
	if err != nil || cookie == "" {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}

	claims, err := middleware.ParseSessionToken(cookie)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}

	user, err := h.userService.GetUserByID(claims.Subject)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userResponse(user)})
}

func userResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Picture:  user.Picture,
		Currency: user.Currency,
		Theme:    string(user.Theme),
	}
}
