package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "cashira/internal/errors"
	"cashira/internal/currency"
	"cashira/internal/identity"
	"cashira/internal/models"
)

// userService handles user lookup and preference business logic.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// GetOrCreateFromIdentity finds the user for a verified provider
// identity, creating one on first sign-in. Profile fields are refreshed
// from the provider on every call; preferences are never touched.
func (s *userService) GetOrCreateFromIdentity(id *identity.Identity) (*models.User, error) {
	if id == nil || id.Subject == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "identity subject is required")
	}

	var user models.User
	err := s.db.Where("google_id = ?", id.Subject).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			GoogleID: id.Subject,
			Email:    id.Email,
			Name:     id.Name,
			Picture:  id.Picture,
			Theme:    models.ThemeLight,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &user, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := map[string]interface{}{}
	if id.Email != "" && id.Email != user.Email {
		updates["email"] = id.Email
	}
	if id.Name != "" && id.Name != user.Name {
		updates["name"] = id.Name
	}
	if id.Picture != "" && id.Picture != user.Picture {
		updates["picture"] = id.Picture
	}
	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return &user, nil
}

// GetUserByID retrieves a user by internal ID.
func (s *userService) GetUserByID(userID string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// UpdatePreferences sets the user's currency and/or theme choice.
func (s *userService) UpdatePreferences(userID string, update PreferenceUpdate) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if update.Currency != nil {
		code := strings.ToUpper(*update.Currency)
		if !currency.IsSupported(code) {
			return nil, apperrors.ErrUnsupportedCurrency
		}
		updates["currency"] = code
	}
	if update.Theme != nil {
		if !update.Theme.Valid() {
			return nil, apperrors.ErrInvalidTheme
		}
		updates["theme"] = *update.Theme
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return user, nil
}
