package models

// Theme is a user's display theme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is a recognized theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// User represents an authenticated Google user together with their
// display preferences. There is no local credential: authentication is
// delegated entirely to the identity provider.
type User struct {
	Base
	GoogleID string `gorm:"uniqueIndex;not null" json:"-"`
	Email    string `gorm:"index" json:"email"`
	Name     string `json:"name"`
	Picture  string `json:"picture,omitempty"`

	// Preferences. Currency is an ISO 4217 code; empty means "not chosen
	// yet", in which case the API resolves one via geolocation.
	Currency string `gorm:"size:3" json:"currency"`
	Theme    Theme  `gorm:"default:light" json:"theme"`

	Transactions []Transaction `gorm:"foreignKey:OwnerID" json:"-"`
}
