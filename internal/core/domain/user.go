package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/SscSPs/p2p_ledger/internal/apperrors"
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.]*$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern    = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

// User represents a user of the application in the domain.
type User struct {
	UserID            string       `json:"userID"`
	Username          string       `json:"username"`
	Email             string       `json:"email"`
	Phone             string       `json:"phone,omitempty"` // optional
	FirstName         string       `json:"firstName"`
	LastName          string       `json:"lastName"`
	PasswordHash      string       `json:"-"`
	PreferredCurrency CurrencyCode `json:"preferredCurrency"`
	CreatedAt         time.Time    `json:"createdAt"`
	LastLogin         *time.Time   `json:"lastLogin,omitempty"`
}

// NewUserParams holds the registration fields.
type NewUserParams struct {
	UserID            string
	Username          string
	Email             string
	Phone             string
	FirstName         string
	LastName          string
	PasswordHash      string
	PreferredCurrency string
	CreatedAt         time.Time
}

// NewUser validates the registration fields and builds a User.
func NewUser(p NewUserParams) (User, error) {
	currency := DefaultCurrency
	if strings.TrimSpace(p.PreferredCurrency) != "" {
		code, err := ParseCurrencyCode(p.PreferredCurrency)
		if err != nil {
			return User{}, err
		}
		currency = code
	}

	u := User{
		UserID:            p.UserID,
		Username:          strings.TrimSpace(p.Username),
		Email:             NormalizeEmail(p.Email),
		Phone:             strings.TrimSpace(p.Phone),
		FirstName:         strings.TrimSpace(p.FirstName),
		LastName:          strings.TrimSpace(p.LastName),
		PasswordHash:      p.PasswordHash,
		PreferredCurrency: currency,
		CreatedAt:         p.CreatedAt,
	}

	if u.UserID == "" {
		return User{}, fmt.Errorf("%w: user ID is required", apperrors.ErrValidation)
	}
	if !usernamePattern.MatchString(u.Username) || len(u.Username) > 64 {
		return User{}, fmt.Errorf("%w: username must start with a letter and can only contain letters, numbers, dots or underscores", apperrors.ErrValidation)
	}
	if !emailPattern.MatchString(u.Email) || len(u.Email) > 120 {
		return User{}, fmt.Errorf("%w: invalid email format", apperrors.ErrValidation)
	}
	if u.Phone != "" && !phonePattern.MatchString(u.Phone) {
		return User{}, fmt.Errorf("%w: invalid phone number format", apperrors.ErrValidation)
	}
	if u.PasswordHash == "" {
		return User{}, fmt.Errorf("%w: password is required", apperrors.ErrValidation)
	}
	return u, nil
}

// NormalizeEmail lower-cases and trims an email address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RecipientSelector identifies a transfer recipient by email or phone.
type RecipientSelector struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Normalize trims both fields and lower-cases the email.
func (s RecipientSelector) Normalize() RecipientSelector {
	return RecipientSelector{Email: NormalizeEmail(s.Email), Phone: strings.TrimSpace(s.Phone)}
}

// IsEmpty reports whether neither field is set.
func (s RecipientSelector) IsEmpty() bool {
	return strings.TrimSpace(s.Email) == "" && strings.TrimSpace(s.Phone) == ""
}
