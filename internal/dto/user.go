package dto

// RegisterUserRequest defines the data needed to sign up.
type RegisterUserRequest struct {
	Username          string `json:"username" binding:"required,min=3,max=64"`
	Email             string `json:"email" binding:"required,email,max=120"`
	Phone             string `json:"phone" binding:"omitempty,min=10,max=16"`
	FirstName         string `json:"firstName" binding:"max=64"`
	LastName          string `json:"lastName" binding:"max=64"`
	Password          string `json:"password" binding:"required,min=8,max=72"` // bcrypt ignores bytes past 72
	PreferredCurrency string `json:"preferredCurrency" binding:"omitempty,currency"`
}

// LoginRequest holds the credentials for password login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdatePreferredCurrencyRequest changes the currency a not-yet-opened account will use.
type UpdatePreferredCurrencyRequest struct {
	Currency string `json:"currency" binding:"required,currency"`
}
