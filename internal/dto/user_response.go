package dto

import (
	"time"

	"github.com/SscSPs/p2p_ledger/internal/core/domain"
)

type UserResponse struct {
	UserID            string     `json:"userID"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone,omitempty"`
	FirstName         string     `json:"firstName"`
	LastName          string     `json:"lastName"`
	PreferredCurrency string     `json:"preferredCurrency"`
	CreatedAt         time.Time  `json:"createdAt"`
	LastLogin         *time.Time `json:"lastLogin,omitempty"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:            user.UserID,
		Username:          user.Username,
		Email:             user.Email,
		Phone:             user.Phone,
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		PreferredCurrency: user.PreferredCurrency.String(),
		CreatedAt:         user.CreatedAt,
		LastLogin:         user.LastLogin,
	}
}
