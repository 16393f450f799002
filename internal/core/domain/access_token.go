package domain

import "time"

// AccessToken is a signed bearer token issued at login.
type AccessToken struct {
	Token     string    `json:"accessToken"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IsExpired checks if the token has expired
func (t AccessToken) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
