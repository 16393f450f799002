package models

import (
	"database/sql"
	"time"
)

// User is a row of the users table.
type User struct {
	UserID            string         `db:"user_id"`
	Username          string         `db:"username"`
	Email             string         `db:"email"`
	Phone             sql.NullString `db:"phone"` // optional, unique when present
	FirstName         string         `db:"first_name"`
	LastName          string         `db:"last_name"`
	PasswordHash      string         `db:"password_hash"`
	PreferredCurrency string         `db:"preferred_currency"`
	CreatedAt         time.Time      `db:"created_at"`
	LastLogin         *time.Time     `db:"last_login"`
}
