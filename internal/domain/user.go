package domain

import "time"

// User represents a registered account. Usernames are unique and never change;
// the password hash is only ever inspected through bcrypt comparison.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
