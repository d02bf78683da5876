package entity

import "time"

// User is an authentication collaborator, not part of the
// reservation core; bookings reference it by id only.
type User struct {
	UserID       string
	Username     string
	FullName     string
	PasswordHash string
	CreatedAt    time.Time
}
