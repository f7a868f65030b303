package models

import "time"

// User represents a registered member of the platform.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name      string    `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	UserID    string    `json:"userId" gorm:"uniqueIndex;type:varchar(12);not null"` // short public id, generated at registration
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string    `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash
	Upvotes   int       `json:"upvotes" gorm:"default:0"`                             // maintained by the vote ledger only
	CreatedAt time.Time `json:"createdAt"`
}

// Profile is the public view of a user. The totals are recomputed from the
// product and vote record sets on read, not taken from stored counters.
type Profile struct {
	User
	TotalSubmissions int64 `json:"totalSubmissions"`
	TotalVotes       int64 `json:"totalVotes"`
}
