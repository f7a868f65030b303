package models

import "time"

// Product represents a submitted product listing.
//
// Upvotes and Comments are denormalized counters: each must equal the number
// of Vote (resp. Comment) records referencing the product. They are mutated
// only inside the vote and comment ledger transactions.
type Product struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name          string    `json:"name" gorm:"type:varchar(100);not null" validate:"required,min=1,max=100"`
	Tagline       string    `json:"tagline" gorm:"type:varchar(255);not null" validate:"required,max=255"`
	Description   string    `json:"description" gorm:"type:text" validate:"required,max=2000"`
	Website       string    `json:"website" gorm:"type:varchar(255)" validate:"required,url"`
	Logo          string    `json:"logo" gorm:"type:varchar(255)"`
	Category      string    `json:"category" gorm:"type:varchar(100);default:Global"`
	Medias        []string  `json:"medias" gorm:"serializer:json" validate:"omitempty,max=5,dive,url"`
	SubmittedByID string    `json:"submittedById" gorm:"index;type:varchar(36);not null"`
	SubmittedBy   *User     `json:"submittedBy,omitempty" gorm:"foreignKey:SubmittedByID"`
	Upvotes       int       `json:"upvotes" gorm:"default:0"`
	Comments      int       `json:"comments" gorm:"default:0"`
	CreatedAt     time.Time `json:"createdAt"`
}
