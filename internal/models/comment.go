package models

import "time"

// Comment is a user comment on a product.
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Content   string    `json:"content" gorm:"type:text;not null" validate:"required,max=2000"`
	AuthorID  string    `json:"authorId" gorm:"index;type:varchar(36);not null"`
	Author    *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	ProductID string    `json:"productId" gorm:"index;type:varchar(36);not null"`
	CreatedAt time.Time `json:"createdAt"`
}
