package models

import "time"

// Vote is one user's upvote of one product. The composite unique index is
// the store-level guarantee that at most one vote exists per (user, product)
// pair, whatever the toggle requests race to.
type Vote struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"userId" gorm:"type:varchar(36);not null;uniqueIndex:idx_votes_user_product"`
	ProductID string    `json:"productId" gorm:"type:varchar(36);not null;uniqueIndex:idx_votes_user_product"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `json:"createdAt"`
}
