package model

import "time"

// Category owner is fixed at creation time; there is no update or delete path.
type Category struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:64;not null" json:"name"`
	Icon        string    `gorm:"size:4;not null" json:"icon"`
	Color       string    `gorm:"size:32" json:"color"`
	Description string    `gorm:"type:text" json:"description"`
	OwnerID     string    `gorm:"size:36;not null;index" json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Category) TableName() string { return "categories" }
