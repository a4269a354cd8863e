package model

import "time"

// Subscription points at either a topic or a category, never both.
type Subscription struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserID     string    `gorm:"size:36;not null;index" json:"user_id"`
	TopicID    *string   `gorm:"size:36;index" json:"topic_id"`
	CategoryID *string   `gorm:"size:36;index" json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Subscription) TableName() string { return "subscriptions" }
