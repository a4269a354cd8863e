package model

import "time"

type TopicLike struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	TopicID   string    `gorm:"size:36;not null;index;uniqueIndex:uk_topic_user_like" json:"topic_id"`
	UserID    string    `gorm:"size:36;not null;index;uniqueIndex:uk_topic_user_like" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (TopicLike) TableName() string { return "topic_likes" }
