package model

import "time"

type SavedTopic struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	TopicID   string    `gorm:"size:36;not null;index;uniqueIndex:uk_topic_user_save" json:"topic_id"`
	UserID    string    `gorm:"size:36;not null;index;uniqueIndex:uk_topic_user_save" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (SavedTopic) TableName() string { return "saved_topics" }
