package model

import "time"

// Post is a comment attached to a topic.
type Post struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	TopicID   string    `gorm:"size:36;not null;index:idx_posts_topic" json:"topic_id"`
	AuthorID  string    `gorm:"size:36;not null;index:idx_posts_author" json:"author_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Post) TableName() string { return "posts" }
