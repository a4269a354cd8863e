package model

import "time"

// Topic likes is a denormalized counter over topic_likes rows. It is updated
// in the same transaction as the junction row and reconciled periodically.
type Topic struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Title      string    `gorm:"size:200;not null" json:"title"`
	Content    string    `gorm:"type:text" json:"content"`
	AuthorID   string    `gorm:"size:36;not null;index:idx_topics_author" json:"author_id"`
	CategoryID string    `gorm:"size:36;not null;index:idx_topics_category" json:"category_id"`
	IsHot      bool      `gorm:"not null;default:false" json:"is_hot"`
	IsQuestion bool      `gorm:"not null;default:false" json:"is_question"`
	Likes      int64     `gorm:"not null;default:0" json:"likes"`
	CreatedAt  time.Time `gorm:"index:idx_topics_created" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Topic) TableName() string { return "topics" }
