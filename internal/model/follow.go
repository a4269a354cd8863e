package model

import "time"

// Follow rows are unique per (follower, followed). The unique index is the
// backstop; the repository still checks first so duplicates report cleanly.
type Follow struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	FollowerID string    `gorm:"size:36;not null;index:idx_follows_follower;uniqueIndex:uk_follower_followed" json:"follower_id"`
	FollowedID string    `gorm:"size:36;not null;index:idx_follows_followed;uniqueIndex:uk_follower_followed" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Follow) TableName() string { return "follows" }

// EngagementOutbox records follow/like toggles for asynchronous delivery.
type EngagementOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:16;not null"` // follow / unfollow / like / unlike
	ActorID   string `gorm:"size:36;not null"`
	SubjectID string `gorm:"size:36;not null"`
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0"` // 0=pending 1=sent 2=failed
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (EngagementOutbox) TableName() string { return "engagement_outbox" }
