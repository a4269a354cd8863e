package model

import "time"

type User struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	Email          string    `gorm:"uniqueIndex;size:128;not null" json:"email"`
	PasswordHash   string    `gorm:"size:255;not null" json:"-"`
	FirstName      string    `gorm:"size:64" json:"first_name"`
	LastName       string    `gorm:"size:64" json:"last_name"`
	Phone          string    `gorm:"size:32" json:"phone,omitempty"`
	Bio            string    `gorm:"type:text" json:"bio"`
	ProfilePicture string    `gorm:"size:512" json:"profile_picture"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
