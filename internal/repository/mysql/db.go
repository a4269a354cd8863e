package mysql

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"forum404/internal/model"
)

var DB *gorm.DB

func InitDB(dsn string) error {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// AutoMigrate creates the forum tables. Fine for development; production
// schema is managed externally.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Topic{},
		&model.Post{},
		&model.Follow{},
		&model.TopicLike{},
		&model.SavedTopic{},
		&model.Subscription{},
		&model.EngagementOutbox{},
	)
}
