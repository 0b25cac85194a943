package model

import "time"

// Post 内容主体
type Post struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	AuthorID  string    `gorm:"type:varchar(36);index:idx_post_author;not null"`
	Text      string    `gorm:"type:text;not null"`
	GroupID   *string   `gorm:"type:varchar(36);index:idx_post_group"`
	Image     string    `gorm:"type:varchar(255)"` // media-relative path, empty when no attachment
	CreatedAt time.Time `gorm:"index:idx_post_created"`
	UpdatedAt time.Time

	Author User   `gorm:"foreignKey:AuthorID"`
	Group  *Group `gorm:"foreignKey:GroupID"`
}

func (Post) TableName() string { return "posts" }
