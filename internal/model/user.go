package model

import "time"

// User is an author identity. Account lifecycle (registration, password
// resets) belongs to the identity provider; this service only reads users
// and verifies credentials at login.
type User struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	Username  string `gorm:"type:varchar(64);uniqueIndex:ux_user_username;not null"`
	Email     string `gorm:"type:varchar(128)"`
	Password  string `gorm:"type:varchar(128)" json:"-"` // bcrypt hash
	Age       int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string { return "users" }
