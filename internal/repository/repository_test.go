package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	// one connection, or every pooled conn gets its own :memory: database
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&model.User{}, &model.Group{}, &model.Post{}, &model.Comment{}, &model.Follow{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{ID: uuid.New().String(), Username: username, Email: username + "@example.com", Password: "p"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func seedGroup(t *testing.T, db *gorm.DB, title, slug string) *model.Group {
	t.Helper()
	g := &model.Group{ID: uuid.New().String(), Title: title, Slug: slug, Description: "test group"}
	if err := db.Create(g).Error; err != nil {
		t.Fatalf("seed group %s: %v", slug, err)
	}
	return g
}

func seedPost(t *testing.T, db *gorm.DB, author *model.User, group *model.Group, text string, createdAt time.Time) *model.Post {
	t.Helper()
	p := &model.Post{ID: uuid.New().String(), AuthorID: author.ID, Text: text, CreatedAt: createdAt}
	if group != nil {
		p.GroupID = &group.ID
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return p
}

func seedPosts(t *testing.T, db *gorm.DB, author *model.User, group *model.Group, n int) []*model.Post {
	t.Helper()
	base := time.Now().Add(-time.Duration(n) * time.Minute)
	posts := make([]*model.Post, n)
	for i := 0; i < n; i++ {
		posts[i] = seedPost(t, db, author, group, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute))
	}
	return posts
}
