package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/cache"
	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
)

type testEnv struct {
	db        *gorm.DB
	mr        *miniredis.Miniredis
	feedCache *cache.FeedCache

	users    repository.UserRepository
	groups   repository.GroupRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
	follows  repository.FollowRepository
}

const testCacheTTL = 20 * time.Second

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&model.User{}, &model.Group{}, &model.Post{}, &model.Comment{}, &model.Follow{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return &testEnv{
		db:        db,
		mr:        mr,
		feedCache: cache.NewFeedCache(rdb, testCacheTTL),
		users:     repository.NewUserRepository(db),
		groups:    repository.NewGroupRepository(db),
		posts:     repository.NewPostRepository(db),
		comments:  repository.NewCommentRepository(db),
		follows:   repository.NewFollowRepository(db),
	}
}

func (e *testEnv) feedService() FeedService {
	return NewFeedService(e.posts, e.groups, e.users, e.feedCache, 10)
}

func (e *testEnv) seedUser(t *testing.T, username string) *model.User {
	t.Helper()
	u := &model.User{ID: uuid.New().String(), Username: username, Email: username + "@example.com", Password: "p"}
	if err := e.db.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func (e *testEnv) seedGroup(t *testing.T, title, slug string) *model.Group {
	t.Helper()
	g := &model.Group{ID: uuid.New().String(), Title: title, Slug: slug, Description: "Тестовое описание"}
	if err := e.db.Create(g).Error; err != nil {
		t.Fatalf("seed group %s: %v", slug, err)
	}
	return g
}

func (e *testEnv) seedPost(t *testing.T, author *model.User, group *model.Group, text string, createdAt time.Time) *model.Post {
	t.Helper()
	p := &model.Post{ID: uuid.New().String(), AuthorID: author.ID, Text: text, CreatedAt: createdAt}
	if group != nil {
		p.GroupID = &group.ID
	}
	if err := e.db.Create(p).Error; err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return p
}

func (e *testEnv) seedPosts(t *testing.T, author *model.User, group *model.Group, n int) {
	t.Helper()
	base := time.Now().Add(-time.Duration(n) * time.Minute)
	for i := 0; i < n; i++ {
		e.seedPost(t, author, group, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute))
	}
}
